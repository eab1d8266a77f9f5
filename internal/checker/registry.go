package checker

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"inferencebot/internal/logic"
	"inferencebot/internal/wiki"
)

// NewRegistry returns the nine checker slices in reporting order. The
// order is part of the output contract: RunAll concatenates results
// registry-first.
func NewRegistry(cfg logic.ChainerConfig, logger *zap.Logger) []*Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	mk := func(name string, rules []logic.Rule, adapter func(*wiki.ScrapeResult, *logic.KnowledgeBase) error) *Checker {
		return &Checker{
			Name:    name,
			rules:   rules,
			adapter: adapter,
			config:  cfg,
			logger:  logger,
		}
	}
	return []*Checker{
		mk("death-before-birth", deathBeforeBirthRules(), deathBeforeBirthAdapter),
		mk("multiple-births", multiBirthRules(), multiBirthAdapter),
		mk("multiple-deaths", multiDeathRules(), multiDeathAdapter),
		mk("encounter-location-conflict", encounterRules(), encounterAdapter),
		mk("election-before-birth", electionBeforeBirthRules(), electionBeforeBirthAdapter),
		mk("election-after-death", electionAfterDeathRules(), electionAfterDeathAdapter),
		mk("marriage-before-birth", marriageBeforeBirthRules(), marriageBeforeBirthAdapter),
		mk("marriage-after-death", marriageAfterDeathRules(), marriageAfterDeathAdapter),
		mk("divorce-before-marriage", divorceRules(), divorceAdapter),
	}
}

// RunAll runs every checker against res, each on its own knowledge
// base, concurrently. Outputs are concatenated in registry order, so
// the merged list is deterministic regardless of scheduling.
func RunAll(ctx context.Context, checkers []*Checker, res *wiki.ScrapeResult) ([]logic.Predicate, error) {
	g, ctx := errgroup.WithContext(ctx)
	outs := make([][]logic.Predicate, len(checkers))
	for i, c := range checkers {
		g.Go(func() error {
			derived, err := c.Run(ctx, res)
			if err != nil {
				return err
			}
			outs[i] = derived
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []logic.Predicate
	for _, out := range outs {
		all = append(all, out...)
	}
	return all, nil
}
