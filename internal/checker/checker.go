package checker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inferencebot/internal/logic"
	"inferencebot/internal/wiki"
)

// Checker is one rulebase slice plus the adapter that pre-computes the
// relational facts that slice needs.
type Checker struct {
	Name string

	rules   []logic.Rule
	adapter func(*wiki.ScrapeResult, *logic.KnowledgeBase) error
	config  logic.ChainerConfig
	logger  *zap.Logger
}

// Run builds a fresh knowledge base, loads the slice's rules, feeds
// the scraped pages through the adapter and saturates. Every call
// starts from an empty base; nothing carries across runs.
func (c *Checker) Run(ctx context.Context, res *wiki.ScrapeResult) ([]logic.Predicate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kb := logic.NewKnowledgeBase()
	kb.AddRules(c.rules)
	if err := c.adapter(res, kb); err != nil {
		return nil, fmt.Errorf("%s: prepare facts: %w", c.Name, err)
	}
	c.logger.Debug("slice prepared",
		zap.String("checker", c.Name), zap.Int("facts", kb.Len()))

	derived, err := logic.NewChainer(kb, c.config, c.logger).Chain()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return derived, nil
}

// RuleCount is the number of rules in the slice.
func (c *Checker) RuleCount() int { return len(c.rules) }
