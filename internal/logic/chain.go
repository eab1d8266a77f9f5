package logic

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultDerivedLimit bounds derived facts per Chain call. Saturation
// terminates structurally (finite constants plus dedup), so hitting
// the limit means the rulebase is broken.
const DefaultDerivedLimit = 100000

// ErrDerivedLimit is returned when a Chain call exceeds its derived
// fact bound.
var ErrDerivedLimit = errors.New("derived fact limit exceeded")

// ChainerConfig bounds a single saturation run.
type ChainerConfig struct {
	DerivedLimit int
}

// DefaultChainerConfig returns production defaults.
func DefaultChainerConfig() ChainerConfig {
	return ChainerConfig{DerivedLimit: DefaultDerivedLimit}
}

// Chainer saturates a knowledge base under its rules. It owns the base
// for its lifetime and runs synchronously on the calling goroutine.
type Chainer struct {
	kb     *KnowledgeBase
	config ChainerConfig
	logger *zap.Logger
}

// NewChainer wires a chainer to kb. A nil logger is replaced by a nop.
func NewChainer(kb *KnowledgeBase, cfg ChainerConfig, logger *zap.Logger) *Chainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DerivedLimit <= 0 {
		cfg.DerivedLimit = DefaultDerivedLimit
	}
	return &Chainer{kb: kb, config: cfg, logger: logger}
}

// Chain runs every rule against the facts, in insertion order, until a
// full pass derives nothing new. It returns the facts added by this
// call, in derivation order; facts present before the call are not
// returned. Calling Chain again on a saturated base returns an empty
// list.
func (c *Chainer) Chain() ([]Predicate, error) {
	rules := c.kb.Rules()
	for i := range rules {
		rules[i] = rules[i].renameApart(fmt.Sprintf("#%d", i))
	}

	derived := []Predicate{}
	for pass := 1; ; pass++ {
		added := 0
		for _, rule := range rules {
			for _, s := range c.matchPremises(rule.Premises, Substitution{}) {
				conclusion := rule.Conclusion.Apply(s)
				if !conclusion.Ground() {
					continue
				}
				ok, err := c.kb.AddFact(conclusion)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				derived = append(derived, conclusion)
				added++
				if len(derived) > c.config.DerivedLimit {
					return nil, fmt.Errorf("%w (%d)", ErrDerivedLimit, c.config.DerivedLimit)
				}
			}
		}
		if added == 0 {
			c.logger.Debug("chain saturated",
				zap.Int("passes", pass),
				zap.Int("facts", c.kb.Len()),
				zap.Int("derived", len(derived)))
			return derived, nil
		}
	}
}

// matchPremises enumerates every substitution under which the
// premises, matched in declaration order, all equal some known fact.
// Branches that fail to unify are simply dropped.
func (c *Chainer) matchPremises(premises []Predicate, s Substitution) []Substitution {
	if len(premises) == 0 {
		return []Substitution{s.clone()}
	}
	head := premises[0].Apply(s)

	var out []Substitution
	for _, fact := range c.kb.facts {
		u, ok := Unify(head, fact)
		if !ok {
			continue
		}
		out = append(out, c.matchPremises(premises[1:], s.Compose(u))...)
	}
	return out
}
