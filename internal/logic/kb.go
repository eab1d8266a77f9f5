package logic

import (
	"errors"
	"fmt"
)

// ErrNotGround rejects facts containing variables.
var ErrNotGround = errors.New("fact contains variables")

// KnowledgeBase holds ground facts and rules. Facts keep insertion
// order and structural duplicates are suppressed; together with the
// finite constant universe this is what guarantees chaining reaches a
// fixed point.
//
// A KnowledgeBase is not safe for concurrent mutation. Each chainer
// owns its base exclusively for the duration of a run.
type KnowledgeBase struct {
	facts []Predicate
	seen  map[string]struct{}
	rules []Rule
}

// NewKnowledgeBase returns an empty base.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{seen: make(map[string]struct{})}
}

// AddFact inserts f unless a structurally equal fact is already
// present. It reports whether the fact was added. Non-ground input is
// rejected.
func (kb *KnowledgeBase) AddFact(f Predicate) (bool, error) {
	if !f.Ground() {
		return false, fmt.Errorf("%w: %s", ErrNotGround, f)
	}
	key := f.String()
	if _, dup := kb.seen[key]; dup {
		return false, nil
	}
	kb.seen[key] = struct{}{}
	kb.facts = append(kb.facts, f)
	return true, nil
}

// AddFacts inserts each fact under the AddFact rules.
func (kb *KnowledgeBase) AddFacts(facts []Predicate) error {
	for _, f := range facts {
		if _, err := kb.AddFact(f); err != nil {
			return err
		}
	}
	return nil
}

// AddRule appends r. Rules are validated at construction (NewRule), so
// insertion cannot fail.
func (kb *KnowledgeBase) AddRule(r Rule) {
	kb.rules = append(kb.rules, r)
}

// AddRules appends every rule in order.
func (kb *KnowledgeBase) AddRules(rules []Rule) {
	kb.rules = append(kb.rules, rules...)
}

// Contains reports whether a structurally equal fact is present.
func (kb *KnowledgeBase) Contains(f Predicate) bool {
	_, ok := kb.seen[f.String()]
	return ok
}

// Facts returns a snapshot of the current facts in insertion order.
func (kb *KnowledgeBase) Facts() []Predicate {
	out := make([]Predicate, len(kb.facts))
	copy(out, kb.facts)
	return out
}

// Rules returns a snapshot of the rules in insertion order.
func (kb *KnowledgeBase) Rules() []Rule {
	out := make([]Rule, len(kb.rules))
	copy(out, kb.rules)
	return out
}

// Len is the current fact count.
func (kb *KnowledgeBase) Len() int { return len(kb.facts) }
