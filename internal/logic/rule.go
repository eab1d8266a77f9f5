package logic

import (
	"fmt"
	"sort"
	"strings"
)

// Rule is an implication over predicate terms: when every premise
// unifies with a known fact under one substitution, the instantiated
// conclusion holds.
type Rule struct {
	Premises   []Predicate
	Conclusion Predicate
}

// NewRule builds a rule and enforces range-restriction: every variable
// of the conclusion must appear in at least one premise, otherwise the
// chainer could derive non-ground facts.
func NewRule(conclusion Predicate, premises ...Predicate) (Rule, error) {
	bound := make(map[string]struct{})
	for _, p := range premises {
		collectVars(p, bound)
	}

	head := make(map[string]struct{})
	collectVars(conclusion, head)

	var unbound []string
	for name := range head {
		if _, ok := bound[name]; !ok {
			unbound = append(unbound, name)
		}
	}
	if len(unbound) > 0 {
		sort.Strings(unbound)
		return Rule{}, fmt.Errorf("rule %s: conclusion variables unbound by any premise: %s",
			conclusion.Name, strings.Join(unbound, ", "))
	}

	return Rule{Premises: premises, Conclusion: conclusion}, nil
}

// MustRule is NewRule for statically-known rulebases; it panics on a
// malformed rule.
func MustRule(conclusion Predicate, premises ...Predicate) Rule {
	r, err := NewRule(conclusion, premises...)
	if err != nil {
		panic(err)
	}
	return r
}

// Instantiate applies s to every term of the rule.
func (r Rule) Instantiate(s Substitution) Rule {
	premises := make([]Predicate, len(r.Premises))
	for i, p := range r.Premises {
		premises[i] = p.Apply(s)
	}
	return Rule{Premises: premises, Conclusion: r.Conclusion.Apply(s)}
}

// renameApart suffixes every variable of the rule, keeping variables
// of distinct rules from colliding when they happen to reuse names.
func (r Rule) renameApart(suffix string) Rule {
	premises := make([]Predicate, len(r.Premises))
	for i, p := range r.Premises {
		premises[i] = p.rename(suffix).(Predicate)
	}
	return Rule{Premises: premises, Conclusion: r.Conclusion.rename(suffix).(Predicate)}
}
