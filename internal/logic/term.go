// Package logic implements the first-order inference core: symbolic
// terms, Robinson unification, and a forward-chaining engine over a
// deduplicated knowledge base.
package logic

import (
	"strings"
)

// Term is a symbolic expression: a Symbol, a Variable, or a Predicate.
// The set of implementations is closed; the unexported methods keep it
// that way.
type Term interface {
	// Ground reports whether no Variable occurs anywhere in the term.
	Ground() bool
	// Substitute returns the term with every variable bound in s
	// replaced by its binding. Unbound variables stay as they are.
	Substitute(s Substitution) Term
	// Equal is structural equality.
	Equal(other Term) bool
	// String renders the term. Two ground terms are Equal exactly when
	// their renderings match; the knowledge base keys its dedup set on
	// this.
	String() string

	occurs(name string) bool
	rename(suffix string) Term
}

// Symbol is an atomic constant: a person, a date, a location, a URL.
type Symbol struct {
	Name string
}

// Sym builds a Symbol.
func Sym(name string) Symbol { return Symbol{Name: name} }

func (s Symbol) Ground() bool                 { return true }
func (s Symbol) Substitute(Substitution) Term { return s }
func (s Symbol) String() string               { return s.Name }
func (s Symbol) occurs(string) bool           { return false }
func (s Symbol) rename(string) Term           { return s }

func (s Symbol) Equal(other Term) bool {
	o, ok := other.(Symbol)
	return ok && o.Name == s.Name
}

// Variable is a placeholder bound during unification. Variables are
// scoped per rule; the chainer renames them apart before matching.
type Variable struct {
	Name string
}

// Var builds a Variable.
func Var(name string) Variable { return Variable{Name: name} }

func (v Variable) Ground() bool { return false }

func (v Variable) Substitute(s Substitution) Term {
	if t, ok := s[v.Name]; ok {
		return t
	}
	return v
}

func (v Variable) Equal(other Term) bool {
	o, ok := other.(Variable)
	return ok && o.Name == v.Name
}

func (v Variable) String() string          { return "?" + v.Name }
func (v Variable) occurs(name string) bool { return v.Name == name }
func (v Variable) rename(suffix string) Term {
	return Variable{Name: v.Name + suffix}
}

// Predicate is a named n-ary applied term. A ground Predicate is a
// fact.
type Predicate struct {
	Name string
	Args []Term
}

// Pred builds a Predicate.
func Pred(name string, args ...Term) Predicate {
	return Predicate{Name: name, Args: args}
}

func (p Predicate) Ground() bool {
	for _, a := range p.Args {
		if !a.Ground() {
			return false
		}
	}
	return true
}

func (p Predicate) Substitute(s Substitution) Term {
	if len(s) == 0 {
		return p
	}
	args := make([]Term, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.Substitute(s)
	}
	return Predicate{Name: p.Name, Args: args}
}

// Apply is Substitute with the Predicate type preserved.
func (p Predicate) Apply(s Substitution) Predicate {
	return p.Substitute(s).(Predicate)
}

func (p Predicate) Equal(other Term) bool {
	o, ok := other.(Predicate)
	if !ok || o.Name != p.Name || len(o.Args) != len(p.Args) {
		return false
	}
	for i := range p.Args {
		if !p.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte('(')
	for i, a := range p.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (p Predicate) occurs(name string) bool {
	for _, a := range p.Args {
		if a.occurs(name) {
			return true
		}
	}
	return false
}

func (p Predicate) rename(suffix string) Term {
	args := make([]Term, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.rename(suffix)
	}
	return Predicate{Name: p.Name, Args: args}
}

// collectVars records every variable name occurring in t.
func collectVars(t Term, into map[string]struct{}) {
	switch t := t.(type) {
	case Variable:
		into[t.Name] = struct{}{}
	case Predicate:
		for _, a := range t.Args {
			collectVars(a, into)
		}
	}
}
