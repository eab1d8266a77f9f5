package logic

// Unify computes the most general substitution under which t1 and t2
// are structurally equal. Failure is ordinary control flow, reported
// through the bool, never an error.
func Unify(t1, t2 Term) (Substitution, bool) {
	return unify(t1, t2, Substitution{})
}

// unify folds over both terms left to right, threading the
// substitution built so far. Each side is normalised against the
// running substitution before being inspected, which keeps the result
// idempotent.
func unify(t1, t2 Term, s Substitution) (Substitution, bool) {
	t1 = t1.Substitute(s)
	t2 = t2.Substitute(s)

	switch a := t1.(type) {
	case Symbol:
		if v, ok := t2.(Variable); ok {
			return bindVar(v, a, s)
		}
		b, ok := t2.(Symbol)
		if !ok || b.Name != a.Name {
			return nil, false
		}
		return s, true

	case Variable:
		return bindVar(a, t2, s)

	case Predicate:
		if v, ok := t2.(Variable); ok {
			return bindVar(v, a, s)
		}
		b, ok := t2.(Predicate)
		if !ok || b.Name != a.Name || len(b.Args) != len(a.Args) {
			return nil, false
		}
		for i := range a.Args {
			var ok bool
			if s, ok = unify(a.Args[i], b.Args[i], s); !ok {
				return nil, false
			}
		}
		return s, true
	}
	return nil, false
}

// bindVar extends s with v ↦ t. Binding a variable to itself is a
// no-op; binding it to a term it occurs in fails (occurs check).
func bindVar(v Variable, t Term, s Substitution) (Substitution, bool) {
	if o, ok := t.(Variable); ok && o.Name == v.Name {
		return s, true
	}
	if t.occurs(v.Name) {
		return nil, false
	}
	return s.Compose(Substitution{v.Name: t}), true
}
