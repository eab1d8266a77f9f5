package wiki

import (
	"inferencebot/internal/logic"
)

// Event predicate names consumed by the rulebase. Arities follow the
// ToPredicate methods below.
const (
	PredBirth     = "birth"
	PredDeath     = "death"
	PredEncounter = "encounter"
	PredPosition  = "position"
	PredElection  = "election"
	PredWedding   = "wedding"
)

// Birth of a person, as stated by one page.
type Birth struct {
	Person string
	Date   Date
}

// ToPredicate renders birth(person, date, url).
func (b Birth) ToPredicate(url string) logic.Predicate {
	return logic.Pred(PredBirth,
		logic.Sym(b.Person), logic.Sym(b.Date.String()), logic.Sym(url))
}

// Death of a person.
type Death struct {
	Person string
	Date   Date
}

// ToPredicate renders death(person, date, url).
func (d Death) ToPredicate(url string) logic.Predicate {
	return logic.Pred(PredDeath,
		logic.Sym(d.Person), logic.Sym(d.Date.String()), logic.Sym(url))
}

// Encounter between two persons at a location on a date.
type Encounter struct {
	Person1  string
	Person2  string
	Location Location
	Date     Date
}

// ToPredicate renders encounter(person1, person2, location, date, url).
func (e Encounter) ToPredicate(url string) logic.Predicate {
	return logic.Pred(PredEncounter,
		logic.Sym(e.Person1), logic.Sym(e.Person2),
		logic.Sym(e.Location.Name), logic.Sym(e.Date.String()), logic.Sym(url))
}

// Position places a person at a location on a date (a stay, an office
// held there).
type Position struct {
	Person   string
	Location Location
	Date     Date
}

// ToPredicate renders position(person, location, date, url).
func (p Position) ToPredicate(url string) logic.Predicate {
	return logic.Pred(PredPosition,
		logic.Sym(p.Person), logic.Sym(p.Location.Name),
		logic.Sym(p.Date.String()), logic.Sym(url))
}

// Election of a person to a function at a location.
type Election struct {
	Person   string
	Function string
	Date     Date
	Location Location
}

// ToPredicate renders election(person, function, date, location, url).
func (e Election) ToPredicate(url string) logic.Predicate {
	return logic.Pred(PredElection,
		logic.Sym(e.Person), logic.Sym(e.Function),
		logic.Sym(e.Date.String()), logic.Sym(e.Location.Name), logic.Sym(url))
}

// Wedding between two persons.
type Wedding struct {
	Person1  string
	Person2  string
	Date     Date
	Location Location
}

// ToPredicate renders wedding(person1, person2, date, location, url).
func (w Wedding) ToPredicate(url string) logic.Predicate {
	return logic.Pred(PredWedding,
		logic.Sym(w.Person1), logic.Sym(w.Person2),
		logic.Sym(w.Date.String()), logic.Sym(w.Location.Name), logic.Sym(url))
}
