// Package wiki models the biographical events extracted from wikipast
// pages and their conversion into logic predicates.
package wiki

import (
	"fmt"
	"strconv"
	"strings"

	"inferencebot/internal/logic"
)

// Relation predicate names consumed by the rulebase. Temporal and
// spatial relations are pre-materialised as facts because the engine
// has no built-in arithmetic.
const (
	PredBefore    = "before"
	PredDifferent = "different"
	PredFar       = "far"
)

// Date is a calendar date as written on a page. Month and day are zero
// when the page only gives a year (or a year and month).
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate reads the wikipast date notation: "1802.02.26", "1802.02"
// or "1802".
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Date{}, fmt.Errorf("malformed date %q", s)
	}

	var d Date
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Date{}, fmt.Errorf("malformed date %q: %w", s, err)
		}
		switch i {
		case 0:
			if len(part) != 4 {
				return Date{}, fmt.Errorf("malformed date %q: year must have four digits", s)
			}
			d.Year = n
		case 1:
			if n < 1 || n > 12 {
				return Date{}, fmt.Errorf("malformed date %q: month out of range", s)
			}
			d.Month = n
		case 2:
			if n < 1 || n > 31 {
				return Date{}, fmt.Errorf("malformed date %q: day out of range", s)
			}
			d.Day = n
		}
	}
	return d, nil
}

// String renders the canonical wikipast notation.
func (d Date) String() string {
	switch {
	case d.Day != 0:
		return fmt.Sprintf("%04d.%02d.%02d", d.Year, d.Month, d.Day)
	case d.Month != 0:
		return fmt.Sprintf("%04d.%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

// Before reports whether d strictly precedes o. Missing month or day
// components compare as zero, so "1900" precedes "1900.06".
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// IsBeforePredicate returns a before(d, o) fact when d strictly
// precedes o. Nil means the relation does not hold and no fact is
// added.
func (d Date) IsBeforePredicate(o Date) *logic.Predicate {
	if !d.Before(o) {
		return nil
	}
	p := logic.Pred(PredBefore, logic.Sym(d.String()), logic.Sym(o.String()))
	return &p
}

// IsDifferentPredicate returns a different(d, o) fact when the two
// dates differ, nil otherwise.
func (d Date) IsDifferentPredicate(o Date) *logic.Predicate {
	if d == o {
		return nil
	}
	p := logic.Pred(PredDifferent, logic.Sym(d.String()), logic.Sym(o.String()))
	return &p
}
