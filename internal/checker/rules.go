// Package checker bundles the temporal-consistency rulebase with the
// adapters that feed each rule slice its facts, and runs the slices
// against scraped pages.
package checker

import (
	"inferencebot/internal/logic"
	"inferencebot/internal/wiki"
)

// Conclusion predicate names. The report layer keys its message
// templates on these, so they stay in the wiki's French.
const (
	ErrDate      = "Erreur de date"
	ErrEncounter = "Erreur de rencontre"
	ErrElection  = "Erreur d'election"
	ErrMarriage  = "Erreur de mariage"
)

// Rule slices. Variables are scoped per rule: the chainer renames each
// rule's variables apart before matching, so the short names below are
// safe to reuse across rules and slices.

// deathBeforeBirthRules: a person died before being born.
// Conclusion: Erreur de date(person, birthDate, deathDate, url1, url2).
func deathBeforeBirthRules() []logic.Rule {
	p := logic.Var("p")
	db, dd := logic.Var("db"), logic.Var("dd")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{logic.MustRule(
		logic.Pred(ErrDate, p, db, dd, u1, u2),
		logic.Pred(wiki.PredBirth, p, db, u1),
		logic.Pred(wiki.PredDeath, p, dd, u2),
		logic.Pred(wiki.PredBefore, dd, db),
	)}
}

// multiBirthRules: one person, two birth dates.
// Conclusion: Erreur de date(person, d1, d2, url1, url2).
func multiBirthRules() []logic.Rule {
	p := logic.Var("p")
	d1, d2 := logic.Var("d1"), logic.Var("d2")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{logic.MustRule(
		logic.Pred(ErrDate, p, d1, d2, u1, u2),
		logic.Pred(wiki.PredBirth, p, d1, u1),
		logic.Pred(wiki.PredBirth, p, d2, u2),
		logic.Pred(wiki.PredDifferent, d1, d2),
	)}
}

// multiDeathRules: one person, two death dates.
func multiDeathRules() []logic.Rule {
	p := logic.Var("p")
	d1, d2 := logic.Var("d1"), logic.Var("d2")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{logic.MustRule(
		logic.Pred(ErrDate, p, d1, d2, u1, u2),
		logic.Pred(wiki.PredDeath, p, d1, u1),
		logic.Pred(wiki.PredDeath, p, d2, u2),
		logic.Pred(wiki.PredDifferent, d1, d2),
	)}
}

// encounterRules: a person met someone in one place while being
// somewhere far away the same day. One rule per role in the encounter.
// Conclusion: Erreur de rencontre(date, loc1, loc2, p1, p2, url1, url2).
func encounterRules() []logic.Rule {
	p1, p2 := logic.Var("p1"), logic.Var("p2")
	l1, l2 := logic.Var("l1"), logic.Var("l2")
	d := logic.Var("d")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{
		logic.MustRule(
			logic.Pred(ErrEncounter, d, l1, l2, p1, p2, u1, u2),
			logic.Pred(wiki.PredEncounter, p1, p2, l1, d, u1),
			logic.Pred(wiki.PredPosition, p1, l2, d, u2),
			logic.Pred(wiki.PredFar, l1, l2),
		),
		logic.MustRule(
			logic.Pred(ErrEncounter, d, l1, l2, p1, p2, u1, u2),
			logic.Pred(wiki.PredEncounter, p1, p2, l1, d, u1),
			logic.Pred(wiki.PredPosition, p2, l2, d, u2),
			logic.Pred(wiki.PredFar, l1, l2),
		),
	}
}

// electionBeforeBirthRules: elected before being born.
// Conclusion: Erreur d'election(person, function, electionDate,
// otherDate, location, url1, url2).
func electionBeforeBirthRules() []logic.Rule {
	p, f, l := logic.Var("p"), logic.Var("f"), logic.Var("l")
	de, db := logic.Var("de"), logic.Var("db")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{logic.MustRule(
		logic.Pred(ErrElection, p, f, de, db, l, u1, u2),
		logic.Pred(wiki.PredElection, p, f, de, l, u1),
		logic.Pred(wiki.PredBirth, p, db, u2),
		logic.Pred(wiki.PredBefore, de, db),
	)}
}

// electionAfterDeathRules: elected after dying (death precedes the
// election).
func electionAfterDeathRules() []logic.Rule {
	p, f, l := logic.Var("p"), logic.Var("f"), logic.Var("l")
	de, dd := logic.Var("de"), logic.Var("dd")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{logic.MustRule(
		logic.Pred(ErrElection, p, f, de, dd, l, u1, u2),
		logic.Pred(wiki.PredElection, p, f, de, l, u1),
		logic.Pred(wiki.PredDeath, p, dd, u2),
		logic.Pred(wiki.PredBefore, dd, de),
	)}
}

// marriageBeforeBirthRules: married before either spouse was born. One
// rule per spouse.
// Conclusion: Erreur de mariage(p1, p2, weddingDate, otherDate,
// location, url1, url2).
func marriageBeforeBirthRules() []logic.Rule {
	p1, p2, l := logic.Var("p1"), logic.Var("p2"), logic.Var("l")
	dw, db := logic.Var("dw"), logic.Var("db")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{
		logic.MustRule(
			logic.Pred(ErrMarriage, p1, p2, dw, db, l, u1, u2),
			logic.Pred(wiki.PredWedding, p1, p2, dw, l, u1),
			logic.Pred(wiki.PredBirth, p1, db, u2),
			logic.Pred(wiki.PredBefore, dw, db),
		),
		logic.MustRule(
			logic.Pred(ErrMarriage, p1, p2, dw, db, l, u1, u2),
			logic.Pred(wiki.PredWedding, p1, p2, dw, l, u1),
			logic.Pred(wiki.PredBirth, p2, db, u2),
			logic.Pred(wiki.PredBefore, dw, db),
		),
	}
}

// marriageAfterDeathRules: married after either spouse had died.
func marriageAfterDeathRules() []logic.Rule {
	p1, p2, l := logic.Var("p1"), logic.Var("p2"), logic.Var("l")
	dw, dd := logic.Var("dw"), logic.Var("dd")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{
		logic.MustRule(
			logic.Pred(ErrMarriage, p1, p2, dw, dd, l, u1, u2),
			logic.Pred(wiki.PredWedding, p1, p2, dw, l, u1),
			logic.Pred(wiki.PredDeath, p1, dd, u2),
			logic.Pred(wiki.PredBefore, dd, dw),
		),
		logic.MustRule(
			logic.Pred(ErrMarriage, p1, p2, dw, dd, l, u1, u2),
			logic.Pred(wiki.PredWedding, p1, p2, dw, l, u1),
			logic.Pred(wiki.PredDeath, p2, dd, u2),
			logic.Pred(wiki.PredBefore, dd, dw),
		),
	}
}

// divorceRules: two dated weddings for the same couple, with no
// divorce in between on record. The arity-6 conclusion keeps it
// distinguishable from the other marriage errors.
// Conclusion: Erreur de mariage(p1, p2, d1, d2, url1, url2).
func divorceRules() []logic.Rule {
	p1, p2 := logic.Var("p1"), logic.Var("p2")
	d1, d2 := logic.Var("d1"), logic.Var("d2")
	l1, l2 := logic.Var("l1"), logic.Var("l2")
	u1, u2 := logic.Var("u1"), logic.Var("u2")

	return []logic.Rule{logic.MustRule(
		logic.Pred(ErrMarriage, p1, p2, d1, d2, u1, u2),
		logic.Pred(wiki.PredWedding, p1, p2, d1, l1, u1),
		logic.Pred(wiki.PredWedding, p1, p2, d2, l2, u2),
		logic.Pred(wiki.PredBefore, d1, d2),
	)}
}
