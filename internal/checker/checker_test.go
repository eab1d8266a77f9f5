package checker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"inferencebot/internal/logic"
	"inferencebot/internal/wiki"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func registry(t *testing.T) []*Checker {
	t.Helper()
	return NewRegistry(logic.DefaultChainerConfig(), nil)
}

func byName(t *testing.T, name string) *Checker {
	t.Helper()
	for _, c := range registry(t) {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no checker named %q", name)
	return nil
}

func run(t *testing.T, c *Checker, res *wiki.ScrapeResult) []logic.Predicate {
	t.Helper()
	derived, err := c.Run(context.Background(), res)
	require.NoError(t, err)
	return derived
}

func date(t *testing.T, s string) wiki.Date {
	t.Helper()
	d, err := wiki.ParseDate(s)
	require.NoError(t, err)
	return d
}

// S1: a death dated before the birth of the same person.
func TestDeathBeforeBirth(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/Alice",
		Births: []*wiki.Birth{{Person: "Alice", Date: date(t, "1900")}},
		Deaths: []*wiki.Death{{Person: "Alice", Date: date(t, "1850")}},
	}}}

	derived := run(t, byName(t, "death-before-birth"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur de date(Alice, 1900, 1850, http://wiki/Alice, http://wiki/Alice)",
		derived[0].String())
}

// S2: two births with different dates; the strict pairing reports the
// inconsistency once, not once per orientation.
func TestMultipleBirths(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL: "http://wiki/Bob",
		Births: []*wiki.Birth{
			{Person: "Bob", Date: date(t, "1800")},
			{Person: "Bob", Date: date(t, "1805")},
		},
	}}}

	derived := run(t, byName(t, "multiple-births"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur de date(Bob, 1800, 1805, http://wiki/Bob, http://wiki/Bob)",
		derived[0].String())
}

func TestMultipleDeaths(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{
		{
			URL:    "http://wiki/Carl",
			Deaths: []*wiki.Death{{Person: "Carl", Date: date(t, "1860")}},
		},
		{
			URL:    "http://wiki/Carl_fr",
			Deaths: []*wiki.Death{{Person: "Carl", Date: date(t, "1862")}},
		},
	}}

	derived := run(t, byName(t, "multiple-deaths"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur de date(Carl, 1860, 1862, http://wiki/Carl, http://wiki/Carl_fr)",
		derived[0].String())
}

// S3: an encounter in Paris while the same person is positioned in
// Tokyo on the same date.
func TestEncounterLocationConflict(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{
		{
			URL: "http://wiki/C",
			Encounters: []*wiki.Encounter{{
				Person1: "C", Person2: "D",
				Location: wiki.Loc("Paris"), Date: date(t, "1900.06.01"),
			}},
		},
		{
			URL: "http://wiki/C_travels",
			Positions: []*wiki.Position{{
				Person: "C", Location: wiki.Loc("Tokyo"), Date: date(t, "1900.06.01"),
			}},
		},
	}}

	derived := run(t, byName(t, "encounter-location-conflict"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur de rencontre(1900.06.01, Paris, Tokyo, C, D, http://wiki/C, http://wiki/C_travels)",
		derived[0].String())
}

// No fact, no error: the far relation requires matching dates.
func TestEncounterDifferentDatesIsClean(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL: "http://wiki/C",
		Encounters: []*wiki.Encounter{{
			Person1: "C", Person2: "D",
			Location: wiki.Loc("Paris"), Date: date(t, "1900.06.01"),
		}},
		Positions: []*wiki.Position{{
			Person: "C", Location: wiki.Loc("Tokyo"), Date: date(t, "1900.07.01"),
		}},
	}}}

	assert.Empty(t, run(t, byName(t, "encounter-location-conflict"), res))
}

// S4: elected ten years before being born.
func TestElectionBeforeBirth(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/E",
		Births: []*wiki.Birth{{Person: "E", Date: date(t, "1950")}},
		Elections: []*wiki.Election{{
			Person: "E", Function: "maire", Date: date(t, "1940"), Location: wiki.Loc("Lyon"),
		}},
	}}}

	derived := run(t, byName(t, "election-before-birth"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur d'election(E, maire, 1940, 1950, Lyon, http://wiki/E, http://wiki/E)",
		derived[0].String())
}

func TestElectionAfterDeath(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/F",
		Deaths: []*wiki.Death{{Person: "F", Date: date(t, "1930")}},
		Elections: []*wiki.Election{{
			Person: "F", Function: "depute", Date: date(t, "1940"), Location: wiki.Loc("Nancy"),
		}},
	}}}

	derived := run(t, byName(t, "election-after-death"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur d'election(F, depute, 1940, 1930, Nancy, http://wiki/F, http://wiki/F)",
		derived[0].String())
}

func TestMarriageBeforeBirth(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/G",
		Births: []*wiki.Birth{{Person: "H", Date: date(t, "1960")}},
		Weddings: []*wiki.Wedding{{
			Person1: "G", Person2: "H", Date: date(t, "1950"), Location: wiki.Loc("Dijon"),
		}},
	}}}

	derived := run(t, byName(t, "marriage-before-birth"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur de mariage(G, H, 1950, 1960, Dijon, http://wiki/G, http://wiki/G)",
		derived[0].String())
}

func TestMarriageAfterDeath(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/G",
		Deaths: []*wiki.Death{{Person: "G", Date: date(t, "1940")}},
		Weddings: []*wiki.Wedding{{
			Person1: "G", Person2: "H", Date: date(t, "1950"), Location: wiki.Loc("Dijon"),
		}},
	}}}

	derived := run(t, byName(t, "marriage-after-death"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur de mariage(G, H, 1950, 1940, Dijon, http://wiki/G, http://wiki/G)",
		derived[0].String())
}

func TestDivorceBeforeMarriage(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL: "http://wiki/I",
		Weddings: []*wiki.Wedding{
			{Person1: "I", Person2: "J", Date: date(t, "1950"), Location: wiki.Loc("Metz")},
			{Person1: "I", Person2: "J", Date: date(t, "1955"), Location: wiki.Loc("Nice")},
		},
	}}}

	derived := run(t, byName(t, "divorce-before-marriage"), res)
	require.Len(t, derived, 1)
	assert.Equal(t,
		"Erreur de mariage(I, J, 1950, 1955, http://wiki/I, http://wiki/I)",
		derived[0].String())
}

// S5: a coherent biography derives nothing, across every slice.
func TestCleanInput(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/Clean",
		Births: []*wiki.Birth{{Person: "K", Date: date(t, "1900")}},
		Deaths: []*wiki.Death{{Person: "K", Date: date(t, "1960")}},
		Elections: []*wiki.Election{{
			Person: "K", Function: "maire", Date: date(t, "1940"), Location: wiki.Loc("Lyon"),
		}},
	}}}

	for _, c := range registry(t) {
		assert.Empty(t, run(t, c, res), "checker %s fired on clean input", c.Name)
	}
}

// S6: many unrelated births terminate quickly with no derivations.
func TestTerminationStress(t *testing.T) {
	page := wiki.PageRecord{URL: "http://wiki/Many"}
	for i := 0; i < 100; i++ {
		page.Births = append(page.Births, &wiki.Birth{
			Person: fmt.Sprintf("person%d", i),
			Date:   wiki.Date{Year: 1800 + i},
		})
	}
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{page}}

	for _, name := range []string{"death-before-birth", "multiple-births"} {
		assert.Empty(t, run(t, byName(t, name), res), name)
	}
}

// nil entries in the event lists are scrubbed before any fact lands.
func TestNilEventsAreFiltered(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/Alice",
		Births: []*wiki.Birth{nil, {Person: "Alice", Date: date(t, "1900")}, nil},
		Deaths: []*wiki.Death{nil, {Person: "Alice", Date: date(t, "1850")}},
	}}}

	derived := run(t, byName(t, "death-before-birth"), res)
	assert.Len(t, derived, 1)
}

// The same event restated on several pages yields one error per URL
// pairing through the direct facts, but the relation layer dedups the
// distinct event set.
func TestDuplicateEventsAcrossPages(t *testing.T) {
	birth := &wiki.Birth{Person: "Alice", Date: date(t, "1900")}
	death := &wiki.Death{Person: "Alice", Date: date(t, "1850")}
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{
		{URL: "http://wiki/Alice", Births: []*wiki.Birth{birth}, Deaths: []*wiki.Death{death}},
		{URL: "http://wiki/Alice", Births: []*wiki.Birth{birth}, Deaths: []*wiki.Death{death}},
	}}

	// same URL twice: direct facts dedup to one pair, one error
	derived := run(t, byName(t, "death-before-birth"), res)
	assert.Len(t, derived, 1)
}

func TestCheckerReRunIsIndependent(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/Alice",
		Births: []*wiki.Birth{{Person: "Alice", Date: date(t, "1900")}},
		Deaths: []*wiki.Death{{Person: "Alice", Date: date(t, "1850")}},
	}}}

	c := byName(t, "death-before-birth")
	first := run(t, c, res)
	second := run(t, c, res)
	require.Len(t, first, 1)
	// a fresh base every run: the re-run reports the same error again
	assert.Equal(t, first[0].String(), second[0].String())
}

func TestRunAllConcatenatesInRegistryOrder(t *testing.T) {
	res := &wiki.ScrapeResult{Data: []wiki.PageRecord{{
		URL:    "http://wiki/Alice",
		Births: []*wiki.Birth{{Person: "Alice", Date: date(t, "1900")}},
		Deaths: []*wiki.Death{
			{Person: "Alice", Date: date(t, "1850")},
			{Person: "Alice", Date: date(t, "1851")},
		},
	}}}

	all, err := RunAll(context.Background(), registry(t), res)
	require.NoError(t, err)

	// death-before-birth fires twice (two deaths precede the birth),
	// then multiple-deaths reports the conflicting death dates.
	require.Len(t, all, 3)
	assert.Equal(t, ErrDate, all[0].Name)
	assert.Equal(t, ErrDate, all[1].Name)
	assert.Equal(t,
		"Erreur de date(Alice, 1850, 1851, http://wiki/Alice, http://wiki/Alice)",
		all[2].String())
}

func TestRunAllHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunAll(ctx, registry(t), &wiki.ScrapeResult{})
	assert.Error(t, err)
}
