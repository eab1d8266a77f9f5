package logic

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func socratesBase(t *testing.T) *KnowledgeBase {
	t.Helper()
	kb := NewKnowledgeBase()
	require.NoError(t, kb.AddFacts([]Predicate{
		Pred("human", Sym("socrates")),
		Pred("human", Sym("plato")),
	}))
	kb.AddRule(MustRule(
		Pred("mortal", Var("x")),
		Pred("human", Var("x")),
	))
	return kb
}

func TestChainDerives(t *testing.T) {
	kb := socratesBase(t)
	derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)

	want := []string{"mortal(socrates)", "mortal(plato)"}
	var got []string
	for _, f := range derived {
		got = append(got, f.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("derived mismatch (-want +got):\n%s", diff)
	}
}

// Existing facts are never returned, only the ones this call created.
func TestChainReturnsOnlyNewFacts(t *testing.T) {
	kb := socratesBase(t)
	_, err := kb.AddFact(Pred("mortal", Sym("socrates")))
	require.NoError(t, err)

	derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)
	require.Len(t, derived, 1)
	assert.True(t, derived[0].Equal(Pred("mortal", Sym("plato"))))
}

// A second run on a saturated base is a no-op.
func TestChainFixedPoint(t *testing.T) {
	kb := socratesBase(t)
	c := NewChainer(kb, DefaultChainerConfig(), nil)

	first, err := c.Chain()
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := c.Chain()
	require.NoError(t, err)
	assert.Empty(t, second)
}

// Chaining only adds facts; the input facts survive unchanged, in order.
func TestChainMonotonic(t *testing.T) {
	kb := socratesBase(t)
	before := kb.Facts()

	_, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)

	after := kb.Facts()
	require.GreaterOrEqual(t, len(after), len(before))
	for i, f := range before {
		assert.True(t, f.Equal(after[i]), "input fact %d changed", i)
	}
}

func TestChainDeterministic(t *testing.T) {
	run := func() []string {
		kb := NewKnowledgeBase()
		for i := 0; i < 10; i++ {
			_, err := kb.AddFact(Pred("n", Sym(fmt.Sprintf("p%d", i))))
			require.NoError(t, err)
		}
		kb.AddRule(MustRule(
			Pred("pair", Var("a"), Var("b")),
			Pred("n", Var("a")),
			Pred("n", Var("b")),
		))
		derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
		require.NoError(t, err)
		var out []string
		for _, f := range derived {
			out = append(out, f.String())
		}
		return out
	}

	first := run()
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, run()); diff != "" {
			t.Fatalf("runs diverged (-first +rerun):\n%s", diff)
		}
	}
}

func TestChainConclusionsAreGround(t *testing.T) {
	kb := socratesBase(t)
	derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)
	for _, f := range derived {
		assert.True(t, f.Ground(), "derived non-ground fact %s", f)
	}
}

// Multi-premise rules thread bindings across premises in declaration
// order.
func TestChainJoinsPremises(t *testing.T) {
	kb := NewKnowledgeBase()
	require.NoError(t, kb.AddFacts([]Predicate{
		Pred("parent", Sym("ann"), Sym("bob")),
		Pred("parent", Sym("bob"), Sym("cid")),
		Pred("parent", Sym("eve"), Sym("dan")),
	}))
	kb.AddRule(MustRule(
		Pred("grandparent", Var("x"), Var("z")),
		Pred("parent", Var("x"), Var("y")),
		Pred("parent", Var("y"), Var("z")),
	))

	derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)
	require.Len(t, derived, 1)
	assert.True(t, derived[0].Equal(Pred("grandparent", Sym("ann"), Sym("cid"))))
}

// Two rules reusing the same variable names must not capture each
// other's bindings.
func TestChainRulesWithSharedVariableNames(t *testing.T) {
	kb := NewKnowledgeBase()
	require.NoError(t, kb.AddFacts([]Predicate{
		Pred("a", Sym("1")),
		Pred("b", Sym("2")),
	}))
	kb.AddRules([]Rule{
		MustRule(Pred("fromA", Var("x")), Pred("a", Var("x"))),
		MustRule(Pred("fromB", Var("x")), Pred("b", Var("x"))),
	})

	derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)

	want := []string{"fromA(1)", "fromB(2)"}
	var got []string
	for _, f := range derived {
		got = append(got, f.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// Transitive closure saturates across passes, not just within one.
func TestChainMultiPassSaturation(t *testing.T) {
	kb := NewKnowledgeBase()
	require.NoError(t, kb.AddFacts([]Predicate{
		Pred("edge", Sym("a"), Sym("b")),
		Pred("edge", Sym("b"), Sym("c")),
		Pred("edge", Sym("c"), Sym("d")),
	}))
	kb.AddRules([]Rule{
		MustRule(
			Pred("path", Var("x"), Var("y")),
			Pred("edge", Var("x"), Var("y")),
		),
		MustRule(
			Pred("path", Var("x"), Var("z")),
			Pred("path", Var("x"), Var("y")),
			Pred("path", Var("y"), Var("z")),
		),
	})

	derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)

	// 3 base paths + a->c, b->d, a->d
	assert.Len(t, derived, 6)
	assert.True(t, kb.Contains(Pred("path", Sym("a"), Sym("d"))))
}

func TestChainDerivedLimit(t *testing.T) {
	kb := NewKnowledgeBase()
	for i := 0; i < 20; i++ {
		_, err := kb.AddFact(Pred("n", Sym(fmt.Sprintf("p%d", i))))
		require.NoError(t, err)
	}
	kb.AddRule(MustRule(
		Pred("pair", Var("a"), Var("b")),
		Pred("n", Var("a")),
		Pred("n", Var("b")),
	))

	_, err := NewChainer(kb, ChainerConfig{DerivedLimit: 10}, nil).Chain()
	assert.ErrorIs(t, err, ErrDerivedLimit)
}

// 100 unrelated facts and a rule that never fires: bounded time, no
// derivations.
func TestChainTerminationStress(t *testing.T) {
	kb := NewKnowledgeBase()
	for i := 0; i < 100; i++ {
		_, err := kb.AddFact(Pred("birth", Sym(fmt.Sprintf("person%d", i)), Sym("1900")))
		require.NoError(t, err)
	}
	kb.AddRule(MustRule(
		Pred("problem", Var("p")),
		Pred("birth", Var("p"), Var("d")),
		Pred("death", Var("p"), Var("d2")),
	))

	derived, err := NewChainer(kb, DefaultChainerConfig(), nil).Chain()
	require.NoError(t, err)
	assert.Empty(t, derived)
}
