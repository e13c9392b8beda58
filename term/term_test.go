package term

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		t    Term
		want string
	}{
		{V(0), "0"},
		{V(42), "42"},
		{L(V(0)), "λx.0"},
		{L(L(V(0))), "λx.λx.0"},
		{A(V(0), V(1)), "(0 1)"},
		{A(L(V(0)), L(L(V(1)))), "(λx.0 λx.λx.1)"},
		{L(A(V(0), A(V(1), V(2)))), "λx.(0 (1 2))"},
		{Apply(V(0), V(1), V(2)), "((0 1) 2)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.t.String())
	}
}

func TestVNegative(t *testing.T) {
	assert.Panics(t, func() { V(-1) })
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(L(V(0)), L(V(0))))
	assert.False(t, Equal(L(V(0)), L(V(1))))
	assert.False(t, Equal(V(0), L(V(0))))
	assert.False(t, Equal(A(V(0), V(1)), A(V(1), V(0))))
	assert.True(t, Equal(A(L(V(0)), V(3)), A(L(V(0)), V(3))))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(V(0), nil))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(L(A(V(0), V(7)))))
	assert.Error(t, Validate(L(Var(-2))))
	assert.Error(t, Validate(App{V(0), nil}))
	assert.Error(t, Validate(nil))
}

func TestRedexes(t *testing.T) {
	assert.True(t, IsRedex(A(L(V(0)), V(1))))
	assert.False(t, IsRedex(A(V(0), V(1))))
	assert.False(t, HasRedex(L(A(V(0), V(1)))))
	assert.True(t, HasRedex(L(A(V(0), A(L(V(0)), V(1))))))
}

func TestFreeIndices(t *testing.T) {
	assert.Empty(t, FreeIndices(L(L(A(V(0), V(1))))))
	assert.Equal(t, []int{0, 3}, FreeIndices(L(A(V(1), A(V(0), V(4))))))
	assert.Equal(t, []int{2}, FreeIndices(A(V(2), V(2))))
	assert.True(t, Closed(L(V(0))))
	assert.False(t, Closed(L(V(1))))
	assert.Equal(t, 6, Size(A(L(V(0)), A(V(1), V(2)))))
}

func TestShift(t *testing.T) {
	tests := []struct {
		name           string
		t              Term
		cutoff, amount int
		want           Term
	}{
		{"free var", V(0), 0, 1, V(1)},
		{"below cutoff", V(0), 1, 5, V(0)},
		{"bound var", L(V(0)), 0, 1, L(V(0))},
		{"free under binder", L(V(1)), 0, 2, L(V(3))},
		{"down", A(V(2), L(V(2))), 0, -1, A(V(1), L(V(1)))},
		{"app keeps cutoff", A(V(0), V(1)), 1, 1, A(V(0), V(2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shift(tt.t, tt.cutoff, tt.amount)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Shift(%v, %d, %d) mismatch (-want +got):\n%s", tt.t, tt.cutoff, tt.amount, diff)
			}
		})
	}
}

func TestSubst(t *testing.T) {
	tests := []struct {
		name string
		body Term
		j    int
		s    Term
		want Term
	}{
		{"hit", V(0), 0, V(5), V(5)},
		{"miss", V(1), 0, V(5), V(1)},
		{"under binder", L(V(1)), 0, V(5), L(V(6))},
		{"binder shadows", L(V(0)), 0, V(5), L(V(0))},
		{"both sides", A(V(0), L(A(V(1), V(0)))), 0, L(V(1)), A(L(V(1)), L(A(L(V(2)), V(0))))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subst(tt.body, tt.j, tt.s)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Subst mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubstTop(t *testing.T) {
	// (λ.λ.1) 0 -> λ.1: the free 0 must not be captured by the inner binder.
	assert.Equal(t, L(V(1)), SubstTop(L(V(1)), V(0)))
	// (λ.0) (1 2) -> (1 2)
	assert.Equal(t, A(V(1), V(2)), SubstTop(V(0), A(V(1), V(2))))
	// (λ.1) x -> 0: the free 1 in the body drops to 0 once the binder is gone.
	assert.Equal(t, V(0), SubstTop(V(1), L(V(0))))
}

func TestSubstTopLargeIndex(t *testing.T) {
	big := V(math.MaxInt)
	// (λ.0) max -> max
	got := SubstTop(V(0), big)
	assert.Equal(t, big, got)
	require.NoError(t, Validate(got))
	// (λ.max) 0 -> max-1
	assert.Equal(t, V(math.MaxInt-1), SubstTop(big, V(0)))
	// Under a binder the argument cannot move past math.MaxInt.
	got = SubstTop(L(V(1)), big)
	assert.Equal(t, L(big), got)
	require.NoError(t, Validate(got))

	assert.Equal(t, big, Shift(big, 0, 1))
	assert.Equal(t, L(A(V(0), big)), Shift(L(A(V(0), V(math.MaxInt-2))), 0, 5))
}

// gen builds a random term of at most depth levels. Variables range over
// the scope binders plus one free index.
func gen(r *rand.Rand, depth, scope int) Term {
	if depth == 0 {
		return V(r.Intn(scope + 1))
	}
	switch r.Intn(3) {
	case 0:
		return V(r.Intn(scope + 1))
	case 1:
		return L(gen(r, depth-1, scope+1))
	}
	return A(gen(r, depth-1, scope), gen(r, depth-1, scope))
}

func TestShiftSubstLaws(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		tm := gen(r, 6, 3)
		s := gen(r, 4, 3)
		c := r.Intn(3)
		d := r.Intn(4)

		require.True(t, Equal(tm, Shift(Shift(tm, c, d), c, -d)), "shift round trip on %v", tm)
		require.True(t, Equal(tm, Shift(tm, c, 0)))
		require.True(t, Equal(Shift(Shift(tm, c, d), c, 1), Shift(tm, c, d+1)), "shift composition on %v", tm)

		// Substituting into a term that cannot mention index 0 is the identity.
		require.True(t, Equal(tm, SubstTop(Shift(tm, 0, 1), s)), "substTop over shifted %v", tm)
		require.True(t, Equal(s, SubstTop(V(0), s)))

		require.True(t, Equal(tm, Subst(tm, 100, s)), "subst of an absent index on %v", tm)

		if Closed(L(tm)) && Closed(s) {
			require.True(t, Closed(SubstTop(tm, s)), "closed contraction of %v with %v", tm, s)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		tm := gen(r, 7, 4)
		got, err := Parse(tm.String())
		require.NoError(t, err, tm.String())
		if diff := cmp.Diff(tm, got); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tm.String(), diff)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("  ( λx . 0   12 )  ")
	require.NoError(t, err)
	assert.Equal(t, A(L(V(0)), V(12)), got)
	assert.Equal(t, L(L(A(V(1), V(0)))), MustParse("λx.λx.(1 0)"))
	assert.Panics(t, func() { MustParse("(0 1") })

	for _, bad := range []string{"", "(0 1", "(01)", "λ.0", "λx", "0 1", "x", "(0 1))"} {
		_, err := Parse(bad)
		var se *SyntaxError
		assert.True(t, errors.As(err, &se), "Parse(%q) = %v", bad, err)
	}
}
