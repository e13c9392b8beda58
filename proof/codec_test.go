package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasher164/lamkernel/eval"
	"github.com/smasher164/lamkernel/term"
)

func TestCodecRoundTrip(t *testing.T) {
	k := term.L(term.L(term.V(1)))
	partial := term.A(k, term.V(3))
	alpha, err := ProveAlphaEquivalence(k, k)
	require.NoError(t, err)

	p := Compose("K applied once",
		alpha,
		ProveBetaReduction(partial),
		ProveEvaluation(partial),
		ProveNormalization(partial),
		ProveConsistency(),
		Compose("empty"),
	)
	b, err := Marshal(p)
	require.NoError(t, err)

	got, err := Unmarshal(b)
	require.NoError(t, err)
	c, ok := got.(Composite)
	require.True(t, ok)
	assert.Equal(t, "K applied once", c.Conclusion)
	require.Len(t, c.Proofs, 6)

	ev := c.Proofs[2].(Evaluation)
	cl, ok := ev.Result.(eval.Closure)
	require.True(t, ok, "got %v", ev.Result)
	assert.Equal(t, term.V(1), cl.Body)
	bound, _ := cl.Env.Lookup(0)
	assert.Equal(t, term.V(3), bound)

	assert.True(t, Verify(got, partial))
}

func TestUnmarshalProven(t *testing.T) {
	doc := `
expr: (λx.0 (1 2))
proof:
  kind: normalization
  expr: (λx.0 (1 2))
  result: (1 2)
`
	pe, err := UnmarshalProven([]byte(doc))
	require.NoError(t, err)
	assert.True(t, pe.Verify())

	b, err := MarshalProven(pe)
	require.NoError(t, err)
	again, err := UnmarshalProven(b)
	require.NoError(t, err)
	assert.Equal(t, pe, again)
}

func TestUnmarshalErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown kind":    "kind: induction\n",
		"missing field":   "kind: beta_reduction\noriginal: \"0\"\n",
		"bad term":        "kind: normalization\nexpr: (0\nresult: \"0\"\n",
		"no outcome":      "kind: evaluation\nexpr: \"0\"\n",
		"double outcome":  "kind: evaluation\nexpr: \"0\"\noutcome:\n  value: \"0\"\n  closure: \"0\"\n",
		"bad env index":   "kind: evaluation\nexpr: \"0\"\noutcome:\n  closure: \"0\"\n  env:\n    x: \"0\"\n",
		"nested bad kind": "kind: composite\nproofs:\n  - kind: nope\n",
		"not yaml":        "kind: [",
	} {
		_, err := Unmarshal([]byte(doc))
		assert.Error(t, err, name)
	}

	_, err := Marshal(Normalization{Expr: term.V(0)})
	assert.Error(t, err)
	_, err = MarshalProven(ProvenExpr{Proof: ProveConsistency()})
	assert.Error(t, err)
}
