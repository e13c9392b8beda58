package eval

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/smasher164/lamkernel/term"
)

// Env maps de Bruijn indices to bound terms. An Env is never modified after
// it is built: Insert and Extend return new environments, so closures can
// hold one without copying it again.
type Env struct {
	bindings map[int]term.Term
}

func NewEnv() Env {
	return Env{}
}

// Insert returns a copy of e with index i bound to t.
func (e Env) Insert(i int, t term.Term) Env {
	m := make(map[int]term.Term, len(e.bindings)+1)
	maps.Copy(m, e.bindings)
	m[i] = t
	return Env{m}
}

// Extend returns a copy of e with t bound to the fresh index 0. Every
// existing binding moves one index outward, as entering a binder does.
func (e Env) Extend(t term.Term) Env {
	m := make(map[int]term.Term, len(e.bindings)+1)
	for i, b := range e.bindings {
		m[i+1] = b
	}
	m[0] = t
	return Env{m}
}

func (e Env) Lookup(i int) (term.Term, bool) {
	t, ok := e.bindings[i]
	return t, ok
}

func (e Env) Empty() bool {
	return len(e.bindings) == 0
}

func (e Env) Len() int {
	return len(e.bindings)
}

// Indices returns the bound indices in ascending order.
func (e Env) Indices() []int {
	keys := lo.Keys(e.bindings)
	slices.Sort(keys)
	return keys
}

func (e Env) Equal(o Env) bool {
	return maps.EqualFunc(e.bindings, o.bindings, term.Equal)
}

func (e Env) String() string {
	return "{" + strings.Join(lo.Map(e.Indices(), func(i int, _ int) string {
		return strconv.Itoa(i) + ": " + e.bindings[i].String()
	}), ", ") + "}"
}
