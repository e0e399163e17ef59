package balance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/balance"
)

func TestRunBalancesLeftLinearChain(t *testing.T) {
	s := aig.New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()
	d := s.CreatePI()

	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)
	abcd := s.AndLit(abc, d)
	s.CreatePO(abcd)

	balance.Run(s, balance.Options{})

	assert.Empty(t, s.Verify())
	driver := s.Node(s.POs()[0]).Fanin0()
	assert.Equal(t, uint32(2), s.Node(driver.Var()).Level(), "a balanced 4-input AND tree has depth 2")
	assert.Equal(t, 3, s.NumAnds())
}

func TestRunCollapsesIdempotentAnd(t *testing.T) {
	s := aig.New(4)
	a := s.CreatePI()
	aa := s.AndLit(a, a)
	s.CreatePO(aa)

	balance.Run(s, balance.Options{})
	s.Cleanup()

	assert.Empty(t, s.Verify())
	assert.Equal(t, a, s.Node(s.POs()[0]).Fanin0())
	assert.Equal(t, 0, s.NumAnds())
}

func TestRunKeepsFoldedConstantZeroDriver(t *testing.T) {
	// AND(AND(a,b), NOT(AND(a,b))) folds to constant 0 at construction time
	// already; balancing such a driver must leave it at constant 0 rather
	// than erroring.
	s := aig.New(4)
	a := s.CreatePI()
	b := s.CreatePI()
	ab := s.AndLit(a, b)
	s.CreatePO(s.AndLit(ab, ab.Not()))

	balance.Run(s, balance.Options{})
	s.Cleanup()

	assert.Empty(t, s.Verify())
	assert.Equal(t, aig.LitConst0, s.Node(s.POs()[0]).Fanin0())
}
