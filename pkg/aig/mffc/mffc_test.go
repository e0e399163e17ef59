package mffc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/mffc"
)

func TestLabelSimpleCone(t *testing.T) {
	s := aig.New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()

	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)
	s.CreatePO(abc)

	res := mffc.Label(s, abc.Var(), []aig.ID{a.Var(), b.Var(), c.Var()}, true)
	assert.Equal(t, 2, res.Size, "both ANDs are exclusively owned by abc")
	assert.Empty(t, s.Verify())
}

func TestLabelSharedFaninExcluded(t *testing.T) {
	s := aig.New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()

	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)
	s.CreatePO(ab) // ab now has external fanout, so it must not be in abc's MFFC
	s.CreatePO(abc)

	res := mffc.Label(s, abc.Var(), []aig.ID{a.Var(), b.Var(), c.Var()}, true)
	assert.Equal(t, 1, res.Size, "ab is shared, so only abc itself is in its own MFFC")
}

func TestLabelRestoresRefcounts(t *testing.T) {
	s := aig.New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()
	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)
	s.CreatePO(abc)

	before := s.Node(ab.Var()).Refs()
	mffc.Label(s, abc.Var(), []aig.ID{a.Var(), b.Var(), c.Var()}, false)
	after := s.Node(ab.Var()).Refs()
	assert.Equal(t, before, after)
}
