package pass_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/balance"
	"github.com/aigforge/aigforge/pkg/aig/pass"
	"github.com/aigforge/aigforge/pkg/aig/refactor"
	"github.com/aigforge/aigforge/pkg/aig/rewrite"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func evalLit(s *aig.Store, l aig.Lit, inputs map[aig.ID]bool) bool {
	var eval func(id aig.ID) bool
	eval = func(id aig.ID) bool {
		if v, ok := inputs[id]; ok {
			return v
		}
		n := s.Node(id)
		if n.Kind() == aig.KindConst1 {
			return true
		}
		a, b := n.Fanin0(), n.Fanin1()
		return (eval(a.Var()) != a.IsCompl()) && (eval(b.Var()) != b.IsCompl())
	}
	return eval(l.Var()) != l.IsCompl()
}

// TestS1 covers spec scenario S1: a PO driven by AND(a,a) simplifies
// under balance to a direct PI driver with zero ANDs. AndLit already folds
// AND(a,a) to a at construction (the store never holds a genuinely
// non-canonical node built through the public constructor), so this
// exercises balance's idempotent-AND handling on the already-simplified
// input and confirms the driver leaves it there.
func TestS1(t *testing.T) {
	s := aig.New(4)
	a := s.CreatePI()
	s.CreatePO(s.AndLit(a, a))

	d := pass.NewDriver(s, silentLogger())
	_, err := d.Balance(balance.Options{})
	require.NoError(t, err)

	out := d.Store()
	assert.Empty(t, out.Verify())
	assert.Equal(t, a, out.Node(out.POs()[0]).Fanin0())
	assert.Equal(t, 0, out.NumAnds())
}

// TestS2 covers scenario S2: a PO driven by the literal (file-level) form
// of AND(a, NOT(a)), placed with AndRaw exactly as the AIGER reader's
// default (non -c) path would, since AndLit itself would fold this at
// construction and never exercise rewrite's own constant-detection at all.
// After rewrite, the PO driver must be constant-0 with zero ANDs.
func TestS2(t *testing.T) {
	s := aig.New(4)
	a := s.CreatePI()
	_ = s.CreatePI() // b, unused by the driver but present per the scenario's AIG shape
	andID := s.ReservePlaceholder()
	s.AndRaw(andID, a, a.Not())
	s.CreatePO(aig.NewLit(andID, false))

	d := pass.NewDriver(s, silentLogger())
	_, err := d.Rewrite(rewrite.Options{})
	require.NoError(t, err)

	out := d.Store()
	assert.Empty(t, out.Verify())
	assert.Equal(t, aig.LitConst0, out.Node(out.POs()[0]).Fanin0())
	assert.Equal(t, 0, out.NumAnds())
}

// TestS3 covers scenario S3: a left-linear 4-input AND chain balances to
// depth 2 with 3 ANDs.
func TestS3(t *testing.T) {
	s := aig.New(8)
	a, b, c, e := s.CreatePI(), s.CreatePI(), s.CreatePI(), s.CreatePI()
	chain := s.AndLit(s.AndLit(s.AndLit(a, b), c), e)
	s.CreatePO(chain)

	d := pass.NewDriver(s, silentLogger())
	_, err := d.Balance(balance.Options{})
	require.NoError(t, err)

	out := d.Store()
	assert.Empty(t, out.Verify())
	driver := out.Node(out.POs()[0]).Fanin0()
	assert.Equal(t, uint32(2), out.Node(driver.Var()).Level())
	assert.Equal(t, 3, out.NumAnds())
}

// TestS4 covers scenario S4: a 4-input XOR tree built the naive 9-AND way
// survives rewrite+drw (rewrite run twice, standing in for the "drw"
// balance-then-rewrite composite) with no more ANDs and no deeper level,
// and stays functionally identical on all 16 input patterns.
func TestS4(t *testing.T) {
	s := aig.New(16)
	xor2 := func(x, y aig.Lit) aig.Lit {
		return s.AndLit(s.AndLit(x, y.Not()).Not(), s.AndLit(x.Not(), y).Not()).Not()
	}
	a, b, c, e := s.CreatePI(), s.CreatePI(), s.CreatePI(), s.CreatePI()
	tree := xor2(xor2(xor2(a, b), c), e)
	s.CreatePO(tree)

	before := s.NumAnds()
	beforeLevel := s.Node(tree.Var()).Level()
	require.LessOrEqual(t, before, 9)

	d := pass.NewDriver(s, silentLogger())
	_, err := d.Rewrite(rewrite.Options{})
	require.NoError(t, err)
	_, err = d.Rewrite(rewrite.Options{})
	require.NoError(t, err)

	out := d.Store()
	assert.Empty(t, out.Verify())
	assert.LessOrEqual(t, out.NumAnds(), before)
	driver := out.Node(out.POs()[0]).Fanin0()
	assert.LessOrEqual(t, out.Node(driver.Var()).Level(), beforeLevel)

	for bits := 0; bits < 16; bits++ {
		inputs := map[aig.ID]bool{
			a.Var(): bits&1 != 0,
			b.Var(): bits&2 != 0,
			c.Var(): bits&4 != 0,
			e.Var(): bits&8 != 0,
		}
		want := inputs[a.Var()] != inputs[b.Var()] != inputs[c.Var()] != inputs[e.Var()]
		got := evalLit(out, driver, inputs)
		assert.Equal(t, want, got, "bits=%04b", bits)
	}
}

// TestS5 covers scenario S5: a don't-care-reset latch gets its reset fixed
// to 0, with the complementation propagated into its next-state cone and
// every consuming site, so the zero-initialised sequence matches the
// original don't-care sequence: simulating one transition from the fresh
// reset value reproduces what the pre-Zero cone computed from the
// corresponding (complemented) state.
func TestS5(t *testing.T) {
	s := aig.New(4)
	x := s.CreatePI()
	out, idx := s.CreateLatch()
	s.SetLatchNext(idx, x)
	s.SetLatchReset(idx, aig.ResetDontCare)
	s.CreatePO(out)

	d := pass.NewDriver(s, silentLogger())
	_, err := d.Zero()
	require.NoError(t, err)

	res := d.Store()
	require.Len(t, res.Latches(), 1)
	l := res.Latches()[0]
	assert.Equal(t, aig.ResetZero, l.Reset)

	// Every old consumer of the latch's output now reads NOT(new out):
	// state 0 in the new latch stands for the original don't-care-initial
	// state, so the PO (which read the bare present-state value before)
	// must now read its complement.
	newOutLit := aig.NewLit(l.Out, false)
	poDriver := res.Node(res.POs()[0]).Fanin0()
	assert.Equal(t, newOutLit.Not(), poDriver)

	// The old next-state driver was x itself; after pushing the
	// substitution through and complementing the whole driver once more,
	// the new driver must be NOT(x).
	xVar := res.PIs()[0]
	for _, v := range []bool{false, true} {
		want := !v
		got := evalLit(res, res.Node(l.In).Fanin0(), map[aig.ID]bool{xVar: v})
		assert.Equal(t, want, got)
	}
}

// TestS6 covers scenario S6: refactoring a pure 6-input AND cone (MFFC
// size 5) grafts a balanced 6-input AND tree of depth 3 with 5 new ANDs,
// for a reported gain of 0 (>= 0 per the scenario). UseZeros is set
// explicitly since a zero-gain refactor is only accepted under it.
func TestS6(t *testing.T) {
	s := aig.New(8)
	leaves := make([]aig.Lit, 6)
	for i := range leaves {
		leaves[i] = s.CreatePI()
	}
	n := leaves[0]
	for _, l := range leaves[1:] {
		n = s.AndLit(n, l)
	}
	s.CreatePO(n)
	require.Equal(t, 5, s.NumAnds())

	d := pass.NewDriver(s, silentLogger())
	result, err := d.Refactor(refactor.Options{NLeafMax: 6, FaninLimit: 10, UseZeros: true})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Gain, 0)

	out := d.Store()
	assert.Empty(t, out.Verify())
	assert.Equal(t, 5, out.NumAnds())
	driver := out.Node(out.POs()[0]).Fanin0()
	assert.Equal(t, uint32(3), out.Node(driver.Var()).Level())

	for bits := 0; bits < 64; bits++ {
		inputs := make(map[aig.ID]bool, 6)
		want := true
		for i, l := range leaves {
			v := bits&(1<<uint(i)) != 0
			inputs[l.Var()] = v
			want = want && v
		}
		assert.Equal(t, want, evalLit(out, driver, inputs), "bits=%06b", bits)
	}
}
