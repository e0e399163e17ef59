package refactor

import (
	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/cut"
	"github.com/aigforge/aigforge/pkg/aig/mffc"
)

// Options tunes the refactoring pass.
type Options struct {
	NLeafMax   int  // largest reconvergence-driven cut to refactor; default 12
	FaninLimit int  // fanout bound a frontier node may have before it's too costly to absorb; default 20
	NMffcMin   int  // skip nodes whose MFFC is smaller than this; default 2
	UseZeros   bool // accept zero-gain refactors
}

func (o Options) withDefaults() Options {
	if o.NLeafMax <= 0 {
		o.NLeafMax = 12
	}
	if o.FaninLimit <= 0 {
		o.FaninLimit = 20
	}
	if o.NMffcMin <= 0 {
		o.NMffcMin = 2
	}
	return o
}

// Stats reports what a refactoring pass accomplished.
type Stats struct {
	NodesRefactored int
	NodesSaved      int
}

// Run applies one refactoring pass: for every AND node, grow a
// reconvergence-driven cut, compute the node's MFFC inside it, derive an
// irredundant SOP cover of the cut's function (and of its complement),
// factor each into an AND/OR tree, and graft whichever factored form is
// smaller in place of the MFFC when doing so shrinks the graph.
func Run(s *aig.Store, opts Options) Stats {
	opts = opts.withDefaults()
	var stats Stats

	bound := s.MaxID()
	for id := aig.ID(1); id <= bound; id++ {
		n := s.Node(id)
		if !n.IsAnd() {
			continue
		}

		leaves := cut.Reconvergent(s, id, opts.NLeafMax, opts.FaninLimit)
		k := len(leaves)
		if k <= 1 || k > opts.NLeafMax {
			continue
		}

		m := mffc.Label(s, id, leaves, false)
		if m.Size < opts.NMffcMin {
			continue
		}

		table := cut.Simulate(s, id, leaves)
		if table.IsConst0() || table.IsConst1() {
			lit := aig.LitConst0
			if table.IsConst1() {
				lit = aig.LitConst1
			}
			if gain := m.Size; gain > 0 || (gain == 0 && opts.UseZeros) {
				s.Replace(id, lit)
				stats.NodesRefactored++
				stats.NodesSaved += gain
			}
			continue
		}

		posTree := Factor(Isop(table, k), k)
		negTree := Factor(Isop(table.Not(), k), k)
		posCost := size(posTree)
		negCost := size(negTree)

		chosen, invert, cost := posTree, false, posCost
		if negCost < posCost {
			chosen, invert, cost = negTree, true, negCost
		}

		gain := m.Size - cost
		if gain <= 0 && !(gain == 0 && opts.UseZeros) {
			continue
		}

		leafLits := make([]aig.Lit, k)
		for i, leafID := range leaves {
			leafLits[i] = aig.NewLit(leafID, false)
		}
		lit := Build(s, chosen, leafLits)
		if invert {
			lit = lit.Not()
		}
		s.Replace(id, lit)
		stats.NodesRefactored++
		stats.NodesSaved += gain
	}
	return stats
}
