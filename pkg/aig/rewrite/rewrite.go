// Package rewrite implements the DAG-aware rewriter: for every AND node it
// looks up a 4-feasible cut's NPN class in a precomputed subgraph library,
// evaluates the gain of grafting each candidate subgraph in place of the
// node's MFFC, and commits the best positive-gain rewrite.
package rewrite

import (
	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/cut"
	"github.com/aigforge/aigforge/pkg/aig/mffc"
	"github.com/aigforge/aigforge/pkg/aig/npn"
)

// Options tunes the rewriter.
type Options struct {
	NCutsMax int  // candidate 4-cuts to evaluate per node; default 8
	UseZeros bool // accept zero-gain rewrites, biasing toward structural variety
}

func (o Options) withDefaults() Options {
	if o.NCutsMax <= 0 {
		o.NCutsMax = 8
	}
	return o
}

// Stats reports what a rewriting pass accomplished.
type Stats struct {
	NodesRewritten int
	NodesSaved     int
}

// Run applies one DAG-aware rewriting pass over every AND node up to the
// store's pre-pass maximum id, in id order. Nodes created by a rewrite
// (beyond the pre-pass bound) are never themselves revisited in the same
// pass.
func Run(s *aig.Store, opts Options) Stats {
	opts = opts.withDefaults()
	var stats Stats

	bound := s.MaxID()
	for id := aig.ID(1); id <= bound; id++ {
		n := s.Node(id)
		if !n.IsAnd() {
			continue
		}

		// Cuts are recomputed over the whole live graph before every node
		// rather than maintained incrementally, trading per-pass
		// performance for a much simpler cache-invalidation story once a
		// rewrite has mutated upstream fanins.
		allCuts := cut.EnumerateAll(s, 4, opts.NCutsMax)[id]
		if len(allCuts) == 0 {
			continue
		}

		if best, gain, ok := bestRewrite(s, id, allCuts, opts); ok && (gain > 0 || (gain == 0 && opts.UseZeros)) {
			lit := npn.Build(s, best.sg, best.leaves)
			s.Replace(id, lit)
			stats.NodesRewritten++
			stats.NodesSaved += gain
		}
	}
	return stats
}

type candidate struct {
	sg     npn.Subgraph
	leaves [4]aig.Lit
}

func bestRewrite(s *aig.Store, id aig.ID, cuts []cut.Cut, opts Options) (candidate, int, bool) {
	var best candidate
	bestGain := -1 << 30
	found := false

	for _, c := range cuts {
		if len(c.Leaves) <= 1 {
			// Trivial cut: the node is a wire or a constant under this
			// leaf set. Replace directly with whichever it is.
			var lit aig.Lit
			if len(c.Leaves) == 0 {
				lit = aig.LitConst0
				if c.Table.IsConst1() {
					lit = aig.LitConst1
				}
			} else {
				lit = aig.NewLit(c.Leaves[0], c.Table.Bit(0))
			}
			m := mffc.Label(s, id, c.Leaves, false)
			return candidate{sg: npn.Subgraph{OutputLeaf: 0, OutputInvert: lit.IsCompl()}, leaves: [4]aig.Lit{lit.Regular().NotCond(false)}}, m.Size, true
		}
		if len(c.Leaves) > 4 {
			continue
		}

		class, perm, inInv, outInv, ok := npn.Lookup(c.Table.Pack16())
		if !ok {
			continue
		}

		var leaves [4]aig.Lit
		for i := 0; i < 4; i++ {
			// perm[i] names the actual bit position the class's canonical
			// variable i was matched against; positions beyond the cut's
			// real leaf count are padding dummies the class's subgraph
			// never references, so any placeholder leaf is safe there.
			v := c.Leaves[0]
			if perm[i] < len(c.Leaves) {
				v = c.Leaves[perm[i]]
			}
			leaves[i] = aig.NewLit(v, inInv[i])
		}

		m := mffc.Label(s, id, c.Leaves, false)

		for _, sg := range class.Subgraphs {
			newNodes := npn.CountNew(s, sg, leaves)
			gain := m.Size - newNodes
			if !opts.UseZeros {
				gain--
			}
			if gain > bestGain {
				bestGain = gain
				sgCopy := sg
				sgCopy.OutputInvert = sgCopy.OutputInvert != outInv
				best = candidate{sg: sgCopy, leaves: leaves}
				found = true
			}
		}
	}

	return best, bestGain, found
}
