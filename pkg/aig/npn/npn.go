// Package npn implements the DAG-aware rewriter's subgraph library: a
// lookup from a 4-input cut's truth table to its NPN-equivalence class and
// a ranked set of small AIG subgraphs realising that class.
//
// A full 4-variable NPN classification has 222 classes. This library ships
// a curated subset — the classes with the smallest known AIG
// implementations that a synthesis pass actually exercises in practice
// (constants, buffers, the symmetric functions, XOR/XNOR, MUX, and the
// common 2- and 3-input gates embedded in 4 variables) — sufficient to
// drive the full lookup/permute/phase/subgraph-build pipeline end to end;
// see DESIGN.md for the scope decision.
package npn

import "github.com/aigforge/aigforge/pkg/aig"

// Gate is one AND node of a candidate subgraph. Its two operands are
// earlier subgraph nodes or leaves, addressed by signed indices (negative:
// -1-i is leaf i of the cut's permuted, phase-adjusted leaf literals;
// non-negative: node index within the subgraph, 0-based, built in order).
type Gate struct {
	A, B     int  // operand refs: >=0 is a prior subgraph node, <0 is leaf -1-ref
	AInvert  bool
	BInvert  bool
}

// Subgraph is one candidate AIG implementation of an NPN class. Output is
// the subgraph-local node index of the function's output; it is unused by
// a subgraph with no Gates (a leaf/constant passthrough, see
// OutputLeaf/OutputConst).
type Subgraph struct {
	Gates       []Gate
	Output      int
	OutputLeaf  int  // with no Gates: output is leaf OutputLeaf directly
	OutputConst bool // true: output is a constant, value given by OutputConstVal
	OutputConstVal bool
	OutputInvert   bool // output literal carries this complement on top of Output/OutputLeaf
}

// Class is one NPN-equivalence class: a canonical truth table plus its
// ranked candidate subgraphs (index 0 = cheapest/first choice).
type Class struct {
	ID         int
	Canonical  uint16
	Subgraphs  []Subgraph
}

// lookupEntry is one (truthtable variant -> canonical class + transform) row of
// the reverse lookup built at init time.
type lookupEntry struct {
	classIdx int
	perm     [4]int
	phase    uint8 // bit i: input i is inverted; bit 4: output is inverted
}

var classes []Class
var lookup map[uint16]lookupEntry

func init() {
	classes = buildClasses()
	lookup = make(map[uint16]lookupEntry, 16*24*len(classes))
	for ci, c := range classes {
		enumerateVariants(c.Canonical, func(tt uint16, perm [4]int, phase uint8) {
			if _, exists := lookup[tt]; !exists {
				lookup[tt] = lookupEntry{classIdx: ci, perm: perm, phase: phase}
			}
		})
	}
}

// Lookup resolves a 4-input cut's truth table (low 16 bits significant) to
// its class and the permutation/phase needed to map the class's canonical
// subgraphs onto the cut's actual leaf order. ok is false if the function
// is outside the curated subset.
func Lookup(truth uint16) (class *Class, perm [4]int, inputInvert [4]bool, outputInvert bool, ok bool) {
	e, found := lookup[truth]
	if !found {
		return nil, perm, inputInvert, false, false
	}
	for i := 0; i < 4; i++ {
		inputInvert[i] = e.phase&(1<<uint(i)) != 0
	}
	outputInvert = e.phase&(1<<4) != 0
	return &classes[e.classIdx], e.perm, inputInvert, outputInvert, true
}

// Build constructs one subgraph in the given store over the supplied
// (already permuted and phase-adjusted) leaf literals, reusing whatever
// nodes the store's structural hash already provides, and returns the
// resulting literal.
func Build(s *aig.Store, sg Subgraph, leaves [4]aig.Lit) aig.Lit {
	var out aig.Lit
	switch {
	case sg.OutputConst:
		out = aig.LitConst0
		if sg.OutputConstVal {
			out = aig.LitConst1
		}
	case len(sg.Gates) == 0:
		out = leaves[sg.OutputLeaf]
	default:
		nodeLit := make([]aig.Lit, len(sg.Gates))
		ref := func(idx int) aig.Lit {
			if idx < 0 {
				return leaves[-1-idx]
			}
			return nodeLit[idx]
		}
		for i, g := range sg.Gates {
			a := ref(g.A).NotCond(g.AInvert)
			b := ref(g.B).NotCond(g.BInvert)
			nodeLit[i] = s.AndLit(a, b)
		}
		out = nodeLit[sg.Output]
	}
	return out.NotCond(sg.OutputInvert)
}

// CountNew reports how many of a subgraph's internal AND gates would
// require a fresh node if built now, without mutating the store. Only the
// subgraph's leaf-level gates (both operands already-known leaf literals)
// are checked against the structural hash; a gate any of whose operands is
// itself a not-yet-built internal node is conservatively counted as new,
// since its exact literal cannot be known without actually building its
// dependency first.
func CountNew(s *aig.Store, sg Subgraph, leaves [4]aig.Lit) int {
	if sg.OutputConst || len(sg.Gates) == 0 {
		return 0
	}
	new := 0
	for _, g := range sg.Gates {
		if g.A < 0 && g.B < 0 {
			a := leaves[-1-g.A].NotCond(g.AInvert)
			b := leaves[-1-g.B].NotCond(g.BInvert)
			if !s.ProbeAnd(a, b) {
				new++
			}
			continue
		}
		new++
	}
	return new
}
