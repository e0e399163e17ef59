package resub

import (
	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/cut"
	"github.com/aigforge/aigforge/pkg/aig/mffc"
)

// Options tunes resubstitution.
type Options struct {
	NCutsMax    int // reconvergence-driven cut leaf bound, clamped to [4,16]; default 8
	FanoutLimit int // fanout bound a frontier node may have before it's too costly to absorb; default 20
	NStepsMax   int // 1..3, gates which replacement complexity classes are tried; 0 or less selects the default 3, larger values are clamped to 3
	FanoutMax   int // skip nodes with more live fanouts than this; default 1000
}

func (o Options) withDefaults() Options {
	if o.NCutsMax <= 0 {
		o.NCutsMax = 8
	}
	if o.NCutsMax < 4 {
		o.NCutsMax = 4
	}
	if o.NCutsMax > 16 {
		o.NCutsMax = 16
	}
	if o.FanoutLimit <= 0 {
		o.FanoutLimit = 20
	}
	if o.NStepsMax <= 0 {
		o.NStepsMax = 3
	}
	if o.NStepsMax > 3 {
		o.NStepsMax = 3
	}
	if o.FanoutMax <= 0 {
		o.FanoutMax = 1000
	}
	return o
}

// Stats reports what a resubstitution pass accomplished.
type Stats struct {
	NodesResubstituted int
	NodesSaved         int
}

// Run applies one resubstitution pass over every AND node up to the
// store's pre-pass maximum id, in id order, skipping nodes whose live
// fanout count exceeds FanoutMax.
func Run(s *aig.Store, opts Options) Stats {
	opts = opts.withDefaults()
	var stats Stats

	bound := s.MaxID()
	for id := aig.ID(1); id <= bound; id++ {
		n := s.Node(id)
		if !n.IsAnd() {
			continue
		}
		if s.FanoutCount(id) > opts.FanoutMax {
			continue
		}

		leaves := cut.Reconvergent(s, id, opts.NCutsMax, opts.FanoutLimit)
		if len(leaves) < 2 {
			continue
		}

		m := mffc.Label(s, id, leaves, true)
		mffcSet := make(map[aig.ID]bool, len(m.Nodes))
		for _, nd := range m.Nodes {
			mffcSet[nd] = true
		}
		mffcSet[id] = true

		divisorIDs := collectDivisors(s, id, leaves, mffcSet)
		divisors := simulateDivisors(s, divisorIDs, leaves)
		rootTable := cut.Simulate(s, id, leaves)

		f, ok := search(rootTable, m.Size, divisors, opts.NStepsMax)
		if !ok || f.gain <= 0 {
			continue
		}

		lit := f.build(s)
		s.Replace(id, lit)
		stats.NodesResubstituted++
		stats.NodesSaved += f.gain
	}
	return stats
}
