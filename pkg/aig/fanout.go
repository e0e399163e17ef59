package aig

// FanoutIndex is an on-demand fanout view: an auxiliary table indexed by
// node id, built on demand by a pass that needs fanout iteration and torn
// down at pass exit. It is a read-only snapshot over the store's internal
// adjacency at the moment it was built; mutating the store (Replace,
// Cleanup, AndLit collapsing into an existing node) invalidates it — no
// pass may hold a FanoutIndex across a structural mutation.
type FanoutIndex struct {
	fanout map[ID][]ID
}

// BuildFanoutIndex constructs a FanoutIndex over the store's current shape.
func (s *Store) BuildFanoutIndex() *FanoutIndex {
	s.fanoutBuilt = true
	fi := &FanoutIndex{fanout: make(map[ID][]ID, len(s.nodes))}
	for target, refs := range s.fanoutOf {
		if len(refs) == 0 {
			continue
		}
		seen := make(map[ID]bool, len(refs))
		list := make([]ID, 0, len(refs))
		for _, r := range refs {
			if !seen[r.Owner] {
				seen[r.Owner] = true
				list = append(list, r.Owner)
			}
		}
		fi.fanout[target] = list
	}
	return fi
}

// TeardownFanoutIndex releases the store-level "fanout index built" flag.
// The FanoutIndex value itself is simply dropped by the caller; this only
// exists so code can assert, in tests, that a pass observed the
// build/teardown discipline.
func (s *Store) TeardownFanoutIndex() {
	s.fanoutBuilt = false
}

// FanoutBuilt reports whether a FanoutIndex is believed to be live.
func (s *Store) FanoutBuilt() bool { return s.fanoutBuilt }

// Of returns the nodes that have id as a fanin, i.e. fanout(id).
func (fi *FanoutIndex) Of(id ID) []ID { return fi.fanout[id] }
