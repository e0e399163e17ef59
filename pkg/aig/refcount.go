package aig

// AddRefDelta adjusts id's transient reference count by delta and returns
// the count after the adjustment. It exists solely for algorithms that
// deliberately desync the refcount from the live fanout-edge count for the
// duration of a single-threaded computation, such as the MFFC deref/ref
// discipline: no other store operation should call this.
func (s *Store) AddRefDelta(id ID, delta int32) int32 {
	s.nodes[id].refs += delta
	return s.nodes[id].refs
}
