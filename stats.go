package tempusmap

// Stats is a point-in-time, best-effort snapshot of a Map's shape. Like
// Len, it is never linearizable with concurrent Insert/Remove calls on
// other handles, it exists for observability, not for building logic
// on top of.
type Stats struct {
	// Len is the table's advisory live-entry count.
	Len int64
	// Buckets is the fixed bucket count chosen at construction.
	Buckets int
}

// Stats returns a snapshot of the Map this handle belongs to.
func (h *Handle[K, V]) Stats() Stats {
	return Stats{
		Len:     h.core.table.Len(),
		Buckets: h.core.table.Buckets(),
	}
}
