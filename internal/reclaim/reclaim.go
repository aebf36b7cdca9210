// Package reclaim implements two safe-memory-reclamation schemes:
// per-handle epoch counters with a shared registry (Scheme A, the
// reference design) and a generic shared-epoch manager (Scheme B). Both
// let a handle defer releasing a physically unlinked list node until no
// concurrent handle can still be holding a pointer to it. Scheme A's
// Enter/Exit/Retire take no lock; Scheme B's Retire and TryReclaim take
// the shared manager's mutex.
//
// Neither scheme knows anything about internal/list's node or value
// types: retirement is just a closure, so this package stays generic
// over what it is reclaiming.
package reclaim

// Reclaimer is a single handle's participation in a reclamation scheme.
// Enter/Exit bracket one list operation (Insert, Lookup or Remove);
// Retire defers release until TryReclaim (or a future TryReclaim called
// by another handle sharing the same scheme instance) proves it safe to
// run. Close flushes any still-pending retirements and leaves the
// scheme's shared registry.
type Reclaimer interface {
	Enter()
	Exit()
	Retire(release func())
	TryReclaim()
	Close()
}
