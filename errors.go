package tempusmap

import "github.com/Krishna8167/tempusmap/internal/alloc"

// AllocError reports that the Go runtime could not satisfy the allocation
// a new node or value cell requires. Insert returns it wrapped with a stack
// trace, so retrieve it with errors.As rather than a type assertion. It is
// the only error this package ever reports: a lost CAS race is retried
// internally, never surfaced as an error.
type AllocError = alloc.Error
