// Package alloc turns the one failure mode internal/list and
// internal/bucket cannot themselves report, the runtime's own
// out-of-memory panic during a node or value-cell allocation, into a
// normal Go error. Every other failure in this module is protocol, not
// error: a lost CAS race is retried, never reported.
package alloc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Error reports that a mutating operation could not complete because the
// Go runtime could not satisfy an allocation.
type Error struct {
	Op    string
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tempusmap: %s: out of memory", e.Op)
}

func (e *Error) Unwrap() error { return e.cause }

// Safe runs fn, recovering only a runtime out-of-memory panic and
// surfacing it as an *Error wrapped (via github.com/pkg/errors) with a
// stack trace captured at the allocation site. Any other panic, a
// programmer error, not a resource failure, propagates unchanged: this
// package's job is to make allocation failure reportable, not to hide
// bugs.
func Safe(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if !isOOM(r) {
				panic(r)
			}
			err = errors.WithStack(&Error{Op: op, cause: fmt.Errorf("%v", r)})
		}
	}()
	return fn()
}

func isOOM(r any) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	return strings.Contains(err.Error(), "out of memory")
}
