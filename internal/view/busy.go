// Package view holds the per-screen state controllers. Controllers call
// the API services, track a busy flag per in-flight mutation, and reconcile
// their in-memory lists after each write. They carry no locks: all access
// happens on the single UI goroutine.
package view

// Op is the kind of operation a busy flag belongs to.
type Op int

const (
	OpFetch Op = iota
	OpAdd
	OpEdit
	OpDelete
)

// busyKey identifies one in-flight mutation by operation kind and target
// entity. Typed keys instead of "edit-<id>" strings rule out collisions
// between ids and key prefixes.
type busyKey struct {
	op Op
	id string
}

type busySet map[busyKey]bool

func (b busySet) set(op Op, id string)   { b[busyKey{op, id}] = true }
func (b busySet) clear(op Op, id string) { delete(b, busyKey{op, id}) }
func (b busySet) has(op Op, id string) bool {
	return b[busyKey{op, id}]
}

// ListState tracks the lifecycle of a list screen.
type ListState int

const (
	StateIdle ListState = iota
	StateLoading
	StateReady
)
