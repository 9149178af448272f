// Package pool provides a minimal reusable-object pool abstraction, backed
// by sync.Pool since that already satisfies the interface's Get/Put shape.
package pool

import "sync"

// Pool hands out and reclaims reusable values of a single type.
type Pool interface {
	// Get returns a value from the pool, constructing a new one if empty.
	Get() interface{}

	// Put returns a value to the pool for later reuse.
	Put(interface{})
}

// NewDynamic returns a Pool backed by sync.Pool. Capacity grows and shrinks
// with demand and under GC pressure; values not currently checked out may be
// collected at any time.
func NewDynamic(newFn func() interface{}) Pool {
	return &sync.Pool{New: newFn}
}
