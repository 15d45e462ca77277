package list

import (
	"git.lukeshu.com/go/typedsync"
)

// region Allocator ////////////////////////////////////////////////////////////////////////////////////////////////////

// Allocator provides the Elements of a ValueList. ValueLists only exchange Elements through splices if they
// were configured with the same Allocator, so implementations that manage memory (like the PooledAllocator)
// should be shared by pointer.
type Allocator[V any] interface {
	// AllocateElement returns a zeroed Element or nil if no Element can be provided, in which case the
	// triggering operation becomes a no-op.
	AllocateElement() *Element[V]

	// ReleaseElement returns an Element that was detached from its ValueList. The Element is not used again
	// by the caller.
	ReleaseElement(element *Element[V])
}

// gcAllocator is the default Allocator which leaves the Elements to the garbage collector. It is stateless,
// so the zero values that independently created ValueLists hold compare as equal and their Elements remain
// exchangeable.
type gcAllocator[V any] struct{}

func (g gcAllocator[V]) AllocateElement() *Element[V] {
	return new(Element[V])
}

func (g gcAllocator[V]) ReleaseElement(element *Element[V]) {
	// the garbage collector reclaims the element once the caller drops it
}

// code contract - make sure the type implements the interface.
var _ Allocator[int] = gcAllocator[int]{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PooledAllocator //////////////////////////////////////////////////////////////////////////////////////////////

// PooledAllocator is an Allocator that recycles released Elements through a typedsync.Pool. A single
// PooledAllocator can back any number of ValueLists, which also makes their Elements exchangeable through
// splices.
type PooledAllocator[V any] struct {
	pool typedsync.Pool[*Element[V]]
}

// NewPooledAllocator creates a new PooledAllocator for Elements holding values of type V.
func NewPooledAllocator[V any]() *PooledAllocator[V] {
	return &PooledAllocator[V]{}
}

// AllocateElement returns a recycled Element or a fresh one if the pool is empty.
func (p *PooledAllocator[V]) AllocateElement() *Element[V] {
	element, ok := p.pool.Get()
	if !ok {
		element = new(Element[V])
	}

	return element
}

// ReleaseElement zeroes the given Element and hands it to the pool for reuse.
func (p *PooledAllocator[V]) ReleaseElement(element *Element[V]) {
	*element = Element[V]{} // no memory leaks
	p.pool.Put(element)
}

// code contract - make sure the type implements the interface.
var _ Allocator[int] = &PooledAllocator[int]{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
