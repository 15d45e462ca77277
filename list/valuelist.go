package list

import (
	"github.com/iotaledger/hive.go/stringify"
)

// region Element //////////////////////////////////////////////////////////////////////////////////////////////////////

// Element is the unit of storage of a ValueList. It pairs a stored value with the Node that threads it and
// is provided by the ValueList's Allocator, so callers only ever receive Elements, never create them.
type Element[V any] struct {
	node  Node[*Element[V]]
	value V
}

// Value returns the stored value. It stays readable after the Element was detached from its ValueList.
func (e *Element[V]) Value() V {
	return e.value
}

// SetValue replaces the stored value in-place without touching the Element's position.
func (e *Element[V]) SetValue(value V) {
	e.value = value
}

// Next returns the Element holding the following position or nil if this Element holds the last position of
// its ValueList. Calling it on a detached Element panics with ErrPoisonedNode.
func (e *Element[V]) Next() *Element[V] {
	if next := e.node.Next(); next != nil {
		return next.Item()
	}

	return nil
}

// Prev returns the Element holding the preceding position or nil if this Element holds the first position
// of its ValueList. Calling it on a detached Element panics with ErrPoisonedNode.
func (e *Element[V]) Prev() *Element[V] {
	if prev := e.node.Prev(); prev != nil {
		return prev.Item()
	}

	return nil
}

// elementNode maps an Element to its embedded Node, tolerating nil for the optional parameters of the
// positional operations.
func elementNode[V any](element *Element[V]) *Node[*Element[V]] {
	if element == nil {
		return nil
	}

	return &element.node
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ValueList ////////////////////////////////////////////////////////////////////////////////////////////////////

// ValueList is a doubly linked list that stores values in Elements which it obtains from a configurable
// Allocator. It offers the same positional operations and constant time splices as the intrusive List it is
// built on, but owns the storage of its entries and, once a value release hook is registered, the values
// themselves: every value the ValueList drops then runs through the hook instead of being handed back to
// the caller.
type ValueList[V any] struct {
	inner *List[*Element[V]]
	opts  *Options[V]
}

// NewValueList creates a new ValueList for values of type V.
func NewValueList[V any](opts ...Option[V]) (newValueList *ValueList[V]) {
	return &ValueList[V]{
		inner: New(func(element *Element[V]) *Node[*Element[V]] {
			return &element.node
		}),
		opts: defaultOptions[V]().apply(opts...),
	}
}

// Front returns the first Element of the ValueList or nil if it is empty.
func (l *ValueList[V]) Front() *Element[V] {
	if front := l.inner.Front(); front != nil {
		return front.Item()
	}

	return nil
}

// Back returns the last Element of the ValueList or nil if it is empty.
func (l *ValueList[V]) Back() *Element[V] {
	if back := l.inner.Back(); back != nil {
		return back.Item()
	}

	return nil
}

// Size returns the number of values in the ValueList.
func (l *ValueList[V]) Size() int {
	return l.inner.Size()
}

// IsEmpty checks if the ValueList is empty.
func (l *ValueList[V]) IsEmpty() bool {
	return l.inner.IsEmpty()
}

// At returns the Element at the given 0-based index, walking from whichever end of the ValueList is nearer.
// It panics with ErrIndexOutOfRange if the index is outside of the ValueList's bounds.
func (l *ValueList[V]) At(index int) *Element[V] {
	return l.inner.At(index).Item()
}

// IndexOf returns the 0-based index of the given Element. The last position is resolved in constant time.
// It panics with ErrNotAnElement if the element is not an element of the ValueList.
func (l *ValueList[V]) IndexOf(element *Element[V]) int {
	if element == nil {
		panic(ErrNotAnElement)
	}

	return l.inner.IndexOf(&element.node)
}

// InsertBefore inserts the given value immediately before the given position and returns its Element, or
// nil if the Allocator could not provide one. The position must be an Element of this ValueList; a nil
// position is only valid for an empty ValueList.
func (l *ValueList[V]) InsertBefore(value V, position *Element[V]) (insertedElement *Element[V]) {
	element := l.allocate(value)
	if element == nil {
		return nil
	}
	l.inner.InsertBefore(element, elementNode(position))

	return element
}

// InsertAfter inserts the given value immediately after the given position and returns its Element, or nil
// if the Allocator could not provide one. The position must be an Element of this ValueList; a nil position
// is only valid for an empty ValueList.
func (l *ValueList[V]) InsertAfter(value V, position *Element[V]) (insertedElement *Element[V]) {
	element := l.allocate(value)
	if element == nil {
		return nil
	}
	l.inner.InsertAfter(element, elementNode(position))

	return element
}

// PushFront inserts the given value at the front of the ValueList and returns its Element, or nil if the
// Allocator could not provide one.
func (l *ValueList[V]) PushFront(value V) (insertedElement *Element[V]) {
	element := l.allocate(value)
	if element == nil {
		return nil
	}
	l.inner.PushFront(element)

	return element
}

// PushBack inserts the given value at the back of the ValueList and returns its Element, or nil if the
// Allocator could not provide one.
func (l *ValueList[V]) PushBack(value V) (insertedElement *Element[V]) {
	element := l.allocate(value)
	if element == nil {
		return nil
	}
	l.inner.PushBack(element)

	return element
}

// Remove detaches the given Element and recycles it through the Allocator. The value release hook decides
// who owns the detached value: a ValueList with a registered hook owns its values and releases the value
// through the hook, reporting nothing to take, while a ValueList without one hands the value and its
// ownership to the caller. A nil element is a no-op.
func (l *ValueList[V]) Remove(element *Element[V]) (value V, taken bool) {
	if element == nil {
		return value, false
	}

	l.inner.Remove(&element.node)

	if l.opts.releaseValue != nil {
		l.opts.releaseValue(element.value)
	} else {
		value = element.value
		taken = true
	}
	l.opts.allocator.ReleaseElement(element)

	return value, taken
}

// PopFront removes the first Element of the ValueList, following the same ownership rule as Remove: the
// value is handed back unless the value release hook released it. An empty ValueList is a no-op.
func (l *ValueList[V]) PopFront() (value V, taken bool) {
	return l.Remove(l.Front())
}

// PopBack removes the last Element of the ValueList, following the same ownership rule as Remove: the
// value is handed back unless the value release hook released it. An empty ValueList is a no-op.
func (l *ValueList[V]) PopBack() (value V, taken bool) {
	return l.Remove(l.Back())
}

// Clear removes all Elements from the ValueList, running the value release hook for every stored value
// before recycling its Element through the Allocator.
func (l *ValueList[V]) Clear() {
	for n := l.inner.head; n != nil; {
		next := n.next
		element := n.item
		if l.opts.releaseValue != nil {
			l.opts.releaseValue(element.value)
		}
		l.opts.allocator.ReleaseElement(element)
		n = next
	}

	l.inner.head = nil
	l.inner.tail = nil
	l.inner.size = 0
}

// SpliceBefore moves the range [from, to] of k Elements out of the source ValueList and into this ValueList
// immediately before the given position. The Elements move as they are, so no values are copied, released
// or reallocated; both ValueLists must share a single Allocator or the call panics with
// ErrAllocatorMismatch. Both endpoints nil is a no-op; the position must not lie inside the moved range.
func (l *ValueList[V]) SpliceBefore(src *ValueList[V], from, to *Element[V], k int, position *Element[V]) {
	l.ensureSharedAllocator(src)
	l.inner.SpliceBefore(src.inner, elementNode(from), elementNode(to), k, elementNode(position))
}

// SpliceAfter moves the range [from, to] of k Elements out of the source ValueList and into this ValueList
// immediately after the given position. The Elements move as they are, so no values are copied, released or
// reallocated; both ValueLists must share a single Allocator or the call panics with ErrAllocatorMismatch.
// Both endpoints nil is a no-op; the position must not lie inside the moved range.
func (l *ValueList[V]) SpliceAfter(src *ValueList[V], from, to *Element[V], k int, position *Element[V]) {
	l.ensureSharedAllocator(src)
	l.inner.SpliceAfter(src.inner, elementNode(from), elementNode(to), k, elementNode(position))
}

// SpliceFront moves the range [from, to] of k Elements out of the source ValueList and to the front of this
// ValueList. The Elements move as they are; both ValueLists must share a single Allocator or the call
// panics with ErrAllocatorMismatch. Both endpoints nil is a no-op.
func (l *ValueList[V]) SpliceFront(src *ValueList[V], from, to *Element[V], k int) {
	l.ensureSharedAllocator(src)
	l.inner.SpliceFront(src.inner, elementNode(from), elementNode(to), k)
}

// SpliceBack moves the range [from, to] of k Elements out of the source ValueList and to the back of this
// ValueList. The Elements move as they are; both ValueLists must share a single Allocator or the call
// panics with ErrAllocatorMismatch. Both endpoints nil is a no-op.
func (l *ValueList[V]) SpliceBack(src *ValueList[V], from, to *Element[V], k int) {
	l.ensureSharedAllocator(src)
	l.inner.SpliceBack(src.inner, elementNode(from), elementNode(to), k)
}

// Cut detaches the contiguous range [from, to] of k Elements from the ValueList in constant time without
// releasing them: the detached chain stays internally linked and caller-owned until it is reattached with
// Paste. Both endpoints nil is a no-op; exactly one nil endpoint panics with ErrInvalidRange.
func (l *ValueList[V]) Cut(from, to *Element[V], k int) {
	l.inner.Cut(elementNode(from), elementNode(to), k)
}

// Paste attaches the internally linked range [from, to] of k Elements between the adjacent Elements left
// and right in constant time. A nil left attaches the range at the front, a nil right at the back. The
// caller guarantees that the range was cut from a ValueList sharing this ValueList's Allocator. Both
// endpoints nil is a no-op; exactly one nil endpoint panics with ErrInvalidRange.
func (l *ValueList[V]) Paste(left, from, to, right *Element[V], k int) {
	l.inner.Paste(elementNode(left), elementNode(from), elementNode(to), elementNode(right), k)
}

// Sort sorts the ValueList in-place by relinking its Elements with a stable bottom-up merge sort that runs
// in O(n log n) time and O(1) auxiliary space. No values are copied or reallocated.
func (l *ValueList[V]) Sort(compare func(a V, b V) int) {
	if compare == nil {
		panic(ErrNilCallback)
	}

	l.inner.Sort(func(a *Element[V], b *Element[V]) int {
		return compare(a.value, b.value)
	})
}

// Values returns the stored values in list order or nil if the ValueList is empty.
func (l *ValueList[V]) Values() []V {
	if l.inner.IsEmpty() {
		return nil
	}

	values := make([]V, 0, l.inner.Size())
	l.inner.Range(func(element *Element[V]) {
		values = append(values, element.value)
	})

	return values
}

// ForEach executes the given callback for each Element in the ValueList. The iteration is aborted if the
// callback returns an error. The next link is pre-saved, so the callback may remove the current Element.
func (l *ValueList[V]) ForEach(callback func(element *Element[V]) error) error {
	return l.inner.ForEach(callback)
}

// ForEachReverse executes the given callback for each Element in the ValueList in reverse order. The
// iteration is aborted if the callback returns an error. The prev link is pre-saved, so the callback may
// remove the current Element.
func (l *ValueList[V]) ForEachReverse(callback func(element *Element[V]) error) error {
	return l.inner.ForEachReverse(callback)
}

// Range executes the given callback for each Element in the ValueList. The next link is pre-saved, so the
// callback may remove the current Element.
func (l *ValueList[V]) Range(callback func(element *Element[V])) {
	l.inner.Range(callback)
}

// RangeReverse executes the given callback for each Element in the ValueList in reverse order. The prev
// link is pre-saved, so the callback may remove the current Element.
func (l *ValueList[V]) RangeReverse(callback func(element *Element[V])) {
	l.inner.RangeReverse(callback)
}

// RangeFrom executes the given callback for each Element from the given start (inclusive) to the back of
// the ValueList. A nil start runs nothing. The next link is pre-saved.
func (l *ValueList[V]) RangeFrom(start *Element[V], callback func(element *Element[V])) {
	l.inner.RangeFrom(elementNode(start), callback)
}

// RangeAfter executes the given callback for each Element after the given start (exclusive) to the back of
// the ValueList. A nil start runs nothing. The next link is pre-saved.
func (l *ValueList[V]) RangeAfter(start *Element[V], callback func(element *Element[V])) {
	l.inner.RangeAfter(elementNode(start), callback)
}

// RangeReverseFrom executes the given callback for each Element from the given start (inclusive) to the
// front of the ValueList. A nil start runs nothing. The prev link is pre-saved.
func (l *ValueList[V]) RangeReverseFrom(start *Element[V], callback func(element *Element[V])) {
	l.inner.RangeReverseFrom(elementNode(start), callback)
}

// RangeReverseAfter executes the given callback for each Element before the given start (exclusive) to the
// front of the ValueList. A nil start runs nothing. The prev link is pre-saved.
func (l *ValueList[V]) RangeReverseAfter(start *Element[V], callback func(element *Element[V])) {
	l.inner.RangeReverseAfter(elementNode(start), callback)
}

// String returns a human readable version of the ValueList.
func (l *ValueList[V]) String() string {
	fields := []*stringify.StructField{
		stringify.NewStructField("size", l.inner.Size()),
	}
	if front := l.Front(); front != nil {
		fields = append(fields,
			stringify.NewStructField("front", front.value),
			stringify.NewStructField("back", l.Back().value),
		)
	}

	return stringify.Struct("ValueList", fields...)
}

// allocate obtains a zeroed Element from the Allocator and stores the given value in it. It returns nil if
// the Allocator could not provide an Element.
func (l *ValueList[V]) allocate(value V) *Element[V] {
	element := l.opts.allocator.AllocateElement()
	if element == nil {
		return nil
	}
	element.value = value

	return element
}

// ensureSharedAllocator guards the splices against mixing Elements of differently allocated ValueLists.
func (l *ValueList[V]) ensureSharedAllocator(src *ValueList[V]) {
	if l.opts.allocator != src.opts.allocator {
		panic(ErrAllocatorMismatch)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// Options define options for a ValueList.
type Options[V any] struct {
	// The Allocator that provides and recycles the Elements.
	allocator Allocator[V]

	// An optional hook through which the ValueList releases every value it drops. Registering it makes the
	// ValueList the owner of its values.
	releaseValue func(value V)
}

// Option is a function setting an Options option.
type Option[V any] func(opts *Options[V])

// WithAllocator defines the Allocator that provides and recycles the Elements of the ValueList.
func WithAllocator[V any](allocator Allocator[V]) Option[V] {
	return func(opts *Options[V]) {
		opts.allocator = allocator
	}
}

// WithValueRelease defines a hook through which the ValueList releases every value it drops. Registering it
// makes the ValueList the owner of its values: Remove, PopFront and PopBack then release the detached value
// through the hook instead of handing it back, just like Clear does for the remaining values.
func WithValueRelease[V any](release func(value V)) Option[V] {
	return func(opts *Options[V]) {
		opts.releaseValue = release
	}
}

// defaultOptions returns the default options with the garbage collected Allocator.
func defaultOptions[V any]() *Options[V] {
	return &Options[V]{
		allocator: gcAllocator[V]{},
	}
}

// apply applies the given options to the Options.
func (o *Options[V]) apply(opts ...Option[V]) *Options[V] {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
