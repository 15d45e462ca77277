package list

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/stringify"
)

var (
	// ErrInvalidRange is raised when exactly one endpoint of a node range is nil.
	ErrInvalidRange = ierrors.New("range endpoints must either both be nil or both be non-nil")

	// ErrPoisonedNode is raised when a method is called on a poison sentinel, which happens when a caller
	// follows the links of a node that was detached from its List.
	ErrPoisonedNode = ierrors.New("use of a detached node: link holds the poison sentinel")

	// ErrIndexOutOfRange is raised when an index based lookup is performed with an index outside of the
	// container's bounds.
	ErrIndexOutOfRange = ierrors.New("index out of range")

	// ErrNotAnElement is raised when a node based lookup is performed with a node that is not an element of
	// the container.
	ErrNotAnElement = ierrors.New("node is not an element of this container")

	// ErrNilCallback is raised when a required callback is nil.
	ErrNilCallback = ierrors.New("required callback must not be nil")

	// ErrNilNode is raised when the node accessor of a container maps an item to a nil Node.
	ErrNilNode = ierrors.New("node accessor returned a nil node")

	// ErrAllocatorMismatch is raised when elements are exchanged between ValueLists that were configured
	// with different Allocators.
	ErrAllocatorMismatch = ierrors.New("value lists must share a single allocator to exchange elements")
)

// region List /////////////////////////////////////////////////////////////////////////////////////////////////////////

// List is an intrusive doubly linked list. It threads caller-owned records through Nodes that are embedded
// in the records themselves, so membership costs no extra allocation. All mutations are compositions of the
// two constant time primitives Cut and Paste.
type List[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int

	// node maps an item to the Node embedded in it.
	node func(T) *Node[T]

	// poisonPrev and poisonNext are stored in the outward links of detached ranges.
	poisonPrev *Node[T]
	poisonNext *Node[T]
}

// New creates a new List of items of type T. The nodeOf accessor maps an item to the Node embedded in it
// and fixes which linkage field this List threads, so the same record type can participate in several Lists
// through distinct fields.
func New[T any](nodeOf func(T) *Node[T]) (newList *List[T]) {
	if nodeOf == nil {
		panic(ErrNilCallback)
	}

	return &List[T]{
		node:       nodeOf,
		poisonPrev: &Node[T]{poison: true},
		poisonNext: &Node[T]{poison: true},
	}
}

// Front returns the Node holding the first position of the List or nil if it is empty.
func (l *List[T]) Front() *Node[T] {
	return l.head
}

// Back returns the Node holding the last position of the List or nil if it is empty.
func (l *List[T]) Back() *Node[T] {
	return l.tail
}

// Size returns the number of items in the List.
func (l *List[T]) Size() int {
	return l.size
}

// IsEmpty checks if the List is empty.
func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

// At returns the Node at the given 0-based index, walking from whichever end of the List is nearer. It
// panics with ErrIndexOutOfRange if the index is outside of the List's bounds.
func (l *List[T]) At(index int) *Node[T] {
	if index < 0 || index >= l.size {
		panic(ErrIndexOutOfRange)
	}

	if index < l.size/2 {
		n := l.head
		for i := 0; i < index; i++ {
			n = n.next
		}

		return n
	}

	n := l.tail
	for i := l.size - 1; i > index; i-- {
		n = n.prev
	}

	return n
}

// IndexOf returns the 0-based index of the given Node. The last position is resolved in constant time. It
// panics with ErrNotAnElement if the node is not an element of the List.
func (l *List[T]) IndexOf(node *Node[T]) int {
	if node == nil {
		panic(ErrNotAnElement)
	}

	if node == l.tail {
		return l.size - 1
	}

	for n, i := l.head, 0; n != nil; n, i = n.next, i+1 {
		if n == node {
			return i
		}
	}

	panic(ErrNotAnElement)
}

// InsertBefore inserts the given item immediately before the given position and returns its bound Node.
// The position must be an element of this List; a nil position is only valid for an empty List.
func (l *List[T]) InsertBefore(item T, position *Node[T]) (insertedNode *Node[T]) {
	n := l.bind(item)
	if position != nil {
		l.Paste(position.prev, n, n, position, 1)
	} else {
		l.Paste(nil, n, n, nil, 1)
	}

	return n
}

// InsertAfter inserts the given item immediately after the given position and returns its bound Node.
// The position must be an element of this List; a nil position is only valid for an empty List.
func (l *List[T]) InsertAfter(item T, position *Node[T]) (insertedNode *Node[T]) {
	n := l.bind(item)
	if position != nil {
		l.Paste(position, n, n, position.next, 1)
	} else {
		l.Paste(nil, n, n, nil, 1)
	}

	return n
}

// PushFront inserts the given item at the front of the List and returns its bound Node.
func (l *List[T]) PushFront(item T) (insertedNode *Node[T]) {
	n := l.bind(item)
	l.Paste(nil, n, n, l.head, 1)

	return n
}

// PushBack inserts the given item at the back of the List and returns its bound Node.
func (l *List[T]) PushBack(item T) (insertedNode *Node[T]) {
	n := l.bind(item)
	l.Paste(l.tail, n, n, nil, 1)

	return n
}

// Remove detaches the record bound to the given Node from the List. A nil node is a no-op.
func (l *List[T]) Remove(node *Node[T]) {
	l.Cut(node, node, 1)
}

// RemoveFront detaches the first record from the List. An empty List is a no-op.
func (l *List[T]) RemoveFront() {
	l.Cut(l.head, l.head, 1)
}

// RemoveBack detaches the last record from the List. An empty List is a no-op.
func (l *List[T]) RemoveBack() {
	l.Cut(l.tail, l.tail, 1)
}

// RemoveAll detaches all records from the List. The detached chain stays internally linked and its outward
// links are poisoned, exactly like any other cut range.
func (l *List[T]) RemoveAll() {
	l.Cut(l.head, l.tail, l.size)
}

// SpliceBefore moves the range [from, to] of k nodes out of the source List and into this List immediately
// before the given position. No nodes are allocated or released. Both endpoints nil is a no-op; the position
// must not lie inside the moved range.
func (l *List[T]) SpliceBefore(src *List[T], from, to *Node[T], k int, position *Node[T]) {
	src.Cut(from, to, k)
	if position != nil {
		l.Paste(position.prev, from, to, position, k)
	} else {
		l.Paste(nil, from, to, nil, k)
	}
}

// SpliceAfter moves the range [from, to] of k nodes out of the source List and into this List immediately
// after the given position. No nodes are allocated or released. Both endpoints nil is a no-op; the position
// must not lie inside the moved range.
func (l *List[T]) SpliceAfter(src *List[T], from, to *Node[T], k int, position *Node[T]) {
	src.Cut(from, to, k)
	if position != nil {
		l.Paste(position, from, to, position.next, k)
	} else {
		l.Paste(nil, from, to, nil, k)
	}
}

// SpliceFront moves the range [from, to] of k nodes out of the source List and to the front of this List.
// No nodes are allocated or released. Both endpoints nil is a no-op.
func (l *List[T]) SpliceFront(src *List[T], from, to *Node[T], k int) {
	src.Cut(from, to, k)
	l.Paste(nil, from, to, l.head, k)
}

// SpliceBack moves the range [from, to] of k nodes out of the source List and to the back of this List.
// No nodes are allocated or released. Both endpoints nil is a no-op.
func (l *List[T]) SpliceBack(src *List[T], from, to *Node[T], k int) {
	src.Cut(from, to, k)
	l.Paste(l.tail, from, to, nil, k)
}

// Cut detaches the contiguous range [from, to] of k nodes from the List in constant time. The neighbors of
// the range (or the List's ends) are relinked around it and the size shrinks by k. The range's outward
// links are pointed at the List's poison sentinels while its interior stays linked. Both endpoints nil is a
// no-op; exactly one nil endpoint panics with ErrInvalidRange and cutting a range that is already detached
// panics with ErrPoisonedNode as soon as a poisoned outward link is followed.
func (l *List[T]) Cut(from, to *Node[T], k int) {
	if (from == nil) != (to == nil) {
		panic(ErrInvalidRange)
	}
	if from == nil {
		return
	}

	if l.head == from {
		l.head = to.next
	} else {
		from.prev.ensureNotPoison()
		from.prev.next = to.next
	}

	if l.tail == to {
		l.tail = from.prev
	} else {
		to.next.ensureNotPoison()
		to.next.prev = from.prev
	}

	from.prev = l.poisonPrev
	to.next = l.poisonNext

	l.size -= k
}

// Paste attaches the internally linked range [from, to] of k nodes between the adjacent nodes left and
// right in constant time. A nil left attaches the range at the head, a nil right at the tail; writing both
// outward links clears any poison left by a previous Cut and the size grows by k. Both endpoints nil is a
// no-op; exactly one nil endpoint panics with ErrInvalidRange and a poison sentinel passed for left or
// right panics with ErrPoisonedNode. The caller guarantees that left and right are adjacent in this List
// (or the matching ends) and that the range is not linked into any List.
func (l *List[T]) Paste(left, from, to, right *Node[T], k int) {
	if (from == nil) != (to == nil) {
		panic(ErrInvalidRange)
	}
	if from == nil {
		return
	}

	if left != nil {
		left.ensureNotPoison()
		left.next = from
	} else {
		l.head = from
	}
	from.prev = left

	if right != nil {
		right.ensureNotPoison()
		right.prev = to
	} else {
		l.tail = to
	}
	to.next = right

	l.size += k
}

// Sort sorts the List in-place with an iterative bottom-up merge sort. Runs start at length 1 and double
// every pass until a pass performs at most one merge, neighboring runs being merged by relinking. It runs
// in O(n log n) time and O(1) auxiliary space and is stable because merges prefer the left run on ties.
// Lists shorter than two items are returned as is.
func (l *List[T]) Sort(compare func(a T, b T) int) {
	if compare == nil {
		panic(ErrNilCallback)
	}
	if l.size < 2 {
		return
	}

	runLen := 1
	head := l.head
	for {
		numMerges := 0
		left := head
		head = nil
		var tail *Node[T]

		for left != nil {
			numMerges++

			// Advance right to the start of the neighboring run, counting how many nodes the left run
			// actually holds (the List may end early).
			right := left
			leftLen := 0
			rightLen := runLen
			for right != nil && leftLen < runLen {
				leftLen++
				right = right.next
			}

			for leftLen > 0 || (rightLen > 0 && right != nil) {
				var next *Node[T]

				switch {
				case leftLen == 0:
					next = right
					right = right.next
					rightLen--
				case rightLen == 0 || right == nil:
					next = left
					left = left.next
					leftLen--
				case compare(left.item, right.item) <= 0:
					next = left
					left = left.next
					leftLen--
				default:
					next = right
					right = right.next
					rightLen--
				}

				if tail != nil {
					tail.next = next
				} else {
					head = next
				}
				next.prev = tail
				tail = next
			}

			left = right
		}
		tail.next = nil

		runLen <<= 1
		if numMerges <= 1 {
			l.head = head
			l.tail = tail

			return
		}
	}
}

// ForEach executes the given callback for the item of each Node in the List. The iteration is aborted if
// the callback returns an error. The next link is pre-saved, so the callback may detach the current record.
func (l *List[T]) ForEach(callback func(item T) error) error {
	for n := l.head; n != nil; {
		n.ensureNotPoison()
		next := n.next
		if err := callback(n.item); err != nil {
			return err
		}
		n = next
	}

	return nil
}

// ForEachReverse executes the given callback for the item of each Node in the List in reverse order. The
// iteration is aborted if the callback returns an error. The prev link is pre-saved, so the callback may
// detach the current record.
func (l *List[T]) ForEachReverse(callback func(item T) error) error {
	for n := l.tail; n != nil; {
		n.ensureNotPoison()
		prev := n.prev
		if err := callback(n.item); err != nil {
			return err
		}
		n = prev
	}

	return nil
}

// Range executes the given callback for the item of each Node in the List. The next link is pre-saved, so
// the callback may detach the current record.
func (l *List[T]) Range(callback func(item T)) {
	for n := l.head; n != nil; {
		n.ensureNotPoison()
		next := n.next
		callback(n.item)
		n = next
	}
}

// RangeReverse executes the given callback for the item of each Node in the List in reverse order. The prev
// link is pre-saved, so the callback may detach the current record.
func (l *List[T]) RangeReverse(callback func(item T)) {
	for n := l.tail; n != nil; {
		n.ensureNotPoison()
		prev := n.prev
		callback(n.item)
		n = prev
	}
}

// RangeFrom executes the given callback for the item of each Node from the given start (inclusive) to the
// back of the List. A nil start runs nothing, a start outside of the List panics with ErrPoisonedNode once
// the walk reaches a poison sentinel. The next link is pre-saved.
func (l *List[T]) RangeFrom(start *Node[T], callback func(item T)) {
	for n := start; n != nil; {
		n.ensureNotPoison()
		next := n.next
		callback(n.item)
		n = next
	}
}

// RangeAfter executes the given callback for the item of each Node after the given start (exclusive) to the
// back of the List. A nil start runs nothing. The next link is pre-saved.
func (l *List[T]) RangeAfter(start *Node[T], callback func(item T)) {
	if start == nil {
		return
	}

	l.RangeFrom(start.Next(), callback)
}

// RangeReverseFrom executes the given callback for the item of each Node from the given start (inclusive)
// to the front of the List. A nil start runs nothing, a start outside of the List panics with
// ErrPoisonedNode once the walk reaches a poison sentinel. The prev link is pre-saved.
func (l *List[T]) RangeReverseFrom(start *Node[T], callback func(item T)) {
	for n := start; n != nil; {
		n.ensureNotPoison()
		prev := n.prev
		callback(n.item)
		n = prev
	}
}

// RangeReverseAfter executes the given callback for the item of each Node before the given start
// (exclusive) to the front of the List. A nil start runs nothing. The prev link is pre-saved.
func (l *List[T]) RangeReverseAfter(start *Node[T], callback func(item T)) {
	if start == nil {
		return
	}

	l.RangeReverseFrom(start.Prev(), callback)
}

// String returns a human readable version of the List.
func (l *List[T]) String() string {
	fields := []*stringify.StructField{
		stringify.NewStructField("size", l.size),
	}
	if l.size > 0 {
		fields = append(fields,
			stringify.NewStructField("front", l.head.item),
			stringify.NewStructField("back", l.tail.item),
		)
	}

	return stringify.Struct("List", fields...)
}

// bind resolves the Node embedded in the given item and stores the back reference that Item recovers.
func (l *List[T]) bind(item T) *Node[T] {
	n := l.node(item)
	if n == nil {
		panic(ErrNilNode)
	}
	n.item = item

	return n
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
