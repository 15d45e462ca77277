package queue

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/stringify"
)

var (
	// ErrNilCallback is raised when a required callback is nil.
	ErrNilCallback = ierrors.New("required callback must not be nil")

	// ErrNilNode is raised when the node accessor of a Queue maps an item to a nil Node.
	ErrNilNode = ierrors.New("node accessor returned a nil node")

	// ErrPoisonedNode is raised when a method is called on a poison sentinel, which happens when a caller
	// follows the link of a node that was detached from its Queue.
	ErrPoisonedNode = ierrors.New("use of a detached node: link holds the poison sentinel")
)

// region Queue ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Queue is an intrusive first-in-first-out queue. It threads caller-owned records through Nodes that are
// embedded in the records themselves, linking them front to back through a single next reference.
type Queue[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int

	// node maps an item to the Node embedded in it.
	node func(T) *Node[T]

	// poisonNext is stored in the next link of detached nodes.
	poisonNext *Node[T]
}

// New creates a new Queue of items of type T. The nodeOf accessor maps an item to the Node embedded in it.
func New[T any](nodeOf func(T) *Node[T]) (newQueue *Queue[T]) {
	if nodeOf == nil {
		panic(ErrNilCallback)
	}

	return &Queue[T]{
		node:       nodeOf,
		poisonNext: &Node[T]{poison: true},
	}
}

// Size returns the number of items in the Queue.
func (q *Queue[T]) Size() int {
	return q.size
}

// IsEmpty checks if the Queue is empty.
func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

// Peek returns the item at the front of the Queue without removing it.
func (q *Queue[T]) Peek() (item T, exists bool) {
	if q.head == nil {
		return item, false
	}

	return q.head.item, true
}

// Push adds the given item to the back of the Queue and returns its bound Node.
func (q *Queue[T]) Push(item T) (pushedNode *Node[T]) {
	node := q.bind(item)

	if q.head == nil {
		q.head = node
	} else {
		q.tail.next = node
	}

	q.tail = node
	node.next = nil

	q.size++

	return node
}

// Pop removes the item at the front of the Queue and returns it. The detached record's link is poisoned. An
// empty Queue reports failure.
func (q *Queue[T]) Pop() (item T, popped bool) {
	n := q.head
	if n == nil {
		return item, false
	}

	if n.next == nil {
		q.tail = nil
	}

	q.head = n.next
	n.next = q.poisonNext

	q.size--

	return n.item, true
}

// RemoveAll detaches all items from the Queue. Only the links of the first and the last record are
// poisoned; the interior of the former chain stays linked.
func (q *Queue[T]) RemoveAll() {
	if q.head != nil {
		q.head.next = q.poisonNext
		q.tail.next = q.poisonNext
	}

	q.head = nil
	q.tail = nil
	q.size = 0
}

// ForEach executes the given callback for every item in the Queue, front to back. The iteration is aborted
// if the callback returns false. The next link is pre-saved, so the callback may pop the current front.
func (q *Queue[T]) ForEach(callback func(item T) bool) {
	for n := q.head; n != nil; {
		n.ensureNotPoison()
		next := n.next
		if !callback(n.item) {
			return
		}
		n = next
	}
}

// String returns a human readable version of the Queue.
func (q *Queue[T]) String() string {
	fields := []*stringify.StructField{
		stringify.NewStructField("size", q.size),
	}
	if q.size > 0 {
		fields = append(fields,
			stringify.NewStructField("front", q.head.item),
			stringify.NewStructField("back", q.tail.item),
		)
	}

	return stringify.Struct("Queue", fields...)
}

// bind resolves the Node embedded in the given item and stores the back reference that Item recovers.
func (q *Queue[T]) bind(item T) *Node[T] {
	n := q.node(item)
	if n == nil {
		panic(ErrNilNode)
	}
	n.item = item

	return n
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Node /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Node is the linkage that threads an item into a Queue. It is embedded as a field of a caller-defined
// record and holds that record's position through a single next reference. The zero value is ready for use.
type Node[T any] struct {
	next   *Node[T]
	item   T
	poison bool
}

// Item returns the record this Node is embedded in. The back reference is bound when the record is first
// pushed into a Queue and stays valid after the record is detached.
func (n *Node[T]) Item() T {
	n.ensureNotPoison()

	return n.item
}

// Next returns the Node holding the position behind this one or nil if this Node holds the back position of
// its Queue. After a detach, the link holds the poison sentinel of the former Queue: obtaining the sentinel
// succeeds, but every method called on it panics with ErrPoisonedNode.
func (n *Node[T]) Next() *Node[T] {
	n.ensureNotPoison()

	return n.next
}

// IsPoison reports whether this Node is the poison sentinel of a Queue rather than the linkage of a real
// record. It is the only method that is safe to call on a sentinel.
func (n *Node[T]) IsPoison() bool {
	return n.poison
}

// ensureNotPoison guards the accessors of poison sentinels.
func (n *Node[T]) ensureNotPoison() {
	if n.poison {
		panic(ErrPoisonedNode)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
