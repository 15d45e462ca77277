package stack

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/stringify"
)

var (
	// ErrNilCallback is raised when a required callback is nil.
	ErrNilCallback = ierrors.New("required callback must not be nil")

	// ErrNilNode is raised when the node accessor of a Stack maps an item to a nil Node.
	ErrNilNode = ierrors.New("node accessor returned a nil node")

	// ErrPoisonedNode is raised when a method is called on a poison sentinel, which happens when a caller
	// follows the link of a node that was detached from its Stack.
	ErrPoisonedNode = ierrors.New("use of a detached node: link holds the poison sentinel")
)

// region Stack ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Stack is an intrusive last-in-first-out stack. It threads caller-owned records through Nodes that are
// embedded in the records themselves, linking each one to the record below it through a single prev
// reference.
type Stack[T any] struct {
	top  *Node[T]
	size int

	// node maps an item to the Node embedded in it.
	node func(T) *Node[T]

	// poisonPrev is stored in the prev link of detached nodes.
	poisonPrev *Node[T]
}

// New creates a new Stack of items of type T. The nodeOf accessor maps an item to the Node embedded in it.
func New[T any](nodeOf func(T) *Node[T]) (newStack *Stack[T]) {
	if nodeOf == nil {
		panic(ErrNilCallback)
	}

	return &Stack[T]{
		node:       nodeOf,
		poisonPrev: &Node[T]{poison: true},
	}
}

// Size returns the number of items in the Stack.
func (s *Stack[T]) Size() int {
	return s.size
}

// IsEmpty checks if the Stack is empty.
func (s *Stack[T]) IsEmpty() bool {
	return s.size == 0
}

// Peek returns the item on top of the Stack without removing it.
func (s *Stack[T]) Peek() (item T, exists bool) {
	if s.top == nil {
		return item, false
	}

	return s.top.item, true
}

// Push adds the given item to the top of the Stack and returns its bound Node.
func (s *Stack[T]) Push(item T) (pushedNode *Node[T]) {
	node := s.bind(item)

	node.prev = s.top
	s.top = node

	s.size++

	return node
}

// Pop removes the item on top of the Stack and returns it. The detached record's link is poisoned. An empty
// Stack reports failure.
func (s *Stack[T]) Pop() (item T, popped bool) {
	n := s.top
	if n == nil {
		return item, false
	}

	s.top = n.prev
	n.prev = s.poisonPrev

	s.size--

	return n.item, true
}

// RemoveAll detaches all items from the Stack. Only the link of the top record is poisoned; the rest of the
// former chain stays linked.
func (s *Stack[T]) RemoveAll() {
	if s.top != nil {
		s.top.prev = s.poisonPrev
	}

	s.top = nil
	s.size = 0
}

// ForEach executes the given callback for every item in the Stack, top to bottom. The iteration is aborted
// if the callback returns false. The prev link is pre-saved, so the callback may pop the current top.
func (s *Stack[T]) ForEach(callback func(item T) bool) {
	for n := s.top; n != nil; {
		n.ensureNotPoison()
		prev := n.prev
		if !callback(n.item) {
			return
		}
		n = prev
	}
}

// String returns a human readable version of the Stack.
func (s *Stack[T]) String() string {
	fields := []*stringify.StructField{
		stringify.NewStructField("size", s.size),
	}
	if s.size > 0 {
		fields = append(fields, stringify.NewStructField("top", s.top.item))
	}

	return stringify.Struct("Stack", fields...)
}

// bind resolves the Node embedded in the given item and stores the back reference that Item recovers.
func (s *Stack[T]) bind(item T) *Node[T] {
	n := s.node(item)
	if n == nil {
		panic(ErrNilNode)
	}
	n.item = item

	return n
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Node /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Node is the linkage that threads an item into a Stack. It is embedded as a field of a caller-defined
// record and holds that record's position through a single prev reference pointing at the record below it.
// The zero value is ready for use.
type Node[T any] struct {
	prev   *Node[T]
	item   T
	poison bool
}

// Item returns the record this Node is embedded in. The back reference is bound when the record is first
// pushed onto a Stack and stays valid after the record is detached.
func (n *Node[T]) Item() T {
	n.ensureNotPoison()

	return n.item
}

// Prev returns the Node of the record below this one or nil if this Node holds the bottom position of its
// Stack. After a detach, the link holds the poison sentinel of the former Stack: obtaining the sentinel
// succeeds, but every method called on it panics with ErrPoisonedNode.
func (n *Node[T]) Prev() *Node[T] {
	n.ensureNotPoison()

	return n.prev
}

// IsPoison reports whether this Node is the poison sentinel of a Stack rather than the linkage of a real
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
