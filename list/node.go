package list

// Node is the linkage that threads an item into a List. It is embedded as a field of a caller-defined record
// and holds that record's position in at most one List at a time. The zero value is ready for use; a record
// may embed several Nodes to participate in several Lists at once.
type Node[T any] struct {
	prev   *Node[T]
	next   *Node[T]
	item   T
	poison bool
}

// Item returns the record this Node is embedded in. The back reference is bound when the record is first
// inserted into a List and stays valid after the record is detached.
func (n *Node[T]) Item() T {
	n.ensureNotPoison()

	return n.item
}

// Next returns the Node holding the following position or nil if this Node holds the last position of its
// List. After a detach, the link holds the poison sentinel of the former List: obtaining the sentinel
// succeeds, but every method called on it panics with ErrPoisonedNode.
func (n *Node[T]) Next() *Node[T] {
	n.ensureNotPoison()

	return n.next
}

// Prev returns the Node holding the preceding position or nil if this Node holds the first position of its
// List. After a detach, the link holds the poison sentinel of the former List: obtaining the sentinel
// succeeds, but every method called on it panics with ErrPoisonedNode.
func (n *Node[T]) Prev() *Node[T] {
	n.ensureNotPoison()

	return n.prev
}

// IsPoison reports whether this Node is the poison sentinel of a List rather than the linkage of a real
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
