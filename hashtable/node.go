package hashtable

// Node is the linkage that threads an item into a HashTable. It is embedded as a field of a caller-defined
// record and chains that record into its bucket. The zero value is ready for use; a record may embed
// several Nodes to participate in several HashTables at once.
type Node[T any] struct {
	next   *Node[T]
	item   T
	poison bool
}

// Item returns the record this Node is embedded in. The back reference is bound when the record is first
// inserted into a HashTable and stays valid after the record is detached.
func (n *Node[T]) Item() T {
	n.ensureNotPoison()

	return n.item
}

// Next returns the Node chained behind this one in its bucket or nil if this Node ends the chain. After a
// detach, the link holds the poison sentinel of the former HashTable: obtaining the sentinel succeeds, but
// every method called on it panics with ErrPoisonedNode.
func (n *Node[T]) Next() *Node[T] {
	n.ensureNotPoison()

	return n.next
}

// IsPoison reports whether this Node is the poison sentinel of a HashTable rather than the linkage of a
// real record. It is the only method that is safe to call on a sentinel.
func (n *Node[T]) IsPoison() bool {
	return n.poison
}

// ensureNotPoison guards the accessors of poison sentinels.
func (n *Node[T]) ensureNotPoison() {
	if n.poison {
		panic(ErrPoisonedNode)
	}
}
