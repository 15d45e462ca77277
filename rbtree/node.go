package rbtree

// nodeColor is the repair state of a Node. Nil children count as black.
type nodeColor bool

const (
	red   nodeColor = false
	black nodeColor = true
)

// Node is the linkage that threads an item into an RBTree. It is embedded as a field of a caller-defined
// record and holds that record's position through parent and child references plus the color used by the
// rebalancing. The zero value is ready for use; a record may embed several Nodes to participate in several
// RBTrees at once.
type Node[T any] struct {
	parent *Node[T]
	left   *Node[T]
	right  *Node[T]
	color  nodeColor
	item   T
	poison bool
}

// Item returns the record this Node is embedded in. The back reference is bound when the record is first
// inserted into an RBTree and stays valid after the record is detached.
func (n *Node[T]) Item() T {
	n.ensureNotPoison()

	return n.item
}

// Next returns the Node holding the next item in key order or nil if this Node holds the last one. After a
// detach, the links hold the poison sentinels of the former RBTree, so walking off a detached Node panics
// with ErrPoisonedNode.
func (n *Node[T]) Next() *Node[T] {
	n.ensureNotPoison()

	if n.right != nil {
		k := n.right
		k.ensureNotPoison()
		for k.left != nil {
			k = k.left
		}

		return k
	}

	node, parent := n, n.parent
	if parent != nil {
		parent.ensureNotPoison()
	}
	for parent != nil && node == parent.right {
		node = parent
		parent = node.parent
	}

	return parent
}

// Prev returns the Node holding the previous item in key order or nil if this Node holds the first one.
// After a detach, the links hold the poison sentinels of the former RBTree, so walking off a detached Node
// panics with ErrPoisonedNode.
func (n *Node[T]) Prev() *Node[T] {
	n.ensureNotPoison()

	if n.left != nil {
		k := n.left
		k.ensureNotPoison()
		for k.right != nil {
			k = k.right
		}

		return k
	}

	node, parent := n, n.parent
	if parent != nil {
		parent.ensureNotPoison()
	}
	for parent != nil && node == parent.left {
		node = parent
		parent = node.parent
	}

	return parent
}

// IsPoison reports whether this Node is a poison sentinel of an RBTree rather than the linkage of a real
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

// colorOf returns the color of the given Node, treating nil as black.
func colorOf[T any](node *Node[T]) nodeColor {
	if node == nil {
		return black
	}

	return node.color
}

// sibling returns the other child of the given Node's parent.
func sibling[T any](node *Node[T]) *Node[T] {
	if node == node.parent.left {
		return node.parent.right
	}

	return node.parent.left
}

// grandparent returns the parent of the given Node's parent.
func grandparent[T any](node *Node[T]) *Node[T] {
	return node.parent.parent
}

// uncle returns the sibling of the given Node's parent.
func uncle[T any](node *Node[T]) *Node[T] {
	return sibling(node.parent)
}
