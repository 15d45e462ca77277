package rbtree

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/stringify"
)

var (
	// ErrNilCallback is raised when a required callback is nil.
	ErrNilCallback = ierrors.New("required callback must not be nil")

	// ErrNilNode is raised when the node accessor of an RBTree maps an item to a nil Node.
	ErrNilNode = ierrors.New("node accessor returned a nil node")

	// ErrPoisonedNode is raised when a method is called on a poison sentinel, which happens when a caller
	// follows the links of a node that was detached from its RBTree.
	ErrPoisonedNode = ierrors.New("use of a detached node: link holds the poison sentinel")

	// ErrIndexOutOfRange is raised when an index based lookup is performed with an index outside of the
	// container's bounds.
	ErrIndexOutOfRange = ierrors.New("index out of range")

	// ErrNotAnElement is raised when a node based lookup is performed with a node that is not an element of
	// the container.
	ErrNotAnElement = ierrors.New("node is not an element of this container")
)

// region RBTree ///////////////////////////////////////////////////////////////////////////////////////////////////////

// RBTree is an intrusive red-black tree that keeps caller-owned records ordered by a key policy. Like the
// chained hash table it holds at most one item per key: inserting under an existing key replaces the item
// in place and reports the displacement through the collision handler. Lookups, inserts and removals run in
// O(log n) time, ordered traversal through Next and Prev in amortized constant time per step.
type RBTree[K, T any] struct {
	root *Node[T]
	size int

	// node maps an item to the Node embedded in it, compare orders keys against items.
	node    func(T) *Node[T]
	compare func(K, T) int

	opts *Options[T]

	// poisonParent, poisonLeft and poisonRight are stored in the links of detached nodes.
	poisonParent *Node[T]
	poisonLeft   *Node[T]
	poisonRight  *Node[T]
}

// New creates a new RBTree of items of type T ordered by keys of type K. The nodeOf accessor maps an item
// to the Node embedded in it and compare orders a key against an item with the usual negative, zero or
// positive contract.
func New[K, T any](nodeOf func(T) *Node[T], compare func(K, T) int, opts ...Option[T]) (newRBTree *RBTree[K, T]) {
	if nodeOf == nil || compare == nil {
		panic(ErrNilCallback)
	}

	return &RBTree[K, T]{
		node:         nodeOf,
		compare:      compare,
		opts:         defaultOptions[T]().apply(opts...),
		poisonParent: &Node[T]{poison: true},
		poisonLeft:   &Node[T]{poison: true},
		poisonRight:  &Node[T]{poison: true},
	}
}

// Size returns the number of items in the RBTree.
func (t *RBTree[K, T]) Size() int {
	return t.size
}

// IsEmpty checks if the RBTree is empty.
func (t *RBTree[K, T]) IsEmpty() bool {
	return t.size == 0
}

// First returns the Node holding the smallest key of the RBTree or nil if it is empty.
func (t *RBTree[K, T]) First() *Node[T] {
	n := t.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}

	return n
}

// Last returns the Node holding the largest key of the RBTree or nil if it is empty.
func (t *RBTree[K, T]) Last() *Node[T] {
	n := t.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}

	return n
}

// At returns the Node at the given 0-based position of the key order, walking from whichever end of the
// RBTree is nearer. It panics with ErrIndexOutOfRange if the index is outside of the RBTree's bounds.
func (t *RBTree[K, T]) At(index int) *Node[T] {
	if index < 0 || index >= t.size {
		panic(ErrIndexOutOfRange)
	}

	if index < t.size/2 {
		n := t.First()
		for i := 0; i < index; i++ {
			n = n.Next()
		}

		return n
	}

	n := t.Last()
	for i := t.size - 1; i > index; i-- {
		n = n.Prev()
	}

	return n
}

// IndexOf returns the 0-based position of the given Node in the key order. The last position is resolved
// without a walk. It panics with ErrNotAnElement if the node is not an element of the RBTree.
func (t *RBTree[K, T]) IndexOf(node *Node[T]) int {
	if node == nil {
		panic(ErrNotAnElement)
	}

	if node == t.Last() {
		return t.size - 1
	}

	for n, i := t.First(), 0; n != nil; n, i = n.Next(), i+1 {
		if n == node {
			return i
		}
	}

	panic(ErrNotAnElement)
}

// Insert adds the given item under the given key. If the tree already holds an item with an equal key, the
// new item takes over the old item's exact position and color, the old item's links are poisoned, the
// collision handler runs exactly once with both items and the size stays unchanged. Otherwise the item is
// attached as a leaf and the tree is rebalanced. The same record must not be inserted while it is still an
// element of the tree.
func (t *RBTree[K, T]) Insert(key K, item T) {
	node := t.bind(item)

	n := t.root
	if n != nil {
		for {
			cmp := t.compare(key, n.item)
			if cmp < 0 {
				if n.left != nil {
					n = n.left
				} else {
					n.left = node

					break
				}
			} else if cmp > 0 {
				if n.right != nil {
					n = n.right
				} else {
					n.right = node

					break
				}
			} else {
				t.replace(n, node)

				if t.opts.collide != nil {
					t.opts.collide(n.item, item, t.opts.auxiliaryData)
				}

				return
			}
		}
	}

	node.parent = n
	node.left = nil
	node.right = nil
	node.color = red

	if n == nil {
		t.root = node
	}

	t.repairAfterInsert(node)

	t.size++
}

// Lookup returns the item the given key identifies.
func (t *RBTree[K, T]) Lookup(key K) (item T, exists bool) {
	if n := t.LookupNode(key); n != nil {
		return n.item, true
	}

	return item, false
}

// LookupNode returns the Node of the item the given key identifies or nil if no item matches, which allows
// starting an ordered walk at a key.
func (t *RBTree[K, T]) LookupNode(key K) *Node[T] {
	n := t.root
	for n != nil {
		cmp := t.compare(key, n.item)
		if cmp < 0 {
			n = n.left
		} else if cmp > 0 {
			n = n.right
		} else {
			break
		}
	}

	return n
}

// Contains checks whether the RBTree holds an item the given key identifies.
func (t *RBTree[K, T]) Contains(key K) (has bool) {
	return t.LookupNode(key) != nil
}

// Remove detaches the item the given key identifies from the RBTree and poisons its links. It returns
// false without touching the tree if no item matches.
func (t *RBTree[K, T]) Remove(key K) (removed bool) {
	node := t.LookupNode(key)
	if node == nil {
		return false
	}
	t.RemoveNode(node)

	return true
}

// RemoveNode detaches the record bound to the given Node from the RBTree, rebalances and poisons the
// detached record's links. A nil node is a no-op.
func (t *RBTree[K, T]) RemoveNode(node *Node[T]) {
	if node == nil {
		return
	}

	// reduce the two children case to at most one child by swapping with the in-order predecessor
	if node.left != nil && node.right != nil {
		k := node.left
		for k.right != nil {
			k = k.right
		}
		t.swapPlaces(node, k)
	}

	n := node.right
	if n == nil {
		n = node.left
	}

	if colorOf(node) == black {
		node.color = colorOf(n)

		t.repairAfterRemove(node)
	}

	t.transplant(node, n)

	if node.parent == nil && n != nil {
		n.color = black
	}

	node.parent = t.poisonParent
	node.left = t.poisonLeft
	node.right = t.poisonRight

	t.size--
}

// RemoveFirst detaches the record holding the smallest key. An empty RBTree is a no-op.
func (t *RBTree[K, T]) RemoveFirst() {
	t.RemoveNode(t.First())
}

// RemoveLast detaches the record holding the largest key. An empty RBTree is a no-op.
func (t *RBTree[K, T]) RemoveLast() {
	t.RemoveNode(t.Last())
}

// RemoveAll detaches all items from the RBTree. Only the links of the former root are poisoned; the rest of
// the former tree keeps its last state.
func (t *RBTree[K, T]) RemoveAll() {
	if t.root != nil {
		t.root.parent = t.poisonParent
		t.root.left = t.poisonLeft
		t.root.right = t.poisonRight
	}

	t.root = nil
	t.size = 0
}

// ForEach executes the given callback for every item in the RBTree in ascending key order. The iteration is
// aborted if the callback returns false. The successor is pre-saved, so the callback may remove the current
// record.
func (t *RBTree[K, T]) ForEach(callback func(item T) bool) {
	for n := t.First(); n != nil; {
		n.ensureNotPoison()
		next := n.Next()
		if !callback(n.item) {
			return
		}
		n = next
	}
}

// ForEachReverse executes the given callback for every item in the RBTree in descending key order. The
// iteration is aborted if the callback returns false. The predecessor is pre-saved, so the callback may
// remove the current record.
func (t *RBTree[K, T]) ForEachReverse(callback func(item T) bool) {
	for n := t.Last(); n != nil; {
		n.ensureNotPoison()
		prev := n.Prev()
		if !callback(n.item) {
			return
		}
		n = prev
	}
}

// String returns a human readable version of the RBTree.
func (t *RBTree[K, T]) String() string {
	fields := []*stringify.StructField{
		stringify.NewStructField("size", t.size),
	}
	if t.size > 0 {
		fields = append(fields,
			stringify.NewStructField("first", t.First().item),
			stringify.NewStructField("last", t.Last().item),
		)
	}

	return stringify.Struct("RBTree", fields...)
}

// bind resolves the Node embedded in the given item and stores the back reference that Item recovers.
func (t *RBTree[K, T]) bind(item T) *Node[T] {
	n := t.node(item)
	if n == nil {
		panic(ErrNilNode)
	}
	n.item = item

	return n
}

// replace puts newNode into oldNode's exact position and color and poisons oldNode's links. The tree stays
// balanced because the shape does not change.
func (t *RBTree[K, T]) replace(oldNode, newNode *Node[T]) {
	if t.root == oldNode {
		t.root = newNode
	} else if oldNode == oldNode.parent.left {
		oldNode.parent.left = newNode
	} else {
		oldNode.parent.right = newNode
	}

	if oldNode.left != nil {
		oldNode.left.parent = newNode
	}
	if oldNode.right != nil {
		oldNode.right.parent = newNode
	}

	newNode.parent = oldNode.parent
	newNode.left = oldNode.left
	newNode.right = oldNode.right
	newNode.color = oldNode.color

	oldNode.parent = t.poisonParent
	oldNode.left = t.poisonLeft
	oldNode.right = t.poisonRight
}

// transplant replaces oldNode by newNode (which may be nil) at oldNode's parent.
func (t *RBTree[K, T]) transplant(oldNode, newNode *Node[T]) {
	if oldNode.parent == nil {
		t.root = newNode
	} else if oldNode == oldNode.parent.left {
		oldNode.parent.left = newNode
	} else {
		oldNode.parent.right = newNode
	}

	if newNode != nil {
		newNode.parent = oldNode.parent
	}
}

// swapPlaces exchanges the positions and colors of the two given nodes. The high node must be an ancestor
// of the low node.
func (t *RBTree[K, T]) swapPlaces(high, low *Node[T]) {
	if high.parent == nil {
		t.root = low
	} else if high.parent.left == high {
		high.parent.left = low
	} else {
		high.parent.right = low
	}

	if low.left != nil {
		low.left.parent = high
	}
	if low.right != nil {
		low.right.parent = high
	}

	// a directly adjacent pair temporarily links to itself so that the field swap below resolves the cycle
	if high.left == low {
		if high.right != nil {
			high.right.parent = low
		}
		high.left = high
		low.parent = low
	} else if high.right == low {
		if high.left != nil {
			high.left.parent = low
		}
		high.right = high
		low.parent = low
	} else {
		if high.left != nil {
			high.left.parent = low
		}
		if high.right != nil {
			high.right.parent = low
		}
		if low.parent.left == low {
			low.parent.left = high
		} else {
			low.parent.right = high
		}
	}

	high.parent, low.parent = low.parent, high.parent
	high.left, low.left = low.left, high.left
	high.right, low.right = low.right, high.right
	high.color, low.color = low.color, high.color
}

// rotateLeft rotates the subtree around the given node to the left.
func (t *RBTree[K, T]) rotateLeft(node *Node[T]) {
	n := node.right

	t.transplant(node, n)

	node.right = n.left
	if n.left != nil {
		n.left.parent = node
	}

	n.left = node
	node.parent = n
}

// rotateRight rotates the subtree around the given node to the right.
func (t *RBTree[K, T]) rotateRight(node *Node[T]) {
	n := node.left

	t.transplant(node, n)

	node.left = n.right
	if n.right != nil {
		n.right.parent = node
	}

	n.right = node
	node.parent = n
}

// repairAfterInsert restores the balancing invariants after the given node was attached as a red leaf.
func (t *RBTree[K, T]) repairAfterInsert(node *Node[T]) {
	for {
		if node.parent == nil {
			node.color = black

			break
		}

		if colorOf(node.parent) == black {
			break
		}

		if colorOf(uncle(node)) == red {
			node.parent.color = black
			uncle(node).color = black
			grandparent(node).color = red
			node = grandparent(node)

			continue
		}

		if node == node.parent.right && node.parent == grandparent(node).left {
			t.rotateLeft(node.parent)
			node = node.left
		} else if node == node.parent.left && node.parent == grandparent(node).right {
			t.rotateRight(node.parent)
			node = node.right
		}

		node.parent.color = black
		grandparent(node).color = red

		if node == node.parent.left && node.parent == grandparent(node).left {
			t.rotateRight(grandparent(node))
		} else {
			t.rotateLeft(grandparent(node))
		}

		break
	}
}

// repairAfterRemove restores the balancing invariants before the given black node is detached.
func (t *RBTree[K, T]) repairAfterRemove(node *Node[T]) {
	for {
		if node.parent == nil {
			break
		}

		if colorOf(sibling(node)) == red {
			node.parent.color = red
			sibling(node).color = black

			if node == node.parent.left {
				t.rotateLeft(node.parent)
			} else {
				t.rotateRight(node.parent)
			}
		}

		if colorOf(node.parent) == black &&
			colorOf(sibling(node)) == black &&
			colorOf(sibling(node).left) == black &&
			colorOf(sibling(node).right) == black {
			sibling(node).color = red
			node = node.parent

			continue
		}

		if colorOf(node.parent) == red &&
			colorOf(sibling(node)) == black &&
			colorOf(sibling(node).left) == black &&
			colorOf(sibling(node).right) == black {
			sibling(node).color = red
			node.parent.color = black

			break
		}

		if node == node.parent.left &&
			colorOf(sibling(node)) == black &&
			colorOf(sibling(node).left) == red &&
			colorOf(sibling(node).right) == black {
			sibling(node).color = red
			sibling(node).left.color = black

			t.rotateRight(sibling(node))
		} else if node == node.parent.right &&
			colorOf(sibling(node)) == black &&
			colorOf(sibling(node).left) == black &&
			colorOf(sibling(node).right) == red {
			sibling(node).color = red
			sibling(node).right.color = black

			t.rotateLeft(sibling(node))
		}

		sibling(node).color = colorOf(node.parent)
		node.parent.color = black

		if node == node.parent.left {
			sibling(node).right.color = black
			t.rotateLeft(node.parent)
		} else {
			sibling(node).left.color = black
			t.rotateRight(node.parent)
		}

		break
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// Options define options for an RBTree.
type Options[T any] struct {
	// An optional handler that runs when an insert displaces the item already held under an equal key.
	collide func(oldItem T, newItem T, auxiliaryData any)

	// An opaque value that is passed through to every collision handler invocation.
	auxiliaryData any
}

// Option is a function setting an Options option.
type Option[T any] func(opts *Options[T])

// WithCollisionHandler defines the handler that runs when an insert displaces the item already held under
// an equal key. It receives the displaced item, the item that took its place and the tree's auxiliary data,
// and it is the only way the displaced item's resources can be reclaimed.
func WithCollisionHandler[T any](collide func(oldItem T, newItem T, auxiliaryData any)) Option[T] {
	return func(opts *Options[T]) {
		opts.collide = collide
	}
}

// WithAuxiliaryData defines an opaque value that is passed through to every collision handler invocation.
func WithAuxiliaryData[T any](auxiliaryData any) Option[T] {
	return func(opts *Options[T]) {
		opts.auxiliaryData = auxiliaryData
	}
}

// defaultOptions returns the default options without a collision handler.
func defaultOptions[T any]() *Options[T] {
	return &Options[T]{}
}

// apply applies the given options to the Options.
func (o *Options[T]) apply(opts ...Option[T]) *Options[T] {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
