package hashtable

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/stringify"
)

var (
	// ErrNoBuckets is raised when a HashTable is created over an empty bucket array.
	ErrNoBuckets = ierrors.New("the bucket array must not be empty")

	// ErrNilCallback is raised when a required callback is nil.
	ErrNilCallback = ierrors.New("required callback must not be nil")

	// ErrNilNode is raised when the node accessor of a HashTable maps an item to a nil Node.
	ErrNilNode = ierrors.New("node accessor returned a nil node")

	// ErrPoisonedNode is raised when a method is called on a poison sentinel, which happens when a caller
	// follows the link of a node that was detached from its HashTable.
	ErrPoisonedNode = ierrors.New("use of a detached node: link holds the poison sentinel")
)

// region HashTable ////////////////////////////////////////////////////////////////////////////////////////////////////

// HashTable is an intrusive chained hash table. It threads caller-owned records into a caller-owned bucket
// array, resolving collisions through singly linked per-bucket chains, and delegates hashing, equality and
// collision handling to the policies it was created with. The table never resizes; the number of buckets is
// fixed for its lifetime and load factor management is left to the caller.
type HashTable[K, T any] struct {
	buckets []*Node[T]
	size    int

	// node maps an item to the Node embedded in it, hash and equal are the key policies.
	node  func(T) *Node[T]
	hash  func(K) uint64
	equal func(K, T) bool

	opts *Options[T]

	// poisonNext is stored in the next link of detached nodes.
	poisonNext *Node[T]
}

// New creates a new HashTable over the given bucket array, which stays caller-owned and is zeroed before
// use. The nodeOf accessor maps an item to the Node embedded in it, hash distributes keys over buckets and
// equal decides whether a key identifies an item. Keys and items are opaque to the table beyond these
// policies.
func New[K, T any](buckets []*Node[T], nodeOf func(T) *Node[T], hash func(K) uint64, equal func(K, T) bool, opts ...Option[T]) (newHashTable *HashTable[K, T]) {
	for i := range buckets {
		buckets[i] = nil
	}

	return NewFromZeroed(buckets, nodeOf, hash, equal, opts...)
}

// NewFromZeroed creates a new HashTable over the given bucket array like New but trusts the caller that
// every bucket is already nil, which skips the zeroing pass.
func NewFromZeroed[K, T any](buckets []*Node[T], nodeOf func(T) *Node[T], hash func(K) uint64, equal func(K, T) bool, opts ...Option[T]) (newHashTable *HashTable[K, T]) {
	if len(buckets) == 0 {
		panic(ErrNoBuckets)
	}
	if nodeOf == nil || hash == nil || equal == nil {
		panic(ErrNilCallback)
	}

	return &HashTable[K, T]{
		buckets:    buckets,
		node:       nodeOf,
		hash:       hash,
		equal:      equal,
		opts:       defaultOptions[T]().apply(opts...),
		poisonNext: &Node[T]{poison: true},
	}
}

// Size returns the number of items in the HashTable.
func (h *HashTable[K, T]) Size() int {
	return h.size
}

// IsEmpty checks if the HashTable is empty.
func (h *HashTable[K, T]) IsEmpty() bool {
	return h.size == 0
}

// NumBuckets returns the fixed number of buckets of the HashTable.
func (h *HashTable[K, T]) NumBuckets() int {
	return len(h.buckets)
}

// Buckets returns the caller-owned bucket array the HashTable threads its chains through.
func (h *HashTable[K, T]) Buckets() []*Node[T] {
	return h.buckets
}

// Insert adds the given item under the given key. If the table already holds an item the key identifies,
// the new item takes over the old item's chain position, the old item's link is poisoned, the collision
// handler runs exactly once with both items and the size stays unchanged. Otherwise the item is linked at
// the head of its bucket chain. The same record must not be inserted while it is still an element of the
// table.
func (h *HashTable[K, T]) Insert(key K, item T) {
	node := h.bind(item)
	bucket := h.bucketIndex(key)

	var prev *Node[T]
	for n := h.buckets[bucket]; n != nil; prev, n = n, n.next {
		if h.equal(key, n.item) {
			if prev != nil {
				prev.next = node
			} else {
				h.buckets[bucket] = node
			}
			node.next = n.next
			n.next = h.poisonNext

			if h.opts.collide != nil {
				h.opts.collide(n.item, item, h.opts.auxiliaryData)
			}

			return
		}
	}

	node.next = h.buckets[bucket]
	h.buckets[bucket] = node

	h.size++
}

// Lookup returns the item the given key identifies.
func (h *HashTable[K, T]) Lookup(key K) (item T, exists bool) {
	for n := h.buckets[h.bucketIndex(key)]; n != nil; n = n.next {
		if h.equal(key, n.item) {
			return n.item, true
		}
	}

	return item, false
}

// Contains checks whether the HashTable holds an item the given key identifies.
func (h *HashTable[K, T]) Contains(key K) (has bool) {
	_, has = h.Lookup(key)

	return has
}

// Remove detaches the item the given key identifies from the HashTable and poisons its link. It returns
// false without touching the table if no item matches.
func (h *HashTable[K, T]) Remove(key K) (removed bool) {
	bucket := h.bucketIndex(key)

	var prev *Node[T]
	for n := h.buckets[bucket]; n != nil; prev, n = n, n.next {
		if h.equal(key, n.item) {
			if prev != nil {
				prev.next = n.next
			} else {
				h.buckets[bucket] = n.next
			}
			n.next = h.poisonNext

			h.size--

			return true
		}
	}

	return false
}

// RemoveAll detaches all items from the HashTable by resetting the bucket heads. The detached chains are
// not walked, so the links of their records keep their last state.
func (h *HashTable[K, T]) RemoveAll() {
	if h.size == 0 {
		return
	}

	for i := range h.buckets {
		h.buckets[i] = nil
	}

	h.size = 0
}

// ForEach executes the given callback for every item in the HashTable, walking the buckets in order and
// each chain front to back. The iteration is aborted if the callback returns false. The next link is
// pre-saved, so the callback may remove the current item.
func (h *HashTable[K, T]) ForEach(callback func(item T) bool) {
	for _, head := range h.buckets {
		for n := head; n != nil; {
			n.ensureNotPoison()
			next := n.next
			if !callback(n.item) {
				return
			}
			n = next
		}
	}
}

// ForEachPossible executes the given callback for every item in the single bucket chain the given key
// hashes to, which covers all items an equality policy relaxed to a multimap could match. The iteration is
// aborted if the callback returns false. The next link is pre-saved, so the callback may remove the
// current item.
func (h *HashTable[K, T]) ForEachPossible(key K, callback func(item T) bool) {
	for n := h.buckets[h.bucketIndex(key)]; n != nil; {
		n.ensureNotPoison()
		next := n.next
		if !callback(n.item) {
			return
		}
		n = next
	}
}

// String returns a human readable version of the HashTable.
func (h *HashTable[K, T]) String() string {
	return stringify.Struct("HashTable",
		stringify.NewStructField("size", h.size),
		stringify.NewStructField("numBuckets", len(h.buckets)),
	)
}

// bind resolves the Node embedded in the given item and stores the back reference that Item recovers.
func (h *HashTable[K, T]) bind(item T) *Node[T] {
	n := h.node(item)
	if n == nil {
		panic(ErrNilNode)
	}
	n.item = item

	return n
}

// bucketIndex maps the given key to its bucket.
func (h *HashTable[K, T]) bucketIndex(key K) int {
	return int(h.hash(key) % uint64(len(h.buckets)))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// Options define options for a HashTable.
type Options[T any] struct {
	// An optional handler that runs when an insert displaces the item already held under an equal key.
	collide func(oldItem T, newItem T, auxiliaryData any)

	// An opaque value that is passed through to every collision handler invocation.
	auxiliaryData any
}

// Option is a function setting an Options option.
type Option[T any] func(opts *Options[T])

// WithCollisionHandler defines the handler that runs when an insert displaces the item already held under
// an equal key. It receives the displaced item, the item that took its place and the table's auxiliary
// data, and it is the only way the displaced item's resources can be reclaimed.
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
