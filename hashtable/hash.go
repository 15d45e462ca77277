package hashtable

// StringHash maps a string to a hash code with the djb2 algorithm, a fast non-cryptographic hash with a
// good distribution on short keys. Its signature matches the hash policy of a HashTable with string keys.
func StringHash(key string) (hash uint64) {
	hash = 5381
	for i := 0; i < len(key); i++ {
		hash = (hash << 5) + hash + uint64(key[i])
	}

	return hash
}
