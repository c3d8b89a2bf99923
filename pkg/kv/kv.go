package kv

// Store defines the interface for a key-value store.
// Implementations of this interface can be swapped out,
// allowing for different storage backends.
//
// Keys and values are opaque byte sequences. Empty keys and empty values
// are legal; implementations must not interpret or transform either.
type Store interface {
	// Get retrieves the value associated with the given key.
	// Returns the value and true if the key exists, or nil and false if not.
	// The returned slice is owned by the caller.
	Get(key []byte) ([]byte, bool)

	// Set stores a key-value pair, replacing any previous value atomically.
	// Returns an error if the operation fails.
	Set(key, value []byte) error
}
