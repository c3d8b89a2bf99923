package store

import (
	"hash/fnv"
	"sync"

	"github.com/imishinist/espikey/pkg/kv"
)

// DefaultShards is the shard count used when the caller passes 0.
const DefaultShards = 64

// MemStore is an in-memory implementation of the kv.Store interface.
// The keyspace is striped across shards by fnv-1a hash, each shard a map
// protected by its own RWMutex, so operations on distinct keys rarely
// contend and never block each other across shards.
type MemStore struct {
	shards []shard
	mask   uint32
}

type shard struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Compile-time check to ensure MemStore implements kv.Store.
var _ kv.Store = (*MemStore)(nil)

// NewMemStore creates a MemStore with the given shard count, rounded up to
// a power of two. Pass 0 for the default.
func NewMemStore(shards int) *MemStore {
	if shards <= 0 {
		shards = DefaultShards
	}
	n := 1
	for n < shards {
		n <<= 1
	}
	s := &MemStore{
		shards: make([]shard, n),
		mask:   uint32(n - 1),
	}
	for i := range s.shards {
		s.shards[i].data = make(map[string][]byte)
	}
	return s
}

func (s *MemStore) shardFor(key []byte) *shard {
	h := fnv.New32a()
	h.Write(key)
	return &s.shards[h.Sum32()&s.mask]
}

// Get retrieves a value by key from the store.
// Returns a copy of the value and true if found, nil and false otherwise.
func (s *MemStore) Get(key []byte) ([]byte, bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	val, ok := sh.data[string(key)]
	if !ok {
		return nil, false
	}
	// Copy so later Sets cannot mutate what the caller holds.
	out := make([]byte, len(val))
	copy(out, val)
	return out, true
}

// Set stores a key-value pair in the store, replacing any previous value.
// Always returns nil for in-memory operations.
func (s *MemStore) Set(key, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.data[string(key)] = stored
	return nil
}

// Len returns the number of entries across all shards.
func (s *MemStore) Len() int {
	total := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		total += len(sh.data)
		sh.mu.RUnlock()
	}
	return total
}
