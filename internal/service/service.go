// Package service maps Get/Set calls onto a kv.Store and onto the wire
// Status vocabulary. It is the layer the transports talk to; it holds no
// state of its own beyond the injected store.
package service

import (
	"github.com/hashicorp/go-hclog"

	"github.com/imishinist/espikey/api/kvpb"
	"github.com/imishinist/espikey/pkg/kv"
)

// KV translates Get/Set operations into store calls and status codes.
// Each call is independent; there are no sessions or multi-step protocols.
type KV struct {
	store  kv.Store
	logger hclog.Logger

	// maxValueBytes rejects Set values larger than this with STATUS_ERROR.
	// Zero means no limit.
	maxValueBytes int
}

// Option configures a KV service.
type Option func(*KV)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l hclog.Logger) Option {
	return func(s *KV) { s.logger = l }
}

// WithMaxValueBytes caps accepted value sizes. Zero disables the cap.
func WithMaxValueBytes(n int) Option {
	return func(s *KV) { s.maxValueBytes = n }
}

// New creates a KV service over the given store.
// The store is injected, never global, so tests can isolate state.
func New(store kv.Store, opts ...Option) *KV {
	s := &KV{
		store:  store,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get looks up key. Absence is a valid outcome, not an error:
// it yields STATUS_NOT_FOUND and a nil value. The returned value is
// non-nil exactly when the status is STATUS_OK.
func (s *KV) Get(key []byte) (kvpb.Status, []byte) {
	value, found := s.store.Get(key)
	if !found {
		s.logger.Debug("get miss", "key_len", len(key))
		return kvpb.Status_STATUS_NOT_FOUND, nil
	}
	if value == nil {
		value = []byte{}
	}
	s.logger.Debug("get hit", "key_len", len(key), "value_len", len(value))
	return kvpb.Status_STATUS_OK, value
}

// Set stores value under key. A completed Set is visible to every Get
// that starts afterward.
func (s *KV) Set(key, value []byte) kvpb.Status {
	if s.maxValueBytes > 0 && len(value) > s.maxValueBytes {
		s.logger.Warn("set rejected, value too large",
			"key_len", len(key), "value_len", len(value), "limit", s.maxValueBytes)
		return kvpb.Status_STATUS_ERROR
	}
	if err := s.store.Set(key, value); err != nil {
		s.logger.Error("set failed", "key_len", len(key), "error", err)
		return kvpb.Status_STATUS_ERROR
	}
	s.logger.Debug("set", "key_len", len(key), "value_len", len(value))
	return kvpb.Status_STATUS_OK
}
