package store

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestMemStoreGetMissing(t *testing.T) {
	s := NewMemStore(0)
	if v, ok := s.Get([]byte("missing")); ok || v != nil {
		t.Fatalf("Get(missing) = (%x, %v), want (nil, false)", v, ok)
	}
}

func TestMemStoreSetGet(t *testing.T) {
	cases := []struct {
		name  string
		key   []byte
		value []byte
	}{
		{"ascii", []byte("message"), []byte("Hey")},
		{"binary key", []byte{0x00, 0xff}, []byte("v")},
		{"empty value", []byte("k"), []byte{}},
		{"empty key", []byte{}, []byte("v")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewMemStore(0)
			if err := s.Set(tc.key, tc.value); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			v, ok := s.Get(tc.key)
			if !ok {
				t.Fatal("Get() did not find the key")
			}
			if !bytes.Equal(v, tc.value) {
				t.Fatalf("Get() = %x, want %x", v, tc.value)
			}
		})
	}
}

func TestMemStoreOverwrite(t *testing.T) {
	s := NewMemStore(0)
	key := []byte("message")
	s.Set(key, []byte("Hey"))
	s.Set(key, []byte("value"))

	v, ok := s.Get(key)
	if !ok || !bytes.Equal(v, []byte("value")) {
		t.Fatalf("Get() = (%q, %v), want (\"value\", true)", v, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestMemStoreSetIdempotent(t *testing.T) {
	s := NewMemStore(0)
	for i := 0; i < 10; i++ {
		s.Set([]byte("k"), []byte("v"))
	}
	if v, _ := s.Get([]byte("k")); !bytes.Equal(v, []byte("v")) {
		t.Fatalf("Get() = %q, want \"v\"", v)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestMemStoreKeyIsolation(t *testing.T) {
	s := NewMemStore(0)
	s.Set([]byte("a"), []byte("1"))
	s.Set([]byte("b"), []byte("2"))

	if v, _ := s.Get([]byte("a")); !bytes.Equal(v, []byte("1")) {
		t.Fatalf("Get(a) = %q after setting b", v)
	}
	if v, _ := s.Get([]byte("b")); !bytes.Equal(v, []byte("2")) {
		t.Fatalf("Get(b) = %q", v)
	}
}

func TestMemStoreCopiesValues(t *testing.T) {
	s := NewMemStore(0)
	value := []byte("orig")
	s.Set([]byte("k"), value)
	value[0] = 'X'

	got, _ := s.Get([]byte("k"))
	if !bytes.Equal(got, []byte("orig")) {
		t.Fatalf("stored value aliased the caller's buffer: %q", got)
	}

	got[0] = 'Y'
	again, _ := s.Get([]byte("k"))
	if !bytes.Equal(again, []byte("orig")) {
		t.Fatalf("returned value aliased the store's buffer: %q", again)
	}
}

func TestMemStoreShardRounding(t *testing.T) {
	for _, n := range []int{0, 1, 3, 64, 100} {
		s := NewMemStore(n)
		if got := len(s.shards); got&(got-1) != 0 || got == 0 {
			t.Errorf("NewMemStore(%d) made %d shards, want a power of two", n, got)
		}
	}
}

func TestMemStoreConcurrentSameKey(t *testing.T) {
	s := NewMemStore(0)
	key := []byte("contended")

	const writers = 32
	values := make([][]byte, writers)
	for i := range values {
		values[i] = []byte(fmt.Sprintf("value-%d", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(v []byte) {
			defer wg.Done()
			s.Set(key, v)
		}(values[i])
	}
	wg.Wait()

	got, ok := s.Get(key)
	if !ok {
		t.Fatal("key missing after concurrent writes")
	}
	for _, v := range values {
		if bytes.Equal(got, v) {
			return
		}
	}
	t.Fatalf("final value %q is not one of the submitted values", got)
}

func TestMemStoreConcurrentMixed(t *testing.T) {
	s := NewMemStore(8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := []byte(fmt.Sprintf("key-%d", i%4))
			for j := 0; j < 200; j++ {
				s.Set(key, []byte(fmt.Sprintf("v-%d-%d", i, j)))
				if _, ok := s.Get(key); !ok {
					t.Errorf("key %q vanished", key)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
}
