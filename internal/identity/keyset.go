package identity

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const falsePositiveRate = 0.01

// KeySet is the set of identity keys already present in a destination playlist.
//
// Keys are only ever inserted. The bloom filter answers most "definitely absent" lookups without touching the map;
// the map keeps membership exact.
type KeySet struct {
	mu    sync.Mutex
	keys  map[Key]struct{}
	bloom *bloom.BloomFilter
}

// NewKeySet creates a set sized for about capacity keys and seeded with keys.
func NewKeySet(capacity int, keys ...Key) *KeySet {
	if capacity < len(keys) {
		capacity = len(keys)
	}
	if capacity < 1 {
		capacity = 1
	}

	s := &KeySet{
		keys:  make(map[Key]struct{}, capacity),
		bloom: bloom.NewWithEstimates(uint(capacity), falsePositiveRate),
	}
	for _, k := range keys {
		s.insert(k)
	}
	return s
}

// Has reports whether key is in the set.
func (s *KeySet) Has(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.has(key)
}

// Insert adds key to the set.
func (s *KeySet) Insert(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(key)
}

// Len returns the number of distinct keys.
func (s *KeySet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// TryAdd runs add only when key is absent and inserts key once add succeeds.
//
// The membership check, the add call and the insert happen under one lock, so two callers can never both add the same key.
// It returns duplicate=true without calling add when key is already present.
func (s *KeySet) TryAdd(key Key, add func() error) (duplicate bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has(key) {
		return true, nil
	}
	if err := add(); err != nil {
		return false, err
	}
	s.insert(key)
	return false, nil
}

func (s *KeySet) has(key Key) bool {
	if !s.bloom.TestString(string(key)) {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

func (s *KeySet) insert(key Key) {
	if _, ok := s.keys[key]; ok {
		return
	}
	s.keys[key] = struct{}{}
	s.bloom.AddString(string(key))
}
