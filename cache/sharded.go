// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a sharded LRU cache safe for concurrent use.
//
// It backs the glyph mask cache of the font package, where several
// goroutines may lay out and rasterize text at once.
package cache

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 256

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a key's shard.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Uint64Hasher mixes the bits of u so that sequential keys spread over
// the shards.
func Uint64Hasher(u uint64) uint64 {
	u ^= u >> 33
	u *= 0xff51afd7ed558ccd
	u ^= u >> 33
	return u
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Sharded is a sharded LRU cache. Each shard evicts its least recently
// used entry once it holds capacity entries.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*list.Element
	lru     *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewSharded returns a cache holding up to capacity entries per shard.
// A capacity <= 0 selects DefaultCapacity.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*list.Element),
			lru:     list.New(),
		}
	}
	return c
}

func (c *Sharded[K, V]) shard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the value for key and marks it recently used.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[key]; ok {
		s.lru.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores value under key, evicting the oldest entry of the shard if it
// is full.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.setLocked(s, key, value)
}

func (c *Sharded[K, V]) setLocked(s *shard[K, V], key K, value V) {
	if el, ok := s.entries[key]; ok {
		el.Value.(*entry[K, V]).value = value
		s.lru.MoveToFront(el)
		return
	}
	for s.lru.Len() >= c.capacity {
		oldest := s.lru.Back()
		s.lru.Remove(oldest)
		delete(s.entries, oldest.Value.(*entry[K, V]).key)
		c.evictions.Add(1)
	}
	s.entries[key] = s.lru.PushFront(&entry[K, V]{key: key, value: value})
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. create runs with the shard locked, so concurrent callers for
// the same key wait instead of creating twice. Errors are not cached.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[key]; ok {
		s.lru.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry[K, V]).value, nil
	}
	c.misses.Add(1)
	v, err := create()
	if err != nil {
		return v, err
	}
	c.setLocked(s, key, v)
	return v, nil
}

// Delete removes key and reports whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(el)
	delete(s.entries, key)
	return true
}

// Clear removes all entries. Counters are kept.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		clear(s.entries)
		s.lru.Init()
		s.mu.Unlock()
	}
}

// Len returns the number of entries.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Capacity returns the per-shard capacity.
func (c *Sharded[K, V]) Capacity() int { return c.capacity }

// Stats returns the current counters.
func (c *Sharded[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
