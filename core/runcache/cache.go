package runcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FileStat identifies one input file for fingerprinting.
type FileStat struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Fingerprint derives a content-addressed cache key from an input file set.
// The set is sorted by name first, so the key is independent of discovery
// order: identical inputs always produce the same fingerprint.
func Fingerprint(inputs []FileStat) string {
	sorted := make([]FileStat, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	h := sha256.New()
	for _, in := range sorted {
		fmt.Fprintf(h, "%s|%d|%d\n", in.Name, in.Size, in.ModTime.UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Entry is one cached pipeline result.
type Entry struct {
	// Value is the cached result.
	Value any

	// Built is when the entry was computed.
	Built time.Time

	// TTL is the entry's time-to-live. Zero disables caching.
	TTL time.Duration
}

// IsExpired returns true once the entry has outlived its TTL.
func (e *Entry) IsExpired() bool {
	if e.TTL == 0 {
		return true
	}
	return time.Since(e.Built) > e.TTL
}

// Store caches pipeline results keyed by input fingerprint.
// Builds for the same key are collapsed through singleflight so concurrent
// requests never compute the same result twice.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	sf      singleflight.Group
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// GetOrBuild returns the cached value for key, building and storing it when
// absent or expired. The second return is true when the value was served
// from cache.
func (s *Store) GetOrBuild(key string, ttl time.Duration, build func() (any, error)) (any, bool, error) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry.Value, true, nil
	}

	cached := false
	result, err, _ := s.sf.Do(key, func() (any, error) {
		// Double-check after acquiring the singleflight slot.
		s.mu.RLock()
		entry, exists := s.entries[key]
		s.mu.RUnlock()
		if exists && !entry.IsExpired() {
			cached = true
			return entry.Value, nil
		}

		value, err := build()
		if err != nil {
			return nil, err
		}

		if ttl > 0 {
			s.mu.Lock()
			s.entries[key] = &Entry{Value: value, Built: time.Now(), TTL: ttl}
			s.mu.Unlock()
		}
		return value, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, cached, nil
}

// Invalidate drops the entry for key, forcing the next GetOrBuild to rebuild.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear drops every cached entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*Entry)
	s.mu.Unlock()
}
