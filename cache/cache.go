// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cache stores typed values as JSON files with TTL and version
// invalidation. The urlkit scan command uses it to skip re-scanning an
// unchanged input file with unchanged parse options.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jongio/urlkit/fileutil"
	"github.com/jongio/urlkit/security"
)

// Options configures a Store.
type Options struct {
	Dir     string        // Directory to store cache files
	TTL     time.Duration // Time-to-live for entries; zero never expires
	Version string        // Entries written with a different version are misses
}

// Stats tracks cache hit/miss statistics.
type Stats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
	Errors int `json:"errors"`
}

// envelope is the on-disk format wrapping cached data with metadata.
type envelope struct {
	Metadata fileutil.CacheMetadata `json:"_cache"`
	Data     json.RawMessage        `json:"data"`
}

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)

// Store is a thread-safe file-backed cache of T values.
type Store[T any] struct {
	opts    Options
	now     func() time.Time
	mu      sync.RWMutex
	statsMu sync.Mutex
	stats   Stats
}

// New creates a Store rooted at opts.Dir. The directory is created lazily
// on the first Set.
func New[T any](opts Options) (*Store[T], error) {
	if err := security.ValidatePath(opts.Dir); err != nil {
		return nil, fmt.Errorf("invalid cache directory: %w", err)
	}
	return &Store[T]{opts: opts, now: time.Now}, nil
}

// Get loads the value stored under key. ok is false when the entry is
// missing, expired, or was written with another version.
func (s *Store[T]) Get(key string) (value T, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.path(key)
	if err != nil {
		s.record(&s.stats.Errors)
		return value, false, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is confined to the cache dir
	if err != nil {
		if os.IsNotExist(err) {
			s.record(&s.stats.Misses)
			return value, false, nil
		}
		s.record(&s.stats.Errors)
		return value, false, fmt.Errorf("failed to read cache file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.record(&s.stats.Errors)
		return value, false, fmt.Errorf("failed to parse cache file: %w", err)
	}

	if !env.Metadata.Valid(s.opts.TTL, s.opts.Version, s.now()) {
		s.record(&s.stats.Misses)
		return value, false, nil
	}

	if err := json.Unmarshal(env.Data, &value); err != nil {
		s.record(&s.stats.Errors)
		var zero T
		return zero, false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	s.record(&s.stats.Hits)
	return value, true, nil
}

// Set stores value under key.
func (s *Store[T]) Set(key string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fileutil.EnsureDir(s.opts.Dir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}

	return fileutil.AtomicWriteJSON(path, envelope{
		Metadata: fileutil.CacheMetadata{
			CachedAt: s.now(),
			Version:  s.opts.Version,
		},
		Data: raw,
	})
}

// Invalidate removes a specific cache entry.
func (s *Store[T]) Invalidate(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// Clear removes every .json entry in the cache directory.
func (s *Store[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.opts.Dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Stats returns cache hit/miss statistics.
func (s *Store[T]) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}

func (s *Store[T]) record(counter *int) {
	s.statsMu.Lock()
	*counter++
	s.statsMu.Unlock()
}

// path returns the file for key, confined to the cache directory.
func (s *Store[T]) path(key string) (string, error) {
	p := filepath.Join(s.opts.Dir, sanitizeKey(key)+".json")
	if _, err := security.ValidatePathWithinBases(p, s.opts.Dir); err != nil {
		return "", fmt.Errorf("invalid cache key %q: %w", key, err)
	}
	return p, nil
}

// sanitizeKey replaces characters that are unsafe in file names. Runs of
// dots and a trailing dot are replaced so the entry path never contains "..".
func sanitizeKey(key string) string {
	key = keySanitizer.ReplaceAllString(key, "_")
	for strings.Contains(key, "..") {
		key = strings.ReplaceAll(key, "..", "_")
	}
	if strings.HasSuffix(key, ".") {
		key = key[:len(key)-1] + "_"
	}
	return key
}

// Key derives a stable cache key from parts, such as an input file hash and
// an options fingerprint.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		_, _ = io.WriteString(h, p)
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashFile computes the SHA256 hash of a file for cache invalidation.
func HashFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- caller controls the path
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
