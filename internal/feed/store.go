// internal/feed/store.go
//
// In-memory ordered snapshot store backing the development history service.
// Frames are loaded once from a directory of PNG files; file modification
// time becomes the snapshot timestamp.

package feed

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"logoline/internal/history"
)

// Entry is one stored frame.
type Entry struct {
	Time time.Time
	PNG  []byte
}

// Label is the opaque timestamp label used on the wire.
func (e Entry) Label() string {
	return e.Time.UTC().Format(time.RFC3339Nano)
}

// Store holds frames in chronological order.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	byLabel map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byLabel: map[string]int{}}
}

// LoadDir fills a store from every .png file in dir, ordered by
// modification time.
func LoadDir(dir string) (*Store, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("feed: glob %s: %w", dir, err)
	}
	type frame struct {
		mtime time.Time
		path  string
	}
	frames := make([]frame, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("feed: stat %s: %w", path, err)
		}
		frames = append(frames, frame{mtime: info.ModTime(), path: path})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].mtime.Before(frames[j].mtime) })

	store := NewStore()
	for _, f := range frames {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("feed: read %s: %w", f.path, err)
		}
		store.Append(f.mtime, data)
	}
	return store, nil
}

// Append adds a frame at the end of the timeline. Timestamps are expected
// to arrive in order; the store does not re-sort.
func (s *Store) Append(t time.Time, png []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := Entry{Time: t, PNG: png}
	s.byLabel[entry.Label()] = len(s.entries)
	s.entries = append(s.entries, entry)
}

// Len reports the number of stored frames.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshots returns the wire representation of the timeline, capped at
// limit when limit > 0.
func (s *Store) Snapshots(limit int) history.History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make(history.History, 0, n)
	for _, entry := range s.entries[:n] {
		out = append(out, history.Snapshot{
			Time: entry.Label(),
			Logo: base64.StdEncoding.EncodeToString(entry.PNG),
		})
	}
	return out
}

// Index returns the timestamp-only view of the timeline.
func (s *Store) Index() []history.IndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]history.IndexEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, history.IndexEntry{Time: entry.Label()})
	}
	return out
}

// At looks up a frame by its timestamp label.
func (s *Store) At(label string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byLabel[strings.TrimSpace(label)]
	if !ok {
		return nil, false
	}
	return s.entries[idx].PNG, true
}
