// Package store owns the saved-maps collection: it loads it from a single data
// file at startup, appends new maps and writes the whole collection back after
// every append.
//
// Every append rewrites the full file. That is linear in the number of maps and
// fine for a personal list; it is the first thing to revisit for large data.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/entrhq/mymaps/pkg/maps"
)

var (
	// ErrCorrupt means the data file exists but cannot be decoded.
	ErrCorrupt = errors.New("store: data file is corrupt")
	// ErrUnsupportedVersion means the file was written by a newer or unknown format version.
	ErrUnsupportedVersion = errors.New("store: unsupported data file version")
	// ErrWrite means the write-through after a mutation failed and the mutation was rolled back.
	ErrWrite = errors.New("store: failed to persist maps")
	// ErrOutOfRange is returned for a position outside the collection.
	ErrOutOfRange = errors.New("store: position out of range")
)

// CorruptionPolicy decides what Load does with a file that cannot be decoded.
type CorruptionPolicy string

const (
	// CorruptionFail returns the decode error to the caller.
	CorruptionFail CorruptionPolicy = "fail"
	// CorruptionQuarantine moves the bad file aside and starts empty.
	CorruptionQuarantine CorruptionPolicy = "quarantine"
)

// ParseCorruptionPolicy accepts "fail" or "quarantine"; empty means fail.
func ParseCorruptionPolicy(s string) (CorruptionPolicy, error) {
	switch CorruptionPolicy(s) {
	case "", CorruptionFail:
		return CorruptionFail, nil
	case CorruptionQuarantine:
		return CorruptionQuarantine, nil
	default:
		return "", fmt.Errorf("store: unknown corruption policy %q (want fail or quarantine)", s)
	}
}

// Observer is notified after the in-memory collection changes. Each call
// carries a snapshot the observer may keep; it never aliases store state.
type Observer interface {
	// Reloaded reports that the whole collection was replaced by a load.
	Reloaded(c Collection)
	// Inserted reports that exactly one map was appended at pos.
	Inserted(pos int, c Collection)
}

// Options configures a Store.
type Options struct {
	// Format overrides the encoding chosen from the file extension.
	Format Format
	// OnCorrupt selects the recovery policy for undecodable files.
	OnCorrupt CorruptionPolicy
}

// Store is the single source of truth for the saved maps. It exclusively owns
// its data file; nothing else should read or write it.
type Store struct {
	path   string
	format Format
	policy CorruptionPolicy

	mu          sync.Mutex
	maps        Collection
	observers   []Observer
	quarantined string

	now       func() time.Time                     // injectable for deterministic tests
	writeFile func(path string, data []byte) error // injectable to simulate storage failures
}

// New creates a Store for the data file at path. It does not touch the
// file; call Load to read it.
func New(path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: empty data file path")
	}
	policy, err := ParseCorruptionPolicy(string(opts.OnCorrupt))
	if err != nil {
		return nil, err
	}
	format := opts.Format
	if format == "" {
		format = FormatForPath(path)
	}
	return &Store{
		path:      path,
		format:    format,
		policy:    policy,
		maps:      Collection{},
		now:       time.Now,
		writeFile: atomicWriteFile,
	}, nil
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Format returns the encoding used for the data file.
func (s *Store) Format() Format {
	return s.format
}

// Subscribe registers o for change notifications.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Load reads the data file and replaces the in-memory collection with its
// contents. A missing file is a first run and yields an empty collection.
func (s *Store) Load() (Collection, error) {
	c, quarantined, err := s.read()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.maps = c
	s.quarantined = quarantined
	observers := s.observersLocked()
	s.mu.Unlock()

	for _, o := range observers {
		o.Reloaded(c.Clone())
	}
	return c.Clone(), nil
}

func (s *Store) read() (Collection, string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("store: data file does not exist yet", "path", s.path)
		return Collection{}, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("store: read %s: %w", s.path, err)
	}

	c, err := Decode(s.format, raw)
	if err == nil {
		slog.Debug("store: loaded maps", "path", s.path, "count", len(c))
		return c, "", nil
	}
	if s.policy != CorruptionQuarantine {
		return nil, "", fmt.Errorf("store: load %s: %w", s.path, err)
	}

	dest := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if rerr := os.Rename(s.path, dest); rerr != nil {
		return nil, "", fmt.Errorf("store: quarantine %s: %w (decode error: %w)", s.path, rerr, err)
	}
	slog.Warn("store: quarantined corrupt data file", "path", s.path, "moved_to", dest, "err", err)
	return Collection{}, dest, nil
}

// Quarantined returns where the last Load moved a corrupt file, or "" if it did not.
func (s *Store) Quarantined() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quarantined
}

// Append adds m to the end of the collection and writes the whole collection
// through to disk. If the write fails the append is undone and the returned
// error wraps ErrWrite; memory and disk never diverge. On success it returns
// the position of the new map.
func (s *Store) Append(m maps.Map) (int, error) {
	s.mu.Lock()
	next := make(Collection, len(s.maps), len(s.maps)+1)
	copy(next, s.maps)
	next = append(next, m.Clone())
	pos := len(next) - 1

	if err := s.save(next); err != nil {
		s.mu.Unlock()
		return -1, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	s.maps = next
	observers := s.observersLocked()
	s.mu.Unlock()

	for _, o := range observers {
		o.Inserted(pos, next.Clone())
	}
	return pos, nil
}

// Save encodes c and replaces the data file with it. It does not change the
// in-memory collection; Load picks the new contents up.
func (s *Store) Save(c Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(c)
}

func (s *Store) save(c Collection) error {
	b, err := Encode(s.format, c)
	if err != nil {
		return err
	}
	if err := s.writeFile(s.path, b); err != nil {
		return err
	}
	slog.Debug("store: saved maps", "path", s.path, "count", len(c))
	return nil
}

// Snapshot returns a deep copy of the current collection.
func (s *Store) Snapshot() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maps.Clone()
}

// At returns a copy of the map at pos.
func (s *Store) At(pos int) (maps.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos < 0 || pos >= len(s.maps) {
		return maps.Map{}, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, pos, len(s.maps))
	}
	return s.maps[pos].Clone(), nil
}

// Len returns the number of maps.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.maps)
}

func (s *Store) observersLocked() []Observer {
	out := make([]Observer, len(s.observers))
	copy(out, s.observers)
	return out
}

// atomicWriteFile writes data to a temp file next to path and renames it
// into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
