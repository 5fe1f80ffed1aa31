// Package storage persists the planner's collections as JSON values in a
// namespaced key-value store backed by diskv. One key maps to one file in
// the data directory.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/xolan/timeflow/internal/logging"
)

const (
	// DefaultNamespace prefixes every key unless configured otherwise.
	DefaultNamespace = "timeflow"

	// NameTasks holds a JSON array of tasks.
	NameTasks = "tasks"
	// NameDiaryEntries holds a JSON object of date key to diary text.
	NameDiaryEntries = "diary_entries"
	// NameLegacyDiary holds a bare string written by older versions.
	NameLegacyDiary = "diary"
	// NameDiaryLastDate holds the last viewed diary date as a bare string.
	NameDiaryLastDate = "diary_last_date"
	// NameDiaryMigrated marks that the legacy entry has been migrated.
	NameDiaryMigrated = "diary_migrated"
	// NameGoals holds a JSON array of goals.
	NameGoals = "goals"
)

// Names lists every key name the planner reads or writes, in display order.
var Names = []string{NameTasks, NameDiaryEntries, NameLegacyDiary, NameDiaryLastDate, NameDiaryMigrated, NameGoals}

// rawNames are stored as bare strings rather than JSON.
var rawNames = map[string]bool{
	NameLegacyDiary:   true,
	NameDiaryLastDate: true,
	NameDiaryMigrated: true,
}

// ErrStorage wraps every failure to read or write the backend.
var ErrStorage = errors.New("storage error")

// Backend is the subset of *diskv.Diskv the store needs.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
	Has(key string) bool
	Keys(cancel <-chan struct{}) <-chan string
}

// Store reads and writes namespaced values.
type Store struct {
	backend   Backend
	namespace string
	dir       string
	logger    *logging.Logger
}

// New creates a store over an existing backend. dir may be empty, in which
// case Watch is unavailable.
func New(backend Backend, namespace, dir string, logger *logging.Logger) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		backend:   backend,
		namespace: namespace,
		dir:       dir,
		logger:    logger.WithComponent("storage"),
	}
}

// Open creates the data directory if needed and returns a store that keeps
// one flat file per key inside it.
func Open(dir, namespace string, logger *logging.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: data directory is empty", ErrStorage)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrStorage, err)
	}

	d := diskv.New(diskv.Options{
		BasePath:  dir,
		Transform: func(string) []string { return []string{} },
		// No cache: another process may write the same files.
		CacheSizeMax: 0,
	})
	return New(d, namespace, dir, logger), nil
}

// Namespace returns the key prefix.
func (s *Store) Namespace() string {
	return s.namespace
}

// Dir returns the data directory, or "" for a store built over a custom backend.
func (s *Store) Dir() string {
	return s.dir
}

// Key returns the backend key for name.
func (s *Store) Key(name string) string {
	return s.namespace + "_" + name
}

// nameForKey is the inverse of Key. It returns "" for foreign keys.
func (s *Store) nameForKey(key string) string {
	prefix := s.namespace + "_"
	if !strings.HasPrefix(key, prefix) {
		return ""
	}
	return strings.TrimPrefix(key, prefix)
}

func (s *Store) read(name string) ([]byte, bool) {
	key := s.Key(name)
	data, err := s.backend.Read(key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warnw("read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Load decodes the JSON value stored under name. A missing key returns def.
// A value that fails to decode is logged and also returns def.
func Load[T any](s *Store, name string, def T) T {
	data, ok := s.read(name)
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warnw("discarding malformed value", "key", s.Key(name), "error", err)
		return def
	}
	return v
}

// Save encodes v as JSON and writes it under name.
func (s *Store) Save(name string, v interface{}) error {
	key := s.Key(name)
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warnw("encode failed", "key", key, "error", err)
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, key, err)
	}
	return s.write(key, data)
}

// ReadString returns the bare string stored under name.
func (s *Store) ReadString(name string) (string, bool) {
	data, ok := s.read(name)
	if !ok {
		return "", false
	}
	return string(data), true
}

// WriteString stores v under name without JSON encoding.
func (s *Store) WriteString(name, v string) error {
	return s.write(s.Key(name), []byte(v))
}

func (s *Store) write(key string, data []byte) error {
	if err := s.backend.Write(key, data); err != nil {
		s.logger.Warnw("write failed", "key", key, "error", err)
		return fmt.Errorf("%w: write %s: %v", ErrStorage, key, err)
	}
	s.logger.Debugw("saved", "key", key, "bytes", len(data))
	return nil
}

// Has reports whether a value is stored under name.
func (s *Store) Has(name string) bool {
	return s.backend.Has(s.Key(name))
}
