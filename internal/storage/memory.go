package storage

import (
	"errors"
	"io/fs"
	"sort"
	"sync"
)

// errWriteRefused is returned by a MemoryBackend set to fail writes.
var errWriteRefused = errors.New("write refused")

// MemoryBackend keeps values in a map. It backs throwaway stores in tests
// and can be told to refuse writes to exercise failure handling.
type MemoryBackend struct {
	mu         sync.Mutex
	data       map[string][]byte
	failWrites bool
}

// NewMemory returns a store over an empty MemoryBackend.
func NewMemory(namespace string) (*Store, *MemoryBackend) {
	m := &MemoryBackend{data: make(map[string][]byte)}
	return New(m, namespace, "", nil), m
}

// FailWrites makes every subsequent Write return an error while on is true.
func (m *MemoryBackend) FailWrites(on bool) {
	m.mu.Lock()
	m.failWrites = on
	m.mu.Unlock()
}

func (m *MemoryBackend) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: key, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Write(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errWriteRefused
	}
	m.data[key] = append([]byte(nil), val...)
	return nil
}

func (m *MemoryBackend) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return &fs.PathError{Op: "remove", Path: key, Err: fs.ErrNotExist}
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// Keys streams the stored keys in sorted order.
func (m *MemoryBackend) Keys(cancel <-chan struct{}) <-chan string {
	m.mu.Lock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	m.mu.Unlock()
	sort.Strings(keys)

	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, k := range keys {
			select {
			case ch <- k:
			case <-cancel:
				return
			}
		}
	}()
	return ch
}

// Put stores a raw value under key, bypassing FailWrites.
func (m *MemoryBackend) Put(key string, val []byte) {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), val...)
	m.mu.Unlock()
}

// Get returns the raw value under key.
func (m *MemoryBackend) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}
