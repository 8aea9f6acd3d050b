// Package jsonstore persists each collection as one JSON document under a data directory.
//
// Every collection has its own lock, held for the whole read-modify-write cycle, and documents
// are replaced atomically through a temp file and rename.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoChange lets an Update callback finish without rewriting the document.
var ErrNoChange = errors.New("jsonstore: no change")

const indent = "    "

type Store struct {
	dir   string
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.RWMutex),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) lock(name string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[name] = l
	}
	return l
}

// Load decodes the named document into v. A missing or empty document leaves v untouched
// and reports false.
func (s *Store) Load(name string, v any) (bool, error) {
	l := s.lock(name)
	l.RLock()
	defer l.RUnlock()
	return s.read(name, v)
}

// Raw returns the document bytes, or nil when it does not exist.
func (s *Store) Raw(name string) (json.RawMessage, error) {
	l := s.lock(name)
	l.RLock()
	defer l.RUnlock()

	b, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	if !json.Valid(b) {
		return nil, &DecodeError{Name: name, Err: errors.New("invalid JSON")}
	}
	return b, nil
}

func (s *Store) Save(name string, v any) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return s.write(name, v)
}

// Update decodes the document into v, runs fn and persists v, all under the collection's
// write lock. If fn returns an error nothing is written; ErrNoChange is swallowed.
func (s *Store) Update(name string, v any, fn func() error) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	if _, err := s.read(name, v); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return s.write(name, v)
}

// Mutate is Update for a typed document.
func Mutate[T any](s *Store, name string, fn func(doc *T) error) error {
	var doc T
	return s.Update(name, &doc, func() error { return fn(&doc) })
}

// Get is Load for a typed document; missing documents yield the zero value.
func Get[T any](s *Store, name string) (T, error) {
	var doc T
	_, err := s.Load(name, &doc)
	return doc, err
}

type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s.json: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (s *Store) read(name string, v any) (bool, error) {
	b, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, &DecodeError{Name: name, Err: err}
	}
	return true, nil
}

func (s *Store) write(name string, v any) error {
	b, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
