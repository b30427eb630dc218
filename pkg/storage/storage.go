// Package storage implements a flat-file keyed record store. Every record is
// one JSON document stored at <root>/<collection>/<key>.json. There is no
// locking: concurrent writers to the same key race and the last write wins.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrExists is returned by Create when the key already holds a record.
	ErrExists = errors.New("record already exists")
	// ErrNotFound is returned when no record is stored under the key.
	ErrNotFound = errors.New("record not found")
)

// Store reads and writes JSON records rooted at a base directory.
type Store struct {
	root string
}

// Open initialises a Store at root, creating the directory if needed.
func Open(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("storage: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &Store{root: root}, nil
}

// Create writes a new record. It fails with ErrExists if the key is taken.
func (s *Store) Create(collection, key string, record any) error {
	path, err := s.recordPath(collection, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: create collection dir: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("storage: encode record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists
		}
		return fmt.Errorf("storage: create record: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("storage: write record: %w", err)
	}
	return nil
}

// Read loads the record stored under collection/key into dest.
func (s *Store) Read(collection, key string, dest any) error {
	path, err := s.recordPath(collection, key)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: read record: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("storage: decode record: %w", err)
	}
	return nil
}

// Update replaces an existing record. It fails with ErrNotFound if the key is
// empty.
func (s *Store) Update(collection, key string, record any) error {
	path, err := s.recordPath(collection, key)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: stat record: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("storage: encode record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write record: %w", err)
	}
	return nil
}

// Delete removes the record stored under collection/key.
func (s *Store) Delete(collection, key string) error {
	path, err := s.recordPath(collection, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: delete record: %w", err)
	}
	return nil
}

// List returns the keys present in a collection, without the .json suffix.
// A collection that was never written to lists as empty.
func (s *Store) List(collection string) ([]string, error) {
	if err := validateName(collection); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list collection: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}

func (s *Store) recordPath(collection, key string) (string, error) {
	if err := validateName(collection); err != nil {
		return "", err
	}
	if err := validateName(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, collection, key+".json"), nil
}

// validateName rejects empty names and names that would escape the store root.
func validateName(name string) error {
	if name == "" {
		return errors.New("storage: empty name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("storage: invalid name %q", name)
	}
	return nil
}

// Collection binds a record type to a named collection, so callers get typed
// reads without repeating the collection name. Schemas are enforced here at
// the edge; the store itself stays untyped.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection returns a typed view over a named collection.
func NewCollection[T any](store *Store, name string) Collection[T] {
	return Collection[T]{store: store, name: name}
}

// Name reports the collection name.
func (c Collection[T]) Name() string { return c.name }

// Create stores a new record under key.
func (c Collection[T]) Create(key string, record T) error {
	return c.store.Create(c.name, key, record)
}

// Read loads the record stored under key.
func (c Collection[T]) Read(key string) (T, error) {
	var record T
	if err := c.store.Read(c.name, key, &record); err != nil {
		return record, err
	}
	return record, nil
}

// Update replaces the record stored under key.
func (c Collection[T]) Update(key string, record T) error {
	return c.store.Update(c.name, key, record)
}

// Delete removes the record stored under key.
func (c Collection[T]) Delete(key string) error {
	return c.store.Delete(c.name, key)
}
