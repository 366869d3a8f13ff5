package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const recordExt = ".json"

// FileStore keeps one JSON file per session under a root directory. Writes go
// to a temporary file first and are renamed into place.
type FileStore struct {
	root   string
	pretty bool
	now    func() time.Time
	mu     sync.RWMutex
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	o := newOptions(opts)
	return &FileStore{root: root, pretty: o.pretty, now: o.now}, nil
}

// Path returns the file holding session id.
func (s *FileStore) Path(id string) string {
	return filepath.Join(s.root, id+recordExt)
}

func (s *FileStore) Save(_ context.Context, r Record) error {
	defer observe("save", time.Now())
	if err := checkID(r.ID); err != nil {
		return err
	}
	r.UpdatedAt = s.now()

	var (
		body []byte
		err  error
	)
	if s.pretty {
		body, err = json.MarshalIndent(r, "", "  ")
	} else {
		body, err = json.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("encode session %s: %w", r.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.root, r.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("write session %s: %w", r.ID, err)
	}
	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session %s: %w", r.ID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session %s: %w", r.ID, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(r.ID)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session %s: %w", r.ID, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, id string) (Record, error) {
	defer observe("load", time.Now())
	if err := checkID(id); err != nil {
		return Record{}, err
	}

	s.mu.RLock()
	body, err := os.ReadFile(s.Path(id))
	s.mu.RUnlock()
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("read session %s: %w", id, err)
	}

	var r Record
	if err := json.Unmarshal(body, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %s: %w", ErrCorrupt, id, err)
	}
	if r.ID != id {
		return Record{}, fmt.Errorf("%w: %s holds id %q", ErrCorrupt, id, r.ID)
	}
	if err := r.State.Validate(); err != nil {
		return Record{}, fmt.Errorf("%w: %s: %w", ErrCorrupt, id, err)
	}
	return r, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	defer observe("delete", time.Now())
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

func (s *FileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), recordExt) {
			n++
		}
	}
	return n
}

// checkID keeps ids inside the store directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
