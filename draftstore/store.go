// Package draftstore implements the draft persistence collaborator of
// spec.md §5 and §6.4: atomic write-then-rename storage of a compiled
// request under an opaque id, with a TTL checked lazily on read
// (SPEC_FULL.md §10.4).
//
// Atomic-write pattern grounded on mattcburns-shoal-provision/internal/
// provisioner/dispatcher.writeAtomic: write to a temp file in the target
// directory, fsync, close, then os.Rename into place.
package draftstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrExpired is returned by Get when a draft's TTL has elapsed. The
// backing file is deleted before this error is returned, implementing
// "expired drafts are deleted on first access after expiry" (spec.md §5).
var ErrExpired = errors.New("draftstore: draft expired")

// ErrNotFound is returned by Get when no draft exists for id.
var ErrNotFound = errors.New("draftstore: draft not found")

type record struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is a directory of one JSON file per draft.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating it if necessary.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("draftstore: open %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Put stores payload under a freshly generated id, expiring after ttl,
// and returns the id and the computed expiry.
func (s *Store) Put(payload []byte, ttl time.Duration) (id string, expiresAt time.Time, err error) {
	id = uuid.NewString()
	expiresAt = time.Now().Add(ttl)
	rec := record{Payload: payload, ExpiresAt: expiresAt}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("draftstore: encode draft %s: %w", id, err)
	}
	if err := writeAtomic(s.path(id), data, 0o644); err != nil {
		return "", time.Time{}, fmt.Errorf("draftstore: write draft %s: %w", id, err)
	}
	return id, expiresAt, nil
}

// Get returns the payload stored under id. If the draft's TTL has
// elapsed, its file is removed and ErrExpired is returned.
func (s *Store) Get(id string) ([]byte, error) {
	path := s.path(id)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draftstore: read draft %s: %w", id, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("draftstore: decode draft %s: %w", id, err)
	}
	if time.Now().After(rec.ExpiresAt) {
		_ = os.Remove(path)
		return nil, ErrExpired
	}
	return rec.Payload, nil
}

// Delete removes a draft unconditionally, ignoring a not-found error.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
