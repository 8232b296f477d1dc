// Package store persists each interface's first-observed MAC address in
// a single JSON object file, mapping interface name to MAC string.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/macshift/macshift/utils"
)

const retryDelay = 100 * time.Millisecond

// Store is the original-MAC record. First write wins: once an interface
// has an entry it is never overwritten; deleting the file on disk is the
// only way to reset it.
type Store struct {
	path     string
	lockPath string
}

// New creates a Store backed by the JSON file at path, guarded by a
// flock at lockPath.
func New(path, lockPath string) *Store {
	return &Store{path: path, lockPath: lockPath}
}

// Get returns the recorded original MAC for iface. A missing file or
// missing entry is reported via ok=false, not an error.
func (s *Store) Get(ctx context.Context, iface string) (string, bool, error) {
	var mac string
	var ok bool
	err := s.withLock(ctx, func() error {
		m, err := s.load()
		if err != nil {
			return err
		}
		mac, ok = m[iface]
		return nil
	})
	return mac, ok, err
}

// Save records mac as iface's original unless an entry already exists.
// The whole file is rewritten either way, atomically.
func (s *Store) Save(ctx context.Context, iface, mac string) error {
	return s.withLock(ctx, func() error {
		m, err := s.load()
		if err != nil {
			return err
		}
		if _, ok := m[iface]; !ok {
			m[iface] = mac
		}
		return utils.AtomicWriteJSON(s.path, m)
	})
}

// load reads the full mapping. A missing file is an empty mapping;
// malformed JSON is an error the caller treats as fatal.
func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // operator-chosen record path
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return m, nil
}

// withLock holds an exclusive flock around fn. Lock files are long-lived
// and never deleted after use.
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	fl := flock.New(s.lockPath)
	locked, err := fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		return fmt.Errorf("acquire flock %s: %w", s.lockPath, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire flock %s: context done", s.lockPath)
	}
	defer fl.Unlock() //nolint:errcheck
	return fn()
}
