package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/askdesk/askdesk-go/consts"
	"github.com/askdesk/askdesk-go/ecode"
)

// Store persists a single session record to durable storage under a
// fixed namespaced key. The manager is its sole writer.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, consts.SessionFile)
}

// Load reads the persisted record. Absent or corrupt content yields
// (nil, nil); corruption is healed by discarding the record.
func (s *Store) Load() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ecode.Wrap(ecode.Store, "failed to read session record", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Token == "" || rec.User.Username == "" {
		_ = os.Remove(s.path())
		return nil, nil
	}
	return &rec, nil
}

// Save writes the record atomically
func (s *Store) Save(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return ecode.Wrap(ecode.Store, "failed to create session dir", err)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return ecode.Wrap(ecode.Store, "failed to encode session record", err)
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return ecode.Wrap(ecode.Store, "failed to write session record", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		_ = os.Remove(tmp)
		return ecode.Wrap(ecode.Store, "failed to persist session record", err)
	}
	return nil
}

// Clear removes the persisted record; idempotent
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path())
}
