package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sentinel errors
var (
	// ErrNoCredential is returned when no token is stored.
	ErrNoCredential = errors.New("no credential stored")

	// ErrCorruptSlot is returned when the slot file exists but cannot be
	// parsed. The contents are as unusable as an expired token and should
	// be purged the same way.
	ErrCorruptSlot = errors.New("credential slot is corrupt")
)

// slotFile is the on-disk shape of the credential slot. The slot holds at
// most one token; absence of the token field means anonymous.
type slotFile struct {
	Version int       `json:"version"`
	Token   string    `json:"token,omitempty"`
	SavedAt time.Time `json:"saved_at,omitempty"`
}

// Watcher is notified after the stored credential changes. present is false
// when the slot was cleared.
type Watcher func(token string, present bool)

// Store manages the single credential slot on the local filesystem.
//
// The slot is the only mutable state shared between the session layer and
// the realtime layer, so all writes go through Store and every write
// notifies subscribers. This is the process-local equivalent of the
// storage-change events a browser client would receive from another tab.
type Store struct {
	baseDir string

	mu       sync.Mutex
	watchers map[int]Watcher
	nextID   int
}

// NewStore creates a credential store rooted at baseDir.
// If baseDir is empty, uses ~/.clipstream/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".clipstream")
	}

	// Tokens live here, keep the directory private
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("credential store initialized")

	return &Store{baseDir: baseDir, watchers: make(map[int]Watcher)}, nil
}

// Read returns the stored token, or ErrNoCredential when the slot is empty.
// A returned token is opaque here; validity is the session layer's concern.
func (s *Store) Read() (string, error) {
	slot, err := s.load()
	if err != nil {
		return "", err
	}

	if slot.Token == "" {
		return "", ErrNoCredential
	}

	return slot.Token, nil
}

// Write replaces the slot contents with token and notifies subscribers.
func (s *Store) Write(token string) error {
	if token == "" {
		return errors.New("refusing to store an empty token")
	}

	slot := &slotFile{
		Version: 1,
		Token:   token,
		SavedAt: time.Now().UTC(),
	}

	if err := s.save(slot); err != nil {
		return err
	}

	log.Debug().Msg("credential stored")

	s.notify(token, true)
	return nil
}

// Clear empties the slot. Clearing an already-empty slot is a no-op and
// does not notify. A corrupt slot file is overwritten rather than
// reported, so a bad write can always be recovered from.
func (s *Store) Clear() error {
	slot, err := s.load()
	if err != nil && !errors.Is(err, ErrCorruptSlot) {
		return err
	}

	if err == nil && slot.Token == "" {
		return nil
	}

	if err := s.save(&slotFile{Version: 1}); err != nil {
		return err
	}

	log.Debug().Msg("credential cleared")

	s.notify("", false)
	return nil
}

// Subscribe registers a watcher called after every slot change. The
// returned function cancels the subscription; calling it more than once is
// harmless.
func (s *Store) Subscribe(w Watcher) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.watchers[id] = w

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

func (s *Store) notify(token string, present bool) {
	s.mu.Lock()
	watchers := make([]Watcher, 0, len(s.watchers))
	for _, w := range s.watchers {
		watchers = append(watchers, w)
	}
	s.mu.Unlock()

	for _, w := range watchers {
		w(token, present)
	}
}

func (s *Store) slotPath() string {
	return filepath.Join(s.baseDir, "credentials.json")
}

// load reads the slot file. A missing file is an empty slot, not an error.
func (s *Store) load() (*slotFile, error) {
	data, err := os.ReadFile(s.slotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &slotFile{Version: 1}, nil
		}
		return nil, fmt.Errorf("failed to read credential slot: %w", err)
	}

	var slot slotFile
	if err := json.Unmarshal(data, &slot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}

	return &slot, nil
}

// save writes the slot file atomically.
func (s *Store) save(slot *slotFile) error {
	data, err := json.MarshalIndent(slot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential slot: %w", err)
	}

	// Write to temp file first
	slotPath := s.slotPath()
	tempPath := slotPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential slot: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, slotPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save credential slot: %w", err)
	}

	return nil
}
