package session

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clipstream/clipstream/internal/credentials"
)

// Manager binds the pure evaluator to the credential store. It owns the
// self-healing rule: when evaluation signals a purge, the stored credential
// is cleared so later reads do not repeat the decode work.
type Manager struct {
	store *credentials.Store
	now   func() time.Time
}

// NewManager creates a session manager over store.
func NewManager(store *credentials.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Current evaluates the stored credential against the current instant.
// Claims are recomputed on every call rather than cached, since the slot
// can change out from under a long-lived caller.
func (m *Manager) Current() Result {
	token, err := m.store.Read()
	if err != nil {
		// An unreadable slot is self-healed like an expired token
		if errors.Is(err, credentials.ErrCorruptSlot) {
			m.purge()
		} else if !errors.Is(err, credentials.ErrNoCredential) {
			log.Warn().Err(err).Msg("failed to read credential slot")
		}
		return Result{State: StateUnauthenticated}
	}

	res := Evaluate(token, m.now())
	if res.Purge {
		m.purge()
	}

	return res
}

func (m *Manager) purge() {
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to purge stale credential")
	} else {
		log.Debug().Msg("purged stale credential")
	}
}

// Login stores a freshly issued token, rejecting tokens that would not
// evaluate as authenticated right now.
func (m *Manager) Login(token string) (Result, error) {
	res := Evaluate(token, m.now())
	if !res.Authenticated() {
		return res, errors.New("token is malformed or already expired")
	}

	if err := m.store.Write(token); err != nil {
		return Result{State: StateUnauthenticated}, err
	}

	return res, nil
}

// Logout clears the stored credential.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// Subscribe invokes fn with a fresh evaluation whenever the credential slot
// changes out-of-band. The returned function cancels the subscription.
func (m *Manager) Subscribe(fn func(Result)) func() {
	return m.store.Subscribe(func(token string, present bool) {
		if !present {
			fn(Result{State: StateUnauthenticated})
			return
		}
		fn(Evaluate(token, m.now()))
	})
}
