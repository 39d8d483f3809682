// Package page implements the controller every authenticated surface runs:
// evaluate the session, gate the data fetch on the result, and expose the
// loading/content/error lifecycle to whoever renders it. The same rules
// apply to every page, so the branching lives here instead of being copied
// per surface.
package page

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/clipstream/clipstream/internal/api"
	"github.com/clipstream/clipstream/internal/session"
)

// State is the controller's render state.
type State int

const (
	// StateInit is the state before activation.
	StateInit State = iota
	// StateUnauthenticated means the page should prompt for login and
	// fetch nothing.
	StateUnauthenticated
	// StateChecking means the session is being evaluated.
	StateChecking
	// StateLoading means the fetch is in flight.
	StateLoading
	// StateContent means data arrived and can be rendered.
	StateContent
	// StateError means the fetch failed and a retry is available.
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateChecking:
		return "checking"
	case StateLoading:
		return "loading"
	case StateContent:
		return "content"
	case StateError:
		return "error"
	default:
		return "init"
	}
}

// settled reports whether the state is one a caller can act on.
func settled(s State) bool {
	return s == StateUnauthenticated || s == StateContent || s == StateError
}

// FetchFunc loads a page's data. token is the raw credential of the
// authenticated session the fetch was gated on.
type FetchFunc[T any] func(ctx context.Context, token string) (T, error)

// Snapshot is the controller's observable state at a point in time.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Controller drives one page instance. The fetch never starts before the
// session evaluates as authenticated, an unauthorized response mid-fetch
// funnels back to StateUnauthenticated (purging the credential) instead of
// StateError, and nothing mutates the snapshot after Deactivate.
type Controller[T any] struct {
	sessions *session.Manager
	fetch    FetchFunc[T]

	mu          sync.Mutex
	state       State
	data        T
	err         error
	token       string
	active      bool
	epoch       uint64
	baseCtx     context.Context
	fetchCancel context.CancelFunc
	observers   map[int]func(Snapshot[T])
	nextID      int
	unsubscribe func()
	queue       []Snapshot[T]
	flushing    bool
}

// New creates a controller for one page. fetch runs only while a session
// is live.
func New[T any](sessions *session.Manager, fetch FetchFunc[T]) *Controller[T] {
	return &Controller[T]{
		sessions:  sessions,
		fetch:     fetch,
		state:     StateInit,
		observers: make(map[int]func(Snapshot[T])),
	}
}

// OnChange registers fn for state transitions. The returned function
// cancels the registration.
func (c *Controller[T]) OnChange(fn func(Snapshot[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{State: c.state, Data: c.data, Err: c.err}
}

// Activate mounts the page: evaluate the session, then either prompt for
// login or start the fetch. The controller also re-evaluates whenever the
// credential slot changes while mounted.
func (c *Controller[T]) Activate(ctx context.Context) {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return
	}
	c.active = true
	c.baseCtx = ctx
	c.mu.Unlock()

	unsub := c.sessions.Subscribe(func(session.Result) {
		c.evaluate()
	})

	c.mu.Lock()
	if !c.active {
		// Deactivate won the race while we were subscribing
		c.mu.Unlock()
		unsub()
		return
	}
	c.unsubscribe = unsub
	c.mu.Unlock()

	c.evaluate()
}

// Deactivate unmounts the page. Any in-flight fetch is cancelled and its
// completion is ignored.
func (c *Controller[T]) Deactivate() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	c.epoch++
	cancel := c.fetchCancel
	c.fetchCancel = nil
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if unsub != nil {
		unsub()
	}
}

// Retry re-runs the fetch after an error without re-evaluating navigation.
// The session is still checked first; a session that died since the error
// routes to login rather than another failing fetch.
func (c *Controller[T]) Retry() {
	c.mu.Lock()
	if !c.active || c.state != StateError {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.evaluate()
}

// evaluate runs the session check and branches. Evaluation and fetch are
// strictly sequential; the fetch starts only once the session is known
// authenticated.
func (c *Controller[T]) evaluate() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.setStateLocked(StateChecking, nil)
	c.mu.Unlock()

	res := c.sessions.Current()

	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}

	if !res.Authenticated() {
		// Cancel any fetch issued for a previous session
		if c.fetchCancel != nil {
			c.fetchCancel()
			c.fetchCancel = nil
		}
		c.epoch++
		c.setStateLocked(StateUnauthenticated, nil)
		c.mu.Unlock()
		return
	}

	c.token = res.Token
	c.startFetchLocked()
	c.mu.Unlock()
}

// startFetchLocked launches the fetch for the current session. Caller
// holds c.mu.
func (c *Controller[T]) startFetchLocked() {
	if c.fetchCancel != nil {
		c.fetchCancel()
	}

	c.epoch++
	epoch := c.epoch
	token := c.token

	ctx, cancel := context.WithCancel(c.baseCtx)
	c.fetchCancel = cancel

	c.setStateLocked(StateLoading, nil)

	go func() {
		data, err := c.fetch(ctx, token)
		c.finishFetch(epoch, data, err)
	}()
}

// finishFetch commits a fetch result, unless the fetch was superseded or
// the page deactivated while it was in flight.
func (c *Controller[T]) finishFetch(epoch uint64, data T, err error) {
	c.mu.Lock()

	if !c.active || epoch != c.epoch {
		c.mu.Unlock()
		return
	}

	if err == nil {
		c.data = data
		c.setStateLocked(StateContent, nil)
		c.mu.Unlock()
		return
	}

	if api.IsUnauthorized(err) {
		// The server disagrees that the session is live. Purge and route
		// to login instead of surfacing a raw error.
		c.mu.Unlock()
		log.Debug().Err(err).Msg("fetch rejected as unauthorized, purging session")
		if lerr := c.sessions.Logout(); lerr != nil {
			log.Warn().Err(lerr).Msg("failed to purge credential")
		}

		c.mu.Lock()
		if c.active && epoch == c.epoch {
			c.setStateLocked(StateUnauthenticated, nil)
		}
		c.mu.Unlock()
		return
	}

	c.setStateLocked(StateError, err)
	c.mu.Unlock()
}

// setStateLocked updates state and queues an observer notification.
// Caller holds c.mu. Notifications are flushed by a single goroutine so
// observers see transitions in order, without the lock held.
func (c *Controller[T]) setStateLocked(s State, err error) {
	c.state = s
	c.err = err

	c.queue = append(c.queue, Snapshot[T]{State: c.state, Data: c.data, Err: c.err})
	if !c.flushing {
		c.flushing = true
		go c.flush()
	}
}

func (c *Controller[T]) flush() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.flushing = false
			c.mu.Unlock()
			return
		}
		snap := c.queue[0]
		c.queue = c.queue[1:]
		fns := make([]func(Snapshot[T]), 0, len(c.observers))
		for _, fn := range c.observers {
			fns = append(fns, fn)
		}
		c.mu.Unlock()

		for _, fn := range fns {
			fn(snap)
		}
	}
}

// WaitSettled blocks until the controller reaches a settled state
// (unauthenticated, content, or error) or ctx expires, and returns the
// snapshot it settled on.
func (c *Controller[T]) WaitSettled(ctx context.Context) Snapshot[T] {
	ch := make(chan Snapshot[T], 1)
	cancel := c.OnChange(func(s Snapshot[T]) {
		if settled(s.State) {
			select {
			case ch <- s:
			default:
			}
		}
	})
	defer cancel()

	if s := c.Snapshot(); settled(s.State) {
		return s
	}

	select {
	case s := <-ch:
		return s
	case <-ctx.Done():
		return c.Snapshot()
	}
}
