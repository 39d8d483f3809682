package realtime

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Options tunes the reconnect behaviour.
type Options struct {
	// Dialer overrides the websocket dialer, mainly for tests.
	Dialer *websocket.Dialer
	// InitialReconnectDelay is the delay before the first reconnect
	// attempt. Defaults to one second.
	InitialReconnectDelay time.Duration
	// MaxReconnectDelay caps backoff growth. Defaults to 30 seconds.
	MaxReconnectDelay time.Duration
}

// EventFunc receives pushed events in arrival order.
type EventFunc func(Event)

// StatusFunc receives channel readiness transitions.
type StatusFunc func(ready bool)

// Manager owns the realtime connection for one identity key. Run keeps the
// connection alive, reconnecting until the context is cancelled. Connection
// failures only affect realtime availability; they are never surfaced as
// errors to subscribers.
type Manager struct {
	endpoint string
	key      string
	dialer   *websocket.Dialer
	initial  time.Duration
	max      time.Duration

	mu         sync.Mutex
	generation uint64
	live       bool
	connID     string
	events     map[int]EventFunc
	statuses   map[int]StatusFunc
	nextID     int
}

// New creates a manager for the websocket endpoint (ws:// or wss://) and
// identity key. Nothing connects until Run is called.
func New(endpoint, key string, opts Options) *Manager {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	initial := opts.InitialReconnectDelay
	if initial <= 0 {
		initial = time.Second
	}

	max := opts.MaxReconnectDelay
	if max <= 0 {
		max = 30 * time.Second
	}

	return &Manager{
		endpoint: endpoint,
		key:      key,
		dialer:   dialer,
		initial:  initial,
		max:      max,
		events:   make(map[int]EventFunc),
		statuses: make(map[int]StatusFunc),
	}
}

// Subscribe registers fn for pushed events. Events are delivered from the
// read loop, one at a time, in arrival order. The returned function cancels
// the subscription.
func (m *Manager) Subscribe(fn EventFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.events[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.events, id)
	}
}

// OnStatus registers fn for readiness transitions.
func (m *Manager) OnStatus(fn StatusFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.statuses[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.statuses, id)
	}
}

// Handle returns a snapshot of the current connection.
func (m *Manager) Handle() Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Handle{
		ID:         m.connID,
		Generation: m.generation,
		Key:        m.key,
		Live:       m.live,
	}
}

// Run connects and keeps the channel alive until ctx is cancelled. Failed
// connects and dropped connections are retried forever with capped
// backoff; a successful connection resets the backoff. Run returns only
// when ctx is done.
func (m *Manager) Run(ctx context.Context) {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = m.initial
	retry.MaxInterval = m.max

	for {
		if ctx.Err() != nil {
			return
		}

		conn, gen, err := m.connect(ctx)
		if err != nil {
			log.Debug().Err(err).Str("key", m.key).Msg("realtime connect failed")
			if !sleep(ctx, retry.NextBackOff()) {
				return
			}
			continue
		}

		retry.Reset()
		m.readLoop(ctx, conn, gen)
		m.deactivate(gen)

		if ctx.Err() != nil {
			return
		}

		log.Debug().Str("key", m.key).Msg("realtime connection lost, reconnecting")
		if !sleep(ctx, retry.NextBackOff()) {
			return
		}
	}
}

// connect dials the endpoint and adopts the new connection as the live
// handle, superseding any predecessor.
func (m *Manager) connect(ctx context.Context) (*websocket.Conn, uint64, error) {
	u := m.endpoint + "?key=" + url.QueryEscape(m.key)

	conn, resp, err := m.dialer.DialContext(ctx, u, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, 0, err
	}

	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.live = true
	m.connID = ""
	m.mu.Unlock()

	log.Debug().Str("key", m.key).Uint64("generation", gen).Msg("realtime connected")

	m.notifyStatus(true)
	return conn, gen, nil
}

// readLoop reads frames until the connection drops or ctx is cancelled.
func (m *Manager) readLoop(ctx context.Context, conn *websocket.Conn, gen uint64) {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()
	defer conn.Close()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			return
		}

		if ev.Name == helloEvent {
			m.adoptHello(gen, ev)
			continue
		}

		m.deliver(gen, ev)
	}
}

// adoptHello records the server-assigned connection id, unless the handle
// has already been superseded.
func (m *Manager) adoptHello(gen uint64, ev Event) {
	var hello helloData
	if err := json.Unmarshal(ev.Data, &hello); err != nil {
		log.Debug().Err(err).Msg("malformed hello frame")
		return
	}

	m.mu.Lock()
	if gen == m.generation {
		m.connID = hello.ID
	}
	m.mu.Unlock()
}

// deliver forwards an event to subscribers if it was read under the
// current generation. Events surfacing from a superseded connection are
// dropped.
func (m *Manager) deliver(gen uint64, ev Event) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		log.Debug().Uint64("generation", gen).Str("event", ev.Name).Msg("dropping stale event")
		return
	}
	fns := make([]EventFunc, 0, len(m.events))
	for _, fn := range m.events {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// deactivate marks gen not-live if it is still the current handle.
func (m *Manager) deactivate(gen uint64) {
	m.mu.Lock()
	if gen != m.generation || !m.live {
		m.mu.Unlock()
		return
	}
	m.live = false
	m.mu.Unlock()

	m.notifyStatus(false)
}

func (m *Manager) notifyStatus(ready bool) {
	m.mu.Lock()
	fns := make([]StatusFunc, 0, len(m.statuses))
	for _, fn := range m.statuses {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ready)
	}
}

// sleep waits for d or context cancellation, reporting whether the wait
// completed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
