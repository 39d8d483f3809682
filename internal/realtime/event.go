// Package realtime maintains the persistent notification channel to the
// platform. One websocket connection is kept per manager, reconnected
// until the manager is shut down. Consumers observe pushed events and
// channel readiness; the connection itself is never handed out.
package realtime

import "encoding/json"

// Event is a named server push with a JSON payload.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// helloEvent is the first frame on every connection, assigning the
// connection id.
const helloEvent = "connected"

type helloData struct {
	ID string `json:"id"`
}

// Handle is a snapshot of the current connection. Each reconnect produces
// a new handle with a higher generation; events read under an older
// generation are dropped rather than delivered alongside the new stream.
type Handle struct {
	ID         string
	Generation uint64
	Key        string
	Live       bool
}
