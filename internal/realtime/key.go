package realtime

import (
	"crypto/rand"

	"github.com/mr-tron/base58"

	"github.com/clipstream/clipstream/internal/session"
)

// IdentityKey derives the connection identity for a session result: the
// subject id when authenticated, otherwise a fresh anonymous key. Callers
// derive the key once per manager lifetime so anonymous identity stays
// stable across reconnects.
func IdentityKey(res session.Result) string {
	if res.Authenticated() && res.Claims.Subject != "" {
		return res.Claims.Subject
	}
	return AnonymousKey()
}

// AnonymousKey generates a random identity key for an anonymous
// connection. The anon- prefix keeps it distinct from any subject id.
func AnonymousKey() string {
	buf := make([]byte, 16)
	// rand.Read never fails on supported platforms
	_, _ = rand.Read(buf)
	return "anon-" + base58.Encode(buf)
}
