// Package session decides whether the client currently holds a usable
// login. Every surface that needs the answer goes through Evaluate (or the
// Manager bound to the credential store) so the decode-and-expiry rule
// exists exactly once.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload decoded from a platform token.
type Claims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// State is the authentication determination for a credential at an instant.
type State int

const (
	// StateUnauthenticated means no usable credential exists.
	StateUnauthenticated State = iota
	// StateAuthenticated means the credential decoded and is unexpired.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Result is the outcome of evaluating a credential.
//
// Purge indicates the stored credential is stale (malformed or expired) and
// should be cleared by the caller. Evaluate itself never touches storage,
// which keeps it testable without a store.
type Result struct {
	State  State
	Claims *Claims
	Token  string
	Purge  bool
}

// Authenticated reports whether the result carries a live session.
func (r Result) Authenticated() bool {
	return r.State == StateAuthenticated
}

// Evaluate determines the session state for token at instant now.
//
// The token is decoded without signature verification; the server is the
// authority on signatures and this client only needs the claims and the
// expiry. A token that fails to decode, carries no expiry, or is expired at
// now is reported Unauthenticated with Purge set. Expiry is compared
// against now as-is, with no clock skew allowance.
func Evaluate(token string, now time.Time) Result {
	if token == "" {
		return Result{State: StateUnauthenticated}
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Result{State: StateUnauthenticated, Purge: true}
	}

	// A token without an expiry is indistinguishable from a malformed one
	// for our purposes.
	if claims.ExpiresAt == nil {
		return Result{State: StateUnauthenticated, Purge: true}
	}

	if !claims.ExpiresAt.Time.After(now) {
		return Result{State: StateUnauthenticated, Purge: true}
	}

	return Result{
		State:  StateAuthenticated,
		Claims: claims,
		Token:  token,
	}
}
