// Package oauthstate implements the one-time anti-CSRF token threaded
// through the OAuth install-consent redirect.
package oauthstate

import (
	"context"
	"time"

	"github.com/ffaiyaz23/boltgo/response"
)

// DefaultExpiration is the install-state TTL used when a Store isn't
// given an explicit one.
const DefaultExpiration = 10 * time.Minute

// Store issues and consumes one-time state tokens. Consume MUST be
// atomic and single-use: of two concurrent callers presenting the same
// state, at most one may see it return true.
type Store interface {
	// Issue mints a new state token with the Store's configured TTL. draft
	// is the in-flight install-start Response, passed through so a
	// cookie-based implementation can attach a Set-Cookie header; the
	// reference implementations here persist server-side only and ignore
	// it.
	Issue(ctx context.Context, draft *response.Response) (string, error)
	// Consume reports whether state was a valid, unexpired, not-yet-consumed
	// token, and atomically marks it consumed if so.
	Consume(ctx context.Context, state string) (bool, error)
}
