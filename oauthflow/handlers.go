package oauthflow

import (
	"context"
	"net/url"

	"github.com/ffaiyaz23/boltgo/installation"
	"github.com/ffaiyaz23/boltgo/response"
)

// Handlers are the five callback outcomes a Flow can reach. Every variant
// returns a Response; the defaults below all redirect to either the
// completion or cancellation URL. An App embedding a
// Flow may replace any of these with its own, e.g. to render an HTML page
// instead of redirecting.
type Handlers struct {
	Success     func(ctx context.Context, inst *installation.Installation) (*response.Response, error)
	Error       func(ctx context.Context, reason string) (*response.Response, error)
	StateError  func(ctx context.Context) (*response.Response, error)
	AccessError func(ctx context.Context, slackError string) (*response.Response, error)
	Exception   func(ctx context.Context, err error) (*response.Response, error)
}

// DefaultHandlers builds the out-of-the-box behavior: every non-success
// path redirects to cancellationURL, success redirects to completionURL.
// None of them ever surface an OAuth failure to the caller as an error
// return — OAuth errors always redirect to the cancellation URL rather
// than propagating as exceptions.
func DefaultHandlers(completionURL, cancellationURL string) Handlers {
	return Handlers{
		Success: func(_ context.Context, _ *installation.Installation) (*response.Response, error) {
			return response.Redirect(completionURL), nil
		},
		Error: func(_ context.Context, reason string) (*response.Response, error) {
			return response.Redirect(withQuery(cancellationURL, "error", reason)), nil
		},
		StateError: func(_ context.Context) (*response.Response, error) {
			return response.Redirect(withQuery(cancellationURL, "error", "invalid_state")), nil
		},
		AccessError: func(_ context.Context, slackError string) (*response.Response, error) {
			return response.Redirect(withQuery(cancellationURL, "error", slackError)), nil
		},
		Exception: func(_ context.Context, _ error) (*response.Response, error) {
			return response.Redirect(withQuery(cancellationURL, "error", "server_error")), nil
		},
	}
}

// withQuery appends a single query parameter to a redirect target,
// tolerating the target already carrying a query string. Malformed base
// URLs are returned unchanged rather than failing the redirect.
func withQuery(base, key, value string) string {
	if value == "" {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
