package request

import (
	"context"
	"time"

	"github.com/slack-go/slack"
)

// Context is the per-request mutable bag carried through the middleware
// chain and handed to the terminal handler. It is owned exclusively by the
// request it belongs to and is never shared across requests. Middleware
// may mutate it; handlers are expected to read it, not extend it.
type Context struct {
	// Ctx is Go's cancellation/deadline primitive for this request. The
	// default middleware chain and any handler-issued Slack API calls
	// should observe it.
	Ctx context.Context

	RequestTimestamp time.Time

	EnterpriseID string
	TeamID       string
	UserID       string
	BotID        string
	BotUserID    string

	BotToken  string
	UserToken string

	// Client is set before any middleware runs.
	Client *slack.Client

	// CancellationURL is where OAuth-flow failures redirect to; copied
	// from the App's configuration so middleware/handlers don't need a
	// back-reference to the App itself.
	CancellationURL string
}

// NewContext builds an empty Context with the given cancellation context
// already attached. RequestTimestamp defaults to now.
func NewContext(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Ctx:              ctx,
		RequestTimestamp: time.Now(),
	}
}
