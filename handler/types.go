// Package handler defines the single handler signature and the
// HandlerRegistry that stores and looks up handlers by pattern or by
// exact key.
//
// Every pattern-matched Slack request kind (slash commands, block
// actions/suggestions, message/attachment actions, view and dialog
// callbacks) shares the exact same shape: given a classified, context-
// bearing Request, produce a Response. Java Bolt models each kind as its
// own interface; Go has no need for ten structurally identical
// interfaces; one named func type plus the Kind already on the Request
// carries the same information.
package handler

import (
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
)

// Handler answers one classified request with a Response.
type Handler func(req *request.Request) (*response.Response, error)

// RawEventHandler is invoked by the auxiliary events dispatcher
// (internal/eventsdispatcher) with the unparsed Events API envelope body.
// It's fire-and-forget: its return value is never surfaced to Slack.
type RawEventHandler func(rawBody []byte)
