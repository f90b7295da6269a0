// Package middleware implements the recursively-composed but iteratively
// executed pipeline that runs before the Dispatcher's terminal handler
// lookup.
package middleware

import (
	"context"
	"fmt"

	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/ffaiyaz23/boltgo/middleware")

// Next continues the chain with the given (possibly mutated) request.
type Next func(req *request.Request) (*response.Response, error)

// Middleware may short-circuit by returning without calling next, post
// process by calling next then mutating/replacing its result, or simply
// delegate. It may also mutate req.Context before calling next.
type Middleware interface {
	Apply(req *request.Request, draft *response.Response, next Next) (*response.Response, error)
}

// Func adapts a plain function to the Middleware interface.
type Func func(req *request.Request, draft *response.Response, next Next) (*response.Response, error)

func (f Func) Apply(req *request.Request, draft *response.Response, next Next) (*response.Response, error) {
	return f(req, draft, next)
}

// Terminal is the handler-dispatch step invoked once every middleware in
// the chain has been consumed.
type Terminal func(req *request.Request) (*response.Response, error)

// Chain holds an ordered, immutable-once-built list of middlewares.
// Ordering at execution time equals registration order. New snapshots
// the slice so later App.Use calls don't race an in-flight Run.
type Chain struct {
	middlewares []Middleware
}

// New builds a Chain from an ordered middleware slice. The slice is
// defensively copied.
func New(middlewares []Middleware) *Chain {
	snapshot := make([]Middleware, len(middlewares))
	copy(snapshot, middlewares)
	return &Chain{middlewares: snapshot}
}

// Run executes the chain against req, seeding response.Ok() as the draft,
// and calling terminal once every middleware has run (or returning early
// if one short-circuits). Each step is an index into the middleware slice
// plus a next closure that advances it; a middleware that calls next runs
// the rest of the chain inside its own call, so stack depth grows with
// the number of middlewares.
func (c *Chain) Run(req *request.Request, terminal Terminal) (*response.Response, error) {
	draft := response.Ok()
	return c.runFrom(0, req, draft, terminal)
}

func (c *Chain) runFrom(index int, req *request.Request, draft *response.Response, terminal Terminal) (*response.Response, error) {
	if index >= len(c.middlewares) {
		return terminal(req)
	}

	current := c.middlewares[index]
	ctx := req.Context.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	spanCtx, span := tracer.Start(ctx, fmt.Sprintf("middleware[%d]", index),
		trace.WithAttributes(attribute.Int("middleware.index", index)))
	req.Context.Ctx = spanCtx
	zap.L().Debug("running middleware", zap.Int("index", index))

	next := func(r *request.Request) (*response.Response, error) {
		return c.runFrom(index+1, r, draft, terminal)
	}

	resp, err := current.Apply(req, draft, next)
	span.End()
	return resp, err
}
