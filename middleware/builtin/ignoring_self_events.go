package builtin

import (
	"github.com/ffaiyaz23/boltgo/middleware"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
)

// IgnoringSelfEvents short-circuits Event requests whose author is the
// authorized bot itself, preventing the common infinite loop of a bot
// reacting to its own messages. It must run after an authorization
// middleware has populated Context.BotUserID.
type IgnoringSelfEvents struct{}

func (m *IgnoringSelfEvents) Apply(req *request.Request, draft *response.Response, next middleware.Next) (*response.Response, error) {
	if req.Kind == request.Event && req.InnerEvent != nil && req.Context.BotUserID != "" {
		if req.InnerEvent.User == req.Context.BotUserID || req.InnerEvent.BotID == req.Context.BotUserID {
			return response.Ok(), nil
		}
	}
	return next(req)
}
