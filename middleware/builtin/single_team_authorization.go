package builtin

import (
	"github.com/ffaiyaz23/boltgo/middleware"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/slack-go/slack"
)

// SingleTeamAuthorization populates Context from a single, statically
// configured bot token — for apps installed into exactly one workspace,
// where there's no installation lookup to perform.
type SingleTeamAuthorization struct {
	BotToken  string
	BotUserID string
	client    *slack.Client
}

func NewSingleTeamAuthorization(botToken, botUserID string) *SingleTeamAuthorization {
	return &SingleTeamAuthorization{
		BotToken:  botToken,
		BotUserID: botUserID,
		client:    slack.New(botToken),
	}
}

func (m *SingleTeamAuthorization) Apply(req *request.Request, draft *response.Response, next middleware.Next) (*response.Response, error) {
	req.Context.BotToken = m.BotToken
	req.Context.BotUserID = m.BotUserID
	req.Context.Client = m.client
	return next(req)
}
