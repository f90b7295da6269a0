package builtin

import (
	"net/http"

	"github.com/ffaiyaz23/boltgo/installation"
	"github.com/ffaiyaz23/boltgo/middleware"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// MultiTeamsAuthorization looks up the installation for the request's
// team/enterprise and populates Context with its bot token, bot user id,
// and an API client built from that token — for distributed apps
// installed into many workspaces. Requests with no matching installation
// are short-circuited with 401.
type MultiTeamsAuthorization struct {
	Store installation.Store
}

func NewMultiTeamsAuthorization(store installation.Store) *MultiTeamsAuthorization {
	return &MultiTeamsAuthorization{Store: store}
}

func (m *MultiTeamsAuthorization) Apply(req *request.Request, draft *response.Response, next middleware.Next) (*response.Response, error) {
	// OAuth's own endpoints are exempt: there's no installation yet.
	if req.Kind == request.OAuthStart || req.Kind == request.OAuthCallback || req.Kind == request.UrlVerification {
		return next(req)
	}

	teamID, enterpriseID := req.TeamAndEnterprise()
	inst, err := m.Store.FindBot(req.Context.Ctx, enterpriseID, teamID)
	if err != nil {
		zap.L().Warn("no installation found for request",
			zap.String("team_id", teamID), zap.String("enterprise_id", enterpriseID), zap.Error(err))
		return response.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_request"}), nil
	}

	req.Context.TeamID = teamID
	req.Context.EnterpriseID = enterpriseID
	req.Context.BotToken = inst.BotToken
	req.Context.BotUserID = inst.BotUserID
	req.Context.Client = slack.New(inst.BotToken)

	return next(req)
}
