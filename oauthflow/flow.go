// Package oauthflow drives the OAuth install-start and callback state
// machine: building the install URL, consuming the anti-CSRF state
// token, exchanging the authorization code for tokens via slack-go/slack,
// and persisting the resulting installation.
package oauthflow

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ffaiyaz23/boltgo/installation"
	"github.com/ffaiyaz23/boltgo/oauthstate"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/ffaiyaz23/boltgo/oauthflow")

// Config carries the OAuth app identity and redirect targets.
type Config struct {
	ClientID     string
	ClientSecret string
	Scopes       []string // v2 bot scopes, or the single v1 scope list
	UserScopes   []string // v2 only

	// ClassicPermissions selects the v1 "oauth.authorize" / "oauth.access"
	// flow instead of v2. Mutually exclusive with UserScopes in practice,
	// since v1 has no separate user-token scopes.
	ClassicPermissions bool

	RedirectURI     string
	CompletionURL   string
	CancellationURL string
}

// Flow is the OAuth install/callback state machine. It is constructed
// lazily by the App on first use, not at App-build time, so a core that
// never serves OAuth traffic never pays for it.
type Flow struct {
	cfg      Config
	states   oauthstate.Store
	installs installation.Store
	client   *http.Client

	Handlers Handlers

	// exchangeV1/exchangeV2 default to slack-go/slack's own oauth.access /
	// oauth.v2.access callers. Tests substitute a fake here instead of
	// hitting slack.com.
	exchangeV1 func(client *http.Client, clientID, clientSecret, code, redirectURI string) (*slack.OAuthResponse, error)
	exchangeV2 func(client *http.Client, clientID, clientSecret, code, redirectURI string) (*slack.OAuthV2Response, error)
}

// New builds a Flow. httpClient may be nil, in which case
// http.DefaultClient is used for the code-exchange call.
func New(cfg Config, states oauthstate.Store, installs installation.Store, httpClient *http.Client) *Flow {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Flow{
		cfg:      cfg,
		states:   states,
		installs: installs,
		client:   httpClient,
		Handlers: DefaultHandlers(cfg.CompletionURL, cfg.CancellationURL),
		exchangeV1: func(client *http.Client, clientID, clientSecret, code, redirectURI string) (*slack.OAuthResponse, error) {
			return slack.GetOAuthResponse(client, clientID, clientSecret, code, redirectURI)
		},
		exchangeV2: func(client *http.Client, clientID, clientSecret, code, redirectURI string) (*slack.OAuthV2Response, error) {
			return slack.GetOAuthV2Response(client, clientID, clientSecret, code, redirectURI)
		},
	}
}

// Start builds the install-consent redirect.
func (f *Flow) Start(ctx context.Context, req *request.Request) (*response.Response, error) {
	ctx, span := tracer.Start(ctx, "oauthflow.Start")
	defer span.End()

	draft := response.Ok()
	if f.cfg.ClientID == "" || len(f.cfg.Scopes) == 0 {
		zap.L().Error("oauthflow: install start missing client_id or scope")
		return response.Redirect(f.cfg.CancellationURL), nil
	}

	state, err := f.states.Issue(ctx, draft)
	if err != nil || state == "" {
		zap.L().Error("oauthflow: failed to issue install state", zap.Error(err))
		return response.Redirect(f.cfg.CancellationURL), nil
	}

	installURL := f.buildInstallURL(state)
	span.SetAttributes(attribute.Bool("oauth.classic", f.cfg.ClassicPermissions))
	return response.Redirect(installURL), nil
}

func (f *Flow) buildInstallURL(state string) string {
	base := "https://slack.com/oauth/v2/authorize"
	q := url.Values{}
	q.Set("client_id", f.cfg.ClientID)
	q.Set("scope", strings.Join(f.cfg.Scopes, ","))
	q.Set("state", state)
	if f.cfg.RedirectURI != "" {
		q.Set("redirect_uri", f.cfg.RedirectURI)
	}

	if f.cfg.ClassicPermissions {
		base = "https://slack.com/oauth/authorize"
	} else if len(f.cfg.UserScopes) > 0 {
		q.Set("user_scope", strings.Join(f.cfg.UserScopes, ","))
	}
	return base + "?" + q.Encode()
}

// Callback runs the install-callback state machine.
func (f *Flow) Callback(ctx context.Context, req *request.Request) (*response.Response, error) {
	ctx, span := tracer.Start(ctx, "oauthflow.Callback")
	defer span.End()

	q := req.OAuthCallback
	if q == nil {
		zap.L().Error("oauthflow: callback request carries no query")
		return f.Handlers.Error(ctx, "")
	}

	if q.Error != "" {
		zap.L().Warn("oauthflow: callback reported error", zap.String("error", q.Error))
		return f.Handlers.Error(ctx, q.Error)
	}

	if q.State == "" {
		zap.L().Warn("oauthflow: callback missing state")
		return f.Handlers.StateError(ctx)
	}
	ok, err := f.states.Consume(ctx, q.State)
	if err != nil {
		zap.L().Error("oauthflow: state consume failed", zap.Error(err))
		return f.Handlers.StateError(ctx)
	}
	if !ok {
		zap.L().Warn("oauthflow: state unknown, expired, or already consumed")
		return f.Handlers.StateError(ctx)
	}

	if f.cfg.ClassicPermissions {
		return f.callbackV1(ctx, q.Code)
	}
	return f.callbackV2(ctx, q.Code)
}

func (f *Flow) callbackV2(ctx context.Context, code string) (*response.Response, error) {
	resp, err := f.exchangeV2(f.client, f.cfg.ClientID, f.cfg.ClientSecret, code, f.cfg.RedirectURI)
	if err != nil {
		zap.L().Error("oauthflow: oauth.v2.access transport error", zap.Error(err))
		return f.Handlers.Exception(ctx, err)
	}
	if !resp.Ok {
		zap.L().Warn("oauthflow: oauth.v2.access returned ok=false", zap.String("error", resp.Error))
		return f.Handlers.AccessError(ctx, resp.Error)
	}

	inst := &installation.Installation{
		EnterpriseID:       resp.Enterprise.ID,
		TeamID:             resp.Team.ID,
		UserID:             resp.AuthedUser.ID,
		BotToken:           resp.AccessToken,
		BotUserID:          resp.BotUserID,
		AppID:              resp.AppID,
		Scopes:             strings.Split(resp.Scope, ","),
		InstallerUserToken: resp.AuthedUser.AccessToken,
		InstalledAt:        time.Now(),
	}
	if err := f.installs.Save(ctx, inst); err != nil {
		zap.L().Error("oauthflow: failed to persist installation", zap.Error(err))
		return f.Handlers.Exception(ctx, err)
	}
	return f.Handlers.Success(ctx, inst)
}

func (f *Flow) callbackV1(ctx context.Context, code string) (*response.Response, error) {
	resp, err := f.exchangeV1(f.client, f.cfg.ClientID, f.cfg.ClientSecret, code, f.cfg.RedirectURI)
	if err != nil {
		zap.L().Error("oauthflow: oauth.access transport error", zap.Error(err))
		return f.Handlers.Exception(ctx, err)
	}
	if !resp.Ok {
		zap.L().Warn("oauthflow: oauth.access returned ok=false", zap.String("error", resp.Error))
		return f.Handlers.AccessError(ctx, resp.Error)
	}

	inst := &installation.Installation{
		TeamID:      resp.TeamID,
		UserID:      resp.UserID,
		BotToken:    resp.Bot.BotAccessToken,
		BotUserID:   resp.Bot.BotUserID,
		Scopes:      strings.Split(resp.Scope, ","),
		InstalledAt: time.Now(),
	}
	if err := f.installs.Save(ctx, inst); err != nil {
		zap.L().Error("oauthflow: failed to persist installation", zap.Error(err))
		return f.Handlers.Exception(ctx, err)
	}
	return f.Handlers.Success(ctx, inst)
}
