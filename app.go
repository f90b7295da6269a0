// Package boltgo ties the request classifier, middleware chain, handler
// registry, and OAuth flow into a single entry point: App.Run takes an
// already-parsed Request and returns a Response, exactly like the Java
// Bolt App this module's shape is grounded on, minus the per-kind
// listener interfaces Go doesn't need.
package boltgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/ffaiyaz23/boltgo/handler"
	"github.com/ffaiyaz23/boltgo/installation"
	"github.com/ffaiyaz23/boltgo/internal/eventsdispatcher"
	"github.com/ffaiyaz23/boltgo/middleware"
	"github.com/ffaiyaz23/boltgo/middleware/builtin"
	"github.com/ffaiyaz23/boltgo/oauthflow"
	"github.com/ffaiyaz23/boltgo/oauthstate"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// App is the Dispatcher: it owns the default middleware list, the
// HandlerRegistry, and the lazily-constructed OAuthFlow. HTTP adapters
// call HandleRaw, which classifies the raw request and hands it to Run.
type App struct {
	cfg Config

	installs installation.Store
	states   oauthstate.Store

	registry *handler.Registry

	mu         sync.Mutex
	started    bool
	chain      *middleware.Chain
	userMw     []middleware.Middleware
	oauthFlow  *oauthflow.Flow
	dispatcher *eventsdispatcher.Dispatcher
}

// New builds an App. installs/states may be nil if the app never serves
// OAuth traffic (a pure single-team app that's pre-configured with a bot
// token still needs no InstallationStore).
func New(cfg Config, installs installation.Store, states oauthstate.Store) *App {
	return &App{
		cfg:      cfg.withDefaults(),
		installs: installs,
		states:   states,
		registry: handler.NewRegistry(),
	}
}

// Use appends a user middleware to run after the built-in default chain,
// in insertion order. Start builds the chain once, so middleware added
// after Start is not run until the App is stopped and started again.
func (a *App) Use(m middleware.Middleware) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userMw = append(a.userMw, m)
}

// UseFunc is the functional-literal convenience form of Use.
func (a *App) UseFunc(f middleware.Func) {
	a.Use(f)
}

// Command registers a slash-command handler by pattern. pattern is
// compiled as a regular expression and always anchored as "^<pattern>$",
// so regex metacharacters in it keep their regex meaning.
func (a *App) Command(pattern string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.SlashCommand, pattern, h)
}

// BlockAction registers a block_actions handler keyed on action_id.
func (a *App) BlockAction(actionID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.BlockAction, actionID, h)
}

// BlockSuggestion registers a block_suggestion handler keyed on action_id.
func (a *App) BlockSuggestion(actionID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.BlockSuggestion, actionID, h)
}

// MessageAction registers a message-shortcut handler keyed on callback_id.
func (a *App) MessageAction(callbackID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.MessageAction, callbackID, h)
}

// AttachmentAction registers a legacy interactive-message handler keyed
// on callback_id.
func (a *App) AttachmentAction(callbackID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.AttachmentAction, callbackID, h)
}

// ViewSubmission registers a modal-submission handler keyed on callback_id.
func (a *App) ViewSubmission(callbackID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.ViewSubmission, callbackID, h)
}

// ViewClosed registers a modal-close handler keyed on callback_id.
func (a *App) ViewClosed(callbackID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.ViewClosed, callbackID, h)
}

// DialogSubmission registers a legacy dialog-submission handler.
func (a *App) DialogSubmission(callbackID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.DialogSubmission, callbackID, h)
}

// DialogSuggestion registers a legacy dialog-select-options handler.
func (a *App) DialogSuggestion(callbackID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.DialogSuggestion, callbackID, h)
}

// DialogCancellation registers a legacy dialog-cancel handler.
func (a *App) DialogCancellation(callbackID string, h handler.Handler) error {
	return a.registry.RegisterPattern(request.DialogCancellation, callbackID, h)
}

// Event registers an Events API handler for "{eventType}:{subtype}".
// subtype may be "" for events with no subtype.
func (a *App) Event(eventType, subtype string, h handler.Handler) {
	a.registry.RegisterEvent(eventType, subtype, h)
}

// Webhook registers an outgoing-webhook handler by exact trigger word.
func (a *App) Webhook(triggerWord string, h handler.Handler) {
	a.registry.RegisterWebhook(triggerWord, h)
}

// OnRawEvent subscribes h to the auxiliary events dispatcher: every
// Events API request also gets fanned out here, fire-and-forget,
// independent of HandlerRegistry dispatch. Subscribing after Start is
// safe; the dispatcher owns its own locking.
func (a *App) OnRawEvent(h handler.RawEventHandler) {
	a.mu.Lock()
	d := a.dispatcher
	a.mu.Unlock()
	if d != nil {
		d.Subscribe(h)
	}
}

// Start transitions Stopped → Running: builds the default middleware
// list if Start hasn't already snapshotted one, and starts the auxiliary
// dispatcher. Run calls Start automatically on first invocation; calling
// it explicitly lets a caller pay startup cost (e.g. lazily constructing
// the OAuthFlow) before serving traffic.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return nil
	}

	defaults := a.buildDefaultMiddleware()
	all := make([]middleware.Middleware, 0, len(defaults)+len(a.userMw))
	all = append(all, defaults...)
	all = append(all, a.userMw...)
	a.chain = middleware.New(all)

	if a.clientIDConfigured() {
		a.oauthFlow = oauthflow.New(a.oauthFlowConfig(), a.states, a.installs, http.DefaultClient)
	}

	a.dispatcher = eventsdispatcher.New(4)
	a.dispatcher.Start()

	a.started = true
	return nil
}

// Stop transitions Running → Stopped, halting the auxiliary dispatcher.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.started {
		return
	}
	if a.dispatcher != nil {
		a.dispatcher.Stop()
	}
	a.started = false
}

func (a *App) clientIDConfigured() bool {
	return a.cfg.ClientID != "" && a.cfg.ClientSecret != ""
}

func (a *App) oauthFlowConfig() oauthflow.Config {
	return oauthflow.Config{
		ClientID:           a.cfg.ClientID,
		ClientSecret:       a.cfg.ClientSecret,
		Scopes:             a.cfg.Scope,
		UserScopes:         a.cfg.UserScope,
		ClassicPermissions: a.cfg.ClassicAppPermissionsEnabled,
		RedirectURI:        a.cfg.RedirectURI,
		CompletionURL:      a.cfg.OAuthCompletionURL,
		CancellationURL:    a.cfg.OAuthCancellationURL,
	}
}

// buildDefaultMiddleware assembles the default chain: SSLCheck, then
// signature verification, then whichever authorization variant is
// configured, then IgnoringSelfEvents — in that order, ahead of any
// user-registered middleware.
func (a *App) buildDefaultMiddleware() []middleware.Middleware {
	chain := []middleware.Middleware{
		&builtin.SSLCheck{VerificationToken: a.cfg.VerificationToken},
	}
	if a.cfg.SigningSecret != "" {
		chain = append(chain, builtin.NewRequestVerification(a.cfg.SigningSecret))
	}
	if a.cfg.SingleTeamBotToken != "" {
		chain = append(chain, builtin.NewSingleTeamAuthorization(a.cfg.SingleTeamBotToken, a.cfg.SingleTeamBotUserID))
	} else if a.installs != nil {
		chain = append(chain, builtin.NewMultiTeamsAuthorization(a.installs))
	}
	chain = append(chain, &builtin.IgnoringSelfEvents{})
	return chain
}

// Run auto-starts the App on first call, runs the middleware chain, and
// dispatches to the matching registered handler at the terminal step. It
// never panics on a user handler's error: the error propagates out to
// the HTTP adapter.
func (a *App) Run(req *request.Request) (*response.Response, error) {
	a.mu.Lock()
	started := a.started
	a.mu.Unlock()
	if !started {
		if err := a.Start(req.Context.Ctx); err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	chain := a.chain
	a.mu.Unlock()

	req.Context.CancellationURL = a.cfg.OAuthCancellationURL
	if req.Context.Client == nil {
		req.Context.Client = slack.New("")
	}
	return chain.Run(req, a.dispatch)
}

// dispatch is the Terminal step: the full per-Kind dispatch table.
func (a *App) dispatch(req *request.Request) (*response.Response, error) {
	switch req.Kind {
	case request.UrlVerification:
		if req.URLVerification == nil {
			return response.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_request"}), nil
		}
		return response.Text(http.StatusOK, req.URLVerification.Challenge), nil

	case request.OAuthStart:
		if a.oauthFlow == nil {
			zap.L().Error("oauth start requested but no OAuth config was provided")
			return response.Redirect(a.cfg.OAuthCancellationURL), nil
		}
		return a.oauthFlow.Start(req.Context.Ctx, req)

	case request.OAuthCallback:
		if a.oauthFlow == nil {
			zap.L().Error("oauth callback requested but no OAuth config was provided")
			return response.Redirect(a.cfg.OAuthCancellationURL), nil
		}
		return a.oauthFlow.Callback(req.Context.Ctx, req)

	case request.Event:
		if req.InnerEvent == nil {
			return a.noHandlerFound(req.EventKey())
		}
		if d := a.dispatcherOrNil(); d != nil {
			d.Publish(req.RawBody)
		}
		h, ok := a.registry.MatchEvent(req.EventKey())
		if !ok {
			return a.noHandlerFound(req.EventKey())
		}
		return h(req)

	case request.SlashCommand:
		key := ""
		if req.Command != nil {
			key = req.Command.Command
		}
		return a.matchAndRun(request.SlashCommand, key, req)

	case request.BlockAction:
		key := a.firstActionID(req)
		return a.matchAndRun(request.BlockAction, key, req)

	case request.BlockSuggestion:
		key := ""
		if req.Interaction != nil {
			key = req.Interaction.ActionID
		}
		return a.matchAndRun(request.BlockSuggestion, key, req)

	case request.MessageAction, request.AttachmentAction, request.ViewSubmission, request.ViewClosed,
		request.DialogSubmission, request.DialogSuggestion, request.DialogCancellation:
		key := a.callbackID(req)
		return a.matchAndRun(req.Kind, key, req)

	case request.OutgoingWebhook:
		key := ""
		if req.Webhook != nil {
			key = req.Webhook.TriggerWord
		}
		h, ok := a.registry.MatchWebhook(key)
		if !ok {
			return a.noHandlerFound(key)
		}
		return h(req)

	default:
		return a.noHandlerFound(req.Kind.String())
	}
}

// firstActionID dispatches only the first action's id and ignores the
// rest, for the (rare, but allowed by the wire format) multi-action
// BlockAction payload.
func (a *App) firstActionID(req *request.Request) string {
	if req.Interaction == nil || len(req.Interaction.Actions) == 0 {
		return ""
	}
	return req.Interaction.Actions[0].ActionID
}

// callbackID pulls the callback_id that keys MessageAction/ViewSubmission/
// ViewClosed/Dialog* handlers: either the interaction's own callback_id,
// or (for view_submission/view_closed) the nested view's.
func (a *App) callbackID(req *request.Request) string {
	if req.Interaction == nil {
		return ""
	}
	if req.Interaction.CallbackID != "" {
		return req.Interaction.CallbackID
	}
	return req.Interaction.View.CallbackID
}

func (a *App) matchAndRun(kind request.Kind, key string, req *request.Request) (*response.Response, error) {
	h, ok := a.registry.MatchPattern(kind, key)
	if !ok {
		return a.noHandlerFound(key)
	}
	return h(req)
}

func (a *App) noHandlerFound(key string) (*response.Response, error) {
	zap.L().Warn("no handler found", zap.String("key", key))
	return response.JSON(http.StatusNotFound, map[string]string{"error": "no handler found"}), nil
}

func (a *App) dispatcherOrNil() *eventsdispatcher.Dispatcher {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dispatcher
}

// HandleRaw is the convenience entry point an HTTP adapter calls:
// classify the raw request, build its Context, and Run it. OAuth paths
// left empty in cfg fall back to the App's Config. Adapters
// (adapter/nethttp, adapter/gin) are thin wrappers around this.
func (a *App) HandleRaw(ctx context.Context, cfg request.ParserConfig, method, path string, query url.Values, headers http.Header, body []byte) (*response.Response, error) {
	if cfg.OAuthStartPath == "" {
		cfg.OAuthStartPath = a.cfg.OAuthStartPath
	}
	if cfg.OAuthCallbackPath == "" {
		cfg.OAuthCallbackPath = a.cfg.OAuthCallbackPath
	}
	req, err := request.Parse(cfg, method, path, query, headers, body)
	if err != nil {
		zap.L().Warn("request classification failed", zap.Error(err))
		return response.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_request"}), nil
	}
	req.Context = request.NewContext(ctx)
	resp, err := a.Run(req)
	if err != nil {
		return nil, fmt.Errorf("boltgo: handler error: %w", err)
	}
	return resp, nil
}
