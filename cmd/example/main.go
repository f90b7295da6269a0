// cmd/example wires a complete boltgo App: config from the environment,
// Redis-backed installations when REDIS_ADDR is set (in-memory otherwise),
// an in-memory OAuth state store, a slash command and an Events API
// handler, all served through the net/http adapter.
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/ffaiyaz23/boltgo"
	nethttpadapter "github.com/ffaiyaz23/boltgo/adapter/nethttp"
	"github.com/ffaiyaz23/boltgo/installation"
	"github.com/ffaiyaz23/boltgo/internal/tracing"
	"github.com/ffaiyaz23/boltgo/oauthstate"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	tp, err := tracing.Init(ctx, "boltgo-example")
	if err != nil {
		panic("failed to init OTEL: " + err.Error())
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	installs := installationStore()
	states := oauthstate.NewMemoryStore(0)
	defer states.Stop()

	app := boltgo.New(boltgo.Config{
		SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		ClientID:      os.Getenv("SLACK_CLIENT_ID"),
		ClientSecret:  os.Getenv("SLACK_CLIENT_SECRET"),
		Scope:         []string{"chat:write", "commands", "app_mentions:read"},
		RedirectURI:   os.Getenv("SLACK_REDIRECT_URI"),

		OAuthStartPath:       "/slack/install",
		OAuthCallbackPath:    "/slack/oauth_redirect",
		OAuthCompletionURL:   "/slack/oauth_success",
		OAuthCancellationURL: "/slack/oauth_cancel",
	}, installs, states)

	if err := app.Command("/echo", func(req *request.Request) (*response.Response, error) {
		return response.Text(http.StatusOK, req.Command.Text), nil
	}); err != nil {
		zap.L().Fatal("failed to register /echo", zap.Error(err))
	}

	app.Event("app_mention", "", func(req *request.Request) (*response.Response, error) {
		zap.L().Info("received app_mention", zap.String("team_id", req.EventEnvelope.TeamID))
		return response.Ok(), nil
	})

	parserCfg := request.ParserConfig{
		OAuthStartPath:    "/slack/install",
		OAuthCallbackPath: "/slack/oauth_redirect",
	}

	mux := http.NewServeMux()
	mux.Handle("/slack/events", nethttpadapter.Handler(app, parserCfg))
	mux.Handle("/slack/install", nethttpadapter.Handler(app, parserCfg))
	mux.Handle("/slack/oauth_redirect", nethttpadapter.Handler(app, parserCfg))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	zap.S().Infow("listening", "address", ":"+port)
	zap.S().Fatalw("http server failed", "error", http.ListenAndServe(":"+port, otelhttp.NewHandler(mux, "boltgo")))
}

// installationStore builds a Redis-backed store if REDIS_ADDR is set,
// otherwise falls back to an in-process MemoryStore so the example runs
// with zero external dependencies out of the box.
func installationStore() installation.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return installation.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return installation.NewRedisStore(client, "")
}
