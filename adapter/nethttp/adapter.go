// Package nethttp adapts a *boltgo.App to the standard library's
// http.Handler.
package nethttp

import (
	"io"
	"net/http"

	"github.com/ffaiyaz23/boltgo"
	"github.com/ffaiyaz23/boltgo/request"
	"go.uber.org/zap"
)

// Handler builds an http.HandlerFunc that classifies, runs, and responds
// to every request against app using the given OAuth path configuration.
func Handler(app *boltgo.App, parserCfg request.ParserConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, `{"error":"invalid_request"}`, http.StatusBadRequest)
			return
		}

		resp, err := app.HandleRaw(r.Context(), parserCfg, r.Method, r.URL.Path, r.URL.Query(), r.Header, body)
		if err != nil {
			zap.L().Error("handler error", zap.Error(err))
			http.Error(w, `{"error":"internal_error"}`, http.StatusInternalServerError)
			return
		}

		for k, values := range resp.Headers {
			for _, v := range values {
				w.Header().Add(k, v)
			}
		}
		if resp.ContentType != "" {
			w.Header().Set("Content-Type", resp.ContentType)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Body)
	}
}
