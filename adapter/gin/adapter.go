// Package gin adapts an *boltgo.App to a gin.HandlerFunc, grounded on the
// gin + slack-go pairing the jira-helper example uses for its own Slack
// events endpoint.
package gin

import (
	"io"

	"github.com/ffaiyaz23/boltgo"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler returns a gin.HandlerFunc that classifies, runs, and responds
// to every request against app.
func Handler(app *boltgo.App, parserCfg request.ParserConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid_request"})
			return
		}

		resp, err := app.HandleRaw(c.Request.Context(), parserCfg, c.Request.Method, c.Request.URL.Path, c.Request.URL.Query(), c.Request.Header, body)
		if err != nil {
			zap.L().Error("handler error", zap.Error(err))
			c.JSON(500, gin.H{"error": "internal_error"})
			return
		}

		for k, values := range resp.Headers {
			for _, v := range values {
				c.Writer.Header().Add(k, v)
			}
		}
		c.Data(resp.StatusCode, resp.ContentType, resp.Body)
	}
}
