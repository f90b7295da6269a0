package builtin

import (
	"net/http"
	"net/url"

	"github.com/ffaiyaz23/boltgo/middleware"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
)

// SSLCheck handles Slack's legacy "ssl_check" verification for slash
// commands: if the form body contains ssl_check=1, respond 200
// immediately without invoking any further middleware or handler. It must
// run before signature verification, since Slack doesn't sign these
// pings with a request body SignatureVerification would recognize in all
// legacy setups.
type SSLCheck struct {
	// VerificationToken is accepted for backward compatibility but isn't
	// required for the short-circuit to apply.
	VerificationToken string
}

func (m *SSLCheck) Apply(req *request.Request, draft *response.Response, next middleware.Next) (*response.Response, error) {
	if req.Kind == request.SlashCommand {
		values, err := url.ParseQuery(string(req.RawBody))
		if err == nil && values.Get("ssl_check") == "1" {
			return response.Text(http.StatusOK, "[]"), nil
		}
	}
	return next(req)
}
