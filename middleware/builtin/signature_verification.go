package builtin

import (
	"net/http"

	"github.com/ffaiyaz23/boltgo/middleware"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/ffaiyaz23/boltgo/signature"
	"go.uber.org/zap"
)

// RequestVerification authenticates every incoming request against
// Slack's HMAC signature. It's expected to run before any
// user-registered middleware.
type RequestVerification struct {
	Verifier *signature.Verifier
}

// NewRequestVerification builds a RequestVerification middleware with the
// default replay window.
func NewRequestVerification(signingSecret string) *RequestVerification {
	return &RequestVerification{Verifier: signature.New(signingSecret)}
}

func (m *RequestVerification) Apply(req *request.Request, draft *response.Response, next middleware.Next) (*response.Response, error) {
	ts := req.Header("X-Slack-Request-Timestamp")
	sig := req.Header("X-Slack-Signature")

	if err := m.Verifier.Verify(ts, sig, req.RawBody); err != nil {
		zap.L().Warn("signature verification failed", zap.Error(err))
		switch err {
		case signature.ErrExpired:
			return response.JSON(http.StatusUnauthorized, map[string]string{"error": "request_expired"}), nil
		case signature.ErrMissingHeaders:
			return response.JSON(http.StatusUnauthorized, map[string]string{"error": "missing_signature_headers"}), nil
		default:
			return response.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_signature"}), nil
		}
	}
	return next(req)
}
