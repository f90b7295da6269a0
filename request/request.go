package request

import "net/http"

// Request is a tagged record: exactly one Kind is set, and only the
// kind-specific payload fields matching Kind are non-nil (Event sets both
// EventEnvelope and InnerEvent; OAuthStart sets none). RawBody and Headers are preserved verbatim (the former is needed
// again by SignatureVerifier, the latter by OAuth cookie handling).
type Request struct {
	Kind    Kind
	RawBody []byte
	Headers http.Header
	Context *Context

	URLVerification *URLVerificationPayload
	EventEnvelope   *EventEnvelope
	InnerEvent      *InnerEvent
	Command         *SlashCommandPayload
	Interaction     *InteractionPayload
	Webhook         *OutgoingWebhookPayload
	OAuthCallback   *OAuthCallbackQuery
}

// EventKey returns the "{type}:{subtype}" exact-match key used by the
// Events API handler registry. subtype is the literal string "null" when
// absent, matching how handlers register.
func (r *Request) EventKey() string {
	if r.InnerEvent == nil {
		return ":null"
	}
	subtype := r.InnerEvent.Subtype
	if subtype == "" {
		subtype = "null"
	}
	return r.InnerEvent.Type + ":" + subtype
}

// Header returns the first value of the named header, case-insensitively,
// or "" if absent.
func (r *Request) Header(name string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers.Get(name)
}
