package request

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// ParserConfig carries the path configuration the classifier needs; it is
// a subset of the App's full Config so this package has no dependency on
// the root package.
type ParserConfig struct {
	OAuthStartPath    string
	OAuthCallbackPath string
}

// Parse normalizes a raw HTTP call into a typed, classified Request. The
// rules are evaluated in a fixed order and the first rule that matches
// wins. query is the parsed query string, relevant only for the
// OAuth callback (a GET with no body).
func Parse(cfg ParserConfig, method, path string, query url.Values, headers http.Header, body []byte) (*Request, error) {
	req := &Request{
		RawBody: body,
		Headers: headers,
	}

	// Rule 1 / 2: OAuth endpoints are matched on path alone, regardless of
	// content-type, since the callback is a GET with no body.
	if cfg.OAuthStartPath != "" && path == cfg.OAuthStartPath {
		req.Kind = OAuthStart
		return req, nil
	}
	if cfg.OAuthCallbackPath != "" && path == cfg.OAuthCallbackPath {
		req.Kind = OAuthCallback
		req.OAuthCallback = ParseOAuthCallbackQuery(query)
		return req, nil
	}

	ct := contentTypeOf(headers)

	switch {
	case ct == "application/json":
		return parseJSONBody(req, body)
	case ct == "application/x-www-form-urlencoded":
		return parseFormBody(req, body)
	default:
		return nil, ErrUnrecognizedRequest
	}
}

func contentTypeOf(headers http.Header) string {
	raw := headers.Get("Content-Type")
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(raw, ";", 2)[0])
	}
	return mediaType
}

func parseJSONBody(req *Request, body []byte) (*Request, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ErrMalformedPayload
	}

	switch envelope.Type {
	case "url_verification":
		var payload URLVerificationPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, ErrMalformedPayload
		}
		req.Kind = UrlVerification
		req.URLVerification = &payload
		return req, nil
	case "event_callback":
		var env EventEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, ErrMalformedPayload
		}
		var inner InnerEvent
		if len(env.Event) > 0 {
			if err := json.Unmarshal(env.Event, &inner); err != nil {
				return nil, ErrMalformedPayload
			}
		}
		req.Kind = Event
		req.EventEnvelope = &env
		req.InnerEvent = &inner
		return req, nil
	default:
		return nil, ErrUnrecognizedRequest
	}
}

func parseFormBody(req *Request, body []byte) (*Request, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, ErrMalformedPayload
	}

	// Rule 5: interactive components arrive as a JSON-encoded "payload"
	// form field.
	if raw := values.Get("payload"); raw != "" {
		return parseInteractionPayload(req, []byte(raw))
	}

	// Rule 6: slash commands carry a "command" field.
	if values.Has("command") {
		req.Kind = SlashCommand
		req.Command = &SlashCommandPayload{
			Command:      values.Get("command"),
			Text:         values.Get("text"),
			ResponseURL:  values.Get("response_url"),
			TriggerID:    values.Get("trigger_id"),
			UserID:       values.Get("user_id"),
			UserName:     values.Get("user_name"),
			ChannelID:    values.Get("channel_id"),
			TeamID:       values.Get("team_id"),
			EnterpriseID: values.Get("enterprise_id"),
		}
		return req, nil
	}

	// Rule 7: legacy outgoing webhooks carry "trigger_word".
	if values.Has("trigger_word") {
		req.Kind = OutgoingWebhook
		req.Webhook = &OutgoingWebhookPayload{
			Token:       values.Get("token"),
			TeamID:      values.Get("team_id"),
			ChannelID:   values.Get("channel_id"),
			TriggerWord: values.Get("trigger_word"),
			Text:        values.Get("text"),
			UserName:    values.Get("user_name"),
		}
		return req, nil
	}

	return nil, ErrUnrecognizedRequest
}

var interactionKinds = map[string]Kind{
	"block_actions":      BlockAction,
	"block_suggestion":   BlockSuggestion,
	"message_action":     MessageAction,
	"interactive_message": AttachmentAction,
	"view_submission":    ViewSubmission,
	"view_closed":        ViewClosed,
	"dialog_submission":  DialogSubmission,
	"dialog_suggestion":  DialogSuggestion,
	"dialog_cancellation": DialogCancellation,
}

func parseInteractionPayload(req *Request, raw []byte) (*Request, error) {
	var payload InteractionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrMalformedPayload
	}
	kind, ok := interactionKinds[payload.Type]
	if !ok {
		return nil, ErrUnrecognizedRequest
	}
	req.Kind = kind
	req.Interaction = &payload
	return req, nil
}

// ParseOAuthCallbackQuery extracts code/state/error from the callback's
// query parameters. Parse calls it with the url.Values the adapter passes
// in, since Go's net/http already hands adapters a parsed query.
func ParseOAuthCallbackQuery(q url.Values) *OAuthCallbackQuery {
	return &OAuthCallbackQuery{
		Code:  q.Get("code"),
		State: q.Get("state"),
		Error: q.Get("error"),
	}
}
