package request

import (
	"net/http"
	"net/url"
	"testing"
)

func formHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/x-www-form-urlencoded")
	return h
}

func jsonHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json; charset=utf-8")
	return h
}

var testCfg = ParserConfig{
	OAuthStartPath:    "/slack/install",
	OAuthCallbackPath: "/slack/oauth_redirect",
}

func TestParse_URLVerification(t *testing.T) {
	body := []byte(`{"type":"url_verification","challenge":"abc","token":"t"}`)
	req, err := Parse(testCfg, "POST", "/events", nil, jsonHeaders(), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != UrlVerification {
		t.Fatalf("kind = %v, want UrlVerification", req.Kind)
	}
	if req.URLVerification.Challenge != "abc" {
		t.Fatalf("challenge = %q, want abc", req.URLVerification.Challenge)
	}
}

func TestParse_Event(t *testing.T) {
	body := []byte(`{"type":"event_callback","team_id":"T1","event":{"type":"app_mention","user":"U1"}}`)
	req, err := Parse(testCfg, "POST", "/events", nil, jsonHeaders(), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != Event {
		t.Fatalf("kind = %v, want Event", req.Kind)
	}
	if got, want := req.EventKey(), "app_mention:null"; got != want {
		t.Fatalf("EventKey() = %q, want %q", got, want)
	}
}

func TestParse_EventWithSubtype(t *testing.T) {
	body := []byte(`{"type":"event_callback","event":{"type":"message","subtype":"message_changed"}}`)
	req, err := Parse(testCfg, "POST", "/events", nil, jsonHeaders(), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := req.EventKey(), "message:message_changed"; got != want {
		t.Fatalf("EventKey() = %q, want %q", got, want)
	}
}

func TestParse_SlashCommand(t *testing.T) {
	body := []byte("command=%2Fhelp&text=me&user_id=U1")
	req, err := Parse(testCfg, "POST", "/slack/commands", nil, formHeaders(), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != SlashCommand {
		t.Fatalf("kind = %v, want SlashCommand", req.Kind)
	}
	if req.Command.Command != "/help" {
		t.Fatalf("command = %q, want /help", req.Command.Command)
	}
}

func TestParse_BlockActionSingle(t *testing.T) {
	payload := url.Values{}
	payload.Set("payload", `{"type":"block_actions","actions":[{"action_id":"a1"}]}`)
	req, err := Parse(testCfg, "POST", "/interactions", nil, formHeaders(), []byte(payload.Encode()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != BlockAction {
		t.Fatalf("kind = %v, want BlockAction", req.Kind)
	}
	if len(req.Interaction.Actions) != 1 || req.Interaction.Actions[0].ActionID != "a1" {
		t.Fatalf("unexpected actions: %+v", req.Interaction.Actions)
	}
}

func TestParse_OutgoingWebhook(t *testing.T) {
	body := []byte("trigger_word=hello&team_id=T1&text=hello+world")
	req, err := Parse(testCfg, "POST", "/webhook", nil, formHeaders(), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != OutgoingWebhook {
		t.Fatalf("kind = %v, want OutgoingWebhook", req.Kind)
	}
	if req.Webhook.TriggerWord != "hello" {
		t.Fatalf("trigger_word = %q, want hello", req.Webhook.TriggerWord)
	}
}

func TestParse_OAuthStartAndCallback(t *testing.T) {
	req, err := Parse(testCfg, "GET", "/slack/install", nil, http.Header{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != OAuthStart {
		t.Fatalf("kind = %v, want OAuthStart", req.Kind)
	}

	q := url.Values{"code": {"abc"}, "state": {"xyz"}}
	req, err = Parse(testCfg, "GET", "/slack/oauth_redirect", q, http.Header{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != OAuthCallback {
		t.Fatalf("kind = %v, want OAuthCallback", req.Kind)
	}
	if req.OAuthCallback.Code != "abc" || req.OAuthCallback.State != "xyz" {
		t.Fatalf("unexpected oauth callback query: %+v", req.OAuthCallback)
	}
}

func TestParse_Unrecognized(t *testing.T) {
	_, err := Parse(testCfg, "POST", "/mystery", nil, http.Header{}, []byte("nonsense"))
	if err != ErrUnrecognizedRequest {
		t.Fatalf("err = %v, want ErrUnrecognizedRequest", err)
	}
}
