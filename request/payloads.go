package request

import "encoding/json"

// These are intentionally thin: the core only decodes the fields it needs
// to classify and route a request; wire formats of individual Slack event
// types are deliberately out of scope. Handlers that need the rest of a
// payload decode request.RawBody into
// whatever richer type they prefer — e.g. slack-go/slack's own types.

// URLVerificationPayload is the body of a "url_verification" handshake.
type URLVerificationPayload struct {
	Type      string `json:"type"`
	Token     string `json:"token"`
	Challenge string `json:"challenge"`
}

// EventEnvelope is the outer "event_callback" wrapper of the Events API.
type EventEnvelope struct {
	Token        string          `json:"token"`
	TeamID       string          `json:"team_id"`
	EnterpriseID string          `json:"enterprise_id"`
	APIAppID     string          `json:"api_app_id"`
	Type         string          `json:"type"`
	EventID      string          `json:"event_id"`
	EventTime    int64           `json:"event_time"`
	Event        json.RawMessage `json:"event"`
}

// InnerEvent captures just the routing-relevant fields of the nested
// "event" object: its type/subtype for keying, and the author identifiers
// IgnoringSelfEvents needs.
type InnerEvent struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	User    string `json:"user"`
	BotID   string `json:"bot_id"`
}

// SlashCommandPayload is a form-encoded slash command invocation.
type SlashCommandPayload struct {
	Command      string `json:"command"`
	Text         string `json:"text"`
	ResponseURL  string `json:"response_url"`
	TriggerID    string `json:"trigger_id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	ChannelID    string `json:"channel_id"`
	TeamID       string `json:"team_id"`
	EnterpriseID string `json:"enterprise_id"`
}

// InteractionAction is one entry of a block_actions "actions" array.
type InteractionAction struct {
	ActionID string `json:"action_id"`
	BlockID  string `json:"block_id"`
	Value    string `json:"value"`
	Type     string `json:"type"`
}

// InteractionPayload covers every interactive-component shape that arrives
// as a form field named "payload": block_actions, block_suggestion,
// message_action, interactive_message (attachment actions), view_submission,
// view_closed, dialog_submission, dialog_suggestion, dialog_cancellation.
// They share enough top-level shape (type, callback_id, actions, nested
// view.callback_id) that one struct can carry all of them; Type plus
// Request.Kind tell a handler which fields are meaningful.
type InteractionPayload struct {
	Type        string              `json:"type"`
	CallbackID  string              `json:"callback_id"`
	TriggerID   string              `json:"trigger_id"`
	ActionID    string              `json:"action_id"` // top-level, block_suggestion only
	BlockID     string              `json:"block_id"`
	ResponseURL string              `json:"response_url"`
	Team        struct {
		ID string `json:"id"`
	} `json:"team"`
	Enterprise struct {
		ID string `json:"id"`
	} `json:"enterprise"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	Actions []InteractionAction `json:"actions"`
	View    struct {
		CallbackID string `json:"callback_id"`
	} `json:"view"`
}

// OutgoingWebhookPayload is a legacy outgoing-webhook form post.
type OutgoingWebhookPayload struct {
	Token       string `json:"token"`
	TeamID      string `json:"team_id"`
	ChannelID   string `json:"channel_id"`
	TriggerWord string `json:"trigger_word"`
	Text        string `json:"text"`
	UserName    string `json:"user_name"`
}

// OAuthCallbackQuery is the query string Slack redirects back with after
// the install consent screen.
type OAuthCallbackQuery struct {
	Code  string
	State string
	Error string
}
