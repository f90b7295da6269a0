package request

// Kind is the closed set of request shapes the parser can classify an
// incoming Slack HTTP call into. Exactly one Kind is assigned per Request;
// a payload the parser can't place in this set is a parse error, not a
// silent fallthrough.
type Kind int

const (
	// Unknown is never assigned to a successfully parsed Request; it only
	// appears as the zero value before classification.
	Unknown Kind = iota
	UrlVerification
	Event
	SlashCommand
	BlockAction
	BlockSuggestion
	MessageAction
	AttachmentAction
	ViewSubmission
	ViewClosed
	DialogSubmission
	DialogSuggestion
	DialogCancellation
	OutgoingWebhook
	OAuthStart
	OAuthCallback
)

func (k Kind) String() string {
	switch k {
	case UrlVerification:
		return "url_verification"
	case Event:
		return "event"
	case SlashCommand:
		return "slash_command"
	case BlockAction:
		return "block_actions"
	case BlockSuggestion:
		return "block_suggestion"
	case MessageAction:
		return "message_action"
	case AttachmentAction:
		return "interactive_message"
	case ViewSubmission:
		return "view_submission"
	case ViewClosed:
		return "view_closed"
	case DialogSubmission:
		return "dialog_submission"
	case DialogSuggestion:
		return "dialog_suggestion"
	case DialogCancellation:
		return "dialog_cancellation"
	case OutgoingWebhook:
		return "outgoing_webhook"
	case OAuthStart:
		return "oauth_start"
	case OAuthCallback:
		return "oauth_callback"
	default:
		return "unknown"
	}
}
