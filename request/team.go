package request

// TeamAndEnterprise extracts the workspace/org identifiers from whichever
// kind-specific payload is populated, for use by authorization middleware
// that needs to look up an installation before any handler runs.
func (r *Request) TeamAndEnterprise() (teamID, enterpriseID string) {
	switch r.Kind {
	case Event:
		if r.EventEnvelope != nil {
			return r.EventEnvelope.TeamID, r.EventEnvelope.EnterpriseID
		}
	case SlashCommand:
		if r.Command != nil {
			return r.Command.TeamID, r.Command.EnterpriseID
		}
	case OutgoingWebhook:
		if r.Webhook != nil {
			return r.Webhook.TeamID, ""
		}
	case BlockAction, BlockSuggestion, MessageAction, AttachmentAction,
		ViewSubmission, ViewClosed, DialogSubmission, DialogSuggestion, DialogCancellation:
		if r.Interaction != nil {
			return r.Interaction.Team.ID, r.Interaction.Enterprise.ID
		}
	}
	return "", ""
}
