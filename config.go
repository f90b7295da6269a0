package boltgo

import "time"

// Config is the enumerated option set an App is built from. Every field is
// optional; App fills in the defaults a zero Config would otherwise
// leave broken (e.g. an empty OAuth path never matches any request, so
// OAuth just never triggers instead of panicking).
type Config struct {
	SigningSecret     string
	VerificationToken string

	// SingleTeamBotToken, when non-empty, selects SingleTeamAuthorization
	// over MultiTeamsAuthorization: a one-workspace app with a static bot
	// token instead of a per-team InstallationStore lookup.
	SingleTeamBotToken  string
	SingleTeamBotUserID string

	ClientID     string
	ClientSecret string
	Scope        []string
	UserScope    []string
	RedirectURI  string

	OAuthStartPath    string
	OAuthCallbackPath string

	OAuthCompletionURL   string
	OAuthCancellationURL string

	ClassicAppPermissionsEnabled bool
	StateExpiration              time.Duration
}

func (c Config) withDefaults() Config {
	if c.OAuthStartPath == "" {
		c.OAuthStartPath = "/slack/install"
	}
	if c.OAuthCallbackPath == "" {
		c.OAuthCallbackPath = "/slack/oauth_redirect"
	}
	if c.OAuthCompletionURL == "" {
		c.OAuthCompletionURL = "/slack/oauth_success"
	}
	if c.OAuthCancellationURL == "" {
		c.OAuthCancellationURL = "/slack/oauth_cancel"
	}
	if c.StateExpiration <= 0 {
		c.StateExpiration = 10 * time.Minute
	}
	return c
}
