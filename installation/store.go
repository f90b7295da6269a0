// Package installation defines the persistence contract for per-team
// Slack app installations, plus two reference implementations.
package installation

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when no installation matches the
// given key.
var ErrNotFound = errors.New("installation: not found")

// Installation is the persisted record of a single workspace's app
// install: bot token, scopes, the installer's own user token, and
// identifying metadata. It's keyed by (EnterpriseID?, TeamID, UserID?).
type Installation struct {
	EnterpriseID string
	TeamID       string
	UserID       string

	BotToken  string
	BotUserID string
	AppID     string
	Scopes    []string

	InstallerUserToken string
	InstalledAt        time.Time
}

// Store is implemented by any persistence backend for Installations. The
// Store owns the lifetime of what it persists; the core only ever holds
// references by key, never a copy it mutates out from under the Store.
type Store interface {
	Save(ctx context.Context, inst *Installation) error
	FindBot(ctx context.Context, enterpriseID, teamID string) (*Installation, error)
	FindInstaller(ctx context.Context, enterpriseID, teamID, userID string) (*Installation, error)
	DeleteAll(ctx context.Context, enterpriseID, teamID string) error
}
