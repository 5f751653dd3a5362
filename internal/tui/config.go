package tui

import (
	"github.com/harlow-hs/paydash/internal/api"
	"github.com/harlow-hs/paydash/internal/session"
	"github.com/harlow-hs/paydash/internal/tui/themes"
)

// Config holds dashboard configuration.
type Config struct {
	Client  *api.Client
	Session *session.Session
	Theme   themes.Theme

	// SchoolID scopes the whole dashboard to one school's transactions.
	SchoolID string

	// InitialQuery is a shareable query string (the address-bar form) used
	// to hydrate the view state, e.g. "page=2&status=failed".
	InitialQuery string
}
