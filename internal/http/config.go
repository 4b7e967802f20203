package http

import (
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/web"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Genres   catalog.GenreStore
	Authors  catalog.AuthorStore
	Books    catalog.BookStore
	Recorder catalog.Recorder

	// Genre name length thresholds
	GenreRules catalog.GenreRules

	// Flash messages; nil disables them
	Sessions *web.SessionManager

	// CSRF protection; empty key disables it
	CSRFKey       []byte
	SecureCookies bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Extra health checks by name, e.g. the task queue
	HealthChecks map[string]Pinger

	// Application info
	Version string
}
