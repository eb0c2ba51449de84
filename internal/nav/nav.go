package nav

import (
	"context"

	"tavu/internal/menu"
	"tavu/internal/tavus"
)

// Screen identifies one navigation target. Screens are stable tokens, not
// display strings; every screen except the reserved pair below is owned by
// exactly one module.
type Screen string

const (
	// ScreenMain is the engine-owned main menu.
	ScreenMain Screen = "main_menu"
	// ScreenExit terminates the run loop.
	ScreenExit Screen = "exit"
)

// MenuEntry maps one main-menu label to the screen it opens.
type MenuEntry struct {
	Label  string
	Screen Screen
}

// Module is one self-contained resource area. Execute handles a single screen
// the module declared in Screens and returns the next screen to visit, which
// may belong to another module.
type Module interface {
	Name() string
	Screens() []Screen
	MenuEntries() []MenuEntry
	Execute(ctx context.Context, screen Screen, nc *Context) Screen
}

// Context carries the shared collaborators a module may touch. Modules keep
// their own caches; nothing else crosses module boundaries.
type Context struct {
	UI     menu.UI
	Client tavus.API
	APIKey string

	// PageSize is the preferred list page size; zero means the pager default.
	PageSize int

	// SetCredential swaps the active API key, rebuilding the client, and
	// optionally persists it. Only the API-key module calls this.
	SetCredential func(key string, persist bool) error
}
