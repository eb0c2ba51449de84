package nav

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tavu/internal/menu"
)

const exitLabel = "Exit"

// Engine drives the session: main menu, module dispatch, recovery.
type Engine struct {
	registry *Registry
	log      *zap.Logger
}

func NewEngine(registry *Registry, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{registry: registry, log: log}
}

// Run loops from the main menu until the exit screen is reached or ctx is
// cancelled. Screens no module owns are logged and recovered to the main
// menu rather than aborting the session.
func (e *Engine) Run(ctx context.Context, nc *Context) error {
	screen := ScreenMain
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch screen {
		case ScreenExit:
			e.log.Info("session ended")
			return nil
		case ScreenMain:
			screen = e.mainMenu(nc)
		default:
			module, ok := e.registry.Resolve(screen)
			if !ok {
				e.log.Warn("no module owns screen, returning to main menu",
					zap.String("screen", string(screen)))
				screen = ScreenMain
				continue
			}
			e.log.Debug("dispatching screen",
				zap.String("screen", string(screen)),
				zap.String("module", module.Name()))
			screen = module.Execute(ctx, screen, nc)
		}
	}
}

// mainMenu renders the registered entries plus Exit. Cancelling the prompt
// re-shows the menu; the only ways out are an entry or Exit.
func (e *Engine) mainMenu(nc *Context) Screen {
	entries := e.registry.MenuEntries()
	choices := make([]string, 0, len(entries)+1)
	for _, entry := range entries {
		choices = append(choices, entry.Label)
	}
	choices = append(choices, exitLabel)

	picked, err := nc.UI.Select("What would you like to do?", choices)
	if errors.Is(err, menu.ErrCancelled) {
		return ScreenMain
	}
	if err != nil {
		// A broken prompt (closed terminal) cannot be re-shown; bail out
		// instead of spinning on the same failure.
		e.log.Error("main menu prompt failed", zap.Error(err))
		return ScreenExit
	}
	if picked == exitLabel {
		return ScreenExit
	}
	for _, entry := range entries {
		if entry.Label == picked {
			return entry.Screen
		}
	}
	return ScreenMain
}
