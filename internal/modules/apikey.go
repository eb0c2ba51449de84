package modules

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tavu/internal/nav"
)

// ScreenSetAPIKey is the single screen of the API-key module.
const ScreenSetAPIKey nav.Screen = "set_api_key"

// APIKeyModule swaps the active credential at runtime.
type APIKeyModule struct {
	log *zap.Logger
}

var _ nav.Module = (*APIKeyModule)(nil)

func NewAPIKeyModule(log *zap.Logger) *APIKeyModule {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIKeyModule{log: log}
}

func (m *APIKeyModule) Name() string { return "api_key" }

func (m *APIKeyModule) Screens() []nav.Screen { return []nav.Screen{ScreenSetAPIKey} }

func (m *APIKeyModule) MenuEntries() []nav.MenuEntry {
	return []nav.MenuEntry{{Label: "Set API Key", Screen: ScreenSetAPIKey}}
}

func (m *APIKeyModule) Execute(ctx context.Context, screen nav.Screen, nc *nav.Context) nav.Screen {
	if screen != ScreenSetAPIKey {
		return nav.ScreenMain
	}

	nc.UI.Say("=== Set API Key ===")
	nc.UI.Say(fmt.Sprintf("Currently set API key: %s", maskKey(nc.APIKey)))

	if !confirmed(nc.UI, "Would you like to set a new API key?") {
		return nav.ScreenMain
	}

	key, ok := trimmedInput(nc.UI, "API Key: ", "API key cannot be empty. Please try again.")
	if !ok {
		return nav.ScreenMain
	}

	persist := confirmed(nc.UI, "Save this key for future sessions?")
	if err := nc.SetCredential(key, persist); err != nil {
		nc.UI.Warn(fmt.Sprintf("Error setting API key: %v", err))
		nc.UI.Ack("")
		return nav.ScreenMain
	}

	m.log.Info("api key updated", zap.Bool("persisted", persist))
	nc.UI.Say(fmt.Sprintf("Tavus API key set: %s", maskKey(key)))
	nc.UI.Ack("")
	return nav.ScreenMain
}

// maskKey keeps only the last four characters visible.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
