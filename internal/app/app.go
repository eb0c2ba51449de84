package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tavu/internal/config"
	"tavu/internal/credential"
	"tavu/internal/logging"
	"tavu/internal/menu"
	"tavu/internal/modules"
	"tavu/internal/nav"
	"tavu/internal/prefs"
	"tavu/internal/tavus"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tavu/prefs.toml
	KeyFile    string // overrides the configured credential file
	Verbose    bool
}

// Run boots the interactive client until the operator exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.KeyFile != "" {
		cfg.KeyFile = opts.KeyFile
	}

	logger, err := logging.New(cfg.LogPath, opts.Verbose)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	ui := menu.NewTerminal()
	ui.Say("Welcome to the Tavus CLI Tool!")

	key, err := resolveKey(cfg, ui)
	if err != nil {
		return err
	}

	client, err := tavus.NewClient(cfg.BaseURL, key)
	if err != nil {
		return fmt.Errorf("init tavus client: %w", err)
	}

	// Warm-up fetch; a failure here usually means a bad key, so say so
	// before dropping into the menus.
	warmErr := ui.Busy("Updating replicas and personas...", func() error {
		if _, err := client.ListReplicas(ctx); err != nil {
			return err
		}
		_, err := client.ListPersonas(ctx, "user")
		return err
	})
	if warmErr != nil {
		logger.Warn("warm-up request failed", zap.Error(warmErr))
		ui.Warn(fmt.Sprintf("Warning: could not reach the Tavus API: %v", warmErr))
		ui.Say("Check your API key with Set API Key if requests keep failing.")
	}

	nc := &nav.Context{
		UI:       ui,
		Client:   client,
		APIKey:   key,
		PageSize: pageSize(cfg, userPrefs),
	}
	nc.SetCredential = func(newKey string, persist bool) error {
		rebuilt, err := tavus.NewClient(cfg.BaseURL, newKey)
		if err != nil {
			return err
		}
		if persist {
			if err := credential.Save(cfg.KeyFile, newKey); err != nil {
				return err
			}
		}
		nc.Client = rebuilt
		nc.APIKey = newKey
		logger.Info("credential replaced", zap.Bool("persisted", persist))
		return nil
	}

	replicaModule := modules.NewReplicaModule(logger)
	replicaModule.DefaultFilter = userPrefs.ReplicaFilter

	registry := nav.NewRegistry()
	for _, m := range []nav.Module{
		modules.NewAPIKeyModule(logger),
		replicaModule,
		modules.NewPersonaModule(logger),
		modules.NewVideoModule(logger),
		modules.NewConversationModule(logger),
	} {
		if err := registry.Register(m); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	logger.Info("session started", zap.String("base_url", cfg.BaseURL))
	return nav.NewEngine(registry, logger).Run(ctx, nc)
}

// pageSize picks the list page size: the config value (file or
// TAVU_PAGE_SIZE) wins over the prefs file when set.
func pageSize(cfg config.Config, p prefs.Prefs) int {
	if cfg.PageSize > 0 {
		return cfg.PageSize
	}
	return p.PageSize
}

// resolveKey finds the API key: environment, then the key file, then an
// interactive prompt with an offer to persist.
func resolveKey(cfg config.Config, ui menu.UI) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}

	key, err := credential.Load(cfg.KeyFile)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}

	raw, err := ui.Input("Enter your Tavus API Key: ")
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	key = strings.TrimSpace(raw)
	if key == "" {
		return "", fmt.Errorf("api key is empty")
	}

	if save, err := ui.Confirm("Save this key for future sessions?"); err == nil && save {
		if err := credential.Save(cfg.KeyFile, key); err != nil {
			ui.Warn(fmt.Sprintf("Warning: could not save key: %v", err))
		}
	}
	return key, nil
}
