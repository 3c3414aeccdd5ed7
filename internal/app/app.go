package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/api/fake"
	"github.com/five82/fitlog/internal/auth"
	"github.com/five82/fitlog/internal/config"
	"github.com/five82/fitlog/internal/logger"
	"github.com/five82/fitlog/internal/normalize"
	"github.com/five82/fitlog/internal/prefs"
	"github.com/five82/fitlog/internal/state"
	"github.com/five82/fitlog/internal/timeline"
	"github.com/five82/fitlog/internal/ui"
)

// Options configure the fitlog TUI.
type Options struct {
	ConfigPath string
	Demo       bool          // use the in-memory backend
	Debug      bool          // debug logging mirrored to stderr
	PollEvery  time.Duration // zero uses default
	Date       time.Time     // zero means today
	PrefsPath  string        // empty uses prefs.DefaultPath
}

// Setup loads config, initializes logging and builds the backend. It is shared
// by the TUI and the one-shot CLI commands.
func Setup(configPath string, demo, debug bool) (config.Config, api.Backend, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(logger.Config{Debug: debug, Dir: cfg.LogDir}); err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	backend, err := NewBackend(cfg, demo)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, backend, nil
}

// NewBackend returns the network client for cfg, or a seeded in-memory
// backend when demo is set.
func NewBackend(cfg config.Config, demo bool) (api.Backend, error) {
	if demo {
		logger.Info("using demo backend")
		return fake.NewDemo(&auth.MemoryStore{}, time.Now()), nil
	}
	tokens, err := auth.Open(cfg.TokenStore, cfg.CredentialsPath, cfg.KeyringUser)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	client, err := api.NewClient(cfg.BaseURL, tokens, api.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return client, nil
}

// TargetsFrom converts configured goals into aggregation targets.
func TargetsFrom(cfg config.Config) timeline.Targets {
	return timeline.Targets{
		Calories: cfg.Targets.Calories,
		Protein:  cfg.Targets.Protein,
		Carbs:    cfg.Targets.Carbs,
		Fat:      cfg.Targets.Fat,
	}
}

// ResolveTargets starts from the configured targets and lets a positive
// daily_calorie_target on the account profile override the calorie goal.
// Profile failures are logged and leave the configured values in place.
func ResolveTargets(ctx context.Context, backend api.Backend, cfg config.Config) timeline.Targets {
	targets := TargetsFrom(cfg)
	raw, err := backend.Profile(ctx)
	if err != nil {
		logger.Debug("profile unavailable, using configured targets", "error", err)
		return targets
	}
	p, err := normalize.Profile(raw)
	if err != nil {
		logger.Warn("profile decode failed", "error", err)
		return targets
	}
	if p.DailyCalorieTarget > 0 {
		targets.Calories = p.DailyCalorieTarget
	}
	return targets
}

// Run boots the fitlog TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, backend, err := Setup(opts.ConfigPath, opts.Demo, opts.Debug)
	if err != nil {
		return err
	}

	day := opts.Date
	if day.IsZero() {
		day = time.Now()
	}
	store := &state.Store{}
	store.SetDate(day)

	refresher := &Refresher{Backend: backend, Store: store, Targets: ResolveTargets(ctx, backend, cfg)}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	// The poller's first tick fires immediately and populates the store.
	poller := StartPoller(ctx, refresher, interval)

	p, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("ignoring saved preferences", "error", err)
	}

	logger.Info("starting tui", "base_url", cfg.BaseURL, "demo", opts.Demo, "poll", interval, "theme", p.Theme)
	return ui.Run(ui.Options{
		Context: ctx,
		Store:   store,
		Trigger: poller.Trigger,
		LogPath: cfg.LogPath(),
		Prefs:   p,
		SavePrefs: func(updated prefs.Prefs) {
			if err := prefs.Save(opts.PrefsPath, updated); err != nil {
				logger.Warn("save preferences failed", "error", err)
			}
		},
	})
}
