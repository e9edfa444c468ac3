package nutribuddy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jenn623/NutriBuddy/internal/app"
	"github.com/Jenn623/NutriBuddy/internal/config"
	"github.com/Jenn623/NutriBuddy/internal/logger"
	"github.com/Jenn623/NutriBuddy/internal/provider/gemini"
	"github.com/Jenn623/NutriBuddy/internal/provider/openai"
	"github.com/Jenn623/NutriBuddy/internal/provider/usda"
	"github.com/Jenn623/NutriBuddy/internal/service"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

// env is everything a command needs for one invocation.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	store   store.Store
	catalog *service.Catalog
	live    *service.Feedback
	history *service.Feedback
}

func loadConfig() (*config.Config, error) {
	var searchPaths []string
	if dir, err := app.DataDir(); err == nil {
		searchPaths = append(searchPaths, dir)
	}
	cfg, err := config.Load(configPath, searchPaths...)
	if err != nil {
		return nil, err
	}
	if storeBackend != "" {
		cfg.Store.Backend = strings.ToLower(strings.TrimSpace(storeBackend))
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if verbose || cfg.Log.Development {
		return logger.NewDevelopment(), nil
	}
	return logger.New(cfg.Log.Level)
}

func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, nil
	}
	return app.DefaultDBPath()
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, string, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		path, err := resolveDBPath(cfg)
		if err != nil {
			return nil, "", err
		}
		if err := app.EnsureParentDir(path); err != nil {
			return nil, "", err
		}
		st, err := store.OpenSQLite(path)
		if err != nil {
			return nil, "", err
		}
		return st, path, nil
	case "redis":
		st, err := store.OpenRedis(ctx, store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, "", err
		}
		return st, "redis://" + cfg.Redis.Addr, nil
	case "memory":
		return store.NewMemory(), "memory", nil
	default:
		return nil, "", fmt.Errorf("unknown store backend %q (expected sqlite, redis or memory)", cfg.Store.Backend)
	}
}

func newCatalog(cfg *config.Config, st store.Store, log *logger.Logger) *service.Catalog {
	opts := []service.CatalogOption{
		service.WithLookupTimeout(cfg.Lookup.Timeout),
		service.WithCatalogLogger(log),
	}
	if cfg.USDA.APIKey != "" {
		opts = append(opts, service.WithRemoteSearch(&usda.Client{APIKey: cfg.USDA.APIKey, BaseURL: cfg.USDA.BaseURL}))
	}
	switch cfg.Generator.Provider {
	case "gemini":
		if cfg.Gemini.APIKey != "" {
			opts = append(opts, service.WithGenerator(service.GeminiGenerator(&gemini.Client{
				APIKey:  cfg.Gemini.APIKey,
				Model:   cfg.Gemini.Model,
				BaseURL: cfg.Gemini.BaseURL,
			})))
		}
	case "openai":
		if cfg.OpenAI.APIKey != "" {
			opts = append(opts, service.WithGenerator(service.OpenAIGenerator(openai.NewClient(cfg.OpenAI.APIKey).WithModel(cfg.OpenAI.Model))))
		}
	}
	return service.NewCatalog(st, opts...)
}

func withEnv(cmd *cobra.Command, run func(context.Context, *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, location, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	log.Debugw("opened store", "backend", cfg.Store.Backend, "location", location)

	e := &env{
		cfg:     cfg,
		log:     log,
		store:   st,
		catalog: newCatalog(cfg, st, log),
		live: service.NewLiveFeedback(service.Thresholds{
			Exceeded:  cfg.Feedback.LiveExceeded,
			Deficient: cfg.Feedback.LiveDeficient,
		}, nil),
		history: service.NewHistoryFeedback(service.Thresholds{
			Exceeded:       cfg.Feedback.HistoryExceeded,
			Deficient:      cfg.Feedback.HistoryDeficient,
			StrictExceeded: true,
		}, nil),
	}
	return run(ctx, e)
}

func withSession(cmd *cobra.Command, run func(context.Context, *env, *service.Session) error) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		sess, err := service.RequireSession(ctx, e.store)
		if err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				return fmt.Errorf("%w: run `nutribuddy login` or `nutribuddy register` first", err)
			}
			return err
		}
		return run(ctx, e, sess)
	})
}

// withTracker opens today's tracker for the active user and writes it back
// when run returns.
func withTracker(cmd *cobra.Command, run func(context.Context, *env, *service.Tracker) error) error {
	return withSession(cmd, func(ctx context.Context, e *env, sess *service.Session) error {
		tr, err := service.NewTracker(ctx, e.store, sess.Profile, service.WithFeedback(e.live), service.WithLogger(e.log))
		if err != nil {
			return err
		}
		runErr := run(ctx, e, tr)
		if err := tr.Close(ctx); err != nil && runErr == nil {
			return err
		}
		return runErr
	})
}

func parseIndexArg(value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid entry number %q", value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("entry number must be > 0")
	}
	return v - 1, nil
}
