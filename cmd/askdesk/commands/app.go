package commands

import (
	"fmt"

	"github.com/askdesk/askdesk-go/api"
	"github.com/askdesk/askdesk-go/config"
	"github.com/askdesk/askdesk-go/logging/logger"
	"github.com/askdesk/askdesk-go/session"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// app wires the SDK together for one command invocation: config,
// logger, API client and session manager with its restored session.
type app struct {
	cfg     *config.Config
	client  *api.Client
	manager *session.Manager
	redis   *redis.Client
	cleanup func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("conf")
	cfg, err := config.Init(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cleanup, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	client := api.New(cfg.API)
	store := session.NewStore(cfg.Session.Dir)
	manager := session.NewManager(store, client.Admin())
	client.BindSession(manager)

	if err := manager.Initialize(cmd.Context()); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	// optional cache backend, shared for the invocation
	var rc *redis.Client
	if cfg.Redis != nil {
		rc = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	return &app{cfg: cfg, client: client, manager: manager, redis: rc, cleanup: cleanup}, nil
}

// Close tears down the session manager, the cache connection and logging
func (a *app) Close() {
	a.manager.Close()
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.cleanup()
}

// redisClient returns the shared cache backend, nil when unconfigured
func (a *app) redisClient() *redis.Client {
	return a.redis
}

// requireAdmin guards admin-area commands
func (a *app) requireAdmin() error {
	if !a.manager.IsAuthenticated() {
		return fmt.Errorf("not logged in, run: askdesk login")
	}
	if !a.manager.IsAdminEligible() {
		return fmt.Errorf("this account has no admin area access")
	}
	return nil
}
