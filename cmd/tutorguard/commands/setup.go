package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tutorguard/tutorguard/pkg/config"
	"github.com/tutorguard/tutorguard/pkg/llm"
	"github.com/tutorguard/tutorguard/pkg/observability/logging"
	"github.com/tutorguard/tutorguard/pkg/responder"
	"github.com/tutorguard/tutorguard/pkg/session"
)

// loadConfig reads the config file named by the root --config flag.
// A missing file falls back to built-in defaults so the binary works
// out of the box with only GROQ_API_KEY set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// A .env file is optional; shell environment wins on conflicts.
	_ = godotenv.Load()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Warnf("Config file %s not found, using defaults", path)
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline assembles the responder and session store from config.
func buildPipeline(cfg *config.Config) (*responder.Responder, session.Store, error) {
	store, err := session.NewStore(storeConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session store: %w", err)
	}

	client := llm.NewClient(cfg)
	return responder.New(client, cfg), store, nil
}

func storeConfig(cfg *config.Config) session.StoreConfig {
	return session.StoreConfig{
		Backend: session.BackendType(cfg.Session.Backend),
		TTL:     cfg.Session.TTL(),
		Memory: session.MemoryConfig{
			MaxSessions: cfg.Session.Memory.MaxSessions,
		},
		Redis: session.RedisConfig{
			Address:   cfg.Session.Redis.Address,
			Database:  cfg.Session.Redis.Database,
			Password:  cfg.Session.Redis.Password,
			KeyPrefix: cfg.Session.Redis.KeyPrefix,
		},
	}
}
