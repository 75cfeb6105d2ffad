package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"reelmatch/internal/config"
	"reelmatch/internal/logging"
	"reelmatch/internal/matcher"
	"reelmatch/internal/providers/tagid"
	"reelmatch/internal/providers/tmdb"
	"reelmatch/internal/renamer"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) buildLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

// buildEngine wires the metadata providers into a matching engine. The TMDB
// client is only created when an API key is configured; commands that need
// lookups call config.RequireTMDB before reaching this point.
func (c *commandContext) buildEngine(logger *slog.Logger) (*renamer.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	policy := cfg.Policy()
	music := tagid.New()

	if cfg.TMDB.APIKey == "" {
		return renamer.New(nil, nil, music, policy, logger), nil
	}

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return nil, fmt.Errorf("create TMDB client: %w", err)
	}
	return renamer.New(client, client, music, policy, logger), nil
}

func (c *commandContext) tmdbClient() (*tmdb.Client, matcher.Policy, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, matcher.Policy{}, err
	}
	if err := cfg.RequireTMDB(); err != nil {
		return nil, matcher.Policy{}, err
	}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return nil, matcher.Policy{}, fmt.Errorf("create TMDB client: %w", err)
	}
	return client, cfg.Policy(), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
