package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"authorlink/internal/config"
	"authorlink/internal/contributors"
	"authorlink/internal/fetchcache"
	"authorlink/internal/logging"
	"authorlink/internal/viaf"
)

// commandContext lazily builds the shared collaborators so commands
// that never touch the network or the database pay no startup cost.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) newFetchCache() (*fetchcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	maxAge := time.Duration(cfg.Authority.MaxAgeDays) * 24 * time.Hour
	httpTimeout := time.Duration(cfg.Authority.RequestTimeout) * time.Second
	return fetchcache.New(cfg.Paths.CacheDir, maxAge, logger,
		fetchcache.WithHTTPClient(newHTTPClient(httpTimeout))), nil
}

func (c *commandContext) newClient() (*viaf.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	cache, err := c.newFetchCache()
	if err != nil {
		return nil, err
	}
	return viaf.NewClient(cfg.Authority.BaseURL, cache, logger), nil
}

func (c *commandContext) withStore(fn func(*contributors.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := contributors.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
