package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bloyl/fsl-mrs/internal/config"
	"github.com/bloyl/fsl-mrs/internal/journal"
	"github.com/bloyl/fsl-mrs/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	logger  *slog.Logger
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *slog.Logger {
	c.logOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{})
		}
		c.logger = logger
	})
	return c.logger
}

// recordOperation journals a completed operation. Journal trouble is worth a
// warning, never a failed command: the output files already exist.
func (c *commandContext) recordOperation(ctx context.Context, operation, detail string, inputs, outputs []string) {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil || !cfg.Journal.Enabled {
		return
	}
	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		c.log().Warn("journal unavailable", "error", err)
		return
	}
	defer store.Close()
	if _, err := store.Append(ctx, operation, detail, inputs, outputs); err != nil {
		c.log().Warn("journal append failed", "error", err)
	}
}
