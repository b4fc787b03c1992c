package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/songripper/internal/app"
	"github.com/handiism/songripper/internal/config"
	"github.com/handiism/songripper/internal/logging"
)

type commandContext struct {
	configFlag *string

	once     sync.Once
	settings *config.Settings
	logger   *zap.Logger
	app      *app.App
	err      error

	// appOptions are appended when the App is built; tests inject fakes here.
	appOptions []app.Option
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureApp() (*app.App, error) {
	c.once.Do(func() {
		settings, err := c.loadSettings()
		if err != nil {
			c.err = err
			return
		}
		logger, err := logging.New(settings.Log)
		if err != nil {
			c.err = err
			return
		}
		c.settings = settings
		c.logger = logger
		opts := append([]app.Option{app.WithLogger(logger)}, c.appOptions...)
		c.app = app.New(settings, opts...)
	})
	return c.app, c.err
}

func (c *commandContext) loadSettings() (*config.Settings, error) {
	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// withLock runs fn holding the process lock, for commands that change
// staging or the library.
func (c *commandContext) withLock(fn func(*app.App) error) error {
	a, err := c.ensureApp()
	if err != nil {
		return err
	}
	lock, err := app.AcquireLock(c.settings.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			c.logger.Warn("failed to release lock", zap.Error(err))
		}
	}()
	return fn(a)
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
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
