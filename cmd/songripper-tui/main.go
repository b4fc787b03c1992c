package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/handiism/songripper/internal/app"
	"github.com/handiism/songripper/internal/config"
	"github.com/handiism/songripper/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	lock, err := app.AcquireLock(settings.LockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	// The alternate screen owns the terminal, so the logger stays silent.
	return tui.Run(app.New(settings, app.WithLogger(zap.NewNop())))
}
