// Package main provides the CLI entrypoint of mailprov.
// It wires subcommands (create, login, list), loads configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"mailprov/internal/config"
	"mailprov/internal/panel"
	"mailprov/pkg/artifacts"
	"mailprov/pkg/browser/cdp"
	"mailprov/pkg/logger"
	"mailprov/pkg/serrors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitFailure       = 1
	exitInvalidConfig = 2
)

// getBrowser attaches to the remote browser using configuration values and
// returns it along with a cleanup function that closes the tab.
func getBrowser(ctx context.Context, cfg *config.Config) (*cdp.Driver, func(), error) {
	driver, err := cdp.Connect(ctx, cdp.Options{
		URL:              cfg.Browser.URL,
		ConnectRetries:   cfg.Browser.ConnectRetries,
		ConnectRetryWait: cfg.Browser.ConnectRetryWait,
		ViewportWidth:    cfg.Browser.WindowWidth,
		ViewportHeight:   cfg.Browser.WindowHeight,
	})
	if err != nil {
		logger.Error(ctx, "could not connect to browser", zap.Error(err))

		return nil, nil, fmt.Errorf("could not connect to browser: %w", err)
	}

	return driver, func() {
		logger.Info(ctx, "closing browser session...")
		if err := driver.Close(ctx); err != nil {
			logger.Warn(ctx, "could not close browser session", zap.Error(err))
		}
	}, nil
}

// getPanel connects to the browser and returns a panel bound to its tab.
// Screenshots go to the diagnostics directory.
func getPanel(ctx context.Context, cfg *config.Config) (panel.Panel, func(), error) {
	store, err := artifacts.New(cfg.Diagnostics.LogDir)
	if err != nil {
		logger.Warn(ctx, "screenshots disabled", zap.Error(err))
		store = nil
	}

	driver, closeBrowser, err := getBrowser(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return panel.New(driver, store, panel.NewOptions(cfg)), closeBrowser, nil
}

// withRunID tags every log entry of a command with a fresh run identifier.
func withRunID(ctx context.Context) context.Context {
	return logger.WithFields(ctx, zap.String("runID", uuid.NewString()))
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:           "mailprov",
		Short:         "Creates e-mail accounts through the cPanel web interface",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config: ", err)
	}

	logger.Setup(cfg.Environment, logger.FileOptions{
		Path:       cfg.LogPath(),
		MaxSizeMB:  cfg.Diagnostics.LogMaxSizeMB,
		MaxBackups: cfg.Diagnostics.LogMaxBackups,
	})

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return cfg.Validate()
	}
	rootCmd.AddCommand(
		createCommand(cfg),
		loginCommand(cfg),
		listCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, serrors.ErrInvalidConfig) {
			os.Exit(exitInvalidConfig) //nolint: gocritic
		}
		os.Exit(exitFailure)
	}
}
