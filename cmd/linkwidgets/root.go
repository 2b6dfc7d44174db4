package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NivBraz/linkwidgets/internal/app"
	"github.com/NivBraz/linkwidgets/internal/config"
)

var (
	configPath string
	baseURL    string
	logLevel   string
)

// errAlerted makes the process exit non-zero after a widget raised an alert.
var errAlerted = errors.New("request failed")

var rootCmd = &cobra.Command{
	Use:   "linkwidgets",
	Short: "Render go-links top-n and search results",
	Long: `
linkwidgets drives the top-n and search widgets of a go-links page against a
running go-links API and prints what they render.
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "go-links API base URL, overrides api.baseURL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(pageCmd)
}

// loadConfig reads the config file. A missing default file is not an error
// when --base-url is given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || cmd.Flags().Changed("config") || baseURL == "" {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = config.Default(baseURL)
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	level, _ := config.ParseLevel(cfg.Log.Level)
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// withApp builds the application, runs fn, and turns raised alerts into a
// non-zero exit.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, app.Options{
		Logger:     logger,
		AlertOut:   cmd.ErrOrStderr(),
		SpinnerOut: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close()

	if err := fn(ctx, a); err != nil {
		return err
	}
	if n := len(a.Alerts()); n > 0 {
		return fmt.Errorf("%w: %d alert(s) raised", errAlerted, n)
	}
	return nil
}
