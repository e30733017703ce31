package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	app "visitor-reception/internal"
	"visitor-reception/internal/badge"
	"visitor-reception/internal/broadcast"
	"visitor-reception/internal/config"
	"visitor-reception/internal/email"
	"visitor-reception/internal/report"
	"visitor-reception/internal/visitor"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the visitor reception server",
	Run: func(cmd *cobra.Command, args []string) {
		initLogger(cfg)
		ServerMain()
	},
}

// Initialize logger
func initLogger(cfg *config.Config) *slog.Logger {
	// Determine level from config and set it on the handler options.
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		println("Invalid log level in config, defaulting to INFO")
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	slog.Debug("Logger initialized", "level", level.String())
	return logger
}

func ServerMain() {
	if cfg == nil {
		panic("Config not initialized.")
	}
	if provider == nil {
		slog.Error("Storage provider is nil")
		os.Exit(1)
	}

	// The notifier is optional: without SMTP configuration registrations
	// still succeed, approval emails are simply skipped.
	var notifier *visitor.Notifier
	if client, err := email.NewClient(cfg.Email); err != nil {
		slog.Warn("Email disabled", "reason", err)
	} else {
		notifier = visitor.NewNotifier(client, cfg.HREmail)
	}

	badges := badge.NewGenerator(cfg.DataDir)
	broadcaster := broadcast.New()
	manager := visitor.NewManager(provider, badges, notifier, broadcaster, cfg.BaseURL)
	exporter := report.NewExporter(provider)

	server := app.HTTPServer(cfg)
	app.RegisterRoutes(server, cfg, manager, exporter, broadcaster)

	slog.Info("Starting visitor reception server", "listen", cfg.Listen)
	if err := server.Run(cfg.Listen); err != nil {
		slog.Error("HTTP server terminated", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
