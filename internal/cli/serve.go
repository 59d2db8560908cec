package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/elefant-coder/hearing-chatbot/internal/config"
	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
	"github.com/elefant-coder/hearing-chatbot/internal/logger"
	"github.com/elefant-coder/hearing-chatbot/internal/maintenance"
	"github.com/elefant-coder/hearing-chatbot/internal/relay"
	"github.com/elefant-coder/hearing-chatbot/internal/server"
	"github.com/elefant-coder/hearing-chatbot/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hearing chat server",
	Long: `Start the hearing chat server in the foreground. The server exposes
the chat relay, the admin session listing, and the embedded admin view.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	lg, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: true,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return err
	}
	defer lg.Close()
	log := lg.Zerolog()

	// Interview prompt, optionally hot-reloaded from an override file
	prompts := hearing.NewPromptSource()
	if cfg.Prompt.Path != "" {
		watcher, err := hearing.WatchPromptFile(cfg.Prompt.Path, prompts, log)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.Prompt.Path).Msg("Prompt watcher unavailable, using built-in prompt")
		} else {
			defer watcher.Stop()
		}
	}

	// Completion relay; a missing credential disables chat but the server
	// still starts so the admin surface stays reachable
	var provider relay.Provider
	if cfg.ChatEnabled() {
		provider, err = relay.New(cfg.LLM)
		if err != nil {
			return err
		}
		log.Info().Str("provider", provider.Name()).Str("model", cfg.LLM.Model).Msg("Completion relay ready")
	} else {
		log.Warn().Msg("No language-model credential configured, chat is disabled")
	}

	// Transcript store; chat works without it, replies are just not kept
	var st store.Store
	var sqliteStore *store.SQLiteStore
	if cfg.PersistenceEnabled() {
		sqliteStore, err = store.Open(cfg.Database.Path, log)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		st = sqliteStore
	} else {
		log.Warn().Msg("No database configured, persistence and admin listing are disabled")
	}

	if !cfg.AdminEnabled() {
		log.Warn().Msg("No admin password configured, admin listing will reject every request")
	}

	if sqliteStore != nil && cfg.Maintenance.Enabled {
		runner, err := maintenance.New(sqliteStore, cfg.Maintenance.Schedule, log)
		if err != nil {
			return err
		}
		runner.Start()
		defer runner.Stop()
	}

	srv := server.New(server.Options{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		AdminPassword: cfg.Admin.Password,
	}, provider, st, prompts, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		return srv.Stop()
	}
}
