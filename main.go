// main.go
//
// Entry point for the pillgame binary.
//   - `pillgame serve` runs the HTTP game server (default when no command is given).
//   - `pillgame play`  runs one game on stdin/stdout.
//
// A .env file in the working directory is loaded before anything else.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/pillgame/apps/go-server/assets"
	"github.com/robalobadob/pillgame/apps/go-server/internal/catalog"
	"github.com/robalobadob/pillgame/apps/go-server/internal/config"
	"github.com/robalobadob/pillgame/apps/go-server/internal/httpserver"
	"github.com/robalobadob/pillgame/apps/go-server/internal/results"
	"github.com/robalobadob/pillgame/apps/go-server/internal/scheduler"
	"github.com/robalobadob/pillgame/apps/go-server/internal/store"
)

var (
	catalogFile string
	playLang    string
)

var rootCmd = &cobra.Command{
	Use:   "pillgame",
	Short: "Blister pack medication matching game",
	Long: `Match each medication to the condition it treats by dropping pills
into blister packs. Correct placements score +50, wrong ones -25 and
every removal -10.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP game server",
	Long: `Run the HTTP game server.

Configuration is read from the environment (and .env): PORT, LOG_LEVEL,
DB_PATH, CATALOG_FILE, JWT_SECRET, SESSION_TTL, SESSION_IDLE_TTL,
SESSION_CAPACITY, SWEEP_INTERVAL, CLIENT_ORIGIN, RATE_LIMIT_RPS,
RATE_LIMIT_BURST, NODE_ENV.`,
	RunE: runServe,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game in the terminal",
	Long: `Play one game in the terminal.

Commands:
  place <pill> <pack> <slot>   put a pill into a slot
  remove <pack> <slot>         take a pill back out
  reset                        start over
  show                         print the board
  quit                         leave`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := catalog.Load(catalogFile)
		if err != nil {
			return err
		}
		return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), cat, playLang)
	},
}

func init() {
	playCmd.Flags().StringVar(&playLang, "lang", "", "feedback language (en, ar)")
	playCmd.Flags().StringVar(&catalogFile, "catalog", "", "catalog YAML file (default: embedded)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runServe wires configuration, storage and the HTTP server, then blocks
// until SIGINT/SIGTERM and shuts down gracefully.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	db, err := results.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := results.Migrate(db, migrations); err != nil {
		return err
	}

	mem, err := store.NewMemoryStore(cfg.SessionCapacity)
	if err != nil {
		return err
	}
	sweeper := scheduler.NewSweeper(mem, cfg.SweepInterval, cfg.SessionIdleTTL)
	if err := sweeper.Start(); err != nil {
		return err
	}
	defer sweeper.Stop()

	srv := httpserver.New(mem, results.NewStore(db), cat, httpserver.Options{
		JWTSecret:      cfg.JWTSecret,
		SessionTTL:     cfg.SessionTTL,
		ClientOrigin:   cfg.ClientOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Production:     cfg.Production,
	})
	hs := srv.HTTPServer(":" + cfg.Port)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Int("conditions", len(cat.Conditions)).
			Int("medications", len(cat.Medications)).Msg("starting pillgame server")
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
