package relex

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	relexlib "github.com/soundprediction/relex"
	"github.com/soundprediction/relex/pkg/config"
	"github.com/soundprediction/relex/pkg/server"
	"github.com/soundprediction/relex/pkg/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relex HTTP server",
	Long: `Start the relex HTTP server to provide REST API access to relation
extraction.

The server provides endpoints for:
- Extracting relations from submitted documents
- Reading back persisted relations by document id
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
	serveMode string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Server host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Server port")
	serveCmd.Flags().StringVar(&serveMode, "mode", "debug", "Server mode (debug, release, test)")
	serveCmd.Flags().String("store-path", "", "Relation store path (empty for in-memory)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideServeFlags(cmd, cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	log := buildLogger(cfg)

	s, err := buildSchema(cfg)
	if err != nil {
		return err
	}

	cls, err := buildClassifier(cfg, s, log)
	if err != nil {
		return err
	}

	pipeline, err := relexlib.NewPipeline(nil, nil, cls, buildSampler(cfg), nil, buildOptions(cfg, s), log)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(cfg, pipeline, st, log)
	srv.Setup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received shutdown signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("server stopped gracefully")
		return nil
	}
}

func overrideServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serveMode
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store-path")
	}
}
