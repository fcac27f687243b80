package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imishinist/logger-dev/internal/config"
	"github.com/imishinist/logger-dev/internal/logging"
	"github.com/imishinist/logger-dev/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the logger UI and its API",
	Long: `Serve the logger UI assets and the /logger/api/* namespace.

API requests are forwarded verbatim to the robot controller, or answered from
the run files in --runs-dir when --fake is set.

WARNING: in fake mode GET /logger/api/delete without a run parameter deletes
every run file in --runs-dir.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("root", "", "Path to the logger asset directory")
	serveCmd.Flags().String("host", "", "Bind host")
	serveCmd.Flags().Int("port", 0, "Bind port")
	serveCmd.Flags().Bool("fake", false, "Serve runs from --runs-dir instead of proxying to the robot")
	serveCmd.Flags().Duration("proxy-timeout", 0, "Timeout for forwarded requests (0 waits indefinitely)")
	viper.BindPFlag("root", serveCmd.Flags().Lookup("root"))
	viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("fake", serveCmd.Flags().Lookup("fake"))
	viper.BindPFlag("proxy_timeout", serveCmd.Flags().Lookup("proxy-timeout"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.Init(cfg.LoggingConfig())
	srv := server.New(cfg.Addr(), server.NewHandler(cfg, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ready := make(chan struct{})
	go func() {
		select {
		case <-ready:
			printBanner(cfg)
		case <-ctx.Done():
		}
	}()

	if err := server.Run(ctx, server.RunConfig{Server: srv, Ready: ready}); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func printBanner(cfg *config.Config) {
	bold := color.New(color.Bold)
	bold.Printf("Serving %s at http://%s/\n", cfg.Root, cfg.Addr())
	if cfg.Fake {
		color.Yellow("Serving fake %s* data from %s", config.APIPrefix, cfg.RunsDir)
		return
	}
	color.Cyan("Proxying %s* to %s", config.APIPrefix, cfg.Robot)
}
