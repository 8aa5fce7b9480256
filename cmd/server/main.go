package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshdurbin/shortcode-service/internal/config"
	"github.com/joshdurbin/shortcode-service/internal/logger"
	"github.com/joshdurbin/shortcode-service/internal/metrics"
	"github.com/joshdurbin/shortcode-service/internal/repository/memory"
	"github.com/joshdurbin/shortcode-service/internal/service"
	"github.com/joshdurbin/shortcode-service/internal/shortener"
	"github.com/joshdurbin/shortcode-service/internal/transport/client"
	httpTransport "github.com/joshdurbin/shortcode-service/internal/transport/http"
)

var rootCmd = &cobra.Command{
	Use:   "shortcode-service",
	Short: "A shortcode URL shortening service written in Go",
	Long:  "An in-memory URL shortening service that maps shortcodes to URLs, redirects visitors and tracks per-shortcode statistics",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the URL shortening server",
	RunE:  runServer,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for interacting with the server",
}

var shortenCmd = &cobra.Command{
	Use:   "shorten [URL]",
	Short: "Map a URL to a shortcode",
	Args:  cobra.ExactArgs(1),
	RunE:  runShorten,
}

var statsCmd = &cobra.Command{
	Use:   "stats [SHORTCODE]",
	Short: "Show the statistics of a shortcode",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [SHORTCODE]",
	Short: "Show the URL a shortcode redirects to (counts as a visit)",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	config.RegisterFlags(serverCmd.Flags())

	shortenCmd.Flags().StringP("shortcode", "s", "", "Requested shortcode (generated when omitted)")

	clientCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8080", "Server URL")

	clientCmd.AddCommand(shortenCmd, statsCmd, resolveCmd)
	rootCmd.AddCommand(serverCmd, clientCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Logger())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync(zapLogger)

	zapLogger.Info("starting shortcode service",
		zap.String("port", cfg.Server.Port),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
		zap.String("metrics_port", cfg.Metrics.Port),
		zap.Int("code_length", cfg.Shortener.Length))

	repo := memory.New()

	generator, err := shortener.NewGenerator(cfg.Shortener)
	if err != nil {
		return fmt.Errorf("failed to create shortener generator: %w", err)
	}
	zapLogger.Info("shortener generator ready", zap.String("type", generator.Type()))

	m := metrics.New()
	if err := m.RegisterMappingCount(func() float64 {
		count, _ := repo.Count(context.Background())
		return float64(count)
	}); err != nil {
		return fmt.Errorf("failed to register mapping gauge: %w", err)
	}

	urlShortener := service.NewURLShortener(repo, generator,
		service.WithLogger(zapLogger.Named("service")),
		service.WithMetrics(m))
	defer func() {
		if err := urlShortener.Close(); err != nil {
			zapLogger.Error("error closing shortener", zap.Error(err))
		}
	}()

	server := httpTransport.NewServer(urlShortener, cfg.Server.Port, zapLogger.Named("http"), m, cfg.Logging.Verbose)

	errChan := make(chan error, 2)
	go func() {
		errChan <- server.Start()
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(net.JoinHostPort("", cfg.Metrics.Port), m)
		go func() {
			zapLogger.Info("metrics server starting", zap.String("port", cfg.Metrics.Port))
			errChan <- metricsServer.ListenAndServe()
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var serveErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		zapLogger.Info("received signal, shutting down gracefully", zap.Stringer("signal", sig))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("error during server shutdown", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("error during metrics server shutdown", zap.Error(err))
		}
	}

	zapLogger.Info("server stopped")
	return serveErr
}

func newCommands(cmd *cobra.Command) *client.Commands {
	serverURL, _ := cmd.Flags().GetString("server-url")
	return client.NewCommands(client.NewClient(serverURL))
}

func runShorten(cmd *cobra.Command, args []string) error {
	shortcode, _ := cmd.Flags().GetString("shortcode")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).Shorten(ctx, args[0], shortcode)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).Stats(ctx, args[0])
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).Resolve(ctx, args[0])
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
