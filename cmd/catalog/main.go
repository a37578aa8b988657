package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yourusername/product-catalog-client/config"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
	"github.com/yourusername/product-catalog-client/internal/infrastructure/api"
	"github.com/yourusername/product-catalog-client/internal/infrastructure/storage"
)

var (
	// Global flaglar
	verbose bool
	demo    bool
	apiURL  string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Product catalog client: card list, dashboard and Telegram bot",
	Long: `catalog is a client for the product REST API.

It serves the card list and the dashboard over HTTP, runs the same
dashboard as a Telegram bot, and imports or exports products as .xlsx.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if apiURL != "" {
			loaded.APIBaseURL = strings.TrimRight(apiURL, "/")
		}
		if demo {
			loaded.Demo = true
		}
		cfg = loaded

		logger, err = newLogger(cfg.LogLevel, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "Use an in-memory catalog seeded with demo products")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Product API base URL (or set CATALOG_API_URL)")

	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string, debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	if debug {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// newRegistry Go va process kollektorlari bilan registry
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newRepository demo rejimda xotiradagi katalog, aks holda REST client; ikkalasi ham metrikali
func newRepository(c *config.Config, reg prometheus.Registerer, l *zap.Logger) repository.ProductRepository {
	var repo repository.ProductRepository
	if c.Demo {
		l.Info("demo mode: using in-memory catalog")
		repo = storage.NewMemoryProductRepository(storage.DemoProducts()...)
	} else {
		repo = api.NewClient(c.APIBaseURL,
			api.WithLogger(l.Named("api")),
			api.WithTimeout(c.APITimeout),
		)
	}
	return api.NewInstrumented(repo, reg)
}
