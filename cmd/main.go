// Package main provides the CLI entrypoint for the example catalog
// application. It wires subcommands (migrate, seed, find), loads
// configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"domainkit/internal/catalog"
	"domainkit/internal/config"
	"domainkit/pkg/logger"
	"domainkit/pkg/repository/postgres"
)

// getPostgres creates a PostgreSQL store using configuration values and
// returns it along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.Store, func()) {
	store, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres store", zap.Error(err))
	}

	return store, func() {
		logger.Info(ctx, "closing postgres store...")
		if err = store.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres store", zap.Error(err))
		}
	}
}

// getProductRepository builds the catalog product repository on the given
// store.
func getProductRepository(ctx context.Context, store *postgres.Store) *postgres.Repository[catalog.Product, catalog.ProductRow] {
	repo, err := postgres.NewRepository(store, catalog.PgMapping())
	if err != nil {
		logger.Fatal(ctx, "could not create product repository", zap.Error(err))
	}

	return repo
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "catalog",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		seedCommand(cfg),
		findCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
