package main

import (
	"context"
	"errors"
	"log"

	"vpp-configurator/internal/bootstrap"
	"vpp-configurator/internal/config"
	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/service"
	"vpp-configurator/pkg/database"
	pktNats "vpp-configurator/pkg/nats"
	"vpp-configurator/pkg/validation"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// env is everything a subcommand needs, released by close
type env struct {
	db         *gorm.DB
	repo       contract.CatalogRepository
	migrations service.MigrationService
	close      func()
}

type opener func(ctx context.Context, opts *rootOptions) (*env, error)

type rootOptions struct {
	verbose bool
	open    opener
}

func newRootCommand(open opener) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Maintenance jobs for the protection package catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every SQL statement")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newRetireFeatureIdsCommand(opts))
	cmd.AddCommand(newNormalizeCommand(opts))
	return cmd
}

// defaultOpener connects to the configured database. Catalog events go to
// NATS when it is reachable so running API instances drop their caches.
func defaultOpener(ctx context.Context, opts *rootOptions) (*env, error) {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return nil, errors.New("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, opts.verbose)
	if err != nil {
		return nil, err
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	repo := bootstrap.NewCatalogRepository(db, cfg, sysLogger)

	closers := []func(){func() { _ = sysLogger.Sync() }}
	var events service.EventPublisher
	if pub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] NATS unavailable, API caches expire on their TTL: %v", err)
	} else {
		events = pub
		closers = append(closers, pub.Close)
	}

	return &env{
		db:         db,
		repo:       repo,
		migrations: service.NewMigrationService(repo, validation.New(sysLogger), events, sysLogger),
		close: func() {
			for _, c := range closers {
				c()
			}
		},
	}, nil
}
