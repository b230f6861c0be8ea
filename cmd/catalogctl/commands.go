package main

import (
	"errors"
	"fmt"
	"io"

	"vpp-configurator/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	info    = color.New(color.FgCyan)
)

func withEnv(opts *rootOptions, cmd *cobra.Command, run func(e *env, out io.Writer) error) error {
	e, err := opts.open(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if e.close != nil {
		defer e.close()
	}
	return run(e, cmd.OutOrStdout())
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog_documents table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, cmd, func(e *env, out io.Writer) error {
				if e.db == nil {
					return errors.New("migrate needs a database connection")
				}
				if err := database.Migrate(e.db); err != nil {
					return err
				}
				success.Fprintln(out, "✅ catalog_documents is up to date")
				return nil
			})
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in demo catalog into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, cmd, func(e *env, out io.Writer) error {
				report, err := e.migrations.Seed(cmd.Context())
				if err != nil {
					return err
				}
				success.Fprintf(out, "✅ Seeded %d features, %d options, %d packages\n",
					report.Features, report.Options, report.Packages)
				return nil
			})
		},
	}
}

func newRetireFeatureIdsCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "retire-feature-ids",
		Short: "Move legacy package feature id lists onto feature columns",
		Long: `Packages written before composition was derived from columns carry a
featureIds list. For each such package the referenced features that have no
column are assigned the tier's column, then the list is removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, cmd, func(e *env, out io.Writer) error {
				report, err := e.migrations.RetireFeatureIds(cmd.Context(), dryRun)
				if err != nil {
					return err
				}
				if dryRun {
					info.Fprintln(out, "Dry run, nothing was written")
				}
				success.Fprintf(out, "Packages migrated:   %d\n", report.PackagesMigrated)
				success.Fprintf(out, "Features backfilled: %d\n", report.FeaturesBackfilled)
				for _, s := range report.Skipped {
					warn.Fprintf(out, "⚠️  skipped %s\n", s)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the changes without writing them")
	return cmd
}

func newNormalizeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite every board position as its index within its column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, cmd, func(e *env, out io.Writer) error {
				report, err := e.migrations.Normalize(cmd.Context())
				if err != nil {
					return fmt.Errorf("normalize: %w", err)
				}
				success.Fprintf(out, "✅ Normalized %d features and %d options\n", report.Features, report.Options)
				return nil
			})
		},
	}
}
