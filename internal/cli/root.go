// Package cli implements cabinetctl, the administrative command line for the
// drink cabinet database.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cabinet/internal/config"
	"cabinet/internal/db"
	applog "cabinet/internal/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	DatabaseURL string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for cabinetctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "cabinetctl",
		Short:         "Manage the drink cabinet database",
		Long:          "Seed, inspect and bulk-load the ingredients and drinks served by the cabinet server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			// Logs go to stderr so json output stays parseable.
			applog.ReplaceLogger(applog.NewWriterLogger(cmd.ErrOrStderr()))
			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			return applog.SetLevel(level)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "db", "", "database URL, overrides DATABASE_URL")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewIngredientsCommand(opts))
	cmd.AddCommand(NewDrinksCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// openDatabase connects to the configured database and migrates it.
func openDatabase(opts *RootOptions) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if url := strings.TrimSpace(opts.DatabaseURL); url != "" {
		cfg.Database.URL = url
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(database); err != nil {
		_ = db.Close(database)
		return nil, err
	}
	return database, nil
}

// withDatabase runs fn against an open database and closes it afterwards.
func withDatabase(opts *RootOptions, fn func(*gorm.DB) error) error {
	database, err := openDatabase(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close(database)
	}()
	return fn(database)
}
