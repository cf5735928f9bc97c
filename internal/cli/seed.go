package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cabinet/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Apply the reference catalog if it is newer than the stored one",
		Long: `Apply the reference ingredient and drink catalog.

Nothing happens when the database already holds this catalog version or a
newer one. Existing ingredients and drinks are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				result, err := seed.NewManager(database).ApplyIfNeeded(cmd.Context(), catalog)
				if err != nil {
					return err
				}
				return newFormatter(rootOpts, cmd).Print(result, func(w io.Writer) error {
					return printSeedResult(w, result)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file (defaults to the built-in catalog)")
	return cmd
}

func loadCatalog(file string) (seed.Catalog, error) {
	if strings.TrimSpace(file) == "" {
		return seed.Default()
	}
	return seed.LoadFile(file)
}

func printSeedResult(w io.Writer, result seed.Result) error {
	if !result.Applied {
		_, err := fmt.Fprintf(w, "catalog version %d already applied (stored %d)\n", result.Version, result.PreviousVersion)
		return err
	}
	fmt.Fprintf(w, "applied catalog version %d (was %d)\n", result.Version, result.PreviousVersion)
	fmt.Fprintf(w, "  ingredients created: %d\n", result.IngredientsCreated)
	fmt.Fprintf(w, "  drinks created:      %d\n", result.DrinksCreated)
	fmt.Fprintf(w, "  links created:       %d\n", result.LinksCreated)
	for _, skipped := range result.SkippedReferences {
		fmt.Fprintf(w, "  skipped reference:   %s\n", skipped)
	}
	return nil
}
