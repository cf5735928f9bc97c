package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cabinet/internal/apperr"
	applog "cabinet/internal/log"
	"cabinet/internal/recipes"
)

// ImportResult summarises a bulk drink import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
	Invalid  []string `json:"invalid,omitempty"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <drinks.csv>",
		Short: "Bulk import drinks from a CSV file",
		Long: `Bulk import drinks from a CSV file with the header
name,instructions,ingredients where ingredients are separated by ";".

Rows naming an existing drink are skipped. Each row is created in its own
transaction so a bad row never undoes the rows before it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readCSV(args[0])
			if err != nil {
				return fmt.Errorf("read csv: %w", err)
			}
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				result, err := importDrinks(cmd.Context(), recipes.NewStore(database), records)
				if err != nil {
					return err
				}
				return newFormatter(rootOpts, cmd).Print(result, func(w io.Writer) error {
					fmt.Fprintf(w, "imported %d drinks\n", result.Imported)
					for _, name := range result.Skipped {
						fmt.Fprintf(w, "  skipped existing: %s\n", name)
					}
					for _, reason := range result.Invalid {
						fmt.Fprintf(w, "  invalid: %s\n", reason)
					}
					return nil
				})
			})
		},
	}
}

func importDrinks(ctx context.Context, store *recipes.Store, records []map[string]string) (ImportResult, error) {
	result := ImportResult{}
	for idx, record := range records {
		// Header is line 1.
		line := idx + 2
		input := recipes.CreateInput{
			Name:         record["name"],
			Instructions: record["instructions"],
			Ingredients:  splitIngredients(record["ingredients"]),
		}

		drink, err := store.Create(ctx, input)
		switch {
		case err == nil:
			result.Imported++
			applog.Debug(ctx, "drink imported", "line", line, "name", drink.Name)
		case errors.Is(err, apperr.ErrConflict):
			result.Skipped = append(result.Skipped, strings.TrimSpace(input.Name))
		case errors.Is(err, apperr.ErrInvalidInput):
			result.Invalid = append(result.Invalid, fmt.Sprintf("line %d: %s", line, apperr.Message(err)))
		default:
			return result, fmt.Errorf("import line %d: %w", line, err)
		}
	}
	return result, nil
}

func splitIngredients(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return strings.Split(value, ";")
}

// readCSV returns one map per data row keyed by lower-cased header names.
func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	for idx, key := range rows[0] {
		header[idx] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(key, "\ufeff")))
	}
	for _, required := range []string{"name", "instructions", "ingredients"} {
		if !slices.Contains(header, required) {
			return nil, fmt.Errorf("csv header is missing column %q", required)
		}
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}
