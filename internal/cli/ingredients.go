package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cabinet/internal/inventory"
	"cabinet/models"
)

// NewIngredientsCommand creates the ingredients command group.
func NewIngredientsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingredients",
		Aliases: []string{"ingredient"},
		Short:   "List, add and stock ingredients",
	}

	cmd.AddCommand(newIngredientsListCommand(rootOpts))
	cmd.AddCommand(newIngredientsAddCommand(rootOpts))
	cmd.AddCommand(newIngredientsStockCommand(rootOpts))
	cmd.AddCommand(newIngredientsResetCommand(rootOpts))
	return cmd
}

func newIngredientsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every ingredient ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				ingredients, err := inventory.NewRegistry(database).List(cmd.Context())
				if err != nil {
					return err
				}
				return printIngredients(newFormatter(rootOpts, cmd), ingredients)
			})
		},
	}
}

func newIngredientsAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		category string
		inStock  bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an ingredient, or fill in the category of an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var categoryArg *string
			if cmd.Flags().Changed("category") {
				categoryArg = &category
			}
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				ingredient, created, err := inventory.NewRegistry(database).Create(cmd.Context(), args[0], categoryArg, inStock)
				if err != nil {
					return err
				}
				payload := struct {
					models.Ingredient
					Created bool `json:"created"`
				}{ingredient, created}
				return newFormatter(rootOpts, cmd).Print(payload, func(w io.Writer) error {
					verb := "exists"
					if created {
						verb = "added"
					}
					_, err := fmt.Fprintf(w, "%s: %s (id %d)\n", verb, ingredient.Name, ingredient.ID)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "ingredient category")
	cmd.Flags().BoolVar(&inStock, "in-stock", false, "mark a new ingredient as in stock")
	return cmd
}

func newIngredientsStockCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stock <id> <true|false>",
		Short: "Set whether an ingredient is in stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ingredient id %q", args[0])
			}
			inStock, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("stock value must be true or false, got %q", args[1])
			}
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				ingredient, err := inventory.NewRegistry(database).SetStock(cmd.Context(), uint(id), inStock)
				if err != nil {
					return err
				}
				return newFormatter(rootOpts, cmd).Print(ingredient, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s: %s\n", ingredient.Name, stockLabel(ingredient.InStock))
					return err
				})
			})
		},
	}
}

func newIngredientsResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Mark every ingredient out of stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				ingredients, err := inventory.NewRegistry(database).ResetStock(cmd.Context())
				if err != nil {
					return err
				}
				return printIngredients(newFormatter(rootOpts, cmd), ingredients)
			})
		},
	}
}

func printIngredients(f *OutputFormatter, ingredients []models.Ingredient) error {
	return f.Print(ingredients, func(io.Writer) error {
		rows := make([][]string, 0, len(ingredients))
		for _, ingredient := range ingredients {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(ingredient.ID), 10),
				ingredient.Name,
				ingredient.CategoryValue(),
				stockLabel(ingredient.InStock),
			})
		}
		return f.Table([]string{"ID", "NAME", "CATEGORY", "STOCK"}, rows)
	})
}

func stockLabel(inStock bool) string {
	if inStock {
		return "in stock"
	}
	return "out"
}
