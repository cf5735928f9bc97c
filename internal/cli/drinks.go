package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cabinet/internal/availability"
	"cabinet/internal/recipes"
)

// NewDrinksCommand creates the drinks command group.
func NewDrinksCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "drinks",
		Aliases: []string{"drink"},
		Short:   "List and add drinks",
	}

	cmd.AddCommand(newDrinksListCommand(rootOpts))
	cmd.AddCommand(newDrinksAddCommand(rootOpts))
	return cmd
}

func newDrinksListCommand(rootOpts *RootOptions) *cobra.Command {
	var filter, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List drinks with availability from the current stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := availability.ParseMode(filter)
			if err != nil {
				return err
			}
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				drinks, err := recipes.NewStore(database).List(cmd.Context())
				if err != nil {
					return err
				}
				return printDrinks(newFormatter(rootOpts, cmd), recipes.Filter(drinks, mode, query))
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "availability filter (all|ready|missing)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search drink names, instructions and ingredients")
	return cmd
}

func newDrinksAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		instructions string
		ingredients  []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a drink, creating any ingredients it names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(rootOpts, func(database *gorm.DB) error {
				drink, err := recipes.NewStore(database).Create(cmd.Context(), recipes.CreateInput{
					Name:         args[0],
					Instructions: instructions,
					Ingredients:  ingredients,
				})
				if err != nil {
					return err
				}
				return newFormatter(rootOpts, cmd).Print(drink, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "added: %s (id %d, %s)\n", drink.Name, drink.ID, drink.Availability.Label())
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&instructions, "instructions", "i", "", "how to mix the drink")
	cmd.Flags().StringArrayVar(&ingredients, "ingredient", nil, "ingredient name (repeatable)")
	return cmd
}

func printDrinks(f *OutputFormatter, drinks []recipes.Drink) error {
	return f.Print(drinks, func(io.Writer) error {
		rows := make([][]string, 0, len(drinks))
		for _, drink := range drinks {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(drink.ID), 10),
				drink.Name,
				string(drink.Availability.Status()),
				strings.Join(drink.Availability.Missing, ", "),
			})
		}
		return f.Table([]string{"ID", "NAME", "STATUS", "MISSING"}, rows)
	})
}
