package nutribuddy

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jenn623/NutriBuddy/internal/model"
)

var foodRemote bool

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Browse and search the food catalog",
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and cached foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			foods, err := e.catalog.All(ctx)
			if err != nil {
				return err
			}
			printFoods(cmd.OutOrStdout(), foods)
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name, generating nutrition facts when nothing matches",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			var (
				foods []model.FoodRecord
				err   error
			)
			if foodRemote {
				foods, err = e.catalog.SearchRemote(ctx, query)
			} else {
				foods, err = e.catalog.HybridSearch(ctx, query)
			}
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No foods match %q\n", query)
				return nil
			}
			printFoods(cmd.OutOrStdout(), foods)
			return nil
		})
	},
}

func printFoods(w io.Writer, foods []model.FoodRecord) {
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPORTION\tKCAL\tP\tC\tF")
	for _, f := range foods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%gg\t%g\t%g\t%g\t%g\n", f.ID, f.Name, f.Category, f.PortionSizeG, f.Calories, f.Macros.ProteinG, f.Macros.CarbsG, f.Macros.FatG)
	}
}

func init() {
	foodSearchCmd.Flags().BoolVar(&foodRemote, "remote", false, "Search USDA FoodData Central instead")
	foodCmd.AddCommand(foodListCmd, foodSearchCmd)
	rootCmd.AddCommand(foodCmd)
}
