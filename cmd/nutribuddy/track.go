package nutribuddy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/service"
)

var (
	addGrams  float64
	todayJSON bool
)

var addCmd = &cobra.Command{
	Use:   "add <food-id>",
	Short: "Log a quantity of a catalog food for today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, e *env, tr *service.Tracker) error {
			food, found, err := e.catalog.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: id %q (see `nutribuddy food list`)", service.ErrFoodNotFound, args[0])
			}
			grams := food.PortionSizeG
			if cmd.Flags().Changed("grams") {
				grams = addGrams
			}
			entry, err := tr.AddFood(ctx, food, grams)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %gg %s (%d kcal)\n", entry.QuantityG, food.Name, entry.TotalCalories)
			tot := tr.Totals()
			fmt.Fprintf(cmd.OutOrStdout(), "Today: %d / %d kcal\n", tot.Calories, tr.Goals().CalorieTarget)
			fmt.Fprintln(cmd.OutOrStdout(), tr.Message().Text)
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <n>",
	Short: "Remove the nth entry of today's list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, e *env, tr *service.Tracker) error {
			entries := tr.Entries()
			if err := tr.RemoveFood(ctx, idx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", entries[idx].Food.Name)
			return nil
		})
	},
}

type todayView struct {
	Date      string           `json:"date"`
	Goals     model.Goals      `json:"goals"`
	Totals    service.Totals   `json:"totals"`
	Remaining service.Totals   `json:"remaining"`
	Message   service.Message  `json:"message"`
	Entries   []todayEntryView `json:"entries"`
}

type todayEntryView struct {
	N        int     `json:"n"`
	FoodID   string  `json:"food_id"`
	Name     string  `json:"name"`
	Grams    float64 `json:"grams"`
	Calories int     `json:"calories"`
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake, goal progress and feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, e *env, tr *service.Tracker) error {
			view := todayView{
				Date:      tr.Day(),
				Goals:     tr.Goals(),
				Totals:    tr.Totals(),
				Remaining: tr.Remaining(),
				Message:   tr.Message(),
			}
			for i, en := range tr.Entries() {
				view.Entries = append(view.Entries, todayEntryView{N: i + 1, FoodID: en.Food.ID, Name: en.Food.Name, Grams: en.QuantityG, Calories: en.TotalCalories})
			}
			if todayJSON {
				b, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal today json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			goals := view.Goals
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", view.Date)
			fmt.Fprintf(out, "Intake: %d kcal\n", view.Totals.Calories)
			fmt.Fprintf(out, "Macros: P %dg | C %dg | F %dg\n", view.Totals.Macros.ProteinG, view.Totals.Macros.CarbsG, view.Totals.Macros.FatG)
			fmt.Fprintf(out, "Goal: %d kcal | P %dg | C %dg | F %dg\n", goals.CalorieTarget, goals.ProteinG, goals.CarbsG, goals.FatG)
			fmt.Fprintf(out, "Remaining: %d kcal | P %dg | C %dg | F %dg\n", view.Remaining.Calories, view.Remaining.Macros.ProteinG, view.Remaining.Macros.CarbsG, view.Remaining.Macros.FatG)
			fmt.Fprintf(out, "Status: %s\n%s\n", view.Message.Band, view.Message.Text)
			if len(view.Entries) > 0 {
				fmt.Fprintln(out, "N\tFOOD\tGRAMS\tKCAL")
				for _, en := range view.Entries {
					fmt.Fprintf(out, "%d\t%s\t%g\t%d\n", en.N, en.Name, en.Grams, en.Calories)
				}
			}
			return nil
		})
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save today's totals into the history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, e *env, tr *service.Tracker) error {
			snap, err := tr.SaveSnapshot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %d kcal\n", snap.Date, snap.CaloriesConsumed)
			return nil
		})
	},
}

func init() {
	addCmd.Flags().Float64Var(&addGrams, "grams", 0, "Quantity in grams (default: the food's portion size)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(addCmd, removeCmd, todayCmd, saveCmd)
}
