package nutribuddy

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jenn623/NutriBuddy/internal/service"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show daily calorie and macro goals for the active user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, e *env, sess *service.Session) error {
			goals, err := service.ComputeGoals(sess.Profile.Stats())
			if err != nil {
				return err
			}
			bmr, err := service.BasalRate(sess.Profile.Stats())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Basal rate: %.0f kcal\n", bmr)
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d\nProtein: %dg\nCarbs: %dg\nFat: %dg\n", goals.CalorieTarget, goals.ProteinG, goals.CarbsG, goals.FatG)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}
