package nutribuddy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/service"
)

var (
	historyDate string
	historyJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the calorie trend of saved days and the detail of one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := strings.TrimSpace(historyDate)
		if date != "" {
			if _, err := time.ParseInLocation(model.DateLayout, date, time.Local); err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", historyDate)
			}
		}
		return withSession(cmd, func(ctx context.Context, e *env, sess *service.Session) error {
			h, err := service.LoadHistory(ctx, e.store, sess.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(h) == 0 {
				fmt.Fprintln(out, "No saved days yet")
				return nil
			}
			goals, err := service.ComputeGoals(sess.Profile.Stats())
			if err != nil {
				return err
			}
			if date == "" {
				date, _ = service.LatestDate(h)
			}
			snap, found := service.FindByDate(h, date)
			trend := service.CalorieTrend(h, goals, e.history.Thresholds)

			if historyJSON {
				payload := struct {
					Trend []service.TrendPoint `json:"trend"`
					Day   *model.DailySnapshot `json:"day,omitempty"`
					Note  *service.Message     `json:"message,omitempty"`
				}{Trend: trend}
				if found {
					msg := service.HistoryMessage(e.history, snap, goals)
					payload.Day = &snap
					payload.Note = &msg
				}
				b, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal history json: %w", err)
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			fmt.Fprintln(out, "DATE\tKCAL\tGOAL\tSTATUS")
			for _, p := range trend {
				fmt.Fprintf(out, "%s\t%d\t%d\t%s\n", p.Date, p.Calories, p.Goal, p.Band)
			}
			if !found {
				fmt.Fprintf(out, "\nNo saved day for %s\n", date)
				return nil
			}
			fmt.Fprintf(out, "\nDay: %s\n", snap.Date)
			fmt.Fprintf(out, "Calories: %d kcal | P %dg | C %dg | F %dg\n", snap.CaloriesConsumed, snap.MacrosConsumed.ProteinG, snap.MacrosConsumed.CarbsG, snap.MacrosConsumed.FatG)
			for _, en := range snap.FoodsConsumed {
				fmt.Fprintf(out, "- %s %gg (%d kcal)\n", en.Food.Name, en.QuantityG, en.TotalCalories)
			}
			fmt.Fprintln(out, service.HistoryMessage(e.history, snap, goals).Text)
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDate, "date", "", "Day to show YYYY-MM-DD (default: latest saved)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(historyCmd)
}
