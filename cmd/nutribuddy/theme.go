package nutribuddy

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/service"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the display theme preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			var (
				theme model.Theme
				err   error
			)
			switch {
			case len(args) == 0:
				theme, err = service.CurrentTheme(ctx, e.store)
			case strings.EqualFold(args[0], "toggle"):
				theme, err = service.ToggleTheme(ctx, e.store)
			default:
				theme = model.Theme(strings.ToLower(strings.TrimSpace(args[0])))
				err = service.SetTheme(ctx, e.store, theme)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
