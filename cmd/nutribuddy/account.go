package nutribuddy

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jenn623/NutriBuddy/internal/service"
)

var (
	registerName     string
	registerPassword string
	registerAge      float64
	registerWeight   float64
	registerHeight   float64
	registerSex      string
	registerActivity string
	loginPassword    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a profile and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.RegisterInput{
			Name:     registerName,
			Secret:   registerPassword,
			Age:      registerAge,
			WeightKg: registerWeight,
			HeightCm: registerHeight,
			Sex:      registerSex,
			Activity: registerActivity,
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			sess, err := service.Register(ctx, e.store, in)
			if err != nil {
				return err
			}
			e.log.Infow("registered user", "user", sess.User)
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", sess.User)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %d kcal | P %dg | C %dg | F %dg\n", sess.Profile.CalorieGoal, sess.Profile.MacroGoals.ProteinG, sess.Profile.MacroGoals.CarbsG, sess.Profile.MacroGoals.FatG)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Log in as an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			sess, err := service.Login(ctx, e.store, args[0], loginPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.User)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := service.Logout(ctx, e.store); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, e *env, sess *service.Session) error {
			p := sess.Profile
			fmt.Fprintf(cmd.OutOrStdout(), "User: %s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %g | Weight: %gkg | Height: %gcm | Sex: %s | Activity: %s\n", p.Age, p.WeightKg, p.HeightCm, p.Sex, p.Activity)
			return nil
		})
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "User name")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password")
	registerCmd.Flags().Float64Var(&registerAge, "age", 0, "Age in years")
	registerCmd.Flags().Float64Var(&registerWeight, "weight", 0, "Weight in kg")
	registerCmd.Flags().Float64Var(&registerHeight, "height", 0, "Height in cm")
	registerCmd.Flags().StringVar(&registerSex, "sex", "", "male or female")
	registerCmd.Flags().StringVar(&registerActivity, "activity", "", "sedentary, light, moderate or intense")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}

