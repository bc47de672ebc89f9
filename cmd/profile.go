package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/swigup/internal/adapters/repository"
	"github.com/okian/swigup/internal/domain/profile"
	"github.com/okian/swigup/pkg/logger"
)

func (c *cli) newOnboardCmd() *cobra.Command {
	var (
		name     string
		weight   float64
		activity string
	)
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Build and save the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := profile.ParseActivityLevel(activity)
			if err != nil {
				return err
			}
			p, err := profile.Build(name, weight, level)
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(store *repository.ProfileStore) error {
				if err := store.Save(cmd.Context(), p); err != nil {
					return err
				}
				logger.Get().Debug(cmd.Context(), "profile saved", logger.String("db", c.cfg.DBPath))
				fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s: goal %d ml/day\n", p.Name, p.GoalMl)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Body weight in lbs")
	cmd.Flags().StringVar(&activity, "activity", string(profile.ActivityModerate), "Activity level: low, moderate, active")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func (c *cli) newGoalCmd() *cobra.Command {
	var (
		weight   float64
		activity string
	)
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Preview the daily goal without saving",
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := profile.ParseActivityLevel(activity)
			if err != nil {
				return err
			}
			goal, err := profile.GoalMl(weight, level)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d ml/day\n", goal)
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Body weight in lbs")
	cmd.Flags().StringVar(&activity, "activity", string(profile.ActivityModerate), "Activity level: low, moderate, active")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func (c *cli) newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the saved profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), func(store *repository.ProfileStore) error {
				p, ok := store.Load(cmd.Context())
				out := cmd.OutOrStdout()
				if !ok {
					fmt.Fprintln(out, "No profile saved; run `swigup onboard` first.")
					return nil
				}
				fmt.Fprintf(out, "Name:     %s\n", p.Name)
				fmt.Fprintf(out, "Weight:   %g lbs\n", p.WeightLbs)
				fmt.Fprintf(out, "Activity: %s\n", p.ActivityLevel)
				fmt.Fprintf(out, "Goal:     %d ml/day\n", p.GoalMl)
				return nil
			})
		},
	}
}
