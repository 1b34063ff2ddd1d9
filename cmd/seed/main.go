package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rahul-gound/fera-naturehelp/internal/bootstrap"
	"github.com/rahul-gound/fera-naturehelp/internal/config"
	"github.com/rahul-gound/fera-naturehelp/internal/handler"
	"github.com/rahul-gound/fera-naturehelp/internal/logging"
	"github.com/rahul-gound/fera-naturehelp/internal/seed"
)

// demoFileUser is one entry of a --file demo user list.
type demoFileUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Trees int    `yaml:"trees"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Seed and inspect NatureHelp data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDemoCmd(), newLeaderboardCmd())
	return root
}

// loadConfig reads the environment and rejects it before any store is opened.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newDemoCmd() *cobra.Command {
	var (
		password string
		file     string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Register the demo leaderboard users and plant their trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			users := seed.DemoUsers
			if file != "" {
				loaded, err := loadDemoUsers(file)
				if err != nil {
					return err
				}
				users = loaded
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.NewLogger(cfg.AppEnv)

			store, closeStore, err := bootstrap.OpenStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("database init: %w", err)
			}
			defer closeStore()

			dispatcher := bootstrap.NewDispatcher(cfg, logger)
			defer dispatcher.Close()

			services, err := bootstrap.NewServices(cfg, store, nil, dispatcher, logger)
			if err != nil {
				return err
			}

			res, err := seed.NewSeeder(services.Auth, services.Records, logger).Seed(cmd.Context(), users, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seed completed: %d created, %d skipped, %d trees planted\n", res.Created, res.Skipped, res.Trees)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", handler.DemoPassword, "password for every demo user")
	cmd.Flags().StringVar(&file, "file", "", "YAML list of users (name, email, trees) to seed instead of the built-in demo set")
	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the current leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.NewLogger(cfg.AppEnv)

			store, closeStore, err := bootstrap.OpenStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("database init: %w", err)
			}
			defer closeStore()

			services, err := bootstrap.NewServices(cfg, store, nil, nil, logger)
			if err != nil {
				return err
			}
			return printLeaderboard(cmd.Context(), cmd, services, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of entries (max 100)")
	return cmd
}

func printLeaderboard(ctx context.Context, cmd *cobra.Command, services *bootstrap.Services, limit int) error {
	entries, err := services.Leaderboard.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-4s %-24s %6s %10s\n", "#", "NAME", "TREES", "CO2 (kg)")
	for _, e := range entries {
		fmt.Fprintf(out, "%-4d %-24s %6d %10.0f\n", e.Rank, e.Name, e.TreesPlanted, e.CO2Absorbed)
	}
	return nil
}

func loadDemoUsers(path string) ([]seed.DemoUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var entries []demoFileUser
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	users := make([]seed.DemoUser, 0, len(entries))
	for _, e := range entries {
		if e.Email == "" || e.Trees < 0 {
			return nil, fmt.Errorf("%s: entry %q needs an email and a non-negative tree count", path, e.Name)
		}
		users = append(users, seed.DemoUser{Name: e.Name, Email: e.Email, Trees: e.Trees})
	}
	return users, nil
}
