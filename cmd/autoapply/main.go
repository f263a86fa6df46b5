package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"autoapply/internal/di"
	"autoapply/internal/infrastructure/config"
)

var (
	flagConfig   string
	flagHeadless bool
	flagLimit    int
	flagStrict   bool
)

func main() {
	root := &cobra.Command{
		Use:           "autoapply",
		Short:         "Automated Easy Apply job applications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Sign in, search postings, and submit applications",
		RunE:  runApply,
	}
	applyCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	applyCmd.Flags().BoolVar(&flagHeadless, "headless", false, "run the browser headless")
	applyCmd.Flags().IntVar(&flagLimit, "limit", 0, "max applications this run (overrides config)")
	applyCmd.Flags().BoolVar(&flagStrict, "strict", false, "fail unmatched radio groups instead of guessing")

	root.AddCommand(applyCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = flagHeadless
	}
	if flagLimit > 0 {
		cfg.Limits.ApplicationsPerRun = flagLimit
	}
	if cmd.Flags().Changed("strict") {
		cfg.Engine.Strict = flagStrict
	}

	secrets := config.LoadSecrets()
	if secrets.Username == "" || secrets.Password == "" {
		return fmt.Errorf("LINKEDIN_USERNAME and LINKEDIN_PASSWORD must be set")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg, secrets)
	if err != nil {
		return err
	}
	defer container.Close()

	container.Logger.Info("Run started",
		"keywords", cfg.Search.Keywords,
		"location", cfg.Search.Location,
		"limit", cfg.Limits.ApplicationsPerRun)

	stats, err := container.Runner.Run(ctx)
	if stats != nil {
		container.Logger.Info("Run summary", stats.LogFields()...)
		fmt.Printf("\nSubmitted: %d  Failed: %d  Fields filled: %d  Errors: %d\n",
			stats.ApplicationsSubmitted, stats.ApplicationsFailed,
			stats.FieldsFilled, stats.ErrorsEncountered)
	}
	return err
}
