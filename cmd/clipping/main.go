package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deusflow/clipping/internal/app"
	"github.com/deusflow/clipping/internal/config"
	"github.com/deusflow/clipping/internal/format"
	"github.com/deusflow/clipping/internal/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "clipping",
		Short:         "Daily news clipping from search RSS and outlet feeds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "clipping profile (YAML); overrides CLIPPING_CONFIG")

	root.AddCommand(runCmd(), queriesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, config.ErrNoReferenceDate) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func load(cmd *cobra.Command) (*config.Config, error) {
	logger.Init()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		os.Setenv("CLIPPING_CONFIG", path)
	}
	return config.Load()
}

func addDateFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "reference date (YYYY-MM-DD); the window ends at the window clock that day")
	cmd.Flags().Bool("last24h", false, "use the 24 hours ending now instead of a reference date")
}

func dateOptions(cmd *cobra.Command) app.Options {
	date, _ := cmd.Flags().GetString("date")
	last, _ := cmd.Flags().GetBool("last24h")
	return app.Options{Date: date, Last24h: last}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect, filter and print the clipping",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("resolve") {
				cfg.ResolveLinks, _ = cmd.Flags().GetBool("resolve")
			}
			if cmd.Flags().Changed("shorten") {
				cfg.ShortenLinks, _ = cmd.Flags().GetBool("shorten")
			}

			opts := dateOptions(cmd)
			opts.Formats, _ = cmd.Flags().GetStringSlice("format")
			opts.Send, _ = cmd.Flags().GetBool("send")
			opts.NoWindow, _ = cmd.Flags().GetBool("no-window")

			_, err = app.New(cfg).Run(cmd.Context(), opts, cmd.OutOrStdout())
			return err
		},
	}
	addDateFlags(cmd)
	cmd.Flags().StringSlice("format", []string{"plain"}, fmt.Sprintf("output formats %v", format.Names()))
	cmd.Flags().Bool("send", false, "post the clipping to Telegram")
	cmd.Flags().Bool("no-window", false, "disable the publication-time window")
	cmd.Flags().Bool("resolve", false, "follow redirects to the final article URL")
	cmd.Flags().Bool("shorten", false, "shorten article links")
	return cmd
}

func queriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Print the feed URLs a run would fetch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			sources, err := app.New(cfg).Sources(dateOptions(cmd))
			if err != nil {
				return err
			}
			for _, s := range sources {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Set, s.Kind, s.URL)
			}
			return nil
		},
	}
	addDateFlags(cmd)
	return cmd
}
