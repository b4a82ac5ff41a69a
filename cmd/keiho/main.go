package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coolbeans/keiho/pkg/config"
	"github.com/coolbeans/keiho/pkg/query"
	"github.com/coolbeans/keiho/pkg/render"
	"github.com/coolbeans/keiho/pkg/statute"
	"github.com/coolbeans/keiho/pkg/tui"
	"github.com/coolbeans/keiho/pkg/view"
	"github.com/coolbeans/keiho/pkg/web"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "keiho",
		Short: "Statute penalty explorer",
		Long: `Keiho browses a catalog of statutes of the Japanese Penal Code and their penalties.

It supports:
  - Searching statutes by name
  - Sorting by maximum penalty severity
  - Switching between completed and attempted offense penalties
  - Listing statutes with similar penalties`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); query commands only emit warnings, browse logs nothing")
	rootCmd.PersistentFlags().String("config", "", "path to YAML configuration file")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(similarCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(browseCmd())

	return rootCmd
}

// loadConfig reads the --config file, applies env overrides and the
// --log-level flag, and validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) zerolog.Logger {
	return config.NewLogger(cfg.Log, cmd.ErrOrStderr())
}

// stateFromFlags builds a view state from the shared query flags.
func stateFromFlags(cmd *cobra.Command, cfg config.Config) (view.State, error) {
	state := view.NewState()
	state.Tolerance = cfg.Explorer.Tolerance

	direction, err := cfg.Explorer.Direction()
	if err != nil {
		return state, err
	}
	state.Direction = direction

	if cmd.Flags().Changed("sort") {
		sortFlag, _ := cmd.Flags().GetString("sort")
		direction, err := query.ParseDirection(sortFlag)
		if err != nil {
			return state, err
		}
		state.Direction = direction
	}
	if cmd.Flags().Lookup("search") != nil {
		state.SearchTerm, _ = cmd.Flags().GetString("search")
	}
	if cmd.Flags().Lookup("attempt") != nil {
		state.AttemptMode, _ = cmd.Flags().GetBool("attempt")
	}
	if cmd.Flags().Changed("tolerance") {
		tolerance, _ := cmd.Flags().GetInt("tolerance")
		if tolerance < 0 {
			return state, fmt.Errorf("--tolerance must be non-negative, got %d", tolerance)
		}
		state.Tolerance = tolerance
	}
	return state, nil
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "filter statutes by name (case-insensitive substring)")
	cmd.Flags().String("sort", "desc", "sort by maximum severity: asc or desc")
	cmd.Flags().Bool("attempt", false, "use attempted-offense penalties where defined")
	cmd.Flags().Int("tolerance", query.DefaultTolerance, "severity distance for similar statutes, in years")
}

func writeJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List statutes, filtered and sorted by severity",
		Long: `List statutes with their maximum severity under the selected penalty set.

Example:
  keiho list
  keiho list --search 罪 --sort asc --attempt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			state, err := stateFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			derived := view.Derive(statute.Default(), state)
			if derived.Empty() && state.SearchTerm != "" {
				logger := newLogger(cmd, cfg)
				logger.Warn().Str("search", state.SearchTerm).Msg("no statutes match the search")
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, derived.Visible)
			}

			if derived.Empty() {
				fmt.Fprintln(out, render.Default.NoResults)
				return nil
			}
			fmt.Fprintf(out, "%-4s %-16s %-8s %s\n", "ID", "NAME", "YEARS", "HARSHEST")
			for _, entry := range derived.Visible {
				fmt.Fprintf(out, "%-4d %-16s %-8d %s\n",
					entry.Statute.ID,
					entry.Statute.Name,
					entry.Severity,
					query.HarshestPenaltyLabel(entry.Statute, state.AttemptMode))
			}
			return nil
		},
	}
	addViewFlags(cmd)
	cmd.Flags().Bool("json", false, "print JSON instead of a table")
	return cmd
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <statute-id>",
		Short: "Show a statute with its penalties and similar statutes",
		Long: `Render the explorer view with the given statute selected.

Example:
  keiho show 1
  keiho show 4 --attempt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			id, err := parseStatuteID(args[0])
			if err != nil {
				return err
			}
			state, err := stateFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			catalog := statute.Default()
			if _, err := catalog.Get(id); err != nil {
				return err
			}

			derived := view.Derive(catalog, view.Apply(state, view.SelectStatute{ID: id}))
			if derived.Detail.Hidden {
				logger := newLogger(cmd, cfg)
				logger.Warn().
					Int("statute_id", id).
					Str("search", state.SearchTerm).
					Msg("selected statute is hidden by the search filter")
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), derived)
			}
			return render.Text(cmd.OutOrStdout(), derived, render.Default)
		},
	}
	addViewFlags(cmd)
	cmd.Flags().Bool("json", false, "print the derived view as JSON")
	return cmd
}

func similarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <statute-id>",
		Short: "List statutes with similar maximum severity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			id, err := parseStatuteID(args[0])
			if err != nil {
				return err
			}
			state, err := stateFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			catalog := statute.Default()
			selected, err := catalog.Get(id)
			if err != nil {
				return err
			}

			sorted := query.SortBySeverity(catalog.All(), state.AttemptMode, state.Direction)
			similar := query.SimilarTo(sorted, &selected, state.AttemptMode, state.Tolerance)
			if state.AttemptMode && !selected.HasAttemptPenalties() {
				logger := newLogger(cmd, cfg)
				logger.Warn().Int("statute_id", id).Msg("statute defines no attempt penalties, using base penalties")
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, similar)
			}
			fmt.Fprintf(out, "%s (%d): %s\n",
				selected.Name,
				query.MaxSeverity(selected, state.AttemptMode),
				render.Default.HarshestLine(query.HarshestPenaltyLabel(selected, state.AttemptMode)))
			if len(similar) == 0 {
				fmt.Fprintln(out, render.Default.NoSimilar)
				return nil
			}
			for _, s := range similar {
				fmt.Fprintf(out, "  %-4d %-16s %s\n", s.ID, s.Name,
					render.Default.HarshestLine(query.HarshestPenaltyLabel(s, state.AttemptMode)))
			}
			return nil
		},
	}
	cmd.Flags().String("sort", "desc", "order of the result: asc or desc")
	cmd.Flags().Bool("attempt", false, "use attempted-offense penalties where defined")
	cmd.Flags().Int("tolerance", query.DefaultTolerance, "severity distance, in years")
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the embedded statute catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := statute.Load()
			if err != nil {
				return err
			}
			withAttempt := 0
			for _, s := range catalog.All() {
				if s.HasAttemptPenalties() {
					withAttempt++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Catalog is valid")
			fmt.Fprintf(out, "  Statutes:                %d\n", catalog.Len())
			fmt.Fprintf(out, "  Penalties:               %d\n", catalog.PenaltyCount())
			fmt.Fprintf(out, "  With attempt penalties:  %d\n", withAttempt)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the explorer in a browser",
		Long: `Start a local HTTP server with the explorer page, a JSON API and Prometheus metrics.

Example:
  keiho serve
  keiho serve --port 9090 --config keiho.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host, _ = cmd.Flags().GetString("host")
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd, cfg)
			server, err := web.NewServer(statute.Default(), web.Options{
				Server:   cfg.Server,
				Explorer: cfg.Explorer,
				Logger:   &logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}
	cmd.Flags().String("host", "", "listen host (default from config)")
	cmd.Flags().Int("port", 0, "listen port (default from config)")
	return cmd
}

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse statutes in an interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			state, err := stateFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			return tui.Run(statute.Default(), state, render.Default)
		},
	}
	addViewFlags(cmd)
	return cmd
}

func parseStatuteID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("statute id must be an integer, got %q", raw)
	}
	return id, nil
}
