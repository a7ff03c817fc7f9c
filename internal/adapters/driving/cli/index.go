package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/custodia-labs/graphidx/internal/adapters/driven/watch"
	"github.com/custodia-labs/graphidx/internal/callbacks"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/core/ports/driving"
	"github.com/custodia-labs/graphidx/internal/logger"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the index",
	Long: `Run an indexing pipeline over the configured input storage.

Tables are written to the output storage together with the run state
(context.json) and run statistics (stats.json). Interrupting the command
stops the run after the current workflow.

With --watch the index is rebuilt whenever matching input files change,
until the command is interrupted.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringP(keyMethod, "m", domain.DefaultIndexingMethod, "pipeline to run")
	indexCmd.Flags().StringSlice("workflows", nil, "run these workflows instead of the pipeline's")
	indexCmd.Flags().Bool("quiet", false, "suppress progress output")
	indexCmd.Flags().Bool("watch", false, "rebuild when input files change (file input storage only)")
	indexCmd.Flags().Duration("watch-interval", watch.DefaultMinInterval, "minimum time between rebuilds")
	_ = viper.BindPFlag(keyMethod, indexCmd.Flags().Lookup(keyMethod))
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	a := newApp()
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if names, _ := cmd.Flags().GetStringSlice("workflows"); len(names) > 0 {
		cfg.Workflows = names
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if watching && cfg.Input.Storage.Type != domain.StorageFile {
		return fmt.Errorf("%w: --watch requires %s input storage", domain.ErrInvalidConfig, domain.StorageFile)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := buildOnce(ctx, cmd, a, cfg); err != nil && !watching {
		return err
	}
	if !watching {
		return nil
	}

	interval, _ := cmd.Flags().GetDuration("watch-interval")
	pattern, err := regexp.Compile(cfg.Input.FilePattern)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	changes, err := watch.New(cfg.Input.Storage.BaseDir, pattern, watch.WithMinInterval(interval)).Changes(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	cmd.Printf("Watching %s for changes\n", cfg.Input.Storage.BaseDir)
	for batch := range changes {
		cmd.Printf("Changed: %s\n", strings.Join(batch, ", "))
		if err := buildOnce(ctx, cmd, a, cfg); err != nil {
			logger.Error("%v", err)
		}
	}
	return nil
}

// buildOnce runs one indexing pass and prints its report.
func buildOnce(ctx context.Context, cmd *cobra.Command, a *app, cfg *domain.Config) error {
	sinks := []driven.WorkflowCallbacks{callbacks.NewLogging()}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		console := callbacks.NewConsole(cmd.OutOrStdout())
		console.SetProgress(isTerminal(cmd.OutOrStdout()))
		sinks = append(sinks, console)
	}

	report, err := a.index.BuildIndex(ctx, cfg, driving.BuildOptions{
		Method:    viper.GetString(keyMethod),
		Callbacks: sinks,
	})
	if report != nil {
		printReport(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

// isTerminal returns true if w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printReport(w io.Writer, report *driving.BuildReport) {
	fmt.Fprintf(w, "Run %s %s\n", report.RunID, report.State)
	if report.Stats == nil {
		return
	}

	ran := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		ran = append(ran, r.Workflow)
	}
	if len(ran) > 0 {
		fmt.Fprintf(w, "  workflows:  %s\n", strings.Join(ran, ", "))
	}
	fmt.Fprintf(w, "  documents:  %d\n", report.Stats.NumDocuments)
	fmt.Fprintf(w, "  text units: %d\n", report.Stats.NumTextUnits)
	fmt.Fprintf(w, "  runtime:    %.2fs\n", report.Stats.TotalRuntime)
}
