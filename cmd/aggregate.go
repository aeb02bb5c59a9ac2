package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalnine/scorecard/internal/config"
	"github.com/signalnine/scorecard/internal/hub"
	"github.com/signalnine/scorecard/internal/report"
	"github.com/signalnine/scorecard/internal/result"
)

var (
	flagResultsDir string
	flagRepoID     string
	flagFormat     string
	flagToken      string
)

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Flatten result files into a table and print summary statistics",
		Long:  "Walk a results tree (root/<author>/<model>/*.json), flatten each file's config_general and results.all sections into one record, print the table and descriptive statistics, and optionally push the aggregated dataset to the hub.",
		RunE:  runAggregate,
	}
	cmd.Flags().StringVar(&flagResultsDir, "results-dir", "", "directory containing evaluation results")
	cmd.Flags().StringVar(&flagRepoID, "repo-id", "", "dataset repository id to push results to (optional)")
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().StringVar(&flagToken, "token", "", "hub API token (defaults to HF_TOKEN)")
	cmd.MarkFlagRequired("results-dir")
	return cmd
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	set, err := result.Collect(flagResultsDir)
	if err != nil {
		return err
	}
	slog.Info("collected evaluation records", "dir", flagResultsDir, "records", len(set))

	if err := report.Generate(set, flagFormat, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	if flagRepoID == "" {
		return nil
	}

	token := flagToken
	if token == "" {
		token = os.Getenv("HF_TOKEN")
	}
	client := hub.NewClient(hub.Options{
		Endpoint: cfg.Hub.Endpoint,
		Token:    token,
		Branch:   cfg.Hub.Branch,
		Private:  cfg.Hub.Private,
	})
	if err := client.Push(cmd.Context(), flagRepoID, set); err != nil {
		return err
	}
	slog.Info("pushed results to hub", "repo_id", flagRepoID, "records", len(set))
	return nil
}
