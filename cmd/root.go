package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scorecard",
		Short: "Aggregate model evaluation results and publish them as a dataset",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "scorecard.yaml", "config file path")
	root.AddCommand(newAggregateCmd())
	root.AddCommand(newListCmd())
	return root
}
