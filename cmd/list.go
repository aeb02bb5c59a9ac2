package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/signalnine/scorecard/internal/result"
)

var flagListDir string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered result files without parsing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := result.Files(flagListDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Result files under %s:\n", flagListDir)
			for _, f := range files {
				rel, err := filepath.Rel(flagListDir, f)
				if err != nil {
					rel = f
				}
				fmt.Fprintf(out, "  - %s\n", rel)
			}
			fmt.Fprintf(out, "\n%d file(s)\n", len(files))
			return nil
		},
	}
	cmd.Flags().StringVar(&flagListDir, "results-dir", "", "directory containing evaluation results")
	cmd.MarkFlagRequired("results-dir")
	return cmd
}
