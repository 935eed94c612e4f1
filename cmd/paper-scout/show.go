// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/pipeline"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Display a previously saved search",
	Long: `Show reloads a search saved with --save and prints its results without
re-querying the feed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qf, err := pipeline.ReadQueryFile(args[0])
		if err != nil {
			return err
		}

		resp := &pipeline.Response{
			Papers:     qf.Results,
			TotalFound: qf.Summary.TotalFound,
			Cached:     qf.Summary.Cached,
			Query:      qf.Query.Query,
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		cslOutput, _ := cmd.Flags().GetBool("csl")
		switch {
		case jsonOutput:
			return pipeline.FormatJSON(resp, os.Stdout)
		case cslOutput:
			return pipeline.FormatCSL(resp, os.Stdout)
		default:
			pipeline.FormatText(resp, os.Stdout)
			return nil
		}
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "output results as JSON")
	showCmd.Flags().Bool("csl", false, "output results as CSL-YAML citations")
	rootCmd.AddCommand(showCmd)
}
