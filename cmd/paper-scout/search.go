// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/cache"
	"github.com/pdiddy/paper-scout/internal/extract"
	"github.com/pdiddy/paper-scout/internal/feed"
	"github.com/pdiddy/paper-scout/internal/limiter"
	"github.com/pdiddy/paper-scout/internal/pipeline"
	"github.com/pdiddy/paper-scout/internal/rank"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search arXiv for papers matching a topic",
	Long: `Search queries the arXiv feed for papers matching the given topic,
ranks candidates by TF-IDF similarity to the query, and prints the top
results. Repeated searches within the cache TTL are served from disk.

With --full-text the PDF of each result is downloaded and its text
extracted. With --save the query and results are written to a YAML file
that can be reloaded without re-querying.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Int("years-back", 0, "only papers published within this many years (default from config)")
	searchCmd.Flags().Bool("full-text", false, "download PDFs and extract full text")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("csl", false, "output results as CSL-YAML citations")
	searchCmd.Flags().String("save", "", "save query and results to a YAML file")
	searchCmd.Flags().Bool("no-cache", false, "bypass the result cache")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	maxResults, _ := cmd.Flags().GetInt("max-results")
	yearsBack, _ := cmd.Flags().GetInt("years-back")
	fullText, _ := cmd.Flags().GetBool("full-text")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	cslOutput, _ := cmd.Flags().GetBool("csl")
	savePath, _ := cmd.Flags().GetString("save")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	if jsonOutput && cslOutput {
		return fmt.Errorf("--json and --csl are mutually exclusive")
	}

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}

	c, err := cache.Open(cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	lim := limiter.New(cfg.Extraction.MaxConcurrent, cfg.RequestInterval)
	p := pipeline.New(
		feed.NewClient(cfg.Feed, lim),
		rank.NewRanker(cfg.Ranking),
		extract.NewExtractor(cfg.Extraction, lim),
		c,
		cfg,
	)

	req := pipeline.Request{
		Query:           query,
		MaxResults:      maxResults,
		YearsBack:       yearsBack,
		IncludeFullText: fullText,
	}

	resp, err := p.Search(context.Background(), req, os.Stderr)
	if err != nil {
		return err
	}

	if savePath != "" {
		if err := pipeline.WriteQueryFile(savePath, req, resp); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved search to %s\n", savePath)
	}

	switch {
	case jsonOutput:
		return pipeline.FormatJSON(resp, os.Stdout)
	case cslOutput:
		return pipeline.FormatCSL(resp, os.Stdout)
	default:
		pipeline.FormatText(resp, os.Stdout)
		return nil
	}
}
