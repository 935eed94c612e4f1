// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the feed client, relevance ranker, full-text
// extractor, and result cache into a single search operation.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paper-scout/internal/cache"
	"github.com/pdiddy/paper-scout/internal/rank"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// FeedSearcher fetches candidate papers from the upstream feed.
type FeedSearcher interface {
	Search(ctx context.Context, query string, maxResults, yearsBack int, w io.Writer) ([]types.Paper, error)
}

// BatchExtractor downloads and extracts full text for a batch of papers.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, papers []types.Paper, w io.Writer) []types.Paper
}

// Request holds the parameters of one search.
type Request struct {
	Query           string
	MaxResults      int
	YearsBack       int
	IncludeFullText bool
}

// Response holds the ranked results plus metadata about the run.
// TotalFound counts candidates before ranking, so callers can tell
// "nothing published" apart from "nothing relevant".
type Response struct {
	Papers     []types.Paper
	TotalFound int
	Cached     bool
	Elapsed    time.Duration
	Query      string
}

// Pipeline executes searches: cache lookup, feed fetch, relevance
// ranking, truncation, and optional full-text extraction.
type Pipeline struct {
	feed      FeedSearcher
	ranker    *rank.Ranker
	extractor BatchExtractor
	cache     *cache.Cache
	cfg       types.PipelineConfig
}

// New assembles a pipeline from its stages. extractor may be nil when
// full-text extraction is never requested.
func New(feed FeedSearcher, ranker *rank.Ranker, extractor BatchExtractor, c *cache.Cache, cfg types.PipelineConfig) *Pipeline {
	return &Pipeline{
		feed:      feed,
		ranker:    ranker,
		extractor: extractor,
		cache:     c,
		cfg:       cfg,
	}
}

// Search runs one query through the pipeline. Candidates are fetched
// with headroom above MaxResults so ranking has something to discard,
// and the unranked candidate set is what gets cached: ranking and
// extraction always run fresh, even on a cache hit.
func (p *Pipeline) Search(ctx context.Context, req Request, w io.Writer) (*Response, error) {
	start := time.Now()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = p.cfg.Feed.MaxResults
	}
	yearsBack := req.YearsBack
	if yearsBack <= 0 {
		yearsBack = p.cfg.Feed.YearsBack
	}

	var candidates []types.Paper
	entry, hit := p.cache.Get(req.Query, yearsBack)
	if hit {
		candidates = entry.Papers
		fmt.Fprintf(w, "cache hit for %q (%d candidates)\n", req.Query, len(candidates))
	} else {
		var err error
		candidates, err = p.feed.Search(ctx, req.Query, 2*maxResults, yearsBack, w)
		if err != nil {
			return nil, fmt.Errorf("searching feed: %w", err)
		}
		p.cache.Put(req.Query, yearsBack, candidates)
	}

	ranked := p.ranker.Rank(candidates, req.Query, w)
	top := p.ranker.SelectTop(ranked, maxResults)

	if req.IncludeFullText && len(top) > 0 {
		if p.extractor == nil {
			fmt.Fprintln(w, "warning: full text requested but no extractor configured")
		} else {
			top = p.extractor.ExtractBatch(ctx, top, w)
		}
	}

	return &Response{
		Papers:     top,
		TotalFound: len(candidates),
		Cached:     hit,
		Elapsed:    time.Since(start),
		Query:      req.Query,
	}, nil
}
