// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores candidate papers by TF-IDF cosine similarity to
// the search query and returns them filtered and sorted by relevance.
package rank

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// fullTextSample caps how much extracted full text feeds the vectorizer,
// so long documents cannot drown out the title and abstract.
const fullTextSample = 2000

// Ranker scores papers against a query.
type Ranker struct {
	cfg types.RankingConfig
}

// NewRanker returns a ranker using cfg.
func NewRanker(cfg types.RankingConfig) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank assigns a relevance score to every paper, drops papers below the
// minimum threshold, and returns the rest sorted by score descending.
// The sort is stable, so ties keep the input's submission-date order.
// Papers are never mutated; scored copies are returned.
//
// An empty input returns empty without touching the vectorizer, and a
// vectorization failure degrades to all papers unranked at score 0.0
// rather than failing the search. Warnings go to w.
func (r *Ranker) Rank(papers []types.Paper, query string, w io.Writer) []types.Paper {
	if len(papers) == 0 {
		return nil
	}

	docs := make([]string, 0, len(papers)+1)
	for _, p := range papers {
		docs = append(docs, normalizeText(combinedText(p)))
	}
	docs = append(docs, normalizeText(query))

	out := make([]types.Paper, len(papers))
	copy(out, papers)

	v := vectorizer{maxFeatures: r.cfg.MaxFeatures, bigrams: r.cfg.Bigrams}
	vectors, err := v.fitTransform(docs)
	if err != nil {
		fmt.Fprintf(w, "warning: relevance ranking failed: %v, returning unranked results\n", err)
		for i := range out {
			score := 0.0
			out[i].RelevanceScore = &score
		}
		return out
	}

	queryVec := vectors[len(vectors)-1]
	for i := range out {
		score := cosine(vectors[i], queryVec)
		out[i].RelevanceScore = &score
	}

	kept := out[:0]
	for _, p := range out {
		if p.Score() >= r.cfg.MinRelevanceScore {
			kept = append(kept, p)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score() > kept[j].Score()
	})
	return kept
}

// SelectTop returns the first n papers without re-sorting.
func (r *Ranker) SelectTop(papers []types.Paper, n int) []types.Paper {
	if n <= 0 || len(papers) <= n {
		return papers
	}
	return papers[:n]
}

// combinedText builds the scoring text for one paper: title, abstract,
// categories, and a capped sample of the full text when present.
func combinedText(p types.Paper) string {
	parts := []string{p.Title, p.Summary, strings.Join(p.Categories, " ")}
	if p.FullText != nil {
		sample := *p.FullText
		if len(sample) > fullTextSample {
			sample = sample[:fullTextSample]
		}
		parts = append(parts, sample)
	}
	return strings.Join(parts, " ")
}

// normalizeText lowercases, strips non-alphanumeric runes, and drops
// purely numeric tokens and tokens shorter than three characters. The
// query and every candidate pass through identically.
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if len(w) < 3 || numeric(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func numeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
