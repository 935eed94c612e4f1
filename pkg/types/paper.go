// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-scout pipeline.
package types

import "time"

// Paper represents one candidate document returned by the feed query.
// The feed parser creates it, the ranker assigns RelevanceScore, and the
// extractor assigns FullText. Once a paper has been placed in the result
// cache it is never mutated.
type Paper struct {
	// ID is the stable arXiv identifier (e.g. "2301.07041"), non-empty
	// and unique within one search result set.
	ID string `json:"id" yaml:"id"`

	// Title is the normalized paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication timestamp. When the feed date cannot
	// be parsed this defaults to the fetch time.
	Published time.Time `json:"published" yaml:"published"`

	// Summary is the paper abstract.
	Summary string `json:"summary" yaml:"summary"`

	// URL is the canonical abstract page URL.
	URL string `json:"url" yaml:"url"`

	// PDFURL is the fetchable full-text location, derived from URL.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Categories holds the topical tags attached to the entry.
	Categories []string `json:"categories" yaml:"categories"`

	// RelevanceScore is the cosine similarity to the query, in [0, 1].
	// Nil until the ranker has scored the paper.
	RelevanceScore *float64 `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`

	// FullText is the extracted PDF text. Nil when extraction was not
	// requested or failed.
	FullText *string `json:"full_text,omitempty" yaml:"full_text,omitempty"`
}

// Score returns the relevance score, or 0 when the paper is unscored.
func (p Paper) Score() float64 {
	if p.RelevanceScore == nil {
		return 0
	}
	return *p.RelevanceScore
}

// Scored reports whether the ranker has assigned a relevance score.
func (p Paper) Scored() bool {
	return p.RelevanceScore != nil
}
