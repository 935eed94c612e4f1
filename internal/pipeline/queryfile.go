// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A saved search can be reloaded later without re-querying the feed.
type QueryFile struct {
	Query   QueryParams   `yaml:"query"`
	Results []types.Paper `yaml:"results"`
	Summary QuerySummary  `yaml:"summary"`
}

// QueryParams stores the request parameters in a serializable form.
type QueryParams struct {
	Query           string `yaml:"query"`
	MaxResults      int    `yaml:"max_results"`
	YearsBack       int    `yaml:"years_back"`
	IncludeFullText bool   `yaml:"include_full_text"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Returned   int       `yaml:"returned"`
	TotalFound int       `yaml:"total_found"`
	Cached     bool      `yaml:"cached"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a request and its response to a YAML file.
func WriteQueryFile(path string, req Request, resp *Response) error {
	qf := QueryFile{
		Query: QueryParams{
			Query:           req.Query,
			MaxResults:      req.MaxResults,
			YearsBack:       req.YearsBack,
			IncludeFullText: req.IncludeFullText,
		},
		Results: resp.Papers,
		Summary: QuerySummary{
			Returned:   len(resp.Papers),
			TotalFound: resp.TotalFound,
			Cached:     resp.Cached,
			Timestamp:  time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToRequest converts stored QueryParams back into a Request.
func (p QueryParams) ToRequest() Request {
	return Request{
		Query:           p.Query,
		MaxResults:      p.MaxResults,
		YearsBack:       p.YearsBack,
		IncludeFullText: p.IncludeFullText,
	}
}
