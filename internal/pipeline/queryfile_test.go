// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-scout/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	score := 0.9
	req := Request{Query: "quantum computing", MaxResults: 5, YearsBack: 2, IncludeFullText: true}
	resp := &Response{
		Papers: []types.Paper{{
			ID:             "2301.00001",
			Title:          "Quantum computing",
			Authors:        []string{"A. Author"},
			Published:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			RelevanceScore: &score,
		}},
		TotalFound: 9,
		Cached:     true,
	}

	require.NoError(t, WriteQueryFile(path, req, resp))

	qf, err := ReadQueryFile(path)
	require.NoError(t, err)

	assert.Equal(t, "quantum computing", qf.Query.Query)
	assert.Equal(t, 5, qf.Query.MaxResults)
	assert.Equal(t, 2, qf.Query.YearsBack)
	assert.True(t, qf.Query.IncludeFullText)

	require.Len(t, qf.Results, 1)
	assert.Equal(t, "2301.00001", qf.Results[0].ID)
	require.NotNil(t, qf.Results[0].RelevanceScore)
	assert.Equal(t, 0.9, *qf.Results[0].RelevanceScore)

	assert.Equal(t, 1, qf.Summary.Returned)
	assert.Equal(t, 9, qf.Summary.TotalFound)
	assert.True(t, qf.Summary.Cached)
	assert.False(t, qf.Summary.Timestamp.IsZero())

	back := qf.Query.ToRequest()
	assert.Equal(t, req, back)
}

func TestReadQueryFileMissing(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestReadQueryFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))

	_, err := ReadQueryFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing query file")
}
