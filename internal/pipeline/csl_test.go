package pipeline

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want CSLName
	}{
		{"given and family", "Ada Lovelace", CSLName{Given: "Ada", Family: "Lovelace"}},
		{"middle names join given", "John von Neumann", CSLName{Given: "John von", Family: "Neumann"}},
		{"single token", "Euclid", CSLName{Literal: "Euclid"}},
		{"trims whitespace", "  Ada Lovelace  ", CSLName{Given: "Ada", Family: "Lovelace"}},
		{"empty", "", CSLName{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAuthorName(tt.in))
		})
	}
}

func TestToCSLItem(t *testing.T) {
	p := types.Paper{
		ID:        "2301.07041",
		Title:     "Quantum computing",
		Authors:   []string{"Ada Lovelace", "Euclid"},
		Published: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Summary:   "An abstract.",
		URL:       "https://arxiv.org/abs/2301.07041",
	}

	item := toCSLItem(p)
	assert.Equal(t, "2301.07041", item.ID)
	assert.Equal(t, "article", item.Type)
	assert.Equal(t, "An abstract.", item.Abstract)
	assert.Equal(t, "https://arxiv.org/abs/2301.07041", item.URL)
	require.Len(t, item.Author, 2)
	assert.Equal(t, "Lovelace", item.Author[0].Family)
	assert.Equal(t, "Euclid", item.Author[1].Literal)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2026, 3, 14}}, item.Issued.DateParts)
}

func TestToCSLItemZeroDate(t *testing.T) {
	item := toCSLItem(types.Paper{ID: "x", Title: "t"})
	assert.Nil(t, item.Issued)
}

func TestFormatCSLRoundTrips(t *testing.T) {
	resp := &Response{Papers: []types.Paper{
		{ID: "1", Title: "First", Authors: []string{"Ada Lovelace"},
			Published: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Second"},
	}}

	var buf bytes.Buffer
	require.NoError(t, FormatCSL(resp, &buf))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "article", items[1].Type)
}
