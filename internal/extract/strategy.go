// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages bounds how many pages each strategy reads. Relevance signal
// concentrates in the front matter, and some PDFs run to hundreds of pages.
const maxPages = 20

// Strategy converts raw PDF bytes into plain text. Strategies are tried
// in order until one yields enough text; different PDF producers defeat
// different extraction approaches, so the cheap method runs first.
type Strategy interface {
	Name() string
	Attempt(data []byte) (string, error)
}

// DefaultStrategies returns the extraction strategies in fallback order:
// fast layout-naive plain text first, then layout-aware row assembly.
func DefaultStrategies() []Strategy {
	return []Strategy{plainTextStrategy{}, rowStrategy{}}
}

// attempt runs one strategy, converting panics inside the PDF parser
// into errors so a single malformed document cannot take down a batch.
func attempt(s Strategy, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s extraction panicked: %v", s.Name(), r)
		}
	}()
	return s.Attempt(data)
}

// plainTextStrategy extracts each page's text layer in content-stream
// order. Fast, but loses reading order on multi-column layouts.
type plainTextStrategy struct{}

func (plainTextStrategy) Name() string { return "plaintext" }

func (plainTextStrategy) Attempt(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= min(r.NumPage(), maxPages); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// rowStrategy groups text fragments by vertical position and reassembles
// them row by row, recovering reading order plainTextStrategy loses.
type rowStrategy struct{}

func (rowStrategy) Name() string { return "rows" }

func (rowStrategy) Attempt(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= min(r.NumPage(), maxPages); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					b.WriteString(" ")
				}
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String()), nil
}
