// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract downloads paper PDFs and pulls plain text out of them
// through an ordered list of fallback strategies, under a shared
// concurrency and rate limiter.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/pdiddy/paper-scout/internal/limiter"
	"github.com/pdiddy/paper-scout/pkg/types"
)

const (
	// minTextLength is the acceptance threshold: a strategy's output
	// shorter than this (after trimming) is treated as a failed attempt.
	minTextLength = 100

	// maxDownloadBytes caps how much of a PDF response body is read.
	maxDownloadBytes = 64 << 20

	truncationMarker = "\n\n[Text truncated due to length limit]"
)

// Extractor downloads PDFs and extracts their text. Safe for concurrent
// use; the injected limiter bounds in-flight downloads process-wide.
type Extractor struct {
	cfg        types.ExtractionConfig
	http       *http.Client
	lim        *limiter.Limiter
	strategies []Strategy
}

// NewExtractor returns an extractor using cfg, the shared limiter, and
// the default strategy order.
func NewExtractor(cfg types.ExtractionConfig, lim *limiter.Limiter) *Extractor {
	return &Extractor{
		cfg:        cfg,
		http:       &http.Client{Timeout: cfg.Timeout},
		lim:        lim,
		strategies: DefaultStrategies(),
	}
}

// Extract downloads the document at pdfURL and returns its plain text.
// Download failures and insufficient extraction yield an error local to
// this document; callers leave the paper's FullText unset and move on.
func (e *Extractor) Extract(ctx context.Context, pdfURL string) (string, error) {
	if err := e.lim.Acquire(ctx); err != nil {
		return "", err
	}
	defer e.lim.Release()

	if err := e.lim.Wait(ctx); err != nil {
		return "", err
	}

	data, err := e.download(ctx, pdfURL)
	if err != nil {
		return "", err
	}
	return e.fromBytes(data)
}

// fromBytes runs the fallback strategies over raw PDF bytes, accepting
// the first result that clears the minimum-length threshold.
func (e *Extractor) fromBytes(data []byte) (string, error) {
	var lastErr error
	for _, s := range e.strategies {
		text, err := attempt(s, data)
		if err != nil {
			lastErr = err
			continue
		}
		if len(strings.TrimSpace(text)) > minTextLength {
			return e.truncate(text), nil
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("no strategy extracted sufficient text: %w", lastErr)
	}
	return "", fmt.Errorf("no strategy extracted sufficient text")
}

// truncate caps text at the configured maximum length, appending a
// marker when content was dropped.
func (e *Extractor) truncate(text string) string {
	if e.cfg.MaxFullTextLength > 0 && len(text) > e.cfg.MaxFullTextLength {
		text = text[:e.cfg.MaxFullTextLength] + truncationMarker
	}
	return strings.TrimSpace(text)
}

func (e *Extractor) download(ctx context.Context, pdfURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", pdfURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, pdfURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading download: %w", err)
	}
	return data, nil
}

// ExtractBatch runs one extraction task per paper concurrently, bounded
// by the shared limiter, and assigns FullText on the papers whose
// extraction succeeded. Papers whose task failed locally are returned
// with FullText unset; papers whose task panicked are dropped. Output
// order matches input order regardless of completion order, and the
// success ratio is reported on w.
func (e *Extractor) ExtractBatch(ctx context.Context, papers []types.Paper, w io.Writer) []types.Paper {
	results := make([]*types.Paper, len(papers))
	failures := make([]error, len(papers))

	var wg sync.WaitGroup
	for i := range papers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					failures[i] = fmt.Errorf("extraction task panicked: %v", r)
				}
			}()

			p := papers[i]
			text, err := e.Extract(ctx, p.PDFURL)
			if err != nil {
				failures[i] = err
			} else {
				p.FullText = &text
			}
			results[i] = &p
		}(i)
	}
	wg.Wait()

	extracted := 0
	out := make([]types.Paper, 0, len(papers))
	for i, p := range results {
		if failures[i] != nil {
			fmt.Fprintf(w, "warning: full text unavailable for %s: %v\n", papers[i].ID, failures[i])
		}
		if p == nil {
			continue
		}
		if p.FullText != nil {
			extracted++
		}
		out = append(out, *p)
	}
	fmt.Fprintf(w, "extracted full text for %d/%d papers\n", extracted, len(papers))
	return out
}
