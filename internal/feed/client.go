// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed queries the arXiv Atom API and parses entries into Paper
// records filtered to a publication-date window.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-scout/internal/httputil"
	"github.com/pdiddy/paper-scout/internal/limiter"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// Client queries the arXiv export API. The limiter is shared with the
// extractor so all outbound requests respect one process-wide interval.
type Client struct {
	cfg  types.FeedConfig
	http *http.Client
	lim  *limiter.Limiter
}

// NewClient returns a feed client using cfg and the shared limiter.
func NewClient(cfg types.FeedConfig, lim *limiter.Limiter) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		lim:  lim,
	}
}

// Search queries the feed and returns parsed papers published within the
// last yearsBack years, at most maxResults of them. It requests twice
// maxResults from upstream to compensate for date filtering. Transport
// and HTTP-status failures are returned to the caller; malformed entries
// are skipped with a warning on w.
func (c *Client) Search(ctx context.Context, query string, maxResults, yearsBack int, w io.Writer) ([]types.Paper, error) {
	q := BuildSearchQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty search query")
	}

	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}
	if yearsBack <= 0 {
		yearsBack = c.cfg.YearsBack
	}

	params := url.Values{}
	params.Set("search_query", q)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(2*maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	if err := c.lim.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
	}

	var f atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing feed response: %w", err)
	}

	now := time.Now()
	var papers []types.Paper
	for _, entry := range f.Entries {
		p, err := parseEntry(entry, now, w)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping feed entry: %v\n", err)
			continue
		}
		papers = append(papers, p)
	}

	filtered := filterByDate(papers, yearsBack, now)
	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}
	return filtered, nil
}

// BuildSearchQuery tokenizes the query on whitespace and expands each
// token into a title/abstract/category disjunction, conjoined with AND
// in original token order. No stemming or synonym expansion.
func BuildSearchQuery(query string) string {
	terms := strings.Fields(strings.ToLower(query))
	clauses := make([]string, 0, len(terms))
	for _, term := range terms {
		clauses = append(clauses, fmt.Sprintf("(ti:%s OR abs:%s OR cat:%s)", term, term, term))
	}
	return strings.Join(clauses, " AND ")
}

// filterByDate keeps papers with Published >= now - yearsBack*365 days.
func filterByDate(papers []types.Paper, yearsBack int, now time.Time) []types.Paper {
	cutoff := now.AddDate(0, 0, -365*yearsBack)
	var kept []types.Paper
	for _, p := range papers {
		if !p.Published.Before(cutoff) {
			kept = append(kept, p)
		}
	}
	return kept
}

// parseEntry converts one Atom entry into a Paper. An entry without a
// recognizable identifier is an error; an unparseable date falls back to
// the fetch time with a warning on w.
func parseEntry(entry atomEntry, now time.Time, w io.Writer) (types.Paper, error) {
	id := extractPaperID(entry.ID)
	if id == "" {
		return types.Paper{}, fmt.Errorf("no paper ID in %q", entry.ID)
	}

	absURL := entry.ID
	for _, l := range entry.Links {
		if l.Rel == "alternate" && l.Href != "" {
			absURL = l.Href
			break
		}
	}

	p := types.Paper{
		ID:      id,
		Title:   normalizeWhitespace(entry.Title),
		Summary: cleanSummary(entry.Summary),
		URL:     absURL,
		PDFURL:  strings.Replace(absURL, "/abs/", "/pdf/", 1),
	}

	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}

	seen := make(map[string]bool)
	for _, c := range entry.Categories {
		if c.Term == "" || seen[c.Term] {
			continue
		}
		seen[c.Term] = true
		p.Categories = append(p.Categories, c.Term)
	}

	t, err := ParsePublished(entry.Published)
	if err != nil {
		fmt.Fprintf(w, "warning: %s: %v, using fetch time\n", id, err)
		t = now
	}
	p.Published = t

	return p, nil
}

// extractPaperID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractPaperID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// normalizeWhitespace trims and collapses runs of whitespace, including
// the newlines arXiv embeds in titles and abstracts.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanSummary normalizes an abstract and strips the "Abstract:" prefix
// some entries carry.
func cleanSummary(s string) string {
	s = normalizeWhitespace(s)
	for _, prefix := range []string{"Abstract: ", "Abstract "} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Links      []atomLink     `xml:"link"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}
