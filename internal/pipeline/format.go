// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// FormatText writes results as a human-readable listing to w. When the
// feed returned candidates but none survived ranking, the message says
// so instead of the generic "no papers found".
func FormatText(resp *Response, w io.Writer) {
	if len(resp.Papers) == 0 {
		if resp.TotalFound > 0 {
			fmt.Fprintf(w, "No relevant papers found for %q (%d candidates scored below threshold).\n",
				resp.Query, resp.TotalFound)
		} else {
			fmt.Fprintf(w, "No papers found for %q.\n", resp.Query)
		}
		return
	}

	for i, p := range resp.Papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(w, "   %s | %s | score %.3f\n",
			p.ID, p.Published.Format("2006-01-02"), p.Score())
		if len(p.Authors) > 0 {
			fmt.Fprintf(w, "   %s\n", formatAuthors(p.Authors))
		}
		if len(p.Categories) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(p.Categories, ", "))
		}
		fmt.Fprintf(w, "   %s\n", p.URL)
		if p.FullText != nil {
			fmt.Fprintf(w, "   full text: %d chars\n", len(*p.FullText))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d of %d candidates", len(resp.Papers), resp.TotalFound)
	if resp.Cached {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintf(w, ", %s\n", resp.Elapsed.Round(10*time.Millisecond))
}

// FormatJSON writes the ranked papers as indented JSON to w.
func FormatJSON(resp *Response, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp.Papers)
}

func formatAuthors(authors []string) string {
	if len(authors) > 3 {
		return strings.Join(authors[:3], ", ") + " et al."
	}
	return strings.Join(authors, ", ")
}
