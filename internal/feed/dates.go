// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"strings"
	"time"
)

// ParsePublished parses a feed publication date. The arXiv feed normally
// uses RFC 3339 ("2024-01-15T18:30:00Z"), but entries occasionally carry
// date-only or slash-delimited values, so parsing is tolerant: it tries
// ISO-8601, date-only, MM/DD/YYYY, then DD/MM/YYYY.
func ParsePublished(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
	}

	if strings.Contains(s, "-") && len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, nil
		}
	}

	if strings.Contains(s, "/") {
		if t, err := time.Parse("01/02/2006", s); err == nil {
			return t, nil
		}
		if t, err := time.Parse("02/01/2006", s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}
