package pipeline

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-JSON/CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the ranked papers as a CSL-YAML list to w.
func FormatCSL(resp *Response, w io.Writer) error {
	items := make([]CSLItem, len(resp.Papers))
	for i, p := range resp.Papers {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(p types.Paper) CSLItem {
	item := CSLItem{
		ID:       p.ID,
		Type:     "article",
		Title:    p.Title,
		Abstract: p.Summary,
		URL:      p.URL,
	}

	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	if !p.Published.IsZero() {
		item.Issued = &CSLDate{
			DateParts: [][]int{{p.Published.Year(), int(p.Published.Month()), p.Published.Day()}},
		}
	}

	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
