package aggregate

import (
	"bytes"
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/glimpse/internal/types"
)

// HTMLBookmarks reads a Netscape bookmark file, the export format shared by
// Chrome, Firefox and Safari.
type HTMLBookmarks struct {
	Path string
}

// Name implements Source
func (h HTMLBookmarks) Name() string {
	return "html-bookmarks:" + h.Path
}

// Candidates implements Source
func (h HTMLBookmarks) Candidates(_ context.Context) ([]types.Candidate, error) {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		return nil, &SourceError{Source: h.Name(), Message: "failed to read bookmark export", Cause: err}
	}
	return ParseHTMLBookmarks(data)
}

// ParseHTMLBookmarks extracts every link of an export in document order,
// which is the pre-order of its folder tree. Folder headings carry no link and
// are skipped. ADD_DATE is in Unix seconds.
func ParseHTMLBookmarks(data []byte) ([]types.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &SourceError{Source: "html-bookmarks", Message: "failed to parse bookmark export", Cause: err}
	}

	candidates := make([]types.Candidate, 0)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		title := strings.TrimSpace(s.Text())
		if title == "" {
			title = untitled
		}

		var dateAdded int64
		if raw, ok := s.Attr("add_date"); ok {
			if secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && secs > 0 {
				dateAdded = secs * 1000
			}
		}

		candidates = append(candidates, types.Candidate{
			Type:      types.CandidateBookmark,
			ID:        "html-" + strconv.Itoa(i),
			Title:     title,
			URL:       href,
			DateAdded: dateAdded,
		})
	})

	return candidates, nil
}
