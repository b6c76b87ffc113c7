package aggregate

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/jonathan/glimpse/internal/types"
)

// webkitEpochOffsetMillis is the distance between 1601-01-01 and 1970-01-01
const webkitEpochOffsetMillis int64 = 11644473600000

// chromeRootOrder is the order Chrome shows its bookmark roots in
var chromeRootOrder = []string{"bookmark_bar", "other", "synced"}

type chromeBookmarksFile struct {
	Roots map[string]chromeNode `json:"roots"`
}

type chromeNode struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	URL       string       `json:"url"`
	DateAdded string       `json:"date_added"`
	Children  []chromeNode `json:"children"`
}

func (n chromeNode) toBookmarkNode() BookmarkNode {
	node := BookmarkNode{
		ID:        n.ID,
		Title:     n.Name,
		DateAdded: webkitToUnixMillis(n.DateAdded),
	}
	if n.Type != "folder" {
		node.URL = n.URL
	}
	for _, child := range n.Children {
		node.Children = append(node.Children, child.toBookmarkNode())
	}
	return node
}

// webkitToUnixMillis converts Chrome's microseconds-since-1601 timestamp.
// Missing or unparseable values yield 0.
func webkitToUnixMillis(value string) int64 {
	if value == "" {
		return 0
	}
	micros, err := strconv.ParseInt(value, 10, 64)
	if err != nil || micros <= 0 {
		return 0
	}
	return micros/1000 - webkitEpochOffsetMillis
}

// ChromeBookmarks reads a Chrome profile "Bookmarks" file
type ChromeBookmarks struct {
	Path string
}

// Name implements Source
func (c ChromeBookmarks) Name() string {
	return "chrome-bookmarks:" + c.Path
}

// Candidates implements Source
func (c ChromeBookmarks) Candidates(_ context.Context) ([]types.Candidate, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, &SourceError{Source: c.Name(), Message: "failed to read bookmarks file", Cause: err}
	}

	roots, err := ParseChromeBookmarks(data)
	if err != nil {
		return nil, err
	}
	return Flatten(roots...), nil
}

// ParseChromeBookmarks decodes the Bookmarks file into one tree per root,
// in bookmark bar, other, synced order.
func ParseChromeBookmarks(data []byte) ([]BookmarkNode, error) {
	var file chromeBookmarksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &SourceError{Source: "chrome-bookmarks", Message: "failed to decode bookmarks file", Cause: err}
	}
	if file.Roots == nil {
		return nil, &SourceError{Source: "chrome-bookmarks", Message: "bookmarks file has no roots"}
	}

	roots := make([]BookmarkNode, 0, len(chromeRootOrder))
	for _, name := range chromeRootOrder {
		root, ok := file.Roots[name]
		if !ok {
			continue
		}
		roots = append(roots, root.toBookmarkNode())
	}
	return roots, nil
}
