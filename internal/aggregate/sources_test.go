package aggregate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/glimpse/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestTabsFile(t *testing.T) {
	path := writeFile(t, "tabs.json", `[
		{"id": 42, "windowId": 1, "title": "GitHub", "url": "https://github.com", "favIconUrl": "https://github.com/favicon.ico", "active": true},
		{"id": "abc", "windowId": 2},
		{"id": 7, "title": "", "url": "chrome://newtab/"}
	]`)

	candidates, err := TabsFile{Path: path}.Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, types.Candidate{
		Type:       types.CandidateTab,
		ID:         "42",
		Title:      "GitHub",
		URL:        "https://github.com",
		WindowID:   1,
		FavIconURL: "https://github.com/favicon.ico",
		Active:     true,
	}, candidates[0])

	assert.Equal(t, "abc", candidates[1].ID)
	assert.Equal(t, "Untitled", candidates[1].Title)
	assert.Equal(t, "", candidates[1].URL)
	assert.False(t, candidates[1].Active)
	assert.Equal(t, "Untitled", candidates[2].Title)
}

func TestTabsFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not an array", content: `{"id": 1}`},
		{name: "missing id", content: `[{"title": "x"}]`},
		{name: "wrong type", content: `[{"id": 1, "active": "yes"}]`},
		{name: "not json", content: `tabs`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TabsFile{Path: writeFile(t, "tabs.json", tt.content)}.Candidates(context.Background())
			var sourceErr *SourceError
			assert.ErrorAs(t, err, &sourceErr)
		})
	}
}

func TestTabsFile_Missing(t *testing.T) {
	_, err := TabsFile{Path: filepath.Join(t.TempDir(), "nope.json")}.Candidates(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const chromeBookmarksJSON = `{
  "checksum": "x",
  "roots": {
    "bookmark_bar": {
      "id": "1", "name": "Bookmarks bar", "type": "folder", "date_added": "13285932710373554",
      "children": [
        {"id": "5", "name": "GitHub", "type": "url", "url": "https://github.com", "date_added": "13285932710373554"},
        {"id": "6", "name": "Tools", "type": "folder", "children": [
          {"id": "7", "name": "", "type": "url", "url": "https://tools.example.com"}
        ]}
      ]
    },
    "other": {
      "id": "2", "name": "Other bookmarks", "type": "folder",
      "children": [{"id": "8", "name": "Recipes", "type": "url", "url": "https://food.example.com", "date_added": "bogus"}]
    },
    "synced": {"id": "3", "name": "Mobile bookmarks", "type": "folder", "children": []}
  },
  "version": 1
}`

func TestChromeBookmarks(t *testing.T) {
	path := writeFile(t, "Bookmarks", chromeBookmarksJSON)

	candidates, err := ChromeBookmarks{Path: path}.Candidates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"5", "7", "8"}, ids(candidates))
	assert.Equal(t, "GitHub", candidates[0].Title)
	assert.Equal(t, "Untitled", candidates[1].Title)
	assert.Equal(t, int64(0), candidates[2].DateAdded)

	added := time.UnixMilli(candidates[0].DateAdded).UTC()
	assert.Equal(t, 2022, added.Year())
	assert.Equal(t, int64(1641459110373), candidates[0].DateAdded)
}

func TestParseChromeBookmarks_Invalid(t *testing.T) {
	_, err := ParseChromeBookmarks([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseChromeBookmarks([]byte(`{"version": 1}`))
	assert.Error(t, err)
}

func TestWebkitToUnixMillis(t *testing.T) {
	assert.Equal(t, int64(0), webkitToUnixMillis(""))
	assert.Equal(t, int64(0), webkitToUnixMillis("0"))
	assert.Equal(t, int64(0), webkitToUnixMillis("abc"))
	assert.Equal(t, int64(0), webkitToUnixMillis("11644473600000000"))
}

const netscapeExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1641459110">Bookmarks bar</H3>
    <DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1641459110">GitHub</A>
        <DT><H3>Work</H3>
        <DL><p>
            <DT><A HREF="https://jira.example.com">Jira &amp; Co</A>
        </DL><p>
        <DT><A HREF="https://news.example.com" ADD_DATE="oops"></A>
        <DT><A HREF="">Empty</A>
    </DL><p>
</DL><p>
`

func TestHTMLBookmarks(t *testing.T) {
	path := writeFile(t, "bookmarks.html", netscapeExport)

	candidates, err := HTMLBookmarks{Path: path}.Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "GitHub", candidates[0].Title)
	assert.Equal(t, "https://github.com", candidates[0].URL)
	assert.Equal(t, int64(1641459110000), candidates[0].DateAdded)
	assert.Equal(t, types.CandidateBookmark, candidates[0].Type)

	assert.Equal(t, "Jira & Co", candidates[1].Title)
	assert.Equal(t, "Untitled", candidates[2].Title)
	assert.Equal(t, int64(0), candidates[2].DateAdded)

	seen := map[string]bool{}
	for _, c := range candidates {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestPageCandidates(t *testing.T) {
	targets := []*target.Info{
		{TargetID: "A1", Type: "page", Title: "Inbox", URL: "https://mail.example.com"},
		{TargetID: "SW", Type: "service_worker", Title: "sw", URL: "https://mail.example.com/sw.js"},
		nil,
		{TargetID: "B2", Type: "page", URL: "about:blank"},
	}

	candidates := pageCandidates(targets)

	require.Len(t, candidates, 2)
	assert.Equal(t, "A1", candidates[0].ID)
	assert.Equal(t, types.CandidateTab, candidates[0].Type)
	assert.Equal(t, "Untitled", candidates[1].Title)
}

func TestDevToolsTabs_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping DevTools connection test in short mode")
	}

	_, err := DevToolsTabs{URL: "http://127.0.0.1:1", Timeout: 2 * time.Second}.Candidates(context.Background())

	var sourceErr *SourceError
	assert.ErrorAs(t, err, &sourceErr)
}
