package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/glimpse/internal/types"
)

func TestFlatten_PreOrderSkippingFolders(t *testing.T) {
	tree := BookmarkNode{
		ID: "0",
		Children: []BookmarkNode{
			{
				ID:    "1",
				Title: "Bookmarks bar",
				Children: []BookmarkNode{
					{ID: "10", Title: "Go", URL: "https://go.dev", DateAdded: 1700000000000},
					{
						ID:    "11",
						Title: "Work",
						Children: []BookmarkNode{
							{ID: "110", Title: "Jira", URL: "https://jira.example.com"},
						},
					},
					{ID: "12", Title: "News", URL: "https://news.example.com"},
				},
			},
			{
				ID:    "2",
				Title: "Other",
				Children: []BookmarkNode{
					{ID: "20", URL: "https://untitled.example.com"},
				},
			},
		},
	}

	candidates := Flatten(tree)

	assert.Equal(t, []string{"10", "110", "12", "20"}, ids(candidates))
	for _, c := range candidates {
		assert.Equal(t, types.CandidateBookmark, c.Type)
		assert.NotEmpty(t, c.URL)
	}
	assert.Equal(t, int64(1700000000000), candidates[0].DateAdded)
	assert.Equal(t, "Untitled", candidates[3].Title)
}

func TestFlatten_MultipleRoots(t *testing.T) {
	candidates := Flatten(
		BookmarkNode{ID: "a", Title: "A", URL: "https://a.example"},
		BookmarkNode{ID: "f", Children: []BookmarkNode{{ID: "b", Title: "B", URL: "https://b.example"}}},
	)

	require.Len(t, candidates, 2)
	assert.Equal(t, []string{"a", "b"}, ids(candidates))
}

func TestFlatten_Empty(t *testing.T) {
	assert.NotNil(t, Flatten())
	assert.Empty(t, Flatten(BookmarkNode{ID: "folder"}))
}
