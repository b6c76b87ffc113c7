package aggregate

import "github.com/jonathan/glimpse/internal/types"

// untitled replaces empty tab and bookmark titles
const untitled = "Untitled"

// BookmarkNode is one node of a bookmark tree. Nodes with a URL are
// bookmarks; nodes without one are folders.
type BookmarkNode struct {
	ID        string
	Title     string
	URL       string
	DateAdded int64 // Unix milliseconds
	Children  []BookmarkNode
}

// IsFolder reports whether the node is a folder
func (n BookmarkNode) IsFolder() bool {
	return n.URL == ""
}

// Flatten walks the trees depth-first in pre-order and returns every URL node
// as a bookmark candidate. Folders are not emitted but their children are.
func Flatten(roots ...BookmarkNode) []types.Candidate {
	var out []types.Candidate
	for _, root := range roots {
		out = flattenInto(out, root)
	}
	if out == nil {
		return []types.Candidate{}
	}
	return out
}

func flattenInto(out []types.Candidate, node BookmarkNode) []types.Candidate {
	if !node.IsFolder() {
		title := node.Title
		if title == "" {
			title = untitled
		}
		out = append(out, types.Candidate{
			Type:      types.CandidateBookmark,
			ID:        node.ID,
			Title:     title,
			URL:       node.URL,
			DateAdded: node.DateAdded,
		})
	}
	for _, child := range node.Children {
		out = flattenInto(out, child)
	}
	return out
}
