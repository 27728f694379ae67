// Package feed assembles read-side views of the community feed. The comment
// tree builder is the reason threads of any depth cost one query: comments
// are fetched flat, ordered by creation time, and nested here in memory.
package feed

import "github.com/emilythestrangee/community-feed/backend/internal/models"

// CommentNode is a comment with its replies attached and the viewer's like
// state resolved. Replies preserve the input order (creation time ascending).
type CommentNode struct {
	models.Comment
	LikedByViewer bool           `json:"liked_by_current_user"`
	Replies       []*CommentNode `json:"replies"`
}

// BuildCommentTree turns a flat, creation-ordered comment list for one post
// into its root comments with nested replies. Two passes, O(n), no queries:
// the first indexes every comment by id, the second attaches each comment to
// its parent's reply list. A comment whose parent is missing from the input
// is promoted to a root rather than dropped.
func BuildCommentTree(comments []models.Comment, likedIDs map[int]bool) []*CommentNode {
	nodes := make(map[int]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))

	for i := range comments {
		node := &CommentNode{
			Comment:       comments[i],
			LikedByViewer: likedIDs[comments[i].ID],
			Replies:       []*CommentNode{},
		}
		nodes[comments[i].ID] = node
		ordered = append(ordered, node)
	}

	roots := []*CommentNode{}
	for _, node := range ordered {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok {
			// Orphan: referential integrity should prevent this, but a
			// missing parent must not lose the subtree.
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return roots
}
