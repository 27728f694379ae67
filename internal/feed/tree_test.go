package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

func intPtr(v int) *int { return &v }

// flatThread builds the fixture from the tree-correctness property: two
// roots, two replies under root1, one nested reply under the first reply.
func flatThread() []models.Comment {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []models.Comment{
		{ID: 1, PostID: 7, Content: "root1", CreatedAt: base},
		{ID: 2, PostID: 7, Content: "root2", CreatedAt: base.Add(time.Minute)},
		{ID: 3, PostID: 7, ParentID: intPtr(1), Content: "reply1", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, PostID: 7, ParentID: intPtr(1), Content: "reply2", CreatedAt: base.Add(3 * time.Minute)},
		{ID: 5, PostID: 7, ParentID: intPtr(3), Content: "nested", CreatedAt: base.Add(4 * time.Minute)},
	}
}

func TestBuildCommentTreeShape(t *testing.T) {
	roots := BuildCommentTree(flatThread(), nil)

	require.Len(t, roots, 2)
	require.Equal(t, 1, roots[0].ID)
	require.Equal(t, 2, roots[1].ID)

	require.Len(t, roots[0].Replies, 2)
	require.Equal(t, 3, roots[0].Replies[0].ID)
	require.Equal(t, 4, roots[0].Replies[1].ID)
	require.Empty(t, roots[1].Replies)

	// The nested reply hangs only under its direct parent.
	require.Len(t, roots[0].Replies[0].Replies, 1)
	require.Equal(t, 5, roots[0].Replies[0].Replies[0].ID)
	require.Empty(t, roots[0].Replies[1].Replies)
}

func TestBuildCommentTreePreservesInputOrder(t *testing.T) {
	comments := []models.Comment{
		{ID: 10, PostID: 1, Content: "first root"},
		{ID: 11, PostID: 1, Content: "second root"},
		{ID: 12, PostID: 1, ParentID: intPtr(10), Content: "older reply"},
		{ID: 13, PostID: 1, ParentID: intPtr(10), Content: "newer reply"},
	}

	roots := BuildCommentTree(comments, nil)
	require.Equal(t, []int{10, 11}, []int{roots[0].ID, roots[1].ID})
	require.Equal(t, []int{12, 13}, []int{roots[0].Replies[0].ID, roots[0].Replies[1].ID})
}

func TestBuildCommentTreeOrphanPromotedToRoot(t *testing.T) {
	comments := []models.Comment{
		{ID: 1, PostID: 1, Content: "root"},
		{ID: 2, PostID: 1, ParentID: intPtr(99), Content: "orphan"},
	}

	roots := BuildCommentTree(comments, nil)
	require.Len(t, roots, 2)
	require.Equal(t, "orphan", roots[1].Content)
}

func TestBuildCommentTreeViewerLikes(t *testing.T) {
	roots := BuildCommentTree(flatThread(), map[int]bool{3: true, 5: true})

	require.False(t, roots[0].LikedByViewer)
	require.True(t, roots[0].Replies[0].LikedByViewer)
	require.True(t, roots[0].Replies[0].Replies[0].LikedByViewer)
	require.False(t, roots[0].Replies[1].LikedByViewer)
}

func TestBuildCommentTreeRebuildIsDeterministic(t *testing.T) {
	first := BuildCommentTree(flatThread(), map[int]bool{4: true})
	second := BuildCommentTree(flatThread(), map[int]bool{4: true})

	require.Equal(t, first, second)
}

func TestBuildCommentTreeEmptyInput(t *testing.T) {
	roots := BuildCommentTree(nil, nil)
	require.NotNil(t, roots)
	require.Empty(t, roots)
}
