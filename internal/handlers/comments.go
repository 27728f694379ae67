package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/community-feed/backend/internal/feed"
	"github.com/emilythestrangee/community-feed/backend/internal/karma"
	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

type CommentHandler struct {
	db     *gorm.DB
	engine *karma.Engine
}

func NewCommentHandler(db *gorm.DB, engine *karma.Engine) *CommentHandler {
	return &CommentHandler{db: db, engine: engine}
}

// GetComments returns the comment tree for a post. All comments come back in
// one flat query and are nested in memory.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []models.Comment
	if err := h.db.Preload("Author").Where("post_id = ?", post.ID).Order("created_at asc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	commentIDs := make([]int, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
	}

	viewerID, _ := extractUserID(c)
	likedComments, err := h.engine.Likes().LikedIDs(h.db, viewerID, models.TargetComment, commentIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch likes"})
		return
	}

	c.JSON(http.StatusOK, feed.BuildCommentTree(comments, likedComments))
}

// CreateComment creates a comment on a post, optionally as a reply to another
// comment on the same post.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content cannot be empty", "field": "content"})
		return
	}
	if len(content) > models.MaxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content cannot exceed 1000 characters", "field": "content"})
		return
	}

	if input.ParentID != nil {
		var parent models.Comment
		if err := h.db.First(&parent, *input.ParentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment not found", "field": "parent_id"})
			return
		}
		if parent.PostID != post.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment must belong to the same post", "field": "parent_id"})
			return
		}
	}

	comment := models.Comment{
		PostID:   post.ID,
		ParentID: input.ParentID,
		AuthorID: authorID,
		Content:  content,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if err := h.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// LikeComment awards a like to a comment (PROTECTED - requires authentication)
func (h *CommentHandler) LikeComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	actorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.engine.Like(c.Request.Context(), actorID, models.TargetComment, commentID)
	if err != nil {
		respondLikeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"likes":         result.LikesCount,
		"karma_awarded": result.KarmaAwarded,
	})
}

// UnlikeComment removes the actor's like from a comment.
func (h *CommentHandler) UnlikeComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	actorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.engine.Unlike(c.Request.Context(), actorID, models.TargetComment, commentID)
	if err != nil {
		respondLikeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"likes":   result.LikesCount,
	})
}
