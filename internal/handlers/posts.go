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

const defaultFeedLimit = 20

type PostHandler struct {
	db     *gorm.DB
	engine *karma.Engine
}

func NewPostHandler(db *gorm.DB, engine *karma.Engine) *PostHandler {
	return &PostHandler{db: db, engine: engine}
}

// GetPosts returns the feed, newest first. Everything attached to a post —
// its comment tree, comment count, viewer-liked flags — comes from three
// batch queries plus in-memory assembly; nothing is fetched per item.
func (h *PostHandler) GetPosts(c *gin.Context) {
	limit := defaultFeedLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var posts []models.Post
	if err := h.db.Preload("Author").Order("created_at desc").Limit(limit).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	postIDs := make([]int, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	// One query for every comment on every listed post.
	var comments []models.Comment
	if len(postIDs) > 0 {
		if err := h.db.Preload("Author").Where("post_id IN ?", postIDs).Order("created_at asc").Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
	}

	commentsByPost := make(map[int][]models.Comment)
	commentIDs := make([]int, 0, len(comments))
	for _, comment := range comments {
		commentsByPost[comment.PostID] = append(commentsByPost[comment.PostID], comment)
		commentIDs = append(commentIDs, comment.ID)
	}

	viewerID, _ := extractUserID(c)
	likedPosts, err := h.engine.Likes().LikedIDs(h.db, viewerID, models.TargetPost, postIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch likes"})
		return
	}
	likedComments, err := h.engine.Likes().LikedIDs(h.db, viewerID, models.TargetComment, commentIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch likes"})
		return
	}

	var responses []gin.H
	for _, post := range posts {
		postComments := commentsByPost[post.ID]
		responses = append(responses, gin.H{
			"id":                    post.ID,
			"author":                minimalUser(post.Author),
			"content":               post.Content,
			"likes_count":           post.LikesCount,
			"liked_by_current_user": likedPosts[post.ID],
			"comment_count":         len(postComments),
			"comments":              feed.BuildCommentTree(postComments, likedComments),
			"created_at":            post.CreatedAt,
		})
	}

	if responses == nil {
		responses = []gin.H{}
	}

	c.JSON(http.StatusOK, responses)
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content cannot be empty", "field": "content"})
		return
	}
	if len(content) > models.MaxPostLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content cannot exceed 2000 characters", "field": "content"})
		return
	}

	post := models.Post{
		AuthorID: authorID,
		Content:  content,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	if err := h.db.Preload("Author").First(&post, post.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// LikePost awards a like to a post (PROTECTED - requires authentication)
func (h *PostHandler) LikePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	actorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.engine.Like(c.Request.Context(), actorID, models.TargetPost, postID)
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

// UnlikePost removes the actor's like from a post. Karma already granted is
// kept.
func (h *PostHandler) UnlikePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	actorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.engine.Unlike(c.Request.Context(), actorID, models.TargetPost, postID)
	if err != nil {
		respondLikeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"likes":   result.LikesCount,
	})
}

func minimalUser(user models.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"avatar":      user.Avatar,
		"total_karma": user.TotalKarma,
	}
}
