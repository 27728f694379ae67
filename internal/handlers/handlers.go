package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/community-feed/backend/internal/karma"
)

// Handler combines all handler types
type Handler struct {
	Auth        *AuthHandler
	Post        *PostHandler
	Comment     *CommentHandler
	Leaderboard *LeaderboardHandler
}

// NewHandler creates a unified handler with all sub-handlers sharing one
// karma engine.
func NewHandler(db *gorm.DB) *Handler {
	engine := karma.NewEngine(db)

	return &Handler{
		Auth:        NewAuthHandler(db, engine.Events()),
		Post:        NewPostHandler(db, engine),
		Comment:     NewCommentHandler(db, engine),
		Leaderboard: NewLeaderboardHandler(karma.NewAggregator(db)),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// respondLikeError maps engine failures onto HTTP responses. Raw storage
// errors never leak as conflict statuses.
func respondLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, karma.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Target not found"})
	case errors.Is(err, karma.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already liked"})
	case errors.Is(err, karma.ErrLikeNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Like not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
