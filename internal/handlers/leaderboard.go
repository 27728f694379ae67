package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/community-feed/backend/internal/karma"
)

type LeaderboardHandler struct {
	aggregator *karma.Aggregator
}

func NewLeaderboardHandler(aggregator *karma.Aggregator) *LeaderboardHandler {
	return &LeaderboardHandler{aggregator: aggregator}
}

// GetLeaderboard returns the top 5 karma earners of the last 24 hours,
// aggregated from the transaction ledger.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.aggregator.TopEarners(c.Request.Context(), karma.DefaultWindow, karma.DefaultLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute leaderboard"})
		return
	}

	responses := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, gin.H{
			"user":      minimalUser(entry.User),
			"karma_24h": entry.Karma,
			"rank":      entry.Rank,
		})
	}

	c.JSON(http.StatusOK, responses)
}
