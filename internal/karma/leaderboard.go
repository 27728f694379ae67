package karma

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

// Leaderboard defaults.
const (
	DefaultWindow = 24 * time.Hour
	DefaultLimit  = 5
)

// Entry is one leaderboard row.
type Entry struct {
	User  models.User `json:"user"`
	Karma int64       `json:"karma_24h"`
	Rank  int         `json:"rank"`
}

// Aggregator computes windowed leaderboards from the karma ledger. It never
// reads users.total_karma — that field is a stale display shadow.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// TopEarners returns up to limit users ranked by karma earned inside the
// trailing window. Users with a non-positive windowed sum are excluded.
// Ties order by ascending user id so the ranking is deterministic.
func (a *Aggregator) TopEarners(ctx context.Context, window time.Duration, limit int) ([]Entry, error) {
	since := time.Now().UTC().Add(-window)

	var rows []struct {
		UserID int
		Karma  int64
	}
	err := a.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("user_id, COALESCE(SUM(amount), 0) AS karma").
		Where("created_at >= ?", since).
		Group("user_id").
		Having("SUM(amount) > 0").
		Order("karma DESC, user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []Entry{}, nil
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}

	var users []models.User
	if err := a.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		user, ok := byID[row.UserID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{User: user, Karma: row.Karma, Rank: i + 1})
	}
	return entries, nil
}
