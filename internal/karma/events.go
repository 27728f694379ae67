package karma

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

// EventStore is the append-only ledger of karma transactions. Rows are only
// ever inserted; windowed karma is always a sum over this table.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

// Append writes one karma transaction on the given connection. Pass the
// coordinator's transaction so the event commits or rolls back with the like
// that caused it.
func (s *EventStore) Append(tx *gorm.DB, recipientID, amount int, reason string, sourceID int, likerID *int) (int, error) {
	txn := models.KarmaTransaction{
		UserID:   recipientID,
		Amount:   amount,
		Reason:   reason,
		SourceID: sourceID,
		LikerID:  likerID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return 0, err
	}
	return txn.ID, nil
}

// SumInWindow returns karma earned per user since the given time. Users with
// no transactions in the window are simply absent; callers treat absence as 0.
func (s *EventStore) SumInWindow(ctx context.Context, since time.Time) (map[int]int64, error) {
	var rows []struct {
		UserID int
		Total  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("user_id, COALESCE(SUM(amount), 0) AS total").
		Where("created_at >= ?", since).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[int]int64, len(rows))
	for _, row := range rows {
		sums[row.UserID] = row.Total
	}
	return sums, nil
}
