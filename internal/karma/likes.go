package karma

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

// LikeRegistry enforces at-most-one-like-per-(user, target). The application
// check runs under the coordinator's row lock; the composite unique index is
// the durable backstop for anything that slips past it.
type LikeRegistry struct {
	db *gorm.DB
}

func NewLikeRegistry(db *gorm.DB) *LikeRegistry {
	return &LikeRegistry{db: db}
}

func (r *LikeRegistry) Exists(tx *gorm.DB, userID int, targetType string, targetID int) (bool, error) {
	var count int64
	err := tx.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the like. A duplicate-key failure means another request won
// the race; it is reported as ErrAlreadyLiked, never as a raw storage error.
func (r *LikeRegistry) Create(tx *gorm.DB, userID int, targetType string, targetID int) (int, error) {
	like := models.Like{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if err := tx.Create(&like).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, ErrAlreadyLiked
		}
		return 0, err
	}
	return like.ID, nil
}

func (r *LikeRegistry) Delete(tx *gorm.DB, userID int, targetType string, targetID int) error {
	res := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// LikedIDs returns which of the given targets the user has liked, in one
// query. Used to batch viewer-liked flags instead of checking per item.
func (r *LikeRegistry) LikedIDs(tx *gorm.DB, userID int, targetType string, targetIDs []int) (map[int]bool, error) {
	liked := make(map[int]bool)
	if userID == 0 || len(targetIDs) == 0 {
		return liked, nil
	}

	var ids []int
	err := tx.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite (test databases) reports constraint failures as plain strings.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
