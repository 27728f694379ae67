package karma

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

// Engine coordinates like and unlike as single atomic units of work:
// lock the target row, re-check the registry, write the like, bump the
// denormalized counter, append the karma event, bump the cached total.
// Either everything commits or nothing does.
type Engine struct {
	db     *gorm.DB
	likes  *LikeRegistry
	events *EventStore
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:     db,
		likes:  NewLikeRegistry(db),
		events: NewEventStore(db),
	}
}

func (e *Engine) Likes() *LikeRegistry { return e.likes }

func (e *Engine) Events() *EventStore { return e.events }

// LikeResult reports the state after a successful like.
type LikeResult struct {
	LikesCount   int `json:"likes"`
	KarmaAwarded int `json:"karma_awarded"`
}

// UnlikeResult reports the state after a successful unlike.
type UnlikeResult struct {
	LikesCount int `json:"likes"`
}

// lockedTarget is the slice of a post or comment the coordinator needs while
// holding its row lock.
type lockedTarget struct {
	AuthorID   int
	LikesCount int
}

// Like awards a like from actorID to the given target. Exactly one of N
// concurrent calls for the same (actor, target) succeeds; the rest observe
// ErrAlreadyLiked and leave no trace.
func (e *Engine) Like(ctx context.Context, actorID int, targetType string, targetID int) (LikeResult, error) {
	var result LikeResult

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockTarget(tx, targetType, targetID)
		if err != nil {
			return err
		}

		// Re-check under the lock. Concurrent likers of the same target are
		// serialized here, so this check is authoritative; the unique index
		// on likes covers anything that bypasses the lock.
		liked, err := e.likes.Exists(tx, actorID, targetType, targetID)
		if err != nil {
			return err
		}
		if liked {
			return ErrAlreadyLiked
		}

		if _, err := e.likes.Create(tx, actorID, targetType, targetID); err != nil {
			return err
		}

		if err := incrementLikes(tx, targetType, targetID, +1); err != nil {
			return err
		}

		amount, reason := karmaFor(targetType)
		if _, err := e.events.Append(tx, target.AuthorID, amount, reason, targetID, &actorID); err != nil {
			return err
		}

		err = tx.Model(&models.User{}).
			Where("id = ?", target.AuthorID).
			UpdateColumn("total_karma", gorm.Expr("total_karma + ?", amount)).Error
		if err != nil {
			return err
		}

		result = LikeResult{LikesCount: target.LikesCount + 1, KarmaAwarded: amount}
		return nil
	})
	if err != nil {
		return LikeResult{}, err
	}
	return result, nil
}

// Unlike removes the actor's like and decrements the counter. Karma already
// granted stays granted: the ledger is append-only and no reversing
// transaction is written. That asymmetry is intended behavior.
func (e *Engine) Unlike(ctx context.Context, actorID int, targetType string, targetID int) (UnlikeResult, error) {
	var result UnlikeResult

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockTarget(tx, targetType, targetID)
		if err != nil {
			return err
		}

		if err := e.likes.Delete(tx, actorID, targetType, targetID); err != nil {
			return err
		}

		if err := incrementLikes(tx, targetType, targetID, -1); err != nil {
			return err
		}

		result = UnlikeResult{LikesCount: target.LikesCount - 1}
		return nil
	})
	if err != nil {
		return UnlikeResult{}, err
	}
	return result, nil
}

// lockTarget loads the target under an exclusive row lock, scoping contention
// to likers of this one row. The sqlite test dialect has no row locks; its
// single-writer model serializes the transaction instead.
func lockTarget(tx *gorm.DB, targetType string, targetID int) (lockedTarget, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	switch targetType {
	case models.TargetPost:
		var post models.Post
		if err := q.First(&post, targetID).Error; err != nil {
			return lockedTarget{}, targetErr(err)
		}
		return lockedTarget{AuthorID: post.AuthorID, LikesCount: post.LikesCount}, nil
	case models.TargetComment:
		var comment models.Comment
		if err := q.First(&comment, targetID).Error; err != nil {
			return lockedTarget{}, targetErr(err)
		}
		return lockedTarget{AuthorID: comment.AuthorID, LikesCount: comment.LikesCount}, nil
	default:
		return lockedTarget{}, fmt.Errorf("unknown target type %q", targetType)
	}
}

func targetErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTargetNotFound
	}
	return err
}

// incrementLikes moves likes_count with an in-place add, so N concurrent
// increments always total +N.
func incrementLikes(tx *gorm.DB, targetType string, targetID int, delta int) error {
	var model any
	switch targetType {
	case models.TargetPost:
		model = &models.Post{}
	case models.TargetComment:
		model = &models.Comment{}
	default:
		return fmt.Errorf("unknown target type %q", targetType)
	}
	return tx.Model(model).
		Where("id = ?", targetID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

func karmaFor(targetType string) (amount int, reason string) {
	if targetType == models.TargetComment {
		return models.KarmaCommentLike, models.ReasonCommentLike
	}
	return models.KarmaPostLike, models.ReasonPostLike
}
