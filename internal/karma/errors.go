package karma

import "errors"

var (
	// ErrAlreadyLiked is returned when the actor already holds a like on the
	// target, whether caught by the in-transaction check or by the unique
	// constraint losing a race.
	ErrAlreadyLiked = errors.New("already liked")

	// ErrLikeNotFound is returned by Unlike when no like exists to remove.
	ErrLikeNotFound = errors.New("like not found")

	// ErrTargetNotFound is returned when the liked post or comment does not exist.
	ErrTargetNotFound = errors.New("target not found")
)
