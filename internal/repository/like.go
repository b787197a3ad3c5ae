package repository

import (
	"context"

	"resonate/internal/models"
	"resonate/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository owns the review_likes and comment_likes join tables. A
// single row serves as both the target's likedBy membership and the
// user's liked-set membership, so the two views cannot drift apart.
type LikeRepository interface {
	ToggleReviewLike(ctx context.Context, userID, reviewID uint) (*models.LikeState, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uint) (*models.LikeState, error)
	GetLikedReviewIDs(ctx context.Context, userID uint, reviewIDs []uint) ([]uint, error)
	ListLikedReviews(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error)
	DeleteByReview(ctx context.Context, reviewID uint) error
	DeleteByComment(ctx context.Context, commentID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// ToggleReviewLike flips the caller's like on a review. The conditional
// insert and the counter update run in one transaction: the counter moves
// only when a join row was actually inserted or deleted, so two racing
// toggles cannot double-count.
func (r *likeRepository) ToggleReviewLike(ctx context.Context, userID, reviewID uint) (*models.LikeState, error) {
	state := &models.LikeState{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).Count(&exists).Error; err != nil {
			return models.NewInternalError(err)
		}
		if exists == 0 {
			return models.NewNotFoundError("Review", reviewID)
		}

		ins := tx.Exec(
			`INSERT INTO review_likes (user_id, review_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (user_id, review_id) DO NOTHING`,
			userID, reviewID,
		)
		if ins.Error != nil {
			return models.NewInternalError(ins.Error)
		}

		if ins.RowsAffected > 0 {
			state.Liked = true
			if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return models.NewInternalError(err)
			}
		} else {
			del := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).
				Delete(&models.ReviewLike{})
			if del.Error != nil {
				return models.NewInternalError(del.Error)
			}
			state.Liked = false
			if del.RowsAffected > 0 {
				if err := tx.Model(&models.Review{}).Where("id = ? AND likes > 0", reviewID).
					UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
					return models.NewInternalError(err)
				}
			}
		}

		return tx.Model(&models.Review{}).Select("likes").Where("id = ?", reviewID).Scan(&state.Likes).Error
	})
	if err != nil {
		return nil, err
	}

	observability.CountLikeToggle("review", state.Liked)
	return state, nil
}

// ToggleCommentLike flips the caller's like on a comment. Same shape as
// ToggleReviewLike.
func (r *likeRepository) ToggleCommentLike(ctx context.Context, userID, commentID uint) (*models.LikeState, error) {
	state := &models.LikeState{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).Count(&exists).Error; err != nil {
			return models.NewInternalError(err)
		}
		if exists == 0 {
			return models.NewNotFoundError("Comment", commentID)
		}

		ins := tx.Exec(
			`INSERT INTO comment_likes (user_id, comment_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (user_id, comment_id) DO NOTHING`,
			userID, commentID,
		)
		if ins.Error != nil {
			return models.NewInternalError(ins.Error)
		}

		if ins.RowsAffected > 0 {
			state.Liked = true
			if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return models.NewInternalError(err)
			}
		} else {
			del := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
				Delete(&models.CommentLike{})
			if del.Error != nil {
				return models.NewInternalError(del.Error)
			}
			state.Liked = false
			if del.RowsAffected > 0 {
				if err := tx.Model(&models.Comment{}).Where("id = ? AND likes > 0", commentID).
					UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
					return models.NewInternalError(err)
				}
			}
		}

		return tx.Model(&models.Comment{}).Select("likes").Where("id = ?", commentID).Scan(&state.Likes).Error
	})
	if err != nil {
		return nil, err
	}

	observability.CountLikeToggle("comment", state.Liked)
	return state, nil
}

func (r *likeRepository) GetLikedReviewIDs(ctx context.Context, userID uint, reviewIDs []uint) ([]uint, error) {
	if len(reviewIDs) == 0 {
		return nil, nil
	}
	var likedIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.ReviewLike{}).
		Where("user_id = ? AND review_id IN ?", userID, reviewIDs).
		Pluck("review_id", &likedIDs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likedIDs, nil
}

// ListLikedReviews returns the reviews a user has liked, newest like first.
func (r *likeRepository) ListLikedReviews(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Joins("JOIN review_likes ON review_likes.review_id = reviews.id").
		Where("review_likes.user_id = ?", userID).
		Preload("User").
		Preload("Song").
		Order("review_likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

// DeleteByReview removes every like row attached to a review. Run before
// the review row itself goes away.
func (r *likeRepository) DeleteByReview(ctx context.Context, reviewID uint) error {
	if err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(&models.ReviewLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteByComment removes every like row attached to a comment.
func (r *likeRepository) DeleteByComment(ctx context.Context, commentID uint) error {
	if err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Delete(&models.CommentLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
