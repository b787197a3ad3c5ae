package repository

import (
	"context"
	"errors"

	"resonate/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Review, error)
	ListBySong(ctx context.Context, songID uint, limit, offset int, currentUserID uint, sort string) ([]*models.Review, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error)
	GetBySongAndUser(ctx context.Context, songID, userID uint) (*models.Review, error)
	ListIDsBySong(ctx context.Context, songID uint) ([]uint, error)
	Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	HardDelete(ctx context.Context, id uint) (bool, error)
}

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already reviewed this song")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Review, error) {
	var review models.Review
	err := r.applyReviewDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Song").
		First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) ListBySong(ctx context.Context, songID uint, limit, offset int, currentUserID uint, sort string) ([]*models.Review, error) {
	var reviews []*models.Review
	base := r.applyReviewDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("song_id = ?", songID)
	err := r.applySort(base, sort).
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.applyReviewDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Song").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

// GetBySongAndUser returns a user's review of a song, if they wrote one.
func (r *reviewRepository) GetBySongAndUser(ctx context.Context, songID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.applyReviewDetails(r.db.WithContext(ctx), userID).
		Preload("Song").
		Where("song_id = ? AND user_id = ?", songID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", songID)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

// ListIDsBySong returns the ids of every review on a song, soft-deleted
// rows excluded. Used when a song removal has to sweep its reviews.
func (r *reviewRepository) ListIDsBySong(ctx context.Context, songID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("song_id = ?", songID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// Feed returns recent reviews written by users the given user follows.
func (r *reviewRepository) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.applyReviewDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Preload("Song").
		Where("user_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
// likes is the persisted counter column; comments_count is a SELECT alias
// from applyReviewDetails.
func (r *reviewRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "top":
		return db.Order("likes DESC, created_at DESC")
	case "discussed":
		return db.Order("comments_count DESC, created_at DESC")
	default: // "new" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

// applyReviewDetails adds subqueries to fetch the comment count and liked
// status in a single query.
func (r *reviewRepository) applyReviewDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "reviews.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.review_id = reviews.id AND comments.deleted_at IS NULL) as comments_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM review_likes WHERE review_likes.review_id = reviews.id AND review_likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// HardDelete permanently removes a review row. Returns false when no row
// matched, which callers treat as already-gone.
func (r *reviewRepository) HardDelete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.Review{}, id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
