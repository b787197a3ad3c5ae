// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"resonate/internal/models"

	"gorm.io/gorm"
)

// SocialRepository defines the interface for follow, favorite and report
// data operations.
type SocialRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) error
	Unfollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	AddFavorite(ctx context.Context, userID, songID uint) error
	IsFavorite(ctx context.Context, userID, songID uint) (bool, error)
	RemoveFavorite(ctx context.Context, userID, songID uint) error
	GetFavoriteSongs(ctx context.Context, userID uint, limit, offset int) ([]*models.Song, error)
	DeleteFavoritesBySong(ctx context.Context, songID uint) error
	Report(ctx context.Context, reporterID, reportedID uint) error
	ListReports(ctx context.Context, limit, offset int) ([]models.UserReport, error)
}

// socialRepository implements SocialRepository
type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new social repository
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

// Follow records the edge. Re-follows are absorbed by the unique pair
// index rather than erroring.
func (r *socialRepository) Follow(ctx context.Context, followerID, followedID uint) error {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followed_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (follower_id, followed_id) DO NOTHING`,
		followerID, followedID,
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	return nil
}

func (r *socialRepository) Unfollow(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *socialRepository) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *socialRepository) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// AddFavorite marks a song as a favorite. Re-favoriting is a no-op.
func (r *socialRepository) AddFavorite(ctx context.Context, userID, songID uint) error {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO favorite_songs (user_id, song_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, song_id) DO NOTHING`,
		userID, songID,
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	return nil
}

func (r *socialRepository) IsFavorite(ctx context.Context, userID, songID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FavoriteSong{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *socialRepository) RemoveFavorite(ctx context.Context, userID, songID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Delete(&models.FavoriteSong{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) GetFavoriteSongs(ctx context.Context, userID uint, limit, offset int) ([]*models.Song, error) {
	var songs []*models.Song
	err := r.db.WithContext(ctx).
		Joins("JOIN favorite_songs ON favorite_songs.song_id = songs.id").
		Where("favorite_songs.user_id = ?", userID).
		Preload("Genre").
		Order("favorite_songs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&songs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return songs, nil
}

// DeleteFavoritesBySong clears every user's favorite marker for a song.
// Run as part of song removal.
func (r *socialRepository) DeleteFavoritesBySong(ctx context.Context, songID uint) error {
	err := r.db.WithContext(ctx).
		Where("song_id = ?", songID).
		Delete(&models.FavoriteSong{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Report flags a user for moderation. Duplicate reports by the same
// reporter are absorbed.
func (r *socialRepository) Report(ctx context.Context, reporterID, reportedID uint) error {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO user_reports (reporter_id, reported_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (reporter_id, reported_id) DO NOTHING`,
		reporterID, reportedID,
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	return nil
}

func (r *socialRepository) ListReports(ctx context.Context, limit, offset int) ([]models.UserReport, error) {
	var reports []models.UserReport
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}
