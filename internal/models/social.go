package models

import (
	"time"
)

// Follow records that FollowerID follows FollowedID.
// The pair must be unique; self-follows are rejected at the service layer.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// FavoriteSong marks a song as one of a user's favorites.
type FavoriteSong struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_song" json:"user_id"`
	SongID    uint      `gorm:"not null;uniqueIndex:idx_user_song" json:"song_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserReport records that ReporterID flagged ReportedID for moderation.
// Re-reports by the same user are absorbed by the unique pair index.
type UserReport struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReporterID uint      `gorm:"not null;uniqueIndex:idx_reporter_reported" json:"reporter_id"`
	ReportedID uint      `gorm:"not null;uniqueIndex:idx_reporter_reported" json:"reported_id"`
	CreatedAt  time.Time `json:"created_at"`
}
