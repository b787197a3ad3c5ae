// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a star-rated write-up of a song. A user may review a given
// song at most once; the composite unique index enforces it.
type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	SongID  uint   `gorm:"not null;uniqueIndex:idx_song_user" json:"song_id"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_song_user" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`
	Rating  int    `gorm:"not null" json:"rating"`
	// Likes is a persisted counter kept equal to the number of review_likes
	// rows by the like toggle; never written outside that path.
	Likes int  `gorm:"not null;default:0" json:"likes"`
	Song  Song `gorm:"foreignKey:SongID" json:"song,omitempty"`
	User  User `gorm:"foreignKey:UserID" json:"user"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this review (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
