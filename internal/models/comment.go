// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a node in the per-review comment forest. Top-level comments
// have a nil ParentID and hang off the review directly; replies point at
// their parent comment. ReviewID always carries the root review's id,
// even on deeply nested replies, so any node resolves its review without
// walking up the tree.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	ReviewID uint   `gorm:"not null;index" json:"review_id"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	// Likes is a persisted counter kept equal to the number of comment_likes
	// rows by the like toggle.
	Likes int  `gorm:"not null;default:0" json:"likes"`
	User  User `gorm:"foreignKey:UserID" json:"user"`
	// RepliesCount is not persisted; computed at query time
	RepliesCount int `gorm:"->" json:"replies_count"`
	// Liked indicates whether the current requesting user liked this comment (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
