package models

import (
	"time"
)

// ReviewLike records a user's like on a review.
// The combination of UserID and ReviewID must be unique. A row here is
// simultaneously the review's likedBy membership and the user's
// liked-reviews membership; the two views can never disagree.
type ReviewLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_review" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_user_review" json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike records a user's like on a comment.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeState is the post-toggle outcome reported to the caller.
type LikeState struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}
