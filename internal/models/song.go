// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Genre is a catalog tag a song may belong to.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// Song represents a track in the Resonate catalog.
type Song struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"not null;index" json:"title"`
	Artist     string `gorm:"not null;index" json:"artist"`
	ImageURL   string `json:"image_url"`
	PreviewURL string `json:"preview_url"`
	GenreID    *uint  `gorm:"index" json:"genre_id,omitempty"`
	Genre      *Genre `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	// ReviewsCount is not persisted; computed at query time
	ReviewsCount int            `gorm:"->" json:"reviews_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
