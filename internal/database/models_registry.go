package database

import "resonate/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Genre{},
		&models.Song{},
		&models.Review{},
		&models.Comment{},
		&models.ReviewLike{},
		&models.CommentLike{},
		&models.Follow{},
		&models.FavoriteSong{},
		&models.UserReport{},
	}
}
