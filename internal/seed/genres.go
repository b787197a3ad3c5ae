package seed

import (
	"resonate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInGenres defines the permanent catalog genres. Seeding upserts them
// by name so re-runs are safe.
var BuiltInGenres = []string{
	"Rock",
	"Pop",
	"Hip-Hop",
	"R&B",
	"Jazz",
	"Classical",
	"Electronic",
	"Country",
	"Folk",
	"Metal",
	"Punk",
	"Soul",
	"Funk",
	"Reggae",
	"Blues",
	"Ambient",
	"Indie",
	"Latin",
}

// Genres seeds the permanent built-in genres.
func Genres(db *gorm.DB) error {
	for _, name := range BuiltInGenres {
		genre := models.Genre{Name: name}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&genre).Error; err != nil {
			return err
		}
	}
	return nil
}
