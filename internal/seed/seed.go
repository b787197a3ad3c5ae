package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"resonate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSongs    int
	ShouldClean bool
	Factory     SeedOptions
}

// Seed populates the database with demo data: users, the built-in genres,
// songs, reviews, comment threads, likes, follows, and favorites.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d songs...", opts.NumUsers, opts.NumSongs)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := Genres(db); err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}
	var genres []models.Genre
	if err := db.Find(&genres).Error; err != nil {
		return fmt.Errorf("failed to load genres: %w", err)
	}
	log.Printf("✓ %d genres available", len(genres))

	factory := NewFactory(db, opts.Factory)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	users, err := factory.CreateUsersBatch(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d demo users created", len(users))

	songs := make([]*models.Song, 0, opts.NumSongs)
	for i := 0; i < opts.NumSongs; i++ {
		var genreID *uint
		if len(genres) > 0 {
			genreID = &genres[rng.Intn(len(genres))].ID
		}
		song, err := factory.CreateSong(genreID)
		if err != nil {
			return fmt.Errorf("failed to create song: %w", err)
		}
		songs = append(songs, song)
	}
	log.Printf("✓ %d songs created", len(songs))

	reviews, err := createReviews(factory, rng, users, songs)
	if err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}
	log.Printf("✓ %d reviews created", len(reviews))

	if err := createCommentThreads(factory, rng, users, reviews); err != nil {
		return fmt.Errorf("failed to create comment threads: %w", err)
	}
	log.Println("✓ comment threads created")

	if err := createSocialMesh(db, rng, users, songs, reviews); err != nil {
		return fmt.Errorf("failed to create social mesh: %w", err)
	}
	log.Println("✓ follows, favorites, and likes created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// createReviews gives each user reviews on a random sample of songs. The
// unique song/user index means one review per pair.
func createReviews(factory *Factory, rng *rand.Rand, users []*models.User, songs []*models.Song) ([]*models.Review, error) {
	var reviews []*models.Review
	for _, user := range users {
		if len(songs) == 0 {
			break
		}
		count := rng.Intn(4) // 0-3 reviews per user
		perm := rng.Perm(len(songs))
		for i := 0; i < count && i < len(perm); i++ {
			review, err := factory.CreateReview(user, songs[perm[i]])
			if err != nil {
				return nil, err
			}
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// createCommentThreads adds top-level comments and nested replies so the
// demo data exercises the reply tree.
func createCommentThreads(factory *Factory, rng *rand.Rand, users []*models.User, reviews []*models.Review) error {
	if len(users) == 0 {
		return nil
	}
	for _, review := range reviews {
		for i := 0; i < rng.Intn(3); i++ {
			commenter := users[rng.Intn(len(users))]
			comment, err := factory.CreateComment(commenter, review)
			if err != nil {
				return err
			}
			parent := comment
			for depth := 0; depth < rng.Intn(3); depth++ {
				replier := users[rng.Intn(len(users))]
				reply, err := factory.CreateReply(replier, review, parent)
				if err != nil {
					return err
				}
				// sometimes branch, sometimes deepen
				if rng.Intn(2) == 0 {
					parent = reply
				}
			}
		}
	}
	return nil
}

// createSocialMesh wires follows, favorite songs, and review likes between
// the seeded users, then backfills the like counters from the join tables.
func createSocialMesh(db *gorm.DB, rng *rand.Rand, users []*models.User, songs []*models.Song, reviews []*models.Review) error {
	var follows []models.Follow
	var favorites []models.FavoriteSong
	var likes []models.ReviewLike

	for _, user := range users {
		for i := 0; i < rng.Intn(5); i++ {
			target := users[rng.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			follows = append(follows, models.Follow{FollowerID: user.ID, FollowedID: target.ID})
		}
		for i := 0; i < rng.Intn(4) && len(songs) > 0; i++ {
			favorites = append(favorites, models.FavoriteSong{UserID: user.ID, SongID: songs[rng.Intn(len(songs))].ID})
		}
		for i := 0; i < rng.Intn(6) && len(reviews) > 0; i++ {
			likes = append(likes, models.ReviewLike{UserID: user.ID, ReviewID: reviews[rng.Intn(len(reviews))].ID})
		}
	}

	ignore := clause.OnConflict{DoNothing: true}
	if len(follows) > 0 {
		if err := db.Clauses(ignore).Create(&follows).Error; err != nil {
			return err
		}
	}
	if len(favorites) > 0 {
		if err := db.Clauses(ignore).Create(&favorites).Error; err != nil {
			return err
		}
	}
	if len(likes) > 0 {
		if err := db.Clauses(ignore).Create(&likes).Error; err != nil {
			return err
		}
	}

	// Keep the persisted like counters equal to the join-table rows.
	if err := db.Exec(`UPDATE reviews SET likes = (SELECT COUNT(*) FROM review_likes WHERE review_likes.review_id = reviews.id)`).Error; err != nil {
		return err
	}
	return db.Exec(`UPDATE comments SET likes = (SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id)`).Error
}

// clearData removes seeded rows in FK-safe order.
func clearData(db *gorm.DB) error {
	tables := []string{
		"comment_likes", "review_likes", "comments", "reviews",
		"favorite_songs", "follows", "user_reports", "songs", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
