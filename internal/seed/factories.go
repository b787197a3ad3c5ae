// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"resonate/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behavior.
type SeedOptions struct {
	// SkipBcrypt stores a plaintext password instead of hashing. Dev fast mode only.
	SkipBcrypt bool
	// DryRun logs what would be created without writing to the database.
	DryRun bool
	// MaxDays spreads created_at timestamps over the past N days (default 90).
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// backdate returns a created_at spread over the configured window.
func (f *Factory) backdate() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func (f *Factory) create(entity any, kind string) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] create %s: %+v", kind, entity)
		return nil
	}
	return f.db.Create(entity).Error
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		Email:        gofakeit.Email(),
		Bio:          gofakeit.Sentence(10),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:         models.RoleUser,
		CreatedAt:    f.backdate(),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s %s <%s>", user.FirstName, user.LastName, user.Email)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSong constructs and persists a sample `models.Song` in the given genre.
func (f *Factory) CreateSong(genreID *uint, overrides ...func(*models.Song)) (*models.Song, error) {
	song := &models.Song{
		Title:      strings.TrimSuffix(gofakeit.Sentence(3), "."),
		Artist:     fmt.Sprintf("%s %s", gofakeit.FirstName(), gofakeit.LastName()),
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/600/600", gofakeit.UUID()),
		PreviewURL: gofakeit.URL(),
		GenreID:    genreID,
		CreatedAt:  f.backdate(),
	}

	for _, override := range overrides {
		override(song)
	}

	if f.opts.DryRun {
		f.nextID++
		song.ID = f.nextID
		log.Printf("[dry-run] CreateSong: %q by %s", song.Title, song.Artist)
		return song, nil
	}
	if err := f.db.Create(song).Error; err != nil {
		return nil, err
	}
	return song, nil
}

// CreateReview persists a review by user on song with generated content.
func (f *Factory) CreateReview(user *models.User, song *models.Song, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		UserID:    user.ID,
		SongID:    song.ID,
		Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
		Rating:    gofakeit.Number(1, 5),
		CreatedAt: f.backdate(),
	}

	for _, override := range overrides {
		override(review)
	}

	if err := f.create(review, "review"); err != nil {
		return nil, err
	}
	if f.opts.DryRun {
		f.nextID++
		review.ID = f.nextID
	}
	return review, nil
}

// CreateComment persists a top-level comment on review.
func (f *Factory) CreateComment(user *models.User, review *models.Review) (*models.Comment, error) {
	return f.createCommentNode(user, review, nil)
}

// CreateReply persists a reply under parent.
func (f *Factory) CreateReply(user *models.User, review *models.Review, parent *models.Comment) (*models.Comment, error) {
	return f.createCommentNode(user, review, &parent.ID)
}

func (f *Factory) createCommentNode(user *models.User, review *models.Review, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:    user.ID,
		ReviewID:  review.ID,
		ParentID:  parentID,
		Content:   gofakeit.Sentence(f.rng.Intn(15) + 3),
		CreatedAt: f.backdate(),
	}
	if err := f.create(comment, "comment"); err != nil {
		return nil, err
	}
	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
	}
	return comment, nil
}

// CreateUsersBatch persists users in a single insert when possible.
func (f *Factory) CreateUsersBatch(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	for i := 0; i < n; i++ {
		password := string(hashedPassword)
		if f.opts.SkipBcrypt {
			password = "password123"
		}
		users = append(users, &models.User{
			FirstName:    gofakeit.FirstName(),
			LastName:     gofakeit.LastName(),
			Email:        fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Bio:          gofakeit.Sentence(10),
			ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Password:     password,
			Role:         models.RoleUser,
			CreatedAt:    f.backdate(),
		})
	}
	if f.opts.DryRun {
		for _, u := range users {
			f.nextID++
			u.ID = f.nextID
		}
		log.Printf("[dry-run] CreateUsersBatch: %d users (no DB write)", len(users))
		return users, nil
	}
	if err := f.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
