package server

import (
	"strconv"
	"testing"

	"resonate/internal/config"
	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server backed by an in-memory SQLite database with
// real repositories and services. Redis stays nil so the cache layer falls
// through to the database.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Genre{}, &models.Song{}, &models.Review{},
		&models.Comment{}, &models.ReviewLike{}, &models.CommentLike{},
		&models.Follow{}, &models.FavoriteSong{}, &models.UserReport{},
	))

	userRepo := repository.NewUserRepository(db)
	songRepo := repository.NewSongRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	cascade := service.NewCascadeEngine(commentRepo, likeRepo)

	return &Server{
		config:         &config.Config{JWTSecret: "test-secret"},
		db:             db,
		userRepo:       userRepo,
		songRepo:       songRepo,
		reviewRepo:     reviewRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
		socialRepo:     socialRepo,
		songService:    service.NewSongService(songRepo, reviewRepo, likeRepo, socialRepo, cascade),
		reviewService:  service.NewReviewService(reviewRepo, songRepo, likeRepo, cascade),
		commentService: service.NewCommentService(commentRepo, reviewRepo, likeRepo, cascade),
		userService:    service.NewUserService(userRepo, songRepo, reviewRepo, socialRepo, likeRepo),
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// asUser returns middleware that injects auth locals the way AuthRequired does.
func asUser(userID uint, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func (s *Server) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ngPassw0rd!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	u := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hash),
		Role:      role,
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *Server) createSong(t *testing.T, title string) *models.Song {
	t.Helper()
	genre := &models.Genre{Name: "genre-" + title}
	require.NoError(t, s.db.Create(genre).Error)
	song := &models.Song{Title: title, Artist: "Artist", GenreID: &genre.ID}
	require.NoError(t, s.db.Create(song).Error)
	return song
}

func (s *Server) createReview(t *testing.T, userID, songID uint) *models.Review {
	t.Helper()
	r := &models.Review{UserID: userID, SongID: songID, Content: "Solid record, holds up on repeat listens.", Rating: 4}
	require.NoError(t, s.db.Create(r).Error)
	return r
}

func (s *Server) createComment(t *testing.T, userID, reviewID uint, parentID *uint) *models.Comment {
	t.Helper()
	cm := &models.Comment{UserID: userID, ReviewID: reviewID, ParentID: parentID, Content: "Agreed on the production."}
	require.NoError(t, s.db.Create(cm).Error)
	return cm
}
