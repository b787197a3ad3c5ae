package repository

import (
	"context"
	"errors"
	"strings"

	"resonate/internal/cache"
	"resonate/internal/models"

	"gorm.io/gorm"
)

// SongRepository defines persistence operations for the song catalog.
type SongRepository interface {
	Create(ctx context.Context, song *models.Song) error
	GetByID(ctx context.Context, id uint) (*models.Song, error)
	List(ctx context.Context, opts SongListOptions) ([]*models.Song, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Song, error)
	Update(ctx context.Context, song *models.Song) error
	Delete(ctx context.Context, id uint) error
	ListGenres(ctx context.Context) ([]models.Genre, error)
	CreateGenre(ctx context.Context, genre *models.Genre) error
}

// SongListOptions carries catalog listing filters.
type SongListOptions struct {
	GenreID uint
	Artist  string
	Sort    string
	Limit   int
	Offset  int
}

type songRepository struct {
	db *gorm.DB
}

// NewSongRepository creates a new SongRepository.
func NewSongRepository(db *gorm.DB) SongRepository {
	return &songRepository{db: db}
}

func (r *songRepository) Create(ctx context.Context, song *models.Song) error {
	if err := r.db.WithContext(ctx).Create(song).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *songRepository) GetByID(ctx context.Context, id uint) (*models.Song, error) {
	var song models.Song
	key := cache.SongKey(id)

	err := cache.Aside(ctx, key, &song, cache.SongTTL, func() error {
		if err := r.applySongDetails(r.db.WithContext(ctx)).
			Preload("Genre").
			First(&song, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Song", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *songRepository) List(ctx context.Context, opts SongListOptions) ([]*models.Song, error) {
	var songs []*models.Song
	q := r.applySongDetails(r.db.WithContext(ctx)).Preload("Genre")
	if opts.GenreID != 0 {
		q = q.Where("genre_id = ?", opts.GenreID)
	}
	if opts.Artist != "" {
		q = q.Where("LOWER(artist) = ?", strings.ToLower(opts.Artist))
	}
	err := r.applySort(q, opts.Sort).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&songs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return songs, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
// reviews_count is a SELECT alias from applySongDetails; PostgreSQL allows
// referencing it in ORDER BY within the same query level.
func (r *songRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "popular":
		return db.Order("reviews_count DESC, created_at DESC")
	case "title":
		return db.Order("title ASC")
	default: // "new" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

func (r *songRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Song, error) {
	var songs []*models.Song
	like := "%" + strings.ToLower(query) + "%"
	err := r.applySongDetails(r.db.WithContext(ctx)).
		Preload("Genre").
		Where("LOWER(title) LIKE ? OR LOWER(artist) LIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&songs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return songs, nil
}

// applySongDetails adds a subquery to fetch the review count in a single query.
func (r *songRepository) applySongDetails(db *gorm.DB) *gorm.DB {
	return db.Select("songs.*, " +
		"(SELECT COUNT(*) FROM reviews WHERE reviews.song_id = songs.id AND reviews.deleted_at IS NULL) as reviews_count")
}

func (r *songRepository) Update(ctx context.Context, song *models.Song) error {
	if err := r.db.WithContext(ctx).Save(song).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSong(ctx, song.ID)
	return nil
}

func (r *songRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Song{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSong(ctx, id)
	return nil
}

func (r *songRepository) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return genres, nil
}

func (r *songRepository) CreateGenre(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Genre already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}
