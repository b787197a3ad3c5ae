package service

import (
	"context"
	"strings"

	"resonate/internal/middleware"
	"resonate/internal/models"
	"resonate/internal/repository"
)

// SongService manages the song catalog. Catalog writes are admin-only;
// the role check lives here so every transport path shares it.
type SongService struct {
	songRepo   repository.SongRepository
	reviewRepo repository.ReviewRepository
	likeRepo   repository.LikeRepository
	socialRepo repository.SocialRepository
	cascade    *CascadeEngine
}

type SongInput struct {
	ActorRole  models.Role
	Title      string
	Artist     string
	ImageURL   string
	PreviewURL string
	GenreID    *uint
}

type DeleteSongInput struct {
	ActorRole models.Role
	SongID    uint
}

func NewSongService(
	songRepo repository.SongRepository,
	reviewRepo repository.ReviewRepository,
	likeRepo repository.LikeRepository,
	socialRepo repository.SocialRepository,
	cascade *CascadeEngine,
) *SongService {
	return &SongService{
		songRepo:   songRepo,
		reviewRepo: reviewRepo,
		likeRepo:   likeRepo,
		socialRepo: socialRepo,
		cascade:    cascade,
	}
}

// GetByID returns one song with its review count.
func (s *SongService) GetByID(ctx context.Context, songID uint) (*models.Song, error) {
	return s.songRepo.GetByID(ctx, songID)
}

// List returns catalog entries, optionally filtered by a free-text
// query over title and artist.
func (s *SongService) List(ctx context.Context, query string, opts repository.SongListOptions) ([]*models.Song, error) {
	if q := strings.TrimSpace(query); q != "" {
		return s.songRepo.Search(ctx, q, opts.Limit, opts.Offset)
	}
	return s.songRepo.List(ctx, opts)
}

// ListGenres returns all genres sorted by name.
func (s *SongService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.songRepo.ListGenres(ctx)
}

// CreateSong adds a catalog entry. Admin only.
func (s *SongService) CreateSong(ctx context.Context, in SongInput) (*models.Song, error) {
	if in.ActorRole != models.RoleAdmin {
		return nil, models.NewForbiddenError("Only admins can manage the catalog")
	}
	if err := validateSongFields(in); err != nil {
		return nil, err
	}

	song := &models.Song{
		Title:      strings.TrimSpace(in.Title),
		Artist:     strings.TrimSpace(in.Artist),
		ImageURL:   in.ImageURL,
		PreviewURL: in.PreviewURL,
		GenreID:    in.GenreID,
	}
	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, err
	}
	return s.songRepo.GetByID(ctx, song.ID)
}

// UpdateSong edits a catalog entry. Admin only.
func (s *SongService) UpdateSong(ctx context.Context, songID uint, in SongInput) (*models.Song, error) {
	if in.ActorRole != models.RoleAdmin {
		return nil, models.NewForbiddenError("Only admins can manage the catalog")
	}
	if err := validateSongFields(in); err != nil {
		return nil, err
	}

	song, err := s.songRepo.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	song.Title = strings.TrimSpace(in.Title)
	song.Artist = strings.TrimSpace(in.Artist)
	song.ImageURL = in.ImageURL
	song.PreviewURL = in.PreviewURL
	song.GenreID = in.GenreID
	if err := s.songRepo.Update(ctx, song); err != nil {
		return nil, err
	}
	return s.songRepo.GetByID(ctx, song.ID)
}

func validateSongFields(in SongInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Artist) == "" {
		return models.NewValidationError("Artist is required")
	}
	return nil
}

// DeleteSong removes a song and everything that references it: every
// user's favorite marker, every review with its like rows, and every
// review's comment forest. Admin only. The per-review teardown is
// best-effort; once the song row is gone the call succeeds.
func (s *SongService) DeleteSong(ctx context.Context, in DeleteSongInput) error {
	if in.ActorRole != models.RoleAdmin {
		return models.NewForbiddenError("Only admins can delete songs")
	}
	if _, err := s.songRepo.GetByID(ctx, in.SongID); err != nil {
		return err
	}

	reviewIDs, err := s.reviewRepo.ListIDsBySong(ctx, in.SongID)
	if err != nil {
		return err
	}

	if err := s.songRepo.Delete(ctx, in.SongID); err != nil {
		return err
	}
	if err := s.socialRepo.DeleteFavoritesBySong(ctx, in.SongID); err != nil {
		middleware.Logger.WarnContext(ctx, "favorite cleanup failed after song delete",
			"song_id", in.SongID,
			"error", err,
		)
	}

	for _, reviewID := range reviewIDs {
		if err := s.likeRepo.DeleteByReview(ctx, reviewID); err != nil {
			middleware.Logger.WarnContext(ctx, "review like cleanup failed during song delete",
				"song_id", in.SongID,
				"review_id", reviewID,
				"error", err,
			)
			continue
		}
		if _, err := s.reviewRepo.HardDelete(ctx, reviewID); err != nil {
			middleware.Logger.WarnContext(ctx, "review delete failed during song delete",
				"song_id", in.SongID,
				"review_id", reviewID,
				"error", err,
			)
			continue
		}
		s.cascade.SweepReview(ctx, reviewID, "song")
	}

	return nil
}
