package service

import (
	"context"

	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/validation"
)

// ReviewService manages the review lifecycle for songs.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	songRepo   repository.SongRepository
	likeRepo   repository.LikeRepository
	cascade    *CascadeEngine
}

type CreateReviewInput struct {
	ActorID uint
	SongID  uint
	Content string
	Rating  int
}

type UpdateReviewInput struct {
	ActorID  uint
	ReviewID uint
	Content  string
	Rating   int
}

type DeleteReviewInput struct {
	ActorID   uint
	ActorRole models.Role
	ReviewID  uint
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	songRepo repository.SongRepository,
	likeRepo repository.LikeRepository,
	cascade *CascadeEngine,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		songRepo:   songRepo,
		likeRepo:   likeRepo,
		cascade:    cascade,
	}
}

// CreateReview adds the actor's review of a song. One review per
// (song, user); the repository maps the unique violation to Conflict.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateReviewContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.songRepo.GetByID(ctx, in.SongID); err != nil {
		return nil, err
	}

	review := &models.Review{
		SongID:  in.SongID,
		UserID:  in.ActorID,
		Content: in.Content,
		Rating:  in.Rating,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, review.ID, in.ActorID)
}

// UpdateReview edits a review's content and rating. Owner only.
func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID, 0)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.ActorID {
		return nil, models.NewForbiddenError("You can only update your own reviews")
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateReviewContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	review.Content = in.Content
	review.Rating = in.Rating
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, review.ID, in.ActorID)
}

// GetByID returns one review with its computed details.
func (s *ReviewService) GetByID(ctx context.Context, reviewID, currentUserID uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, reviewID, currentUserID)
}

// ListBySong returns a song's reviews.
func (s *ReviewService) ListBySong(ctx context.Context, songID uint, limit, offset int, currentUserID uint, sort string) ([]*models.Review, error) {
	if _, err := s.songRepo.GetByID(ctx, songID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListBySong(ctx, songID, limit, offset, currentUserID, sort)
}

// GetMine returns the actor's review of a song, if any.
func (s *ReviewService) GetMine(ctx context.Context, actorID, songID uint) (*models.Review, error) {
	return s.reviewRepo.GetBySongAndUser(ctx, songID, actorID)
}

// Feed returns recent reviews by users the actor follows, newest first.
func (s *ReviewService) Feed(ctx context.Context, actorID uint, limit, offset int) ([]*models.Review, error) {
	if limit <= 0 || limit > 20 {
		limit = 20
	}
	return s.reviewRepo.Feed(ctx, actorID, limit, offset)
}

// ToggleLike flips the actor's like on a review and reports the new state.
func (s *ReviewService) ToggleLike(ctx context.Context, actorID, reviewID uint) (*models.LikeState, error) {
	return s.likeRepo.ToggleReviewLike(ctx, actorID, reviewID)
}

// DeleteReview removes a review, its like rows, and its whole comment
// forest. Only the author or an admin may do it. The comment sweep is
// best-effort: once the review row is gone the call succeeds.
func (s *ReviewService) DeleteReview(ctx context.Context, in DeleteReviewInput) error {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID, 0)
	if err != nil {
		return err
	}
	if !CanMutate(in.ActorID, in.ActorRole, review.UserID) {
		return models.NewForbiddenError("You can only delete your own reviews")
	}

	return s.deleteReviewRecord(ctx, in.ReviewID, "review")
}

// deleteReviewRecord is the shared review teardown used by review and
// song deletion: like rows first, then the review row, then the sweep.
func (s *ReviewService) deleteReviewRecord(ctx context.Context, reviewID uint, entry string) error {
	if err := s.likeRepo.DeleteByReview(ctx, reviewID); err != nil {
		return err
	}
	if _, err := s.reviewRepo.HardDelete(ctx, reviewID); err != nil {
		return err
	}
	s.cascade.SweepReview(ctx, reviewID, entry)
	return nil
}
