package service

import (
	"context"

	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/validation"
)

// UserService manages profiles and the social graph around them.
type UserService struct {
	userRepo   repository.UserRepository
	songRepo   repository.SongRepository
	reviewRepo repository.ReviewRepository
	socialRepo repository.SocialRepository
	likeRepo   repository.LikeRepository
}

type UpdateProfileInput struct {
	ActorID      uint
	ActorRole    models.Role
	UserID       uint
	FirstName    string
	LastName     string
	Bio          string
	ProfileImage string
}

func NewUserService(
	userRepo repository.UserRepository,
	songRepo repository.SongRepository,
	reviewRepo repository.ReviewRepository,
	socialRepo repository.SocialRepository,
	likeRepo repository.LikeRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		songRepo:   songRepo,
		reviewRepo: reviewRepo,
		socialRepo: socialRepo,
		likeRepo:   likeRepo,
	}
}

// GetProfile returns a user with follower counts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetProfile(ctx, userID)
}

// UpdateProfile edits profile fields. Owner or admin.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if !CanMutate(in.ActorID, in.ActorRole, in.UserID) {
		return nil, models.NewForbiddenError("You can only edit your own profile")
	}
	if err := validation.ValidateName("first name", in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("last name", in.LastName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Bio = in.Bio
	user.ProfileImage = in.ProfileImage
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetProfile(ctx, user.ID)
}

// ListReviews returns the reviews a user has written.
func (s *UserService) ListReviews(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByUser(ctx, userID, limit, offset, currentUserID)
}

// ToggleFollow follows the target if not followed, unfollows otherwise,
// and reports the new state. Self-follows are rejected.
func (s *UserService) ToggleFollow(ctx context.Context, actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := s.socialRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if following {
		if err := s.socialRepo.Unfollow(ctx, actorID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.socialRepo.Follow(ctx, actorID, targetID); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleFavorite adds the song to the actor's favorites if absent,
// removes it otherwise, and reports the new state.
func (s *UserService) ToggleFavorite(ctx context.Context, actorID, songID uint) (bool, error) {
	if _, err := s.songRepo.GetByID(ctx, songID); err != nil {
		return false, err
	}

	favorite, err := s.socialRepo.IsFavorite(ctx, actorID, songID)
	if err != nil {
		return false, err
	}
	if favorite {
		if err := s.socialRepo.RemoveFavorite(ctx, actorID, songID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.socialRepo.AddFavorite(ctx, actorID, songID); err != nil {
		return false, err
	}
	return true, nil
}

// ListFavorites returns the actor's favorite songs.
func (s *UserService) ListFavorites(ctx context.Context, actorID uint, limit, offset int) ([]*models.Song, error) {
	return s.socialRepo.GetFavoriteSongs(ctx, actorID, limit, offset)
}

// ListFollowers returns the users following the given user.
func (s *UserService) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.socialRepo.GetFollowers(ctx, userID, limit, offset)
}

// ListFollowing returns the users the given user follows.
func (s *UserService) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.socialRepo.GetFollowing(ctx, userID, limit, offset)
}

// Report flags a user for moderation. Self-reports are rejected;
// duplicates are absorbed.
func (s *UserService) Report(ctx context.Context, reporterID, reportedID uint) error {
	if reporterID == reportedID {
		return models.NewValidationError("You cannot report yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, reportedID); err != nil {
		return err
	}
	return s.socialRepo.Report(ctx, reporterID, reportedID)
}

// ListLikedReviews returns the reviews the actor has liked.
func (s *UserService) ListLikedReviews(ctx context.Context, actorID uint, limit, offset int) ([]*models.Review, error) {
	return s.likeRepo.ListLikedReviews(ctx, actorID, limit, offset)
}

// ListUsers returns users for the admin dashboard.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers finds users by name or email fragment.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.userRepo.Search(ctx, query, limit, offset)
}

// ListReports returns open moderation reports. Admin surface.
func (s *UserService) ListReports(ctx context.Context, limit, offset int) ([]models.UserReport, error) {
	return s.socialRepo.ListReports(ctx, limit, offset)
}
