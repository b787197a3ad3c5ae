package service

import (
	"context"

	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/validation"
)

// CommentService manages the per-review comment forest.
type CommentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	likeRepo    repository.LikeRepository
	cascade     *CascadeEngine
}

type CreateCommentInput struct {
	ActorID  uint
	ReviewID uint
	Content  string
}

type CreateReplyInput struct {
	ActorID  uint
	ReviewID uint
	ParentID uint
	Content  string
}

type DeleteCommentInput struct {
	ActorID   uint
	ActorRole models.Role
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	likeRepo repository.LikeRepository,
	cascade *CascadeEngine,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		likeRepo:    likeRepo,
		cascade:     cascade,
	}
}

// CreateComment attaches a top-level comment to a review.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.reviewRepo.GetByID(ctx, in.ReviewID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.ActorID,
		ReviewID: in.ReviewID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID, in.ActorID)
}

// CreateReply attaches a reply under an existing comment. The new node
// carries the review id from the route; it is never derived by walking
// the tree.
func (s *CommentService) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	parent, err := s.commentRepo.GetByID(ctx, in.ParentID, 0)
	if err != nil {
		return nil, err
	}
	if parent.ReviewID != in.ReviewID {
		return nil, models.NewNotFoundError("Comment", in.ParentID)
	}

	parentID := in.ParentID
	reply := &models.Comment{
		Content:  in.Content,
		UserID:   in.ActorID,
		ReviewID: in.ReviewID,
		ParentID: &parentID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, reply.ID, in.ActorID)
}

// ListByReview returns a review's top-level comments.
func (s *CommentService) ListByReview(ctx context.Context, reviewID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, limit, offset, currentUserID)
}

// ListReplies returns a comment's direct replies.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, commentID, limit, offset, currentUserID)
}

// ToggleLike flips the actor's like on a comment and reports the new state.
func (s *CommentService) ToggleLike(ctx context.Context, actorID, commentID uint) (*models.LikeState, error) {
	return s.likeRepo.ToggleCommentLike(ctx, actorID, commentID)
}

// DeleteComment removes a comment and its whole reply subtree. Only the
// author or an admin may do it. Partial subtree failures do not fail
// the call once the target node itself is gone.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) ([]uint, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, 0)
	if err != nil {
		return nil, err
	}
	if !CanMutate(in.ActorID, in.ActorRole, comment.UserID) {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	deleted, cascadeErr := s.cascade.DeleteSubtree(ctx, in.CommentID, "comment")
	if cascadeErr != nil && len(deleted) == 0 {
		// The target node itself could not be removed.
		return nil, models.NewInternalError(cascadeErr)
	}
	return deleted, nil
}
