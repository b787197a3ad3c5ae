package service

import (
	"context"
	"errors"
	"fmt"

	"resonate/internal/middleware"
	"resonate/internal/observability"
	"resonate/internal/repository"
)

// CascadeEngine removes comment subtrees and everything hanging off
// them. Deletion is depth-first and best-effort: a failed branch is
// logged and skipped so its siblings still get swept, and a node that
// is already gone is treated as done rather than an error. Repeating an
// interrupted cascade converges on the same end state.
type CascadeEngine struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
}

// NewCascadeEngine creates a CascadeEngine.
func NewCascadeEngine(commentRepo repository.CommentRepository, likeRepo repository.LikeRepository) *CascadeEngine {
	return &CascadeEngine{commentRepo: commentRepo, likeRepo: likeRepo}
}

// DeleteSubtree removes the comment, its like rows, and recursively
// every descendant. It returns the ids actually deleted. The returned
// error joins per-branch failures for reporting; the ids slice is valid
// either way.
func (e *CascadeEngine) DeleteSubtree(ctx context.Context, commentID uint, entry string) ([]uint, error) {
	childIDs, err := e.commentRepo.GetChildIDs(ctx, commentID)
	if err != nil {
		observability.CascadeBranchFailures.WithLabelValues(entry).Inc()
		return nil, fmt.Errorf("load children of comment %d: %w", commentID, err)
	}

	var deleted []uint
	var branchErrs []error

	// Remove the node before descending so a failed branch below cannot
	// resurrect it; orphaned descendants are invisible to read paths and
	// swept by a retry.
	if err := e.likeRepo.DeleteByComment(ctx, commentID); err != nil {
		observability.CascadeBranchFailures.WithLabelValues(entry).Inc()
		return nil, fmt.Errorf("delete likes of comment %d: %w", commentID, err)
	}
	removed, err := e.commentRepo.HardDelete(ctx, commentID)
	if err != nil {
		observability.CascadeBranchFailures.WithLabelValues(entry).Inc()
		return nil, fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	if removed {
		deleted = append(deleted, commentID)
		observability.CascadeDeletedNodes.WithLabelValues(entry).Inc()
	}

	for _, childID := range childIDs {
		childDeleted, err := e.DeleteSubtree(ctx, childID, entry)
		deleted = append(deleted, childDeleted...)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "cascade branch failed",
				"entry", entry,
				"comment_id", childID,
				"error", err,
			)
			branchErrs = append(branchErrs, err)
		}
	}

	return deleted, errors.Join(branchErrs...)
}

// SweepReview removes every comment under a review, best-effort. Used
// after the review row itself is gone.
func (e *CascadeEngine) SweepReview(ctx context.Context, reviewID uint, entry string) []uint {
	topLevelIDs, err := e.commentRepo.GetTopLevelIDs(ctx, reviewID)
	if err != nil {
		observability.CascadeBranchFailures.WithLabelValues(entry).Inc()
		middleware.Logger.WarnContext(ctx, "cascade sweep could not list comments",
			"entry", entry,
			"review_id", reviewID,
			"error", err,
		)
		return nil
	}

	var deleted []uint
	for _, id := range topLevelIDs {
		branchDeleted, err := e.DeleteSubtree(ctx, id, entry)
		deleted = append(deleted, branchDeleted...)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "cascade sweep branch failed",
				"entry", entry,
				"review_id", reviewID,
				"comment_id", id,
				"error", err,
			)
		}
	}
	return deleted
}
