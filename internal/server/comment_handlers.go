package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/songs/:songId/reviews/:reviewId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "reviewId")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 50)
	comments, svcErr := s.commentService.ListByReview(c.UserContext(), reviewID, p.Limit, p.Offset, currentUserID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(comments)
}

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment handles POST /api/songs/:songId/reviews/:reviewId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "reviewId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID, _ := actor(c)
	comment, svcErr := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		ActorID:  userID,
		ReviewID: reviewID,
		Content:  req.Content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetReplies handles GET /api/songs/:songId/reviews/:reviewId/comments/:commentId
func (s *Server) GetReplies(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 50)
	replies, svcErr := s.commentService.ListReplies(c.UserContext(), commentID, p.Limit, p.Offset, currentUserID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(replies)
}

// CreateReply handles POST /api/songs/:songId/reviews/:reviewId/comments/:commentId
func (s *Server) CreateReply(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "reviewId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID, _ := actor(c)
	reply, svcErr := s.commentService.CreateReply(c.UserContext(), service.CreateReplyInput{
		ActorID:  userID,
		ReviewID: reviewID,
		ParentID: commentID,
		Content:  req.Content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// DeleteComment handles DELETE /api/songs/:songId/reviews/:reviewId/comments/:commentId
// Deletes the comment and its whole reply subtree.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	userID, role := actor(c)
	deleted, svcErr := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		ActorID:   userID,
		ActorRole: role,
		CommentID: commentID,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message":     "Comment deleted",
		"deleted_ids": deleted,
	})
}

// LikeComment handles POST /api/songs/:songId/reviews/:reviewId/comments/:commentId/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	userID, _ := actor(c)
	state, svcErr := s.commentService.ToggleLike(c.UserContext(), userID, commentID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(state)
}
