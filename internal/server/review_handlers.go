package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReviews handles GET /api/songs/:songId/reviews
func (s *Server) GetReviews(c *fiber.Ctx) error {
	songID, err := s.parseID(c, "songId")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)
	reviews, svcErr := s.reviewService.ListBySong(c.UserContext(), songID, p.Limit, p.Offset, currentUserID, c.Query("sort", "new"))
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(reviews)
}

type reviewRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// CreateReview handles POST /api/songs/:songId/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	songID, err := s.parseID(c, "songId")
	if err != nil {
		return nil
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID, _ := actor(c)
	review, svcErr := s.reviewService.CreateReview(c.UserContext(), service.CreateReviewInput{
		ActorID: userID,
		SongID:  songID,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetMyReview handles GET /api/songs/:songId/reviews/me
func (s *Server) GetMyReview(c *fiber.Ctx) error {
	songID, err := s.parseID(c, "songId")
	if err != nil {
		return nil
	}

	userID, _ := actor(c)
	review, svcErr := s.reviewService.GetMine(c.UserContext(), userID, songID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(review)
}

// UpdateReview handles PUT /api/songs/:songId/reviews/:reviewId
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "reviewId")
	if err != nil {
		return nil
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID, _ := actor(c)
	review, svcErr := s.reviewService.UpdateReview(c.UserContext(), service.UpdateReviewInput{
		ActorID:  userID,
		ReviewID: reviewID,
		Content:  req.Content,
		Rating:   req.Rating,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/songs/:songId/reviews/:reviewId
// Deletes the review, its like rows, and its whole comment tree.
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "reviewId")
	if err != nil {
		return nil
	}

	userID, role := actor(c)
	if svcErr := s.reviewService.DeleteReview(c.UserContext(), service.DeleteReviewInput{
		ActorID:   userID,
		ActorRole: role,
		ReviewID:  reviewID,
	}); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

// LikeReview handles POST /api/songs/:songId/reviews/:reviewId/like
func (s *Server) LikeReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "reviewId")
	if err != nil {
		return nil
	}

	userID, _ := actor(c)
	state, svcErr := s.reviewService.ToggleLike(c.UserContext(), userID, reviewID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(state)
}

// GetFeed handles GET /api/reviews/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID, _ := actor(c)
	p := parsePagination(c, 20)
	reviews, err := s.reviewService.Feed(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reviews)
}
