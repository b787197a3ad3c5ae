package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, _ := actor(c)
	user, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:userId
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	user, svcErr := s.userService.GetProfile(c.UserContext(), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(user)
}

type updateUserRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profile_image"`
}

// UpdateUser handles PUT /api/users/:userId
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	actorID, role := actor(c)
	user, svcErr := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		ActorID:      actorID,
		ActorRole:    role,
		UserID:       userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users (admin only). Supports a q search param.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	query := c.Query("q")

	var (
		users []models.User
		err   error
	)
	if query != "" {
		users, err = s.userService.SearchUsers(c.UserContext(), query, p.Limit, p.Offset)
	} else {
		users, err = s.userService.ListUsers(c.UserContext(), p.Limit, p.Offset)
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUserReviews handles GET /api/users/:userId/reviews
func (s *Server) GetUserReviews(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	currentUserID, _ := actor(c)
	p := parsePagination(c, 20)
	reviews, svcErr := s.userService.ListReviews(c.UserContext(), userID, p.Limit, p.Offset, currentUserID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(reviews)
}

// FollowUser handles POST /api/users/:userId/follow. Toggles the follow edge.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	actorID, _ := actor(c)
	following, svcErr := s.userService.ToggleFollow(c.UserContext(), actorID, targetID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"following": following})
}

// ReportUser handles POST /api/users/:userId/report
func (s *Server) ReportUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	actorID, _ := actor(c)
	if svcErr := s.userService.Report(c.UserContext(), actorID, targetID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Report submitted"})
}

// GetFollowers handles GET /api/users/:userId/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	followers, svcErr := s.userService.ListFollowers(c.UserContext(), userID, p.Limit, p.Offset)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:userId/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	following, svcErr := s.userService.ListFollowing(c.UserContext(), userID, p.Limit, p.Offset)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(following)
}

// GetMyFavorites handles GET /api/users/me/favorites
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	userID, _ := actor(c)
	p := parsePagination(c, 50)
	songs, err := s.userService.ListFavorites(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(songs)
}

type favoriteRequest struct {
	SongID uint `json:"song_id"`
}

// ToggleFavorite handles POST /api/users/me/favorites
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil || req.SongID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A valid song_id is required"))
	}

	userID, _ := actor(c)
	favorited, err := s.userService.ToggleFavorite(c.UserContext(), userID, req.SongID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"favorited": favorited})
}

// GetMyLikedReviews handles GET /api/users/me/likes
func (s *Server) GetMyLikedReviews(c *fiber.Ctx) error {
	userID, _ := actor(c)
	p := parsePagination(c, 20)
	reviews, err := s.userService.ListLikedReviews(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reviews)
}

// GetReports handles GET /api/users/reports (admin only)
func (s *Server) GetReports(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	reports, err := s.userService.ListReports(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reports)
}
