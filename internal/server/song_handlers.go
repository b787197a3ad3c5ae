package server

import (
	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGenres handles GET /api/genres
func (s *Server) GetGenres(c *fiber.Ctx) error {
	genres, err := s.songService.ListGenres(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(genres)
}

// GetSongs handles GET /api/songs
func (s *Server) GetSongs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	opts := repository.SongListOptions{
		GenreID: uint(c.QueryInt("genre", 0)),
		Artist:  c.Query("artist"),
		Sort:    c.Query("sort", "new"),
		Limit:   p.Limit,
		Offset:  p.Offset,
	}

	songs, err := s.songService.List(c.UserContext(), c.Query("q"), opts)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(songs)
}

// GetSong handles GET /api/songs/:id
func (s *Server) GetSong(c *fiber.Ctx) error {
	songID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	song, err := s.songService.GetByID(c.UserContext(), songID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(song)
}

type songRequest struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ImageURL   string `json:"image_url"`
	PreviewURL string `json:"preview_url"`
	GenreID    *uint  `json:"genre_id"`
}

// CreateSong handles POST /api/songs (admin)
func (s *Server) CreateSong(c *fiber.Ctx) error {
	var req songRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, role := actor(c)
	song, err := s.songService.CreateSong(c.UserContext(), service.SongInput{
		ActorRole:  role,
		Title:      req.Title,
		Artist:     req.Artist,
		ImageURL:   req.ImageURL,
		PreviewURL: req.PreviewURL,
		GenreID:    req.GenreID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(song)
}

// UpdateSong handles PUT /api/songs/:id (admin)
func (s *Server) UpdateSong(c *fiber.Ctx) error {
	songID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req songRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, role := actor(c)
	song, svcErr := s.songService.UpdateSong(c.UserContext(), songID, service.SongInput{
		ActorRole:  role,
		Title:      req.Title,
		Artist:     req.Artist,
		ImageURL:   req.ImageURL,
		PreviewURL: req.PreviewURL,
		GenreID:    req.GenreID,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(song)
}

// DeleteSong handles DELETE /api/songs/:id (admin)
// Removes the song together with its reviews, their likes, their comment
// trees, and every user's favorite marker for it.
func (s *Server) DeleteSong(c *fiber.Ctx) error {
	songID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	_, role := actor(c)
	if svcErr := s.songService.DeleteSong(c.UserContext(), service.DeleteSongInput{
		ActorRole: role,
		SongID:    songID,
	}); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Song deleted"})
}
