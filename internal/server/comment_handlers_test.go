package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resonate/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCommentApp(s *Server, userID uint, role models.Role) *fiber.App {
	app := fiber.New()
	base := "/songs/:songId/reviews/:reviewId/comments"
	app.Get(base, s.GetComments)
	app.Post(base, asUser(userID, role), s.CreateComment)
	app.Get(base+"/:commentId", s.GetReplies)
	app.Post(base+"/:commentId", asUser(userID, role), s.CreateReply)
	app.Delete(base+"/:commentId", asUser(userID, role), s.DeleteComment)
	app.Post(base+"/:commentId/like", asUser(userID, role), s.LikeComment)
	return app
}

func TestCreateComment(t *testing.T) {
	s := newTestServer(t)
	author := s.createUser(t, "author@example.com", models.RoleUser)
	song := s.createSong(t, "Footprints")
	s.createReview(t, author.ID, song.ID)
	app := setupCommentApp(s, author.ID, author.Role)

	t.Run("Success", func(t *testing.T) {
		resp := postJSON(t, app, "/songs/1/reviews/1/comments", fiber.Map{
			"content": "The rhythm section carries this.",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment models.Comment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&comment))
		assert.Nil(t, comment.ParentID)
		assert.Equal(t, uint(1), comment.ReviewID)
	})

	t.Run("Empty content", func(t *testing.T) {
		resp := postJSON(t, app, "/songs/1/reviews/1/comments", fiber.Map{
			"content": "   ",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown review", func(t *testing.T) {
		resp := postJSON(t, app, "/songs/1/reviews/99/comments", fiber.Map{
			"content": "Into the void.",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateReply(t *testing.T) {
	s := newTestServer(t)
	author := s.createUser(t, "author@example.com", models.RoleUser)
	song := s.createSong(t, "Orbits")
	s.createReview(t, author.ID, song.ID)
	parent := s.createComment(t, author.ID, 1, nil)
	app := setupCommentApp(s, author.ID, author.Role)

	t.Run("Success", func(t *testing.T) {
		resp := postJSON(t, app, "/songs/1/reviews/1/comments/"+itoa(parent.ID), fiber.Map{
			"content": "Completely agree.",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var reply models.Comment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, parent.ID, *reply.ParentID)
	})

	t.Run("Parent under a different review", func(t *testing.T) {
		other := s.createUser(t, "other@example.com", models.RoleUser)
		song2 := s.createSong(t, "Dolores")
		r2 := s.createReview(t, other.ID, song2.ID)

		resp := postJSON(t, app, "/songs/2/reviews/"+itoa(r2.ID)+"/comments/"+itoa(parent.ID), fiber.Map{
			"content": "Wrong thread.",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Unknown parent", func(t *testing.T) {
		resp := postJSON(t, app, "/songs/1/reviews/1/comments/999", fiber.Map{
			"content": "Orphan reply.",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetCommentsAndReplies(t *testing.T) {
	s := newTestServer(t)
	author := s.createUser(t, "author@example.com", models.RoleUser)
	song := s.createSong(t, "Pinocchio")
	s.createReview(t, author.ID, song.ID)
	top := s.createComment(t, author.ID, 1, nil)
	s.createComment(t, author.ID, 1, &top.ID)
	s.createComment(t, author.ID, 1, &top.ID)
	app := setupCommentApp(s, author.ID, author.Role)

	t.Run("Top-level listing excludes replies", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/songs/1/reviews/1/comments", nil), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []models.Comment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&comments))
		require.Len(t, comments, 1)
		assert.Equal(t, 2, comments[0].RepliesCount)
	})

	t.Run("Replies listing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/songs/1/reviews/1/comments/"+itoa(top.ID), nil), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var replies []models.Comment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&replies))
		assert.Len(t, replies, 2)
	})
}

func TestDeleteComment(t *testing.T) {
	s := newTestServer(t)
	author := s.createUser(t, "author@example.com", models.RoleUser)
	other := s.createUser(t, "other@example.com", models.RoleUser)
	song := s.createSong(t, "Masqualero")
	s.createReview(t, author.ID, song.ID)

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		c1 := s.createComment(t, author.ID, 1, nil)
		app := setupCommentApp(s, other.ID, other.Role)

		req := httptest.NewRequest(http.MethodDelete, "/songs/1/reviews/1/comments/"+itoa(c1.ID), nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Owner delete removes the whole subtree", func(t *testing.T) {
		var top models.Comment
		require.NoError(t, s.db.Where("parent_id IS NULL").First(&top).Error)
		reply := s.createComment(t, other.ID, 1, &top.ID)
		nested := s.createComment(t, author.ID, 1, &reply.ID)
		app := setupCommentApp(s, author.ID, author.Role)

		req := httptest.NewRequest(http.MethodDelete, "/songs/1/reviews/1/comments/"+itoa(top.ID), nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			DeletedIDs []uint `json:"deleted_ids"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.ElementsMatch(t, []uint{top.ID, reply.ID, nested.ID}, body.DeletedIDs)

		var remaining int64
		require.NoError(t, s.db.Model(&models.Comment{}).Count(&remaining).Error)
		assert.Zero(t, remaining)
	})

	t.Run("Deleting twice returns not found", func(t *testing.T) {
		c := s.createComment(t, author.ID, 1, nil)
		app := setupCommentApp(s, author.ID, author.Role)

		for i, want := range []int{http.StatusOK, http.StatusNotFound} {
			req := httptest.NewRequest(http.MethodDelete, "/songs/1/reviews/1/comments/"+itoa(c.ID), nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equalf(t, want, resp.StatusCode, "attempt %d", i+1)
			_ = resp.Body.Close()
		}
	})
}

func TestLikeComment(t *testing.T) {
	s := newTestServer(t)
	author := s.createUser(t, "author@example.com", models.RoleUser)
	liker := s.createUser(t, "liker@example.com", models.RoleUser)
	song := s.createSong(t, "Limbo")
	s.createReview(t, author.ID, song.ID)
	comment := s.createComment(t, author.ID, 1, nil)
	app := setupCommentApp(s, liker.ID, liker.Role)

	toggle := func(t *testing.T) models.LikeState {
		req := httptest.NewRequest(http.MethodPost, "/songs/1/reviews/1/comments/"+itoa(comment.ID)+"/like", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var state models.LikeState
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
		return state
	}

	first := toggle(t)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.Likes)

	second := toggle(t)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.Likes)

	t.Run("Unknown comment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/songs/1/reviews/1/comments/999/like", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
