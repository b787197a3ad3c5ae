package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resonate/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	return postJSONMethod(t, app, http.MethodPost, path, body)
}

func postJSONMethod(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/signup", s.Signup)

	t.Run("Success", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", fiber.Map{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
			"password":   "Str0ngPassw0rd!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Duplicate email", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", fiber.Map{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
			"password":   "Str0ngPassw0rd!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Weak password", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", fiber.Map{
			"first_name": "Bob",
			"last_name":  "Smith",
			"email":      "bob@example.com",
			"password":   "short",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Invalid email", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", fiber.Map{
			"first_name": "Bob",
			"last_name":  "Smith",
			"email":      "not-an-email",
			"password":   "Str0ngPassw0rd!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "ada@example.com", models.RoleUser)
	app := fiber.New()
	app.Post("/login", s.Login)

	t.Run("Success", func(t *testing.T) {
		resp := postJSON(t, app, "/login", fiber.Map{
			"email":    "ada@example.com",
			"password": "Str0ngPassw0rd!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		resp := postJSON(t, app, "/login", fiber.Map{
			"email":    "ada@example.com",
			"password": "WrongPassword!1",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown email", func(t *testing.T) {
		resp := postJSON(t, app, "/login", fiber.Map{
			"email":    "nobody@example.com",
			"password": "Str0ngPassw0rd!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	s := newTestServer(t)
	s.config.JWTSecret = ""
	_, err := s.generateToken(1, models.RoleUser)
	assert.Error(t, err)
}
