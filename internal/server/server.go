// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"resonate/internal/cache"
	"resonate/internal/config"
	"resonate/internal/database"
	"resonate/internal/middleware"
	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	songRepo       repository.SongRepository
	reviewRepo     repository.ReviewRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	socialRepo     repository.SocialRepository
	songService    *service.SongService
	reviewService  *service.ReviewService
	commentService *service.CommentService
	userService    *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and optionally
// performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	songRepo := repository.NewSongRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	socialRepo := repository.NewSocialRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("resonate-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		songRepo:       songRepo,
		reviewRepo:     reviewRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
		socialRepo:     socialRepo,
	}

	cascade := service.NewCascadeEngine(commentRepo, likeRepo)
	server.songService = service.NewSongService(songRepo, reviewRepo, likeRepo, socialRepo, cascade)
	server.reviewService = service.NewReviewService(reviewRepo, songRepo, likeRepo, cascade)
	server.commentService = service.NewCommentService(commentRepo, reviewRepo, likeRepo, cascade)
	server.userService = service.NewUserService(userRepo, songRepo, reviewRepo, socialRepo, likeRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing (span per request, trace id echoed in X-Trace-ID)
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Resonate Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public catalog routes
	api.Get("/genres", s.GetGenres)
	songs := api.Group("/songs")
	songs.Get("/", s.GetSongs)
	songs.Post("/", middleware.AuthRequired, middleware.AdminRequired, s.CreateSong)

	// Review routes nested under songs. Specific subroutes come before
	// the generic /:id catalog routes so Fiber matches them first.
	songs.Get("/:songId/reviews", s.GetReviews)
	songs.Post("/:songId/reviews", middleware.AuthRequired, s.CreateReview)
	songs.Get("/:songId/reviews/me", middleware.AuthRequired, s.GetMyReview)
	songs.Put("/:songId/reviews/:reviewId", middleware.AuthRequired, s.UpdateReview)
	songs.Delete("/:songId/reviews/:reviewId", middleware.AuthRequired, s.DeleteReview)
	songs.Post("/:songId/reviews/:reviewId/like", middleware.AuthRequired, s.LikeReview)

	// Comment routes nested under reviews
	songs.Get("/:songId/reviews/:reviewId/comments", s.GetComments)
	songs.Post("/:songId/reviews/:reviewId/comments", middleware.AuthRequired, s.CreateComment)
	songs.Get("/:songId/reviews/:reviewId/comments/:commentId", s.GetReplies)
	songs.Post("/:songId/reviews/:reviewId/comments/:commentId", middleware.AuthRequired, s.CreateReply)
	songs.Delete("/:songId/reviews/:reviewId/comments/:commentId", middleware.AuthRequired, s.DeleteComment)
	songs.Post("/:songId/reviews/:reviewId/comments/:commentId/like", middleware.AuthRequired, s.LikeComment)

	// Generic catalog item routes last
	songs.Get("/:id", s.GetSong)
	songs.Put("/:id", middleware.AuthRequired, middleware.AdminRequired, s.UpdateSong)
	songs.Delete("/:id", middleware.AuthRequired, middleware.AdminRequired, s.DeleteSong)

	// Review feed
	api.Get("/reviews/feed", middleware.AuthRequired, s.GetFeed)

	// User routes
	users := api.Group("/users", middleware.AuthRequired)
	users.Get("/", middleware.AdminRequired, s.GetAllUsers)
	users.Get("/me", s.GetMyProfile)
	users.Get("/me/favorites", s.GetMyFavorites)
	users.Post("/me/favorites", s.ToggleFavorite)
	users.Get("/me/likes", s.GetMyLikedReviews)
	users.Get("/reports", middleware.AdminRequired, s.GetReports)
	// Specific /:userId/:resource routes before the generic /:userId route
	users.Get("/:userId/reviews", s.GetUserReviews)
	users.Post("/:userId/follow", s.FollowUser)
	users.Post("/:userId/report", s.ReportUser)
	users.Get("/:userId/followers", s.GetFollowers)
	users.Get("/:userId/following", s.GetFollowing)
	users.Put("/:userId", s.UpdateUser)
	users.Get("/:userId", s.GetUserProfile)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Resonate API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Shutdown the HTTP server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
