// Package server contains the HTTP and WebSocket handlers for the application's endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/media"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
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
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	groupRepo   repository.GroupRepository
	followRepo  repository.FollowRepository

	feedService    *service.FeedService
	followService  *service.FollowService
	postService    *service.PostService
	commentService *service.CommentService
	groupService   *service.GroupService

	mediaStore *media.Store
	notifier   *notifications.Notifier
	hub        *notifications.Hub
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this directly with an in-memory database and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	followRepo := repository.NewFollowRepository(db)

	mediaStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		return nil, err
	}

	shutdownCtx, shutdownFn := context.WithCancel(context.Background())

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("inkwell-api"),
		shutdownCtx:    shutdownCtx,
		shutdownFn:     shutdownFn,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		groupRepo:      groupRepo,
		followRepo:     followRepo,
		mediaStore:     mediaStore,
	}

	server.feedService = service.NewFeedService(postRepo, groupRepo, userRepo, followRepo)
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.postService = service.NewPostService(postRepo, groupRepo, server.isAdminByUserID)
	server.commentService = service.NewCommentService(commentRepo, postRepo, server.isAdminByUserID)
	server.groupService = service.NewGroupService(groupRepo, server.isAdminByUserID)

	server.notifier = notifications.NewNotifier(redisClient)
	server.hub = notifications.NewHub()
	if redisClient != nil {
		if err := server.hub.Wire(shutdownCtx, server.notifier); err != nil {
			return nil, fmt.Errorf("failed to wire feed hub: %w", err)
		}
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured request logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, "signup", 5, time.Minute), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, "login", 10, time.Minute), s.Login)
	auth.Get("/login", s.LoginPage)

	// Feeds: the global timeline is the only full-page-cached response.
	app.Get("/", middleware.OptionalAuth, cache.PageCache(cache.FeedPageTTL), s.GlobalFeed)
	app.Get("/follow", middleware.RequireLogin, s.FollowingFeed)
	app.Get("/group/:slug", middleware.OptionalAuth, s.GroupFeed)
	app.Get("/profile/:username", middleware.OptionalAuth, s.ProfileFeed)

	// Posts
	app.Post("/create", middleware.RequireLogin, s.CreatePost)
	app.Get("/posts/:id", middleware.OptionalAuth, s.PostDetail)
	app.Post("/posts/:id/edit", middleware.RequireLogin, s.EditPost)
	app.Delete("/posts/:id", middleware.RequireLogin, s.DeletePost)

	// Comments
	app.Post("/posts/:id/comment", middleware.RequireLogin, s.AddComment)
	app.Delete("/comments/:id", middleware.RequireLogin, s.DeleteComment)

	// Follow management
	app.Post("/profile/:username/follow", middleware.RequireLogin, s.FollowAuthor)
	app.Post("/profile/:username/unfollow", middleware.RequireLogin, s.UnfollowAuthor)

	// Groups
	app.Get("/groups", s.ListGroups)
	app.Post("/groups", middleware.RequireLogin, s.CreateGroup)
	app.Delete("/group/:slug", middleware.RequireLogin, s.DeleteGroup)

	// Live feed stream
	app.Get("/ws/feed", middleware.WebSocketAuthRequired, s.FeedStream)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database (and optionally Redis) are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"reason": "database unreachable",
		})
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "ok"
		if err := s.redis.Ping(c.Context()).Err(); err != nil {
			redisStatus = "unreachable"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"redis":  redisStatus,
	})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	return nil
}

// publishFeedEvent fires a best-effort live feed notification.
func (s *Server) publishFeedEvent(ctx context.Context, event notifications.FeedEvent) {
	if err := s.notifier.Publish(ctx, event); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish feed event: "+err.Error())
	}
}

// isAdminByUserID checks whether the given user has admin privileges.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
