package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"bookstop/database"
	"bookstop/internal/cache"
	"bookstop/internal/config"
	"bookstop/internal/covers"
	"bookstop/internal/httpapi/handler"
	"bookstop/internal/httpapi/middleware"
	"bookstop/internal/httpapi/repository"
	"bookstop/internal/httpapi/service"
	"bookstop/internal/openlibrary"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional. Without it searches just hit the upstream
	// every time.
	var searchCache *cache.SearchCache
	if cfg.RedisAddr != "" {
		searchCache, err = cache.NewSearchCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			logger.Warn("search cache unavailable, continuing without it", "error", err)
			searchCache = nil
		} else {
			defer searchCache.Close()
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	userBookRepo := repository.NewUserBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	listRepo := repository.NewListRepository(db)

	// External clients
	olClient := openlibrary.NewClient(cfg.OpenLibraryURL)
	coverResolver := covers.NewResolver(cfg.CoverAPIURL)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo)
	bookService := service.NewBookService(bookRepo, olClient, coverResolver, searchCache)
	userBookService := service.NewUserBookService(userBookRepo, bookRepo)
	reviewService := service.NewReviewService(reviewRepo, bookRepo)
	listService := service.NewListService(listRepo, bookRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService)
	userBookHandler := handler.NewUserBookHandler(userBookService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	listHandler := handler.NewListHandler(listService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authHandler.RegisterRoutes(api.Group("/auth"))
	bookHandler.RegisterRoutes(api.Group("/book"))

	authed := middleware.AuthMiddleware(authService)
	optional := middleware.OptionalAuth(authService)
	userHandler.RegisterRoutes(api.Group("/user", authed))
	userBookHandler.RegisterRoutes(api.Group("/userdata", authed))
	reviewHandler.RegisterRoutes(api.Group("/review", optional), api.Group("/review", authed))
	listHandler.RegisterRoutes(api.Group("/list", optional), api.Group("/list", authed))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
