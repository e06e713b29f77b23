package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"convodesk/internal/auth"
	"convodesk/internal/config"
	"convodesk/internal/database"
	"convodesk/internal/handlers"
	"convodesk/internal/middleware"
	"convodesk/internal/realtime"
	"convodesk/internal/repositories"
	"convodesk/internal/services"
	"convodesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// =========================================================================
	// Load configuration
	// =========================================================================
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Logger
	// =========================================================================
	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// =========================================================================
	// Database
	// =========================================================================
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Auto migrate in development mode
	if cfg.App.IsDevelopment() {
		if err := database.AutoMigrate(db); err != nil {
			log.Warn("auto migrate failed", zap.Error(err))
		} else {
			log.Info("database auto migration completed")
		}
	}

	// =========================================================================
	// Repositories
	// =========================================================================
	userRepo := repositories.NewUserRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	conversationRepo := repositories.NewConversationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	log.Info("repositories initialized")

	// =========================================================================
	// Realtime: Redis broker + subscription manager
	// =========================================================================
	var publisher realtime.Publisher = realtime.NewNoopPublisher()
	var manager *realtime.Manager

	if cfg.Redis.URL != "" {
		broker, err := realtime.NewRedisBroker(cfg.Redis.URL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer broker.Close()

		publisher = broker
		manager = realtime.NewManager(broker, cfg.Realtime.GracePeriod, log)
		defer manager.Close()
		log.Info("realtime broker initialized", zap.Duration("grace_period", cfg.Realtime.GracePeriod))
	} else {
		log.Warn("redis not configured, realtime updates disabled")
	}

	// =========================================================================
	// Services
	// =========================================================================
	conversationService := services.NewConversationService(
		conversationRepo,
		messageRepo,
		userRepo,
		publisher,
		log,
	)
	inboxService := services.NewInboxService(
		conversationRepo,
		messageRepo,
		contactRepo,
		publisher,
		log,
	)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := services.NewAuthService(userRepo, jwtService, log)

	log.Info("services initialized")

	// =========================================================================
	// Handlers
	// =========================================================================
	authHandler := handlers.NewAuthHandler(authService, log)
	conversationHandler := handlers.NewConversationHandler(conversationService, inboxService, log)
	boardHandler := handlers.NewBoardHandler(conversationService, log)
	inboxHandler := handlers.NewInboxHandler(inboxService, log)
	authMiddleware := middleware.AuthMiddleware(jwtService)

	log.Info("handlers initialized")

	// =========================================================================
	// Gin router
	// =========================================================================
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logging(log))
	router.Use(middleware.CORS([]string{"*"}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.App.Name,
			"version": "1.0.0",
		})
	})

	// =========================================================================
	// API Routes
	// =========================================================================
	api := router.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		// Auth routes (login, refresh: public | me, logout: protected)
		authHandler.RegisterRoutes(api, authMiddleware)

		// Inbound message intake (public, widget-facing)
		inboxHandler.RegisterRoutes(api)

		// =====================================================================
		// Protected routes
		// =====================================================================
		protected := api.Group("")
		protected.Use(authMiddleware)
		{
			conversationHandler.RegisterRoutes(protected)
			boardHandler.RegisterRoutes(protected)

			if manager != nil {
				streamHandler := handlers.NewStreamHandler(manager, log)
				streamHandler.RegisterRoutes(protected)
			}
		}
	}

	log.Info("routes registered",
		zap.Strings("endpoints", []string{
			"/api/v1/conversations",
			"/api/v1/conversations/:id",
			"/api/v1/conversations/:id/messages",
			"/api/v1/board/conversations/:id/move",
			"/api/v1/stream",
		}),
	)

	// =========================================================================
	// HTTP Server
	// =========================================================================
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// =========================================================================
	// Graceful Shutdown
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
