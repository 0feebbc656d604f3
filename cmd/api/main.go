package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizforge/internal/adapter"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)

	// Initialize Redis cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	editorService := service.NewEditorService(quizRepository, cacheAdapter)
	shareService, err := service.NewShareService(quizRepository, cacheAdapter, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create ShareService", zap.Error(err))
	}
	sessionService := service.NewSessionService(quizRepository, attemptRepository, shareService, cacheAdapter, cfg.Session)
	previewService := service.NewPreviewService(quizRepository)

	// Initialize handlers
	editorHandler := handler.NewEditorHandler(editorService, shareService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	publicHandler := handler.NewPublicHandler(shareService, sessionService)
	previewHandler := handler.NewPreviewHandler(previewService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,X-Taker-ID", MaxAge: 300}))
	app.Use(recover.New())
	app.Use(middleware.TakerIdentity())

	apiGroup := app.Group("/api")

	// Authoring routes
	quizGroup := apiGroup.Group("/quizzes")
	quizGroup.Post("/", editorHandler.CreateQuiz)
	quizGroup.Get("/:id", editorHandler.GetQuiz)
	quizGroup.Delete("/:id", editorHandler.DeleteQuiz)
	quizGroup.Patch("/:id/settings", editorHandler.UpdateSettings)
	quizGroup.Post("/:id/questions", editorHandler.AddQuestion)
	quizGroup.Post("/:id/questions/reorder", editorHandler.ReorderQuestion)
	quizGroup.Patch("/:id/questions/:questionId", editorHandler.UpdateQuestion)
	quizGroup.Delete("/:id/questions/:questionId", editorHandler.RemoveQuestion)
	quizGroup.Post("/:id/questions/:questionId/options", editorHandler.AddOption)
	quizGroup.Patch("/:id/questions/:questionId/options/:optionId", editorHandler.SetOptionText)
	quizGroup.Delete("/:id/questions/:questionId/options/:optionId", editorHandler.RemoveOption)
	quizGroup.Post("/:id/questions/:questionId/options/:optionId/correct", editorHandler.SetCorrectOption)
	quizGroup.Post("/:id/share", editorHandler.IssueShareLink)
	quizGroup.Post("/:id/preview", previewHandler.StartPreview)

	// Public routes for anonymous takers
	publicGroup := apiGroup.Group("/public")
	publicGroup.Get("/quizzes/:token", publicHandler.GetSharedQuiz)
	publicGroup.Post("/quizzes/:token/sessions", publicHandler.StartSharedSession)

	// Session routes
	sessionGroup := apiGroup.Group("/sessions")
	sessionGroup.Post("/", sessionHandler.StartSession)
	sessionGroup.Get("/:id", sessionHandler.GetSession)
	sessionGroup.Post("/:id/answers", sessionHandler.Answer)
	sessionGroup.Post("/:id/advance", sessionHandler.Advance)
	sessionGroup.Post("/:id/retreat", sessionHandler.Retreat)
	sessionGroup.Post("/:id/submit", sessionHandler.Submit)
	sessionGroup.Delete("/:id", sessionHandler.Abandon)

	// Preview routes
	previewGroup := apiGroup.Group("/previews")
	previewGroup.Get("/:id", previewHandler.GetPreview)
	previewGroup.Post("/:id/answers", previewHandler.Answer)
	previewGroup.Post("/:id/advance", previewHandler.Advance)
	previewGroup.Post("/:id/retreat", previewHandler.Retreat)
	previewGroup.Delete("/:id", previewHandler.StopPreview)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
