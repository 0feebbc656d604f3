package integration

import (
	"fmt"
	"os"
	"testing"

	"quizforge/internal/adapter"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	dblogic "quizforge/internal/database"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	app         *fiber.App
	logInstance *zap.Logger
	db          *sqlx.DB
	redisClient *redis.Client
	cfg         *config.Config
)

// TestMain wires the full HTTP application against a real Oracle database
// and Redis instance. It requires both to be reachable; set
// INTEGRATION_TESTS=true to opt in.
func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TESTS") != "true" {
		fmt.Println("Skipping integration tests; set INTEGRATION_TESTS=true to run them")
		os.Exit(0)
	}

	loadedCfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	cfg = loadedCfg
	// The wall-clock ticker would race the tests; time is driven explicitly.
	cfg.Session.TickerEnabled = false

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logInstance = logger.Get()
	defer func() {
		if logInstance != nil {
			_ = logInstance.Sync()
		}
	}()

	logInstance.Info("Starting integration tests")

	db, err = dblogic.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		logInstance.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrateDB, err := dblogic.NewMigrateOracleDB(cfg.GetMigrateDSN())
	if err != nil {
		logInstance.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := dblogic.RunMigrations(migrateDB, "../../database/migrations"); err != nil {
		logInstance.Warn("Migrations failed; assuming schema already exists", zap.Error(err))
	}
	migrateDB.Close()

	redisClient, err = cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logInstance.Fatal("Failed to connect to test Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	quizRepository := repository.NewQuizDatabaseAdapter(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)

	editorService := service.NewEditorService(quizRepository, cacheAdapter)
	shareService, err := service.NewShareService(quizRepository, cacheAdapter, cfg)
	if err != nil {
		logInstance.Fatal("Failed to create ShareService", zap.Error(err))
	}
	sessionService := service.NewSessionService(quizRepository, attemptRepository, shareService, cacheAdapter, cfg.Session)
	previewService := service.NewPreviewService(quizRepository)

	editorHandler := handler.NewEditorHandler(editorService, shareService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	publicHandler := handler.NewPublicHandler(shareService, sessionService)
	previewHandler := handler.NewPreviewHandler(previewService)

	app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.TakerIdentity())

	apiGroup := app.Group("/api")

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

	publicGroup := apiGroup.Group("/public")
	publicGroup.Get("/quizzes/:token", publicHandler.GetSharedQuiz)
	publicGroup.Post("/quizzes/:token/sessions", publicHandler.StartSharedSession)

	sessionGroup := apiGroup.Group("/sessions")
	sessionGroup.Post("/", sessionHandler.StartSession)
	sessionGroup.Get("/:id", sessionHandler.GetSession)
	sessionGroup.Post("/:id/answers", sessionHandler.Answer)
	sessionGroup.Post("/:id/advance", sessionHandler.Advance)
	sessionGroup.Post("/:id/retreat", sessionHandler.Retreat)
	sessionGroup.Post("/:id/submit", sessionHandler.Submit)
	sessionGroup.Delete("/:id", sessionHandler.Abandon)

	previewGroup := apiGroup.Group("/previews")
	previewGroup.Get("/:id", previewHandler.GetPreview)
	previewGroup.Post("/:id/answers", previewHandler.Answer)
	previewGroup.Post("/:id/advance", previewHandler.Advance)
	previewGroup.Post("/:id/retreat", previewHandler.Retreat)
	previewGroup.Delete("/:id", previewHandler.StopPreview)

	code := m.Run()

	db.Close()
	redisClient.Close()
	os.Exit(code)
}
