package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/config"
	"github.com/educode-platform/educode-api/internal/database"
	"github.com/educode-platform/educode-api/internal/handler"
	"github.com/educode-platform/educode-api/internal/middleware"
	"github.com/educode-platform/educode-api/internal/repository"
	"github.com/educode-platform/educode-api/internal/router"
	"github.com/educode-platform/educode-api/internal/service"
	"github.com/educode-platform/educode-api/internal/store"
	"github.com/educode-platform/educode-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	kv, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(kv, logger)
	sessionRepo := repository.NewSessionRepository(kv, logger)
	courseRepo := repository.NewCourseRepository(kv, logger)
	notificationRepo := repository.NewNotificationRepository(kv, logger)
	progressRepo := repository.NewProgressRepository(kv, logger)
	gradeRepo := repository.NewGradeRepository(kv, logger)
	journalRepo := repository.NewJournalRepository(kv, logger)
	submissionRepo := repository.NewSubmissionRepository(kv, logger)
	groupRepo := repository.NewGroupRepository(kv, logger)
	teacherAssignmentRepo := repository.NewTeacherAssignmentRepository(kv, logger)
	lessonAssignmentRepo := repository.NewLessonAssignmentRepository(kv, logger)
	materialRepo := repository.NewMaterialRepository(kv, logger)

	seedService := service.NewSeedService(userRepo, courseRepo, logger)
	if cfg.SeedOnStart {
		seedService.EnsureDefaults(context.Background())
	}

	authService := service.NewAuthService(userRepo, sessionRepo, seedService, cfg.JWTSecret, cfg.TokenTTL, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	progressService := service.NewProgressService(progressRepo, notificationService, logger)
	gradeService := service.NewGradeService(gradeRepo, journalRepo, logger)
	submissionService := service.NewSubmissionService(submissionRepo, courseRepo, journalRepo, notificationService, logger)
	curriculumService := service.NewCurriculumService(courseRepo, logger)
	groupService := service.NewGroupService(groupRepo, logger)
	assignmentService := service.NewAssignmentService(teacherAssignmentRepo, lessonAssignmentRepo, userRepo, courseRepo, groupRepo, logger)
	materialService := service.NewMaterialService(materialRepo, courseRepo, logger)
	aiService := service.NewAIGenerationService(buildGenerator(cfg, logger), logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app)
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, validate, logger),
		UserHandler:         handler.NewUserHandler(authService, validate, logger),
		CourseHandler:       handler.NewCourseHandler(curriculumService, validate, logger),
		GroupHandler:        handler.NewGroupHandler(groupService, validate, logger),
		AssignmentHandler:   handler.NewAssignmentHandler(assignmentService, validate, logger),
		MaterialHandler:     handler.NewMaterialHandler(materialService, logger),
		ProgressHandler:     handler.NewProgressHandler(progressService, validate, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		SubmissionHandler:   handler.NewSubmissionHandler(submissionService, validate, logger),
		GradeHandler:        handler.NewGradeHandler(gradeService, validate, logger),
		AIHandler:           handler.NewAIHandler(aiService, validate, logger),
		RunnerHandler:       handler.NewRunnerHandler(logger),
		AuthMiddleware:      middleware.BearerAuth(authService),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func openStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), nil, nil
	case config.StoreBackendFile:
		fileStore, err := store.NewFileStore(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		return fileStore, nil, nil
	case config.StoreBackendRedis:
		client, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client), func() { client.Close() }, nil
	default:
		db, err := database.ConnectGorm(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		gormStore, err := store.NewGormStore(db)
		if err != nil {
			return nil, nil, err
		}
		return gormStore, nil, nil
	}
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) ai.Generator {
	if cfg.AIProvider == "openai" && cfg.OpenAIAPIKey != "" {
		generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err == nil {
			return generator
		}
		logger.Warn().Err(err).Msg("falling back to the static task generator")
	}
	return ai.NewStaticGenerator()
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
