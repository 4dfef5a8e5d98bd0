package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educode-platform/educode-api/internal/config"
	"github.com/educode-platform/educode-api/internal/handler"
	"github.com/educode-platform/educode-api/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	CourseHandler       *handler.CourseHandler
	GroupHandler        *handler.GroupHandler
	AssignmentHandler   *handler.AssignmentHandler
	MaterialHandler     *handler.MaterialHandler
	ProgressHandler     *handler.ProgressHandler
	NotificationHandler *handler.NotificationHandler
	SubmissionHandler   *handler.SubmissionHandler
	GradeHandler        *handler.GradeHandler
	AIHandler           *handler.AIHandler
	RunnerHandler       *handler.RunnerHandler
	AuthMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	authMiddleware := deps.AuthMiddleware
	if authMiddleware == nil {
		authMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	adminOnly := middleware.RequireAdmin()

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", authMiddleware))
	}

	if deps.UserHandler != nil {
		users := api.Group("/users", authMiddleware, adminOnly)
		deps.UserHandler.Register(users)
	}

	if deps.CourseHandler != nil {
		subjects := api.Group("/subjects", authMiddleware)
		deps.CourseHandler.Register(subjects)
		deps.CourseHandler.RegisterAdmin(subjects.Group("", adminOnly))
	}

	if deps.GroupHandler != nil {
		groups := api.Group("/groups", authMiddleware, adminOnly)
		deps.GroupHandler.Register(groups)
	}

	if deps.AssignmentHandler != nil {
		teacherAssignments := api.Group("/teacher-assignments", authMiddleware, adminOnly)
		deps.AssignmentHandler.RegisterTeachers(teacherAssignments)

		lessonAssignments := api.Group("/lesson-assignments", authMiddleware)
		deps.AssignmentHandler.RegisterLessons(lessonAssignments)
	}

	if deps.MaterialHandler != nil {
		materials := api.Group("/lesson-materials", authMiddleware)
		deps.MaterialHandler.Register(materials)
		deps.MaterialHandler.RegisterAdmin(materials.Group("", adminOnly))
	}

	if deps.ProgressHandler != nil {
		progress := api.Group("/progress", authMiddleware)
		deps.ProgressHandler.Register(progress)
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", authMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", authMiddleware)
		deps.SubmissionHandler.Register(submissions)
		deps.SubmissionHandler.RegisterGrading(submissions.Group("/review", adminOnly))
	}

	if deps.GradeHandler != nil {
		grades := api.Group("/grades", authMiddleware)
		deps.GradeHandler.RegisterGrades(grades)

		journal := api.Group("/journal", authMiddleware)
		deps.GradeHandler.RegisterJournal(journal)
	}

	if deps.AIHandler != nil {
		ai := api.Group("/ai-generation", authMiddleware)
		deps.AIHandler.Register(ai)
	}

	if deps.RunnerHandler != nil {
		runner := api.Group("/runner", authMiddleware)
		deps.RunnerHandler.Register(runner)
	}
}
