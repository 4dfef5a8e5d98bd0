package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// SeedService installs the default accounts and starter course when the
// corresponding collections are absent.
type SeedService interface {
	SeedUsers(ctx context.Context)
	SeedCourses(ctx context.Context)
	EnsureDefaults(ctx context.Context)
}

type seedService struct {
	users   repository.UserRepository
	courses repository.CourseRepository
	logger  zerolog.Logger
	now     func() time.Time
}

// NewSeedService constructs a seeding service.
func NewSeedService(users repository.UserRepository, courses repository.CourseRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		users:   users,
		courses: courses,
		logger:  logger.With().Str("component", "seed_service").Logger(),
		now:     time.Now,
	}
}

type seedAccount struct {
	id       int64
	email    string
	password string
	fullName string
	role     string
}

var defaultAccounts = []seedAccount{
	{id: 1, email: "admin@educode.com", password: "admin123", fullName: "EduCode Administrator", role: models.RoleAdmin},
	{id: 2, email: "test@educode.com", password: "test123", fullName: "Test User", role: models.RoleUser},
	{id: 3, email: "student@educode.com", password: "student123", fullName: "Alina", role: models.RoleStudent},
}

// SeedUsers writes the default accounts if the user collection is empty.
func (s *seedService) SeedUsers(ctx context.Context) {
	if len(s.users.List(ctx)) > 0 {
		return
	}

	created := s.now().UTC()
	users := make([]models.User, 0, len(defaultAccounts))
	for _, account := range defaultAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error().Err(err).Str("email", account.email).Msg("failed to hash seed password")
			continue
		}
		users = append(users, models.User{
			ID:           account.id,
			Email:        account.email,
			PasswordHash: string(hash),
			FullName:     account.fullName,
			Role:         account.role,
			CreatedAt:    created,
		})
	}

	s.users.Replace(ctx, users)
	s.logger.Info().Int("count", len(users)).Msg("default users seeded")
}

// SeedCourses writes the starter course if the course collection is empty.
func (s *seedService) SeedCourses(ctx context.Context) {
	if len(s.courses.List(ctx)) > 0 {
		return
	}

	s.courses.Replace(ctx, []models.Course{algorithmsCourse()})
	s.logger.Info().Msg("starter course seeded")
}

// EnsureDefaults runs every seed step.
func (s *seedService) EnsureDefaults(ctx context.Context) {
	s.SeedUsers(ctx)
	s.SeedCourses(ctx)
}

func algorithmsCourse() models.Course {
	return models.Course{
		ID:          "algorithms",
		Title:       "Algorithmization and Programming",
		Description: "Introduction to algorithms with Python practice tasks.",
		Category:    "programming",
		Status:      models.CourseStatusPublished,
		Lessons: []models.Lesson{
			{
				ID:          1,
				Title:       "Algorithms and Their Properties",
				Description: "What an algorithm is and how to describe one.",
				Content:     "An algorithm is a finite sequence of well-defined steps that solves a class of problems.",
				VideoURL:    "https://videos.educode.com/algorithms/lesson-1",
				Tasks: []models.Task{
					{
						ID:             1,
						Title:          "Hello, world",
						Description:    "Print the phrase Hello, world! to the console.",
						InitialCode:    "# Write your code here\n",
						ExpectedOutput: "Hello, world!",
					},
					{
						ID:             2,
						Title:          "Counting",
						Description:    "Print the numbers 0 through 4, one per line, using a loop.",
						InitialCode:    "for i in range(5):\n    # print the number\n",
						ExpectedOutput: "0\n1\n2\n3\n4",
					},
				},
			},
			{
				ID:          2,
				Title:       "Linear Algorithms",
				Description: "Sequential execution and simple variables.",
				Content:     "A linear algorithm executes every step exactly once, in order, with no branching.",
				VideoURL:    "https://videos.educode.com/algorithms/lesson-2",
				Tasks: []models.Task{
					{
						ID:             1,
						Title:          "Variables",
						Description:    "Store your name in a variable and print it.",
						InitialCode:    "name = \"\"\n",
						ExpectedOutput: "",
					},
				},
			},
		},
	}
}
