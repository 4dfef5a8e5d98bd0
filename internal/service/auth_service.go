package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// Auth failure sentinels.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrEmailTaken       = errors.New("a user with this email already exists")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidImport    = errors.New("invalid database file format")
	ErrInvalidToken     = errors.New("invalid token")
)

// usersSchema validates imported user collections before any write occurs.
const usersSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "email", "role"],
    "properties": {
      "id": {"type": "integer"},
      "email": {"type": "string", "minLength": 3},
      "passwordHash": {"type": "string"},
      "fullName": {"type": "string"},
      "role": {"enum": ["admin", "teacher", "student", "user"]},
      "teacherId": {"type": "integer"},
      "createdAt": {"type": "string"}
    }
  }
}`

// UserUpdate is a profile patch. A non-nil Password is hashed before it
// reaches the store.
type UserUpdate struct {
	Email     *string
	Password  *string
	FullName  *string
	Role      *string
	TeacherID *int64
}

// UserStats summarises the user collection by role.
type UserStats struct {
	Total    int `json:"total"`
	Admins   int `json:"admins"`
	Teachers int `json:"teachers"`
	Students int `json:"students"`
	Regular  int `json:"regular"`
}

// AuthService owns accounts and the single current session.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, password, fullName string) (models.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (models.User, bool)
	IsAuthenticated(ctx context.Context) bool
	Role(ctx context.Context) string
	IsAdmin(ctx context.Context) bool
	ListUsers(ctx context.Context) []models.User
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	Stats(ctx context.Context) UserStats
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
	Clear(ctx context.Context) error
	IssueToken(user models.User) (string, error)
	VerifyToken(token string) (int64, string, error)
}

type authService struct {
	users        repository.UserRepository
	session      repository.SessionRepository
	seeder       SeedService
	importSchema *jsonschema.Schema
	jwtSecret    []byte
	tokenTTL     time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAuthService constructs the account and session service.
func NewAuthService(users repository.UserRepository, session repository.SessionRepository, seeder SeedService, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:        users,
		session:      session,
		seeder:       seeder,
		importSchema: jsonschema.MustCompileString("educode_users.json", usersSchema),
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		logger:       logger.With().Str("component", "auth_service").Logger(),
		now:          time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	user, ok := s.users.FindByEmail(ctx, email)
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrWrongPassword
	}

	s.session.Save(ctx, user)
	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return user, nil
}

// Register creates a student account and establishes the session. The id is
// a unix-millisecond surrogate; two registrations within the same
// millisecond can collide, which mirrors the original engine's behaviour.
func (s *authService) Register(ctx context.Context, email, password, fullName string) (models.User, error) {
	if _, exists := s.users.FindByEmail(ctx, email); exists {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           s.now().UnixMilli(),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         models.RoleStudent,
		CreatedAt:    s.now().UTC(),
	}

	s.users.Create(ctx, user)
	s.session.Save(ctx, user)

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Logout clears the session only; the account remains.
func (s *authService) Logout(ctx context.Context) {
	s.session.Clear(ctx)
}

func (s *authService) CurrentUser(ctx context.Context) (models.User, bool) {
	return s.session.Current(ctx)
}

func (s *authService) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.session.Current(ctx)
	return ok
}

func (s *authService) Role(ctx context.Context) string {
	user, ok := s.session.Current(ctx)
	if !ok {
		return ""
	}
	return user.Role
}

func (s *authService) IsAdmin(ctx context.Context) bool {
	return s.Role(ctx) == models.RoleAdmin
}

func (s *authService) ListUsers(ctx context.Context) []models.User {
	return s.users.List(ctx)
}

// UpdateUser shallow-merges the patch. When the edited user is the session
// user the session copy is rewritten too, so it cannot go stale here.
// Email uniqueness is not re-checked on update.
func (s *authService) UpdateUser(ctx context.Context, id int64, update UserUpdate) (models.User, error) {
	patch := repository.UserPatch{
		Email:     update.Email,
		FullName:  update.FullName,
		Role:      update.Role,
		TeacherID: update.TeacherID,
	}

	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if current, ok := s.session.Current(ctx); ok && current.ID == id {
		s.session.Save(ctx, user)
	}

	return user, nil
}

// DeleteUser is admin-only and force-logs-out when the deleted account is
// the session user.
func (s *authService) DeleteUser(ctx context.Context, id int64) error {
	if !s.IsAdmin(ctx) {
		return ErrPermissionDenied
	}

	if err := s.users.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if current, ok := s.session.Current(ctx); ok && current.ID == id {
		s.session.Clear(ctx)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *authService) Stats(ctx context.Context) UserStats {
	stats := UserStats{}
	for _, user := range s.users.List(ctx) {
		stats.Total++
		switch user.Role {
		case models.RoleAdmin:
			stats.Admins++
		case models.RoleTeacher:
			stats.Teachers++
		case models.RoleStudent:
			stats.Students++
		default:
			stats.Regular++
		}
	}
	return stats
}

// Export writes the whole user collection as indented JSON.
func (s *authService) Export(ctx context.Context, w io.Writer) error {
	users := s.users.List(ctx)
	if users == nil {
		users = []models.User{}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user database: %w", err)
	}

	_, err = w.Write(data)
	return err
}

// Import fully replaces the user collection. Parsing and schema validation
// happen before any write, so malformed input leaves the collection intact.
func (s *authService) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if err := s.importSchema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	s.users.Replace(ctx, users)
	s.logger.Info().Int("count", len(users)).Msg("user database imported")
	return nil
}

// Clear wipes the user collection and the session, then re-seeds the default
// accounts. Admin-only.
func (s *authService) Clear(ctx context.Context) error {
	if !s.IsAdmin(ctx) {
		return ErrPermissionDenied
	}

	s.users.Replace(ctx, nil)
	s.session.Clear(ctx)
	s.seeder.SeedUsers(ctx)

	s.logger.Warn().Msg("user database cleared and re-seeded")
	return nil
}

// IssueToken signs a bearer token for the HTTP surface.
func (s *authService) IssueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken parses a bearer token and returns the user id and role.
func (s *authService) VerifyToken(tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return int64(sub), role, nil
}
