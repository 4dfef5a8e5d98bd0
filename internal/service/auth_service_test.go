package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
	"github.com/educode-platform/educode-api/internal/store"
)

func newAuthFixture(t *testing.T) (AuthService, SeedService) {
	t.Helper()
	kv := store.NewMemoryStore()
	users := repository.NewUserRepository(kv, zerolog.Nop())
	session := repository.NewSessionRepository(kv, zerolog.Nop())
	courses := repository.NewCourseRepository(kv, zerolog.Nop())
	seeder := NewSeedService(users, courses, zerolog.Nop())
	seeder.SeedUsers(context.Background())

	auth := NewAuthService(users, session, seeder, "test-secret", time.Hour, zerolog.Nop())
	return auth, seeder
}

func TestLoginWithSeededAccounts(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := auth.Login(ctx, "admin@educode.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)
	require.True(t, auth.IsAuthenticated(ctx))
	require.True(t, auth.IsAdmin(ctx))

	_, err = auth.Login(ctx, "admin@educode.com", "nope")
	require.ErrorIs(t, err, ErrWrongPassword)

	_, err = auth.Login(ctx, "nobody@educode.com", "admin123")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	auth, _ := newAuthFixture(t)

	user, err := auth.Login(context.Background(), "Student@EduCode.com", "student123")
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, user.Role)
}

func TestRegisterCreatesStudentAndSession(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "New.Student@educode.com", "secret1", "New Student")
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, user.Role)
	require.Equal(t, "new.student@educode.com", user.Email)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "secret1", user.PasswordHash)

	current, ok := auth.CurrentUser(ctx)
	require.True(t, ok)
	require.Equal(t, user.ID, current.ID)

	_, err = auth.Register(ctx, "new.student@educode.com", "other", "Someone Else")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogoutKeepsAccount(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "test@educode.com", "test123")
	require.NoError(t, err)

	auth.Logout(ctx)
	require.False(t, auth.IsAuthenticated(ctx))

	_, err = auth.Login(ctx, "test@educode.com", "test123")
	require.NoError(t, err)
}

func TestUpdateUserRehashesPasswordAndRefreshesSession(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := auth.Login(ctx, "student@educode.com", "student123")
	require.NoError(t, err)

	newPassword := "changed-pass"
	newName := "Alina Renamed"
	updated, err := auth.UpdateUser(ctx, user.ID, UserUpdate{Password: &newPassword, FullName: &newName})
	require.NoError(t, err)
	require.Equal(t, "Alina Renamed", updated.FullName)
	require.NotContains(t, updated.PasswordHash, "changed-pass")

	// Session copy follows the edit.
	current, ok := auth.CurrentUser(ctx)
	require.True(t, ok)
	require.Equal(t, "Alina Renamed", current.FullName)

	// Old password no longer works.
	auth.Logout(ctx)
	_, err = auth.Login(ctx, "student@educode.com", "student123")
	require.ErrorIs(t, err, ErrWrongPassword)
	_, err = auth.Login(ctx, "student@educode.com", "changed-pass")
	require.NoError(t, err)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "student@educode.com", "student123")
	require.NoError(t, err)
	require.ErrorIs(t, auth.DeleteUser(ctx, 2), ErrPermissionDenied)

	_, err = auth.Login(ctx, "admin@educode.com", "admin123")
	require.NoError(t, err)
	require.NoError(t, auth.DeleteUser(ctx, 2))
	require.ErrorIs(t, auth.DeleteUser(ctx, 2), ErrUserNotFound)
}

func TestDeleteSelfClearsSession(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	admin, err := auth.Login(ctx, "admin@educode.com", "admin123")
	require.NoError(t, err)

	require.NoError(t, auth.DeleteUser(ctx, admin.ID))
	require.False(t, auth.IsAuthenticated(ctx))
}

func TestStatsCountsByRole(t *testing.T) {
	auth, _ := newAuthFixture(t)

	stats := auth.Stats(context.Background())
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.Admins)
	require.Equal(t, 1, stats.Students)
	require.Equal(t, 1, stats.Regular)
}

func TestExportImportRoundTrip(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, auth.Export(ctx, &buf))
	require.Contains(t, buf.String(), "admin@educode.com")

	// Re-importing the export restores the same accounts.
	require.NoError(t, auth.Import(ctx, bytes.NewReader(buf.Bytes())))
	require.Len(t, auth.ListUsers(ctx), 3)
}

func TestImportRejectsMalformedInputWithoutWriting(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	err := auth.Import(ctx, strings.NewReader("{not json"))
	require.ErrorIs(t, err, ErrInvalidImport)
	require.Len(t, auth.ListUsers(ctx), 3)

	// Valid JSON, wrong shape.
	err = auth.Import(ctx, strings.NewReader(`{"users": []}`))
	require.ErrorIs(t, err, ErrInvalidImport)
	require.Len(t, auth.ListUsers(ctx), 3)

	// Items missing required fields.
	err = auth.Import(ctx, strings.NewReader(`[{"email": "x@y.com"}]`))
	require.ErrorIs(t, err, ErrInvalidImport)
	require.Len(t, auth.ListUsers(ctx), 3)
}

func TestClearRequiresAdminAndReseeds(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "student@educode.com", "student123")
	require.NoError(t, err)
	require.ErrorIs(t, auth.Clear(ctx), ErrPermissionDenied)

	_, err = auth.Login(ctx, "admin@educode.com", "admin123")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "extra@educode.com", "pass123", "Extra")
	require.NoError(t, err)

	// Registration replaced the session with the new student, so log the
	// admin back in before clearing.
	_, err = auth.Login(ctx, "admin@educode.com", "admin123")
	require.NoError(t, err)

	require.NoError(t, auth.Clear(ctx))
	require.False(t, auth.IsAuthenticated(ctx))
	require.Len(t, auth.ListUsers(ctx), 3)
}

func TestIssueAndVerifyToken(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := auth.Login(ctx, "admin@educode.com", "admin123")
	require.NoError(t, err)

	token, err := auth.IssueToken(user)
	require.NoError(t, err)

	id, role, err := auth.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, id)
	require.Equal(t, models.RoleAdmin, role)

	_, _, err = auth.VerifyToken(token + "tampered")
	require.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = auth.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
