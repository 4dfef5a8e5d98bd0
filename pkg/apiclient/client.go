// Package apiclient provides a typed HTTP client for the EduCode API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
)

// APIError carries the HTTP status and the server-provided error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to an EduCode API server. It is safe for concurrent use once
// configured; SetToken is not synchronized and should be called before the
// client is shared.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New constructs a client for the given base URL, e.g. "http://localhost:8000".
func New(baseURL string, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/api/v1").
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   http,
		logger: logger.With().Str("component", "api_client").Logger(),
	}
}

// SetToken installs the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorMessage extracts the most specific error text from a response body.
// Servers differ in which field they populate, so the lookup order is
// detail, then message, then error, then the raw body.
func errorMessage(body []byte, status int) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if value, ok := parsed[key].(string); ok && value != "" {
				return value
			}
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &APIError{
			Status:  resp.StatusCode(),
			Message: errorMessage(resp.Body(), resp.StatusCode()),
		}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode payload: %w", method, path, err)
	}
	return nil
}

// AuthResult is a login or registration outcome.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, resty.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err == nil {
		c.SetToken(result.Token)
	}
	return result, err
}

// Register creates an account and installs the returned token on the client.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, resty.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	}, &result)
	if err == nil {
		c.SetToken(result.Token)
	}
	return result, err
}

// Logout drops the server-side session and the local token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, resty.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// Me returns the account behind the installed token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, resty.MethodGet, "/auth/me", nil, &user)
	return user, err
}

// Users lists every account. Requires an admin token.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, resty.MethodGet, "/users", nil, &users)
	return users, err
}

// Subjects lists the course catalogue.
func (c *Client) Subjects(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := c.do(ctx, resty.MethodGet, "/subjects", nil, &courses)
	return courses, err
}

// Subject fetches a single course with its lessons.
func (c *Client) Subject(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	err := c.do(ctx, resty.MethodGet, "/subjects/"+id, nil, &course)
	return course, err
}

// Lesson fetches one lesson of a course.
func (c *Client) Lesson(ctx context.Context, courseID string, lessonID int) (models.Lesson, error) {
	var lesson models.Lesson
	path := fmt.Sprintf("/subjects/%s/lessons/%d", courseID, lessonID)
	err := c.do(ctx, resty.MethodGet, path, nil, &lesson)
	return lesson, err
}

// Groups lists the student groups. Requires an admin token.
func (c *Client) Groups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := c.do(ctx, resty.MethodGet, "/groups", nil, &groups)
	return groups, err
}

// CreateGroup creates a student group. Requires an admin token.
func (c *Client) CreateGroup(ctx context.Context, name string, teacherID *int64, studentIDs []int64) (models.Group, error) {
	var group models.Group
	err := c.do(ctx, resty.MethodPost, "/groups", map[string]interface{}{
		"name":       name,
		"teacherId":  teacherID,
		"studentIds": studentIDs,
	}, &group)
	return group, err
}

// TeacherAssignments lists teacher to subject bindings. Requires an admin token.
func (c *Client) TeacherAssignments(ctx context.Context) ([]models.TeacherAssignment, error) {
	var assignments []models.TeacherAssignment
	err := c.do(ctx, resty.MethodGet, "/teacher-assignments", nil, &assignments)
	return assignments, err
}

// AssignTeacher binds a teacher to a subject and group. Requires an admin token.
func (c *Client) AssignTeacher(ctx context.Context, teacherID int64, subjectID string, groupID int64) (models.TeacherAssignment, error) {
	var assignment models.TeacherAssignment
	err := c.do(ctx, resty.MethodPost, "/teacher-assignments", map[string]interface{}{
		"teacherId": teacherID,
		"subjectId": subjectID,
		"groupId":   groupID,
	}, &assignment)
	return assignment, err
}

// LessonAssignments lists the scheduled lessons.
func (c *Client) LessonAssignments(ctx context.Context) ([]models.LessonAssignment, error) {
	var assignments []models.LessonAssignment
	err := c.do(ctx, resty.MethodGet, "/lesson-assignments", nil, &assignments)
	return assignments, err
}

// ScheduleLesson schedules a lesson for a group.
func (c *Client) ScheduleLesson(ctx context.Context, courseID string, lessonID int, groupID int64, dueDate time.Time) (models.LessonAssignment, error) {
	var assignment models.LessonAssignment
	err := c.do(ctx, resty.MethodPost, "/lesson-assignments", map[string]interface{}{
		"courseId": courseID,
		"lessonId": lessonID,
		"groupId":  groupID,
		"dueDate":  dueDate,
	}, &assignment)
	return assignment, err
}

// LessonMaterials lists the uploaded materials for a lesson.
func (c *Client) LessonMaterials(ctx context.Context, courseID string, lessonID int) ([]models.LessonMaterial, error) {
	var materials []models.LessonMaterial
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("courseId", courseID).
		SetQueryParam("lessonId", strconv.Itoa(lessonID)).
		Get("/lesson-materials")
	if err != nil {
		return nil, fmt.Errorf("GET /lesson-materials: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &APIError{Status: resp.StatusCode(), Message: errorMessage(resp.Body(), resp.StatusCode())}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("GET /lesson-materials: decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, &materials); err != nil {
		return nil, fmt.Errorf("GET /lesson-materials: decode payload: %w", err)
	}
	return materials, nil
}

// UploadMaterial uploads a file as lesson material. Requires an admin token.
func (c *Client) UploadMaterial(ctx context.Context, courseID string, lessonID int, filename string, data []byte) (models.LessonMaterial, error) {
	var material models.LessonMaterial
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"courseId": courseID,
			"lessonId": strconv.Itoa(lessonID),
		}).
		Post("/lesson-materials")
	if err != nil {
		return material, fmt.Errorf("POST /lesson-materials: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return material, &APIError{Status: resp.StatusCode(), Message: errorMessage(resp.Body(), resp.StatusCode())}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return material, fmt.Errorf("POST /lesson-materials: decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, &material); err != nil {
		return material, fmt.Errorf("POST /lesson-materials: decode payload: %w", err)
	}
	return material, nil
}

// DownloadMaterial fetches the raw bytes of an uploaded material.
func (c *Client) DownloadMaterial(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/lesson-materials/" + id + "/download")
	if err != nil {
		return nil, fmt.Errorf("GET /lesson-materials/%s/download: %w", id, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &APIError{Status: resp.StatusCode(), Message: errorMessage(resp.Body(), resp.StatusCode())}
	}
	return resp.Body(), nil
}

// GenerateTasks asks the server to generate practice tasks for a topic.
func (c *Client) GenerateTasks(ctx context.Context, topic, difficulty, language string, count int) ([]models.Task, error) {
	var tasks []models.Task
	err := c.do(ctx, resty.MethodPost, "/ai-generation/tasks", map[string]interface{}{
		"topic":      topic,
		"difficulty": difficulty,
		"language":   language,
		"count":      count,
	}, &tasks)
	return tasks, err
}
