package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoginSetsTokenAndSendsItOnLaterCalls(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Equal(t, "admin@educode.com", payload["email"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":1,"email":"admin@educode.com","role":"admin"},"token":"jwt-token"},"message":"login successful"}`))
		case "/api/v1/subjects":
			seenAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"algorithms","title":"Algorithms"}],"message":"courses retrieved"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := New(server.URL, zerolog.Nop())

	result, err := client.Login(context.Background(), "admin@educode.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, "jwt-token", result.Token)
	require.Equal(t, int64(1), result.User.ID)

	subjects, err := client.Subjects(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	require.Equal(t, "algorithms", subjects[0].ID)
	require.Equal(t, "Bearer jwt-token", seenAuth)
}

func TestErrorMessagePrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "detail wins", body: `{"detail":"from detail","message":"from message","error":"from error"}`, want: "from detail"},
		{name: "message next", body: `{"message":"from message","error":"from error"}`, want: "from message"},
		{name: "error last", body: `{"error":"from error"}`, want: "from error"},
		{name: "raw body fallback", body: `plain text failure`, want: "plain text failure"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, errorMessage([]byte(tc.body), http.StatusBadRequest))
		})
	}

	require.Equal(t, "request failed with status 502", errorMessage(nil, http.StatusBadGateway))
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"wrong password"}`))
	}))
	defer server.Close()

	client := New(server.URL, zerolog.Nop())

	_, err := client.Login(context.Background(), "admin@educode.com", "bad")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "wrong password", apiErr.Message)
}

func TestGenerateTasksDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/ai-generation/tasks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"title":"Practice 1: loops"}],"message":"tasks generated"}`))
	}))
	defer server.Close()

	client := New(server.URL, zerolog.Nop())

	tasks, err := client.GenerateTasks(context.Background(), "loops", "beginner", "python", 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Practice 1: loops", tasks[0].Title)
}
