package task_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/modules/auth"
	"github.com/taskhub/taskhub/modules/task"
)

type testAPI struct {
	handler http.Handler
	tokens  *auth.Service
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	tokens, err := auth.NewService(auth.Config{Secret: "task-handler-secret-0123456789abc", TokenTTL: time.Hour})
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	errs := core.NewErrorHandler(log, false)
	transport := auth.DefaultTransport(false)
	svc := task.NewService(task.NewMemoryStorage(), task.WithLogger(log))
	guard := auth.Middleware(tokens, transport, errs)

	return &testAPI{
		handler: task.NewHandler(svc, guard, errs).Handle(),
		tokens:  tokens,
	}
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()
	token, err := a.tokens.Issue(uuid.New())
	require.NoError(t, err)
	return token
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestHandler_Guard(t *testing.T) {
	api := newTestAPI(t)

	t.Run("no credential", func(t *testing.T) {
		w := api.do(t, "GET", "/", "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No token provided", body(t, w)["message"])
	})

	t.Run("forged credential", func(t *testing.T) {
		w := api.do(t, "GET", "/", "", "not.a.token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", body(t, w)["message"])
	})
}

func TestHandler_CRUD(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	t.Run("create defaults description and completed", func(t *testing.T) {
		w := api.do(t, "POST", "/", `{"title":"Write report"}`, token)
		require.Equal(t, http.StatusCreated, w.Code)

		created := body(t, w)
		assert.Equal(t, "Write report", created["title"])
		assert.Equal(t, "", created["description"])
		assert.Equal(t, false, created["completed"])
	})

	t.Run("title bounds are validated", func(t *testing.T) {
		w := api.do(t, "POST", "/", `{"title":"ab"}`, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation error", body(t, w)["message"])
	})

	t.Run("malformed path id is rejected before lookup", func(t *testing.T) {
		w := api.do(t, "GET", "/not-a-uuid", "", token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid UUID format for 'id'", body(t, w)["message"])
	})

	t.Run("update and delete round trip", func(t *testing.T) {
		created := body(t, api.do(t, "POST", "/", `{"title":"Temp task"}`, token))
		id := created["id"].(string)

		w := api.do(t, "PUT", "/"+id, `{"completed":true}`, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body(t, w)["completed"])

		w = api.do(t, "DELETE", "/"+id, "", token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = api.do(t, "GET", "/"+id, "", token)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", body(t, w)["message"])
	})

	t.Run("another user's task is forbidden with the operation named", func(t *testing.T) {
		created := body(t, api.do(t, "POST", "/", `{"title":"Not yours"}`, token))
		id := created["id"].(string)
		stranger := api.login(t)

		w := api.do(t, "GET", "/"+id, "", stranger)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You don't have permission to access this task", body(t, w)["message"])

		w = api.do(t, "PUT", "/"+id, `{"completed":true}`, stranger)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You don't have permission to update this task", body(t, w)["message"])

		w = api.do(t, "DELETE", "/"+id, "", stranger)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You don't have permission to delete this task", body(t, w)["message"])
	})
}

func TestHandler_List(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	for _, title := range []string{"First task", "Second task", "Third task"} {
		w := api.do(t, "POST", "/", `{"title":"`+title+`"}`, token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("envelope shape", func(t *testing.T) {
		w := api.do(t, "GET", "/", "", token)
		require.Equal(t, http.StatusOK, w.Code)

		page := body(t, w)
		data, ok := page["data"].([]any)
		require.True(t, ok)
		assert.Len(t, data, 3)
		assert.Equal(t, false, page["hasMore"])
		assert.Nil(t, page["nextCursor"])
		assert.Equal(t, float64(20), page["limit"])
	})

	t.Run("limit and cursor paging over HTTP", func(t *testing.T) {
		w := api.do(t, "GET", "/?limit=2", "", token)
		require.Equal(t, http.StatusOK, w.Code)

		page := body(t, w)
		assert.Len(t, page["data"].([]any), 2)
		assert.Equal(t, true, page["hasMore"])
		cursor, ok := page["nextCursor"].(string)
		require.True(t, ok)

		w = api.do(t, "GET", "/?limit=2&cursor="+url.QueryEscape(cursor), "", token)
		require.Equal(t, http.StatusOK, w.Code)
		page = body(t, w)
		assert.Len(t, page["data"].([]any), 1)
		assert.Equal(t, false, page["hasMore"])
	})

	t.Run("invalid completed value means unfiltered", func(t *testing.T) {
		w := api.do(t, "GET", "/?completed=maybe", "", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body(t, w)["data"].([]any), 3)
	})

	t.Run("unknown orderBy falls back to creation time", func(t *testing.T) {
		w := api.do(t, "GET", "/?orderBy=bogus", "", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body(t, w)["data"].([]any), 3)
	})
}
