package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/logging"
	"taskpilot/internal/server/accounts"
	"taskpilot/internal/server/config"
	"taskpilot/internal/server/shared/db"
	"taskpilot/internal/server/tasks"
)

type captureNotifier struct {
	lastEmail string
	lastCode  string
	sendCount int
}

func (n *captureNotifier) SendOTP(ctx context.Context, email, code string) error {
	n.lastEmail = email
	n.lastCode = code
	n.sendCount++
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *captureNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	rm := db.NewInMemoryRepositoryManager()
	notifier := &captureNotifier{}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	server := NewServer(":0", logger,
		accounts.NewService(rm.Accounts(), notifier, cfg),
		tasks.NewService(rm.Tasks()))

	return server.Router(), notifier
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// --- accounts ---

func TestSignupVerifyLoginFlow(t *testing.T) {
	router, notifier := newTestRouter(t)

	// signup
	w := doJSON(t, router, http.MethodPost, "/signup", gin.H{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered. Please verify your email.", decodeBody(t, w)["message"])
	require.Equal(t, 1, notifier.sendCount)
	assert.Equal(t, "a@example.com", notifier.lastEmail)

	// login before verification fails with the dedicated error
	w = doJSON(t, router, http.MethodPost, "/login", gin.H{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email not verified", decodeBody(t, w)["error"])

	// verify with the mailed code
	w = doJSON(t, router, http.MethodPost, "/verify-otp", gin.H{"email": "a@example.com", "otp": notifier.lastCode})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email verified successfully", decodeBody(t, w)["message"])

	// login now succeeds with a token
	w = doJSON(t, router, http.MethodPost, "/login", gin.H{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestSignup_DuplicateUnverifiedResendsOTP(t *testing.T) {
	router, notifier := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/signup", gin.H{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code)
	firstCode := notifier.lastCode

	w = doJSON(t, router, http.MethodPost, "/signup", gin.H{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP resent. Please verify your email.", decodeBody(t, w)["message"])
	require.Equal(t, 2, notifier.sendCount)

	// the first code no longer works
	w = doJSON(t, router, http.MethodPost, "/verify-otp", gin.H{"email": "a@example.com", "otp": firstCode})
	if firstCode != notifier.lastCode {
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid OTP", decodeBody(t, w)["error"])
	}
}

func TestSignup_VerifiedDuplicateRejected(t *testing.T) {
	router, notifier := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/signup", gin.H{"email": "a@example.com", "password": "pw"})
	doJSON(t, router, http.MethodPost, "/verify-otp", gin.H{"email": "a@example.com", "otp": notifier.lastCode})

	w := doJSON(t, router, http.MethodPost, "/signup", gin.H{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already registered and verified.", decodeBody(t, w)["message"])
}

func TestVerifyOTP_Invalid(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/verify-otp", gin.H{"email": "ghost@example.com", "otp": "123456"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid OTP", decodeBody(t, w)["error"])
}

func TestLogin_BadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/login", gin.H{"email": "ghost@example.com", "password": "pw"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
}

func TestTestEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Test API called successfully", decodeBody(t, w)["message"])
}

// --- tasks ---

func taskBody(title string, priority int, status string, start, end time.Time) gin.H {
	return gin.H{
		"title":     title,
		"startTime": start.Format(time.RFC3339),
		"endTime":   end.Format(time.RFC3339),
		"priority":  priority,
		"status":    status,
	}
}

func TestTasks_CreateAndListRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)
	now := time.Now().UTC().Truncate(time.Second)

	w := doJSON(t, router, http.MethodPost, "/tasks", taskBody("write report", 4, "pending", now, now.Add(time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	require.NotEmpty(t, created["id"])

	// another task that the filter must exclude
	w = doJSON(t, router, http.MethodPost, "/tasks", taskBody("other", 2, "finished", now, now.Add(time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/tasks?priority=4&status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created["id"], list[0]["id"])
	assert.Equal(t, "write report", list[0]["title"])
}

func TestTasks_CreateValidationFails(t *testing.T) {
	router, _ := newTestRouter(t)
	now := time.Now()

	w := doJSON(t, router, http.MethodPost, "/tasks", taskBody("bad", 9, "pending", now, now.Add(time.Hour)))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTasks_UpdateUnknownIDReturnsNull(t *testing.T) {
	router, _ := newTestRouter(t)
	now := time.Now()

	w := doJSON(t, router, http.MethodPut, "/tasks/unknown-id", taskBody("t", 3, "pending", now, now.Add(time.Hour)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	// and nothing was created along the way
	w = doJSON(t, router, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestTasks_Delete(t *testing.T) {
	router, _ := newTestRouter(t)
	now := time.Now()

	w := doJSON(t, router, http.MethodPost, "/tasks", taskBody("to delete", 1, "pending", now, now.Add(time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/tasks/%s", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task deleted successfully", decodeBody(t, w)["message"])

	// idempotent-looking success on repeat
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/tasks/%s", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestTasks_ListSorted(t *testing.T) {
	router, _ := newTestRouter(t)
	now := time.Now()

	for _, p := range []int{3, 1, 2} {
		w := doJSON(t, router, http.MethodPost, "/tasks", taskBody("t", p, "pending", now, now.Add(time.Hour)))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/tasks?sortBy=priority", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, float64(1), list[0]["priority"])
	assert.Equal(t, float64(2), list[1]["priority"])
	assert.Equal(t, float64(3), list[2]["priority"])
}

func TestDashboardEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	now := time.Now()

	// empty set: defined values, no crash
	w := doJSON(t, router, http.MethodGet, "/tasks/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["totalCount"])
	assert.Equal(t, float64(0), body["completedPercentage"])

	doJSON(t, router, http.MethodPost, "/tasks", taskBody("done", 1, "finished", now.Add(-2*time.Hour), now))
	doJSON(t, router, http.MethodPost, "/tasks", taskBody("open", 2, "pending", now.Add(-time.Hour), now.Add(time.Hour)))

	w = doJSON(t, router, http.MethodGet, "/tasks/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(2), body["totalCount"])
	assert.Equal(t, float64(1), body["pendingCount"])
	assert.Equal(t, float64(50), body["completedPercentage"])

	summary := body["pendingTaskSummary"].([]any)
	require.Len(t, summary, 1)
	entry := summary[0].(map[string]any)
	assert.Equal(t, "open", entry["title"])
	assert.GreaterOrEqual(t, entry["timeToFinish"].(float64), 0.0)
}
