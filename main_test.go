package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"studentreg/internal/config"
	"studentreg/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.StudentEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishStudentEvent(event models.StudentEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		AppPort:        ":0",
		MetricsEnabled: true,
		DisplayIDTries: 5,
	}
}

func doJSON(t *testing.T, app *App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestStudentLifecycle(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishStudentEvent", mock.Anything).Return(nil)

	app, err := NewApp(testConfig(), zerolog.Nop(), publisher)
	require.NoError(t, err)

	ada := map[string]string{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"email":          "ada@example.com",
		"phone":          "555-123-4567",
		"course":         "Computer Science",
		"enrollmentDate": "2024-09-01",
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/students", ada)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created models.Student
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.Regexp(t, `^STU\d{9}$`, created.DisplayID)

	resp, body = doJSON(t, app, http.MethodPost, "/api/students", ada)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"A student with this email already exists"}`, string(body))

	resp, body = doJSON(t, app, http.MethodGet, "/api/students/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Student
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, created, fetched)

	resp, body = doJSON(t, app, http.MethodDelete, "/api/students/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = doJSON(t, app, http.MethodGet, "/api/students/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Student not found"}`, string(body))

	publisher.AssertNumberOfCalls(t, "PublishStudentEvent", 2)
}

func TestHealthAndMetrics(t *testing.T) {
	app, err := NewApp(testConfig(), zerolog.Nop(), nil)
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)
	assert.Contains(t, string(body), `"students":0`)

	resp, body = doJSON(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "studentreg_students 0")
	assert.Contains(t, string(body), "studentreg_http_requests_total")
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	app, err := NewApp(cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Nil(t, app.Metrics)

	resp, _ := doJSON(t, app, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminSeeding(t *testing.T) {
	cfg := testConfig()
	cfg.AdminUsername = "registrar"
	cfg.AdminPassword = "correct-horse"

	app, err := NewApp(cfg, zerolog.Nop(), nil)
	require.NoError(t, err)

	user, err := app.Users.VerifyPassword("registrar", "correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	cfg.AdminPassword = "short"
	_, err = NewApp(cfg, zerolog.Nop(), nil)
	assert.Error(t, err)
}

func TestPanicIsObserved(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(testConfig(), zerolog.New(&logs), nil)
	require.NoError(t, err)
	app.Fiber.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp, body := doJSON(t, app, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Internal server error"}`, string(body))

	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.RequestsTotal.WithLabelValues("GET", "/panic", "500")))
	assert.Contains(t, logs.String(), `"path":"/panic"`)
	assert.Contains(t, logs.String(), `"status":500`)
}

func TestUpdateCountsOnlyUpdateOperations(t *testing.T) {
	app, err := NewApp(testConfig(), zerolog.Nop(), nil)
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodPost, "/api/students", map[string]string{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"email":          "ada@example.com",
		"phone":          "555-123-4567",
		"course":         "Computer Science",
		"enrollmentDate": "2024-09-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created models.Student
	require.NoError(t, json.Unmarshal(body, &created))

	resp, _ = doJSON(t, app, http.MethodPut, "/api/students/"+created.ID, map[string]string{"course": "Data Science"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPut, "/api/students/unknown", map[string]string{"course": "Data Science"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	ops := app.Metrics.StudentOperations
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("update", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("update", "not_found")))
	assert.Equal(t, 0.0, testutil.ToFloat64(ops.WithLabelValues("get", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(ops.WithLabelValues("get", "not_found")))
}
