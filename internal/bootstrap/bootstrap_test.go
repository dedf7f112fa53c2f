package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/config"
)

const tokenHeader = "Authentication-Token"

func newTestConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Storage.Backend = config.StorageMemory
	cfg.Auth.TokenSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.Issuer = "admissions-test"
	cfg.Auth.TokenHeader = tokenHeader
	cfg.Auth.BcryptCost = 4
	cfg.Cache.Backend = config.CacheMemory
	cfg.Cache.Size = 16
	cfg.Cache.TTL = time.Minute
	cfg.Metrics.Path = "/metrics"
	cfg.Seed.Path = filepath.Join(t.TempDir(), "missing.yaml")
	return cfg
}

type client struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T, cfg *config.Config) *client {
	t.Helper()
	app, err := NewApp(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return &client{t: t, router: app.Router}
}

func (c *client) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *client) signUp(email, role string) string {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/register", "", map[string]string{
		"email": email, "password": "password123", "full_name": "Test User", "role": role,
	})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	var login dto.LoginResponse
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &login))
	if role == "" {
		role = "user"
	}
	require.Equal(c.t, role, login.Role)
	return login.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCourseCatalogLifecycle(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	admin := c.signUp("admin@example.com", "admin")

	w := c.do(http.MethodPost, "/api/admin/course", admin, map[string]string{"name": "MAD1", "code": "C123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Course Added", decode[dto.SuccessResponse](t, w).Message)

	w = c.do(http.MethodPost, "/api/admin/course", admin, map[string]string{"name": "MAD1", "code": "C999"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodPost, "/api/admin/course", admin, map[string]string{"name": " ", "code": "C999"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/api/admin/course?id=1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	course := decode[dto.CourseResponse](t, w)
	assert.Equal(t, "MAD1", course.Name)
	require.NotNil(t, course.Code)
	assert.Equal(t, "C123", *course.Code)

	w = c.do(http.MethodPut, "/api/admin/course", admin, map[string]any{"id": 1, "name": "Updated"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Course Updated", decode[dto.SuccessResponse](t, w).Message)

	w = c.do(http.MethodGet, "/api/admin/course/1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Updated", decode[dto.CourseResponse](t, w).Name)

	w = c.do(http.MethodGet, "/api/admin/course", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[dto.PaginatedResponse](t, w).Pagination.TotalItems)

	w = c.do(http.MethodDelete, "/api/admin/course", admin, map[string]any{"id": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/admin/course?id=1", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRejectUsers(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	user := c.signUp("user@example.com", "")

	w := c.do(http.MethodPost, "/api/admin/course", user, map[string]string{"name": "MAD1", "code": "C123"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodGet, "/api/admin/student?user_id=1", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodGet, "/api/student", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStudentProfileSelfService(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	user := c.signUp("student@example.com", "")

	w := c.do(http.MethodGet, "/api/student", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "student details not found", decode[dto.ErrorResponse](t, w).Error)

	profile := map[string]any{"dob": "2004-05-17", "gender": "F", "bandwith": 50, "target_for_iitm": "BS"}
	w = c.do(http.MethodPost, "/api/student", user, profile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "student details added", decode[dto.SuccessResponse](t, w).Message)

	w = c.do(http.MethodPost, "/api/student", user, profile)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodGet, "/api/student", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.StudentResponse](t, w)
	assert.Equal(t, "2004-05-17", got.DOB)
	require.NotNil(t, got.Bandwidth)
	assert.Equal(t, "50", *got.Bandwidth)
	require.NotNil(t, got.TargetProgram)
	assert.Equal(t, "BS", *got.TargetProgram)

	w = c.do(http.MethodPut, "/api/student", user, map[string]any{"dob": "2004-13-40"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodDelete, "/api/student", user, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/student", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminMirrorActsOnTargetUser(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	admin := c.signUp("admin@example.com", "admin")
	user := c.signUp("user@example.com", "")

	w := c.do(http.MethodPost, "/api/school", admin, map[string]any{"school_name": "Admin School"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/admin/school", admin, map[string]any{"school_name": "KV"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, "/api/admin/school", admin, map[string]any{"user_id": 99, "school_name": "KV"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPost, "/api/admin/school", admin, map[string]any{"user_id": 2, "school_name": "KV", "marks": 91.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/school", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	school := decode[dto.SchoolResponse](t, w)
	assert.Equal(t, "KV", school.SchoolName)
	require.NotNil(t, school.Marks)
	assert.Equal(t, "91.5", *school.Marks)

	w = c.do(http.MethodDelete, "/api/admin/school?user_id=2", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = c.do(http.MethodGet, "/api/school", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the admin's own row is untouched
	w = c.do(http.MethodGet, "/api/school", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Admin School", decode[dto.SchoolResponse](t, w).SchoolName)
}

func TestCompletedCourses(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	admin := c.signUp("admin@example.com", "admin")
	user := c.signUp("user@example.com", "")

	w := c.do(http.MethodPost, "/api/admin/course", admin, map[string]string{"name": "MAD1", "code": "C123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/completedcourse", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPost, "/api/completedcourse", user, map[string]any{"course_id": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPost, "/api/completedcourse", user, map[string]any{"course_id": 1, "marks": 80, "term_of_completion": "Jan 2024"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/completedcourse", user, map[string]any{"course_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodGet, "/api/completedcourse", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.CompletedCourseResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "MAD1", list[0].Name)
	require.NotNil(t, list[0].Marks)
	assert.Equal(t, 80, *list[0].Marks)

	w = c.do(http.MethodDelete, "/api/admin/course/1", admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodDelete, "/api/completedcourse?course_id=1", user, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodDelete, "/api/admin/course/1", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	user := c.signUp("user@example.com", "")

	w := c.do(http.MethodGet, "/api/student", user, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPost, "/api/logout", user, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/student", user, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailures(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	c.signUp("user@example.com", "")

	wrongPassword := c.do(http.MethodPost, "/api/login", "", map[string]string{"email": "user@example.com", "password": "nope-nope"})
	unknownEmail := c.do(http.MethodPost, "/api/login", "", map[string]string{"email": "ghost@example.com", "password": "nope-nope"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, decode[dto.ErrorResponse](t, wrongPassword), decode[dto.ErrorResponse](t, unknownEmail))

	w := c.do(http.MethodPost, "/api/register", "", map[string]string{
		"email": "USER@example.com", "password": "password123", "full_name": "Again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	c := newClient(t, newTestConfig(t))

	w := c.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[dto.HealthResponse](t, w)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, config.StorageMemory, health.Storage)

	w = c.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestMetricsDisabled(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Metrics.Disabled = true
	c := newClient(t, cfg)

	w := c.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRegistrationDisabled(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Auth.DisableAdminRegistration = true
	c := newClient(t, cfg)

	w := c.do(http.MethodPost, "/api/register", "", map[string]string{
		"email": "admin@example.com", "password": "password123", "full_name": "Admin", "role": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodPost, "/api/login", "", map[string]string{"email": "admin@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", decode[dto.LoginResponse](t, w).Role)
}

func TestRecordEndpoints(t *testing.T) {
	tests := []struct {
		path     string
		label    string
		required string
		payload  map[string]any
		field    string
		want     string
	}{
		{
			path:     "/school",
			label:    "school details",
			required: "school_name",
			payload:  map[string]any{"school_name": "KV", "year_of_passing": 2021},
			field:    "year_of_passing",
			want:     "2021",
		},
		{
			path:     "/college",
			label:    "college details",
			required: "college_name",
			payload:  map[string]any{"college_name": "IIT Madras", "university": "IITM", "current_year": 2},
			field:    "current_year",
			want:     "2",
		},
		{
			path:     "/jee",
			label:    "jee details",
			required: "jee_qualified",
			payload:  map[string]any{"jee_qualified": true, "reg_id": "JEE123", "qualified_year": "2023"},
			field:    "jee_qualified",
			want:     "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := newClient(t, newTestConfig(t))
			admin := c.signUp("admin@example.com", "admin")
			user := c.signUp("user@example.com", "")

			for _, blank := range []any{"", "   "} {
				w := c.do(http.MethodPost, "/api"+tt.path, user, map[string]any{tt.required: blank})
				require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
				body := decode[dto.ErrorResponse](t, w)
				assert.Equal(t, dto.ErrorCodeValidationFailed, body.Code)
				assert.Equal(t, tt.required+" must not be blank", body.Fields[tt.required])
			}

			w := c.do(http.MethodPut, "/api"+tt.path, user, tt.payload)
			assert.Equal(t, http.StatusNotFound, w.Code)

			w = c.do(http.MethodPost, "/api"+tt.path, user, tt.payload)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.label+" added", decode[dto.SuccessResponse](t, w).Message)

			w = c.do(http.MethodGet, "/api"+tt.path, user, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, decode[map[string]any](t, w)[tt.field])

			w = c.do(http.MethodPut, "/api"+tt.path, user, tt.payload)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.label+" updated", decode[dto.SuccessResponse](t, w).Message)

			w = c.do(http.MethodGet, "/api/admin"+tt.path+"?user_id=2", admin, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, decode[map[string]any](t, w)[tt.field])

			w = c.do(http.MethodDelete, "/api/admin"+tt.path, admin, map[string]any{"user_id": 2})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.label+" deleted", decode[dto.SuccessResponse](t, w).Message)

			w = c.do(http.MethodGet, "/api"+tt.path, user, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestAdminMirrorCompletedCourses(t *testing.T) {
	c := newClient(t, newTestConfig(t))
	admin := c.signUp("admin@example.com", "admin")
	user := c.signUp("user@example.com", "")

	w := c.do(http.MethodPost, "/api/admin/course", admin, map[string]string{"name": "MAD1", "code": "C123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// user_id and course_id share one body
	w = c.do(http.MethodPost, "/api/admin/completedcourse", admin, map[string]any{"user_id": 2, "course_id": 1, "marks": 70})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/completedcourse", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]dto.CompletedCourseResponse](t, w), 1)

	w = c.do(http.MethodPut, "/api/admin/completedcourse", admin, map[string]any{"user_id": 2, "course_id": 1, "marks": 95})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/admin/completedcourse?user_id=2", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.CompletedCourseResponse](t, w)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Marks)
	assert.Equal(t, 95, *list[0].Marks)

	// the admin has no completions of their own
	w = c.do(http.MethodGet, "/api/completedcourse", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodDelete, "/api/admin/completedcourse", admin, map[string]any{"user_id": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodDelete, "/api/admin/completedcourse", admin, map[string]any{"user_id": 2, "course_id": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/completedcourse", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
