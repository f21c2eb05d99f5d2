package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ericzhangohoh/caplet/internal/course"
	"github.com/ericzhangohoh/caplet/internal/domain"
	infra "github.com/ericzhangohoh/caplet/internal/infrastructure"
	"github.com/ericzhangohoh/caplet/internal/landing"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const moneyCourse = `{
	"id": "money-101",
	"title": "Money 101",
	"modules": [
		{
			"id": "budgeting",
			"title": "Budgeting without burnout",
			"lessons": [
				{"id": 4, "title": "Stub", "order": 4},
				{"id": 2, "title": "Weekly system", "order": 2, "content": "Plan the week"},
				{"id": 1, "title": "Why budget", "order": 1, "videoUrl": "https://video.example/1"},
				{"id": 3, "title": "Surprise costs", "order": 3, "slides": "[{\"title\": \"Rent week\"}]"}
			]
		},
		{"id": "empty", "title": "Coming soon", "lessons": []}
	]
}`

type stubDirectory struct {
	err error
	// nullEntries pads the course list with nil records
	nullEntries bool
}

func (sd *stubDirectory) GetCourse(ctx context.Context, id domain.ID) (*domain.Course, error) {
	if sd.err != nil {
		return nil, sd.err
	}
	if id != "money-101" {
		return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, id)
	}
	c := new(domain.Course)
	return c, json.Unmarshal([]byte(moneyCourse), c)
}

func (sd *stubDirectory) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	c, err := sd.GetCourse(ctx, "money-101")
	if err != nil {
		return nil, err
	}
	if sd.nullEntries {
		return []*domain.Course{nil, c, nil}, nil
	}
	return []*domain.Course{c}, nil
}

// stubProgress completes lessons 1 and 3 for the "good" token only
type stubProgress struct {
	tokens []string
}

func (sp *stubProgress) GetCourseProgress(ctx context.Context, courseID domain.ID, viewer domain.Viewer) (*domain.ProgressRecord, error) {
	sp.tokens = append(sp.tokens, viewer.Token)
	if viewer.Token != "good" {
		return nil, fmt.Errorf("%w: status 401", domain.ErrUnauthorized)
	}
	return &domain.ProgressRecord{LessonProgress: []domain.LessonProgress{
		{LessonID: "1", Status: domain.StatusCompleted},
		{LessonID: "3", Status: domain.StatusCompleted},
		{LessonID: "4", Status: domain.StatusCompleted},
	}}, nil
}

type failingPinger struct{ err error }

func (fp failingPinger) Ping(ctx context.Context) error { return fp.err }

func testConfig() *infra.AppConfig {
	option := new(infra.AppConfig)
	option.AppID = "caplet"
	option.Env = infra.EnvProduction
	option.Security.IDLength = 12
	option.Security.JWTMethod = "HS256"
	option.Security.TokenName = "caplet_token"
	return option
}

func newTestServer(t *testing.T, useCase domain.CourseUseCase, probes ...Pinger) *echo.Echo {
	t.Helper()
	app, err := NewServer(testConfig(), useCase, landing.DefaultContent(), probes, zap.NewNop())
	require.NoError(t, err)
	return app
}

func get(app *echo.Echo, path string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func withCookie(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "caplet_token", Value: token})
	}
}

func TestModulePage(t *testing.T) {
	progress := &stubProgress{}
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, progress))

	rec := get(app, "/courses/money-101/modules/budgeting", withCookie("good"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "Budgeting without burnout")
	assert.Contains(t, body, "2 / 4 complete")
	assert.Equal(t, 2, strings.Count(body, "✓ Completed"), "lesson 4 has no content and never counts")
	assert.Less(t, strings.Index(body, "1. Why budget"), strings.Index(body, "2. Weekly system"))
	assert.Less(t, strings.Index(body, "3. Surprise costs"), strings.Index(body, "4. Stub"))
	assert.Contains(t, body, `href="/courses/money-101"`)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, []string{"good"}, progress.tokens)
}

func TestModulePageProgressUnauthorized(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, &stubProgress{}))

	rec := get(app, "/courses/money-101/modules/budgeting", withCookie("expired"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "0 / 4 complete")
	assert.NotContains(t, body, "✓ Completed")
	assert.NotContains(t, body, `class="error"`)
}

func TestModulePageEmptyModule(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, &stubProgress{}))

	rec := get(app, "/courses/money-101/modules/empty")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No lessons in this module yet.")
	assert.NotContains(t, rec.Body.String(), " complete</p>")
}

func TestModulePageCourseFailure(t *testing.T) {
	upstream := fmt.Errorf("%w: dial tcp: connection refused", domain.ErrServiceUnavailable)
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{err: upstream}, &stubProgress{}))

	rec := get(app, "/courses/money-101/modules/budgeting")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Course service is unavailable")
	assert.Contains(t, body, `<a href="/courses">Back to courses</a>`)
	assert.NotContains(t, body, "Why budget")
}

func TestModulePageNotFound(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, &stubProgress{}))

	rec := get(app, "/courses/money-101/modules/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Module not found")
	assert.Contains(t, rec.Body.String(), `<a href="/courses/money-101">Back to course</a>`)

	rec = get(app, "/courses/money-999/modules/budgeting")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Course not found")
	assert.Contains(t, rec.Body.String(), `<a href="/courses">Back to courses</a>`)
}

func TestCoursePage(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, &stubProgress{}))

	rec := get(app, "/courses/money-101", withCookie("good"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 / 4 lessons complete")
	assert.Contains(t, rec.Body.String(), `href="/courses/money-101/modules/empty"`)
}

func TestCoursesPage(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, nil))
	rec := get(app, "/courses")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 modules · 4 lessons")

	app = newTestServer(t, course.NewCourseUseCase(&stubDirectory{err: domain.ErrServiceUnavailable}, nil))
	rec = get(app, "/courses")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestModuleAPI(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, &stubProgress{}))

	rec := get(app, "/api/v1/courses/money-101/modules/budgeting", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer good")
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Lessons []struct {
			Lesson     struct{ ID string }
			HasContent bool `json:"has_content"`
			Completed  bool
		}
		Progress struct {
			Completed int
			Total     int
			Percent   float64
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Lessons, 4)
	assert.Equal(t, "1", view.Lessons[0].Lesson.ID)
	assert.False(t, view.Lessons[3].HasContent)
	assert.Equal(t, 2, view.Progress.Completed)
	assert.Equal(t, 4, view.Progress.Total)
	assert.Equal(t, float64(50), view.Progress.Percent)
}

func TestAPIErrors(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, &stubProgress{}))

	rec := get(app, "/api/v1/courses/money-101/modules/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var restErr RESTStandardError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restErr))
	assert.Equal(t, "Module not found", restErr.Detail)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), restErr.TraceID)

	rec = get(app, "/api/v1/courses/"+strings.Repeat("x", 200))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var validationErr RESTValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &validationErr))
	require.Len(t, validationErr.InvalidParams, 1)
	assert.Equal(t, "courseId", validationErr.InvalidParams[0].Domain)

	rec = get(app, "/api/v1/nothing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":404`)
}

func TestLandingPage(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, nil))

	rec := get(app, "/?open=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Practical skills that stick")
	assert.Contains(t, body, "Yes. CapletEdu currently provides free educational services.")
	assert.NotContains(t, body, "No prior finance background is required.")
	assert.Contains(t, body, `href="/?open=0%2c1#faq"`)
	assert.Contains(t, body, "Money 101")
	assert.Contains(t, body, "4 lessons")

	rec = get(app, "/api/v1/landing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lesson_count":4`)

	app = newTestServer(t, course.NewCourseUseCase(&stubDirectory{err: errors.New("down")}, nil))
	rec = get(app, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Growing")
	assert.Contains(t, rec.Body.String(), "Updated weekly")
}

func TestFAQAPI(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, nil))

	rec := get(app, "/api/v1/faq?open=0,4")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []landing.FAQItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 5)
	assert.True(t, items[0].Open)
	assert.Equal(t, "4", items[0].ToggleQuery)
	assert.False(t, items[1].Open)
	assert.Equal(t, "0,1,4", items[1].ToggleQuery)
}

func TestLivenessProbe(t *testing.T) {
	useCase := course.NewCourseUseCase(&stubDirectory{}, nil)

	assert.Equal(t, http.StatusOK, get(newTestServer(t, useCase), "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		get(newTestServer(t, useCase, failingPinger{errors.New("redis down")}), "/healthz").Code)
}

func TestUnknownPage(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{}, nil))

	rec := get(app, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestCourseListToleratesNullEntries(t *testing.T) {
	app := newTestServer(t, course.NewCourseUseCase(&stubDirectory{nullEntries: true}, &stubProgress{}))

	for _, path := range []string{"/", "/courses", "/api/v1/courses", "/api/v1/landing"} {
		rec := get(app, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Money 101", path)
	}

	rec := get(app, "/api/v1/courses")
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}
