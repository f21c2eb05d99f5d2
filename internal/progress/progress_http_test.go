package progress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressAPI(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		switch r.Header.Get("Authorization") {
		case "Bearer good":
		case "Bearer banned":
			w.WriteHeader(http.StatusForbidden)
			return
		case "Bearer flaky":
			w.WriteHeader(http.StatusBadGateway)
			return
		default:
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/courses/money-101/progress" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"lessonProgress":[{"lessonId":3,"status":"completed"},{"lessonId":"4","status":"started"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProgress(t *testing.T) {
	var calls int32
	hp := NewHTTPProgress(newProgressAPI(t, &calls).URL, time.Second)

	record, err := hp.GetCourseProgress(context.Background(), "money-101", domain.Viewer{Token: "good"})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("money-101"), record.CourseID)
	assert.Equal(t, []domain.LessonProgress{
		{LessonID: "3", Status: domain.StatusCompleted},
		{LessonID: "4", Status: "started"},
	}, record.LessonProgress)
}

func TestHTTPProgressFailures(t *testing.T) {
	var calls int32
	hp := NewHTTPProgress(newProgressAPI(t, &calls).URL, time.Second)

	_, err := hp.GetCourseProgress(context.Background(), "money-101", domain.Viewer{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "anonymous viewers never reach the service")

	_, err = hp.GetCourseProgress(context.Background(), "money-101", domain.Viewer{Token: "expired"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = hp.GetCourseProgress(context.Background(), "money-101", domain.Viewer{Token: "banned"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = hp.GetCourseProgress(context.Background(), "money-101", domain.Viewer{Token: "flaky"})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNoProgress(t *testing.T) {
	_, err := NoProgress{}.GetCourseProgress(context.Background(), "money-101", domain.Viewer{Token: "good"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
