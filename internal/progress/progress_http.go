package progress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/driver"
	"go.elastic.co/apm"
)

// HTTPProgress reads progress from the progress API on the viewer's behalf
type HTTPProgress struct {
	client *driver.RESTClient
}

var _ domain.ProgressService = &HTTPProgress{}

// NewHTTPProgress ...
func NewHTTPProgress(baseURL string, timeout time.Duration) *HTTPProgress {
	return &HTTPProgress{driver.NewRESTClient(baseURL, timeout)}
}

// GetCourseProgress GET /courses/{id}/progress with the viewer token. An
// anonymous viewer is refused without calling the service.
func (hp *HTTPProgress) GetCourseProgress(ctx context.Context, courseID domain.ID, viewer domain.Viewer) (*domain.ProgressRecord, error) {
	if viewer.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	apmSpan, ctx := apm.StartSpan(ctx, "HTTPProgress.GetCourseProgress", "external.http")
	defer apmSpan.End()

	record := domain.EmptyProgress()
	path := fmt.Sprintf("/courses/%s/progress", url.PathEscape(courseID.String()))
	if err := hp.client.GetJSON(ctx, path, viewer.Token, record); err != nil {
		var se *driver.StatusError
		if errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}
	if record.CourseID == "" {
		record.CourseID = courseID
	}
	return record, nil
}
