package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/driver"
	"go.elastic.co/apm"
)

// HTTPDirectory reads courses from the course API
type HTTPDirectory struct {
	client *driver.RESTClient
}

var _ domain.CourseDirectory = &HTTPDirectory{}

// NewHTTPDirectory ...
func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	return &HTTPDirectory{driver.NewRESTClient(baseURL, timeout)}
}

// GetCourse GET /courses/{id}
func (hd *HTTPDirectory) GetCourse(ctx context.Context, id domain.ID) (*domain.Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "HTTPDirectory.GetCourse", "external.http")
	defer apmSpan.End()

	course := new(domain.Course)
	if err := hd.client.GetJSON(ctx, "/courses/"+url.PathEscape(id.String()), "", course); err != nil {
		return nil, courseError(id, err)
	}
	// a null body decodes to a course without identity
	if course.ID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, id)
	}
	return course, nil
}

// ListCourses GET /courses, the body may be a bare array or {"courses": [...]}
func (hd *HTTPDirectory) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "HTTPDirectory.ListCourses", "external.http")
	defer apmSpan.End()

	var raw json.RawMessage
	if err := hd.client.GetJSON(ctx, "/courses", "", &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}
	courses, err := decodeCourseList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}
	return courses, nil
}

// decodeCourseList null entries are dropped
func decodeCourseList(raw json.RawMessage) ([]*domain.Course, error) {
	var courses []*domain.Course
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &courses); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Courses []*domain.Course `json:"courses"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, err
		}
		courses = envelope.Courses
	}

	result := courses[:0]
	for _, c := range courses {
		if c != nil {
			result = append(result, c)
		}
	}
	return result, nil
}

func courseError(id domain.ID, err error) error {
	var se *driver.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrCourseNotFound, id)
	}
	return fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
}
