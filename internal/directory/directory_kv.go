package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/driver"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// listConcurrency course records fetched at once by ListCourses
const listConcurrency = 8

// KVDirectory reads course records published into a key-value store.
//
// Each course is a JSON document under {prefix}course:{id}, the list
// {prefix}courses holds the ids in display order.
type KVDirectory struct {
	kv     driver.KeyValueDB
	prefix string
}

var _ domain.CourseDirectory = &KVDirectory{}

// NewKVDirectory ...
func NewKVDirectory(kv driver.KeyValueDB, prefix string) *KVDirectory {
	return &KVDirectory{kv, prefix}
}

func (kd *KVDirectory) courseKey(id domain.ID) string {
	return kd.prefix + "course:" + id.String()
}

func (kd *KVDirectory) listKey() string {
	return kd.prefix + "courses"
}

// GetCourse implement domain.CourseDirectory
func (kd *KVDirectory) GetCourse(ctx context.Context, id domain.ID) (*domain.Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "KVDirectory.GetCourse", "db.redis")
	defer apmSpan.End()

	raw, err := kd.kv.Get(ctx, kd.courseKey(id))
	if errors.Is(err, driver.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}

	course := new(domain.Course)
	if err := json.Unmarshal([]byte(raw), course); err != nil {
		return nil, fmt.Errorf("%w: malformed record %s: %w", domain.ErrServiceUnavailable, kd.courseKey(id), err)
	}
	if course.ID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, id)
	}
	return course, nil
}

// ListCourses implement domain.CourseDirectory. Ids listed without a record
// are skipped.
func (kd *KVDirectory) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "KVDirectory.ListCourses", "db.redis")
	defer apmSpan.End()

	ids, err := kd.kv.Range(ctx, kd.listKey())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}

	logger := logging.ExtractLoggerFromContext(ctx)
	slots := make([]*domain.Course, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, id := range ids {
		i, id := i, domain.ID(id)
		g.Go(func() error {
			course, err := kd.GetCourse(gctx, id)
			if errors.Is(err, domain.ErrCourseNotFound) {
				logger.Warn("Listed course has no record", zap.String("course.id", id.String()))
				return nil
			}
			slots[i] = course
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	courses := make([]*domain.Course, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			courses = append(courses, c)
		}
	}
	return courses, nil
}
