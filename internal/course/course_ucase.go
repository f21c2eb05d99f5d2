package course

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CourseUseCaseImpl loads courses and derives per-viewer completion
type CourseUseCaseImpl struct {
	Directory domain.CourseDirectory
	Progress  domain.ProgressService
}

var _ domain.CourseUseCase = &CourseUseCaseImpl{}

// NewCourseUseCase ...
func NewCourseUseCase(
	Directory domain.CourseDirectory,
	Progress domain.ProgressService,
) *CourseUseCaseImpl {
	return &CourseUseCaseImpl{Directory, Progress}
}

// ListCourses courses offered by the directory
func (cu *CourseUseCaseImpl) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.ListCourses", "service")
	defer apmSpan.End()

	courses, err := cu.Directory.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Course, 0, len(courses))
	for _, c := range courses {
		if c == nil {
			continue
		}
		normalizeCourse(c)
		result = append(result, c)
	}
	return result, nil
}

// LoadCourse course page data: every module with its completion counts
func (cu *CourseUseCaseImpl) LoadCourse(ctx context.Context, courseID domain.ID, viewer domain.Viewer) (*domain.CourseView, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.LoadCourse", "service")
	defer apmSpan.End()

	course, progress, err := cu.fetch(ctx, courseID, viewer)
	if err != nil {
		return nil, err
	}

	view := &domain.CourseView{
		Course:  course.Summary(),
		Modules: make([]domain.ModuleEntry, 0, len(course.Modules)),
	}
	for i := range course.Modules {
		m := &course.Modules[i]
		mp := AggregateModule(m.Lessons, progress)
		view.Modules = append(view.Modules, domain.ModuleEntry{Module: m.Summary(), Progress: mp})
		view.Progress = view.Progress.Add(mp)
	}
	return view, nil
}

// LoadModule module page data: sorted lessons with completion marks
func (cu *CourseUseCaseImpl) LoadModule(ctx context.Context, courseID, moduleID domain.ID, viewer domain.Viewer) (*domain.ModuleView, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.LoadModule", "service")
	defer apmSpan.End()

	course, progress, err := cu.fetch(ctx, courseID, viewer)
	if err != nil {
		return nil, err
	}
	module := course.FindModule(moduleID)
	if module == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrModuleNotFound, moduleID)
	}

	lessons := SortLessons(module.Lessons)
	rows := make([]domain.LessonView, 0, len(lessons))
	for i := range lessons {
		l := &lessons[i]
		rows = append(rows, domain.LessonView{
			Lesson:     *l,
			HasContent: HasContent(l),
			Completed:  IsLessonComplete(l, progress),
		})
	}
	return &domain.ModuleView{
		Course:   course.Summary(),
		Module:   module.Summary(),
		Lessons:  rows,
		Progress: AggregateModule(lessons, progress),
	}, nil
}

// fetch requests the course and the viewer's progress side by side. Only the
// course failing is an error.
func (cu *CourseUseCaseImpl) fetch(ctx context.Context, courseID domain.ID, viewer domain.Viewer) (*domain.Course, *domain.ProgressRecord, error) {
	var (
		course   *domain.Course
		progress = domain.EmptyProgress()
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := cu.Directory.GetCourse(gctx, courseID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
		}
		course = c
		return nil
	})
	g.Go(func() error {
		progress = cu.progressOrEmpty(gctx, courseID, viewer)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	normalizeCourse(course)
	return course, progress, nil
}

// progressOrEmpty any progress failure degrades to "nothing completed"
func (cu *CourseUseCaseImpl) progressOrEmpty(ctx context.Context, courseID domain.ID, viewer domain.Viewer) *domain.ProgressRecord {
	if cu.Progress == nil {
		return domain.EmptyProgress()
	}
	logger := logging.ExtractLoggerFromContext(ctx)

	record, err := cu.Progress.GetCourseProgress(ctx, courseID, viewer)
	switch {
	case err == nil && record != nil:
		return record
	case err == nil:
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, context.Canceled):
		logger.Debug("Course progress unavailable", zap.String("course.id", courseID.String()), zap.Error(err))
	default:
		logger.Warn("Failed to fetch course progress", zap.String("course.id", courseID.String()), zap.Error(err))
	}
	return domain.EmptyProgress()
}

// normalizeCourse decodes encoded slide decks once, at the loading boundary
func normalizeCourse(c *domain.Course) {
	if c == nil {
		return
	}
	for i := range c.Modules {
		lessons := c.Modules[i].Lessons
		for j := range lessons {
			lessons[j].Slides = lessons[j].Slides.Normalize()
		}
	}
}
