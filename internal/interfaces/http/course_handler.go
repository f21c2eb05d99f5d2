package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/auth"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/validate"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type courseParams struct {
	CourseID string `param:"courseId" validate:"required,max=128,printascii,excludes=/"`
}

type moduleParams struct {
	CourseID string `param:"courseId" validate:"required,max=128,printascii,excludes=/"`
	ModuleID string `param:"moduleId" validate:"required,max=128,printascii,excludes=/"`
}

// courseListItem a row of GET /courses
type courseListItem struct {
	domain.CourseSummary
	ModuleCount int `json:"module_count"`
	LessonCount int `json:"lesson_count"`
}

type coursesPage struct {
	Courses []*domain.Course
	Error   string
}

type errorPage struct {
	Message   string
	BackURL   string
	BackLabel string
}

// CourseHandler course and module endpoints, JSON and HTML
type CourseHandler struct {
	courseUseCase domain.CourseUseCase
	jwtUtil       *auth.JWTUtil
	validator     validate.Validator
}

// NewCourseHandler ...
func NewCourseHandler(CourseUseCase domain.CourseUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *CourseHandler {
	return &CourseHandler{CourseUseCase, JWTUtil, Validator}
}

// HandleListCourses GET /api/v1/courses
func (ch *CourseHandler) HandleListCourses(c echo.Context) error {
	courses, err := ch.courseUseCase.ListCourses(c.Request().Context())
	if err != nil {
		return ch.jsonLoadError(c, err)
	}
	items := make([]courseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, courseListItem{
			CourseSummary: course.Summary(),
			ModuleCount:   len(course.Modules),
			LessonCount:   course.LessonCount(),
		})
	}
	return c.JSON(http.StatusOK, items)
}

// HandleGetCourse GET /api/v1/courses/:courseId
func (ch *CourseHandler) HandleGetCourse(c echo.Context) error {
	params := courseParams{CourseID: c.Param("courseId")}
	if errs := ch.validator.Struct(&params); errs != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "invalid path parameters", errs).SetTraceID(traceIDFrom(c)))
	}

	view, err := ch.courseUseCase.LoadCourse(c.Request().Context(), domain.ID(params.CourseID), viewerFrom(c, ch.jwtUtil))
	if err != nil {
		return ch.jsonLoadError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// HandleGetModule GET /api/v1/courses/:courseId/modules/:moduleId
func (ch *CourseHandler) HandleGetModule(c echo.Context) error {
	params := moduleParams{CourseID: c.Param("courseId"), ModuleID: c.Param("moduleId")}
	if errs := ch.validator.Struct(&params); errs != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "invalid path parameters", errs).SetTraceID(traceIDFrom(c)))
	}

	view, err := ch.courseUseCase.LoadModule(c.Request().Context(),
		domain.ID(params.CourseID), domain.ID(params.ModuleID), viewerFrom(c, ch.jwtUtil))
	if err != nil {
		return ch.jsonLoadError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// HandleCoursesPage GET /courses
func (ch *CourseHandler) HandleCoursesPage(c echo.Context) error {
	courses, err := ch.courseUseCase.ListCourses(c.Request().Context())
	if err != nil {
		code, msg := statusFromError(err)
		ch.logLoadError(c, code, err)
		return c.Render(code, "courses", coursesPage{Error: msg})
	}
	return c.Render(http.StatusOK, "courses", coursesPage{Courses: courses})
}

// HandleCoursePage GET /courses/:courseId
func (ch *CourseHandler) HandleCoursePage(c echo.Context) error {
	params := courseParams{CourseID: c.Param("courseId")}
	if errs := ch.validator.Struct(&params); errs != nil {
		return ch.renderLoadError(c, params.CourseID, domain.ErrCourseNotFound)
	}

	view, err := ch.courseUseCase.LoadCourse(c.Request().Context(), domain.ID(params.CourseID), viewerFrom(c, ch.jwtUtil))
	if err != nil {
		return ch.renderLoadError(c, params.CourseID, err)
	}
	return c.Render(http.StatusOK, "course", view)
}

// HandleModulePage GET /courses/:courseId/modules/:moduleId
func (ch *CourseHandler) HandleModulePage(c echo.Context) error {
	params := moduleParams{CourseID: c.Param("courseId"), ModuleID: c.Param("moduleId")}
	if errs := ch.validator.Struct(&params); errs != nil {
		return ch.renderLoadError(c, params.CourseID, domain.ErrModuleNotFound)
	}

	view, err := ch.courseUseCase.LoadModule(c.Request().Context(),
		domain.ID(params.CourseID), domain.ID(params.ModuleID), viewerFrom(c, ch.jwtUtil))
	if err != nil {
		return ch.renderLoadError(c, params.CourseID, err)
	}
	return c.Render(http.StatusOK, "module", view)
}

func (ch *CourseHandler) jsonLoadError(c echo.Context, err error) error {
	code, body := restError(err, traceIDFrom(c))
	ch.logLoadError(c, code, err)
	return c.JSON(code, body)
}

// renderLoadError error page, a missing module links back to its course and
// anything else back to the course list
func (ch *CourseHandler) renderLoadError(c echo.Context, courseID string, err error) error {
	code, msg := statusFromError(err)
	ch.logLoadError(c, code, err)

	page := errorPage{Message: msg, BackURL: "/courses", BackLabel: "Back to courses"}
	if errors.Is(err, domain.ErrModuleNotFound) {
		page.BackURL = "/courses/" + url.PathEscape(courseID)
		page.BackLabel = "Back to course"
	}
	return c.Render(code, "error", page)
}

func (ch *CourseHandler) logLoadError(c echo.Context, code int, err error) {
	logger := logging.ExtractLoggerFromContext(c.Request().Context())
	if code >= http.StatusInternalServerError {
		logger.Warn("Failed to load course", zap.Int("http.response.status_code", code), zap.Error(err))
		return
	}
	logger.Debug("Course lookup missed", zap.Error(err))
}
