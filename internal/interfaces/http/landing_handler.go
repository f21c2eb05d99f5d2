package http

import (
	"net/http"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"github.com/ericzhangohoh/caplet/internal/landing"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LandingHandler .
type LandingHandler struct {
	courseUseCase domain.CourseUseCase
	content       *landing.Content
}

// NewLandingHandler ...
func NewLandingHandler(CourseUseCase domain.CourseUseCase, Content *landing.Content) *LandingHandler {
	return &LandingHandler{CourseUseCase, Content}
}

// HandleLandingPage GET /
func (lh *LandingHandler) HandleLandingPage(c echo.Context) error {
	return c.Render(http.StatusOK, "landing", lh.buildPage(c))
}

// HandleGetLanding GET /api/v1/landing
func (lh *LandingHandler) HandleGetLanding(c echo.Context) error {
	return c.JSON(http.StatusOK, lh.buildPage(c))
}

// HandleGetFAQ GET /api/v1/faq?open=1,3
func (lh *LandingHandler) HandleGetFAQ(c echo.Context) error {
	return c.JSON(http.StatusOK, landing.BuildFAQ(lh.content, lh.openSet(c)))
}

// buildPage a failing course list still renders the page, with the
// "Growing" placeholders
func (lh *LandingHandler) buildPage(c echo.Context) *landing.Page {
	ctx := c.Request().Context()
	courses, err := lh.courseUseCase.ListCourses(ctx)
	if err != nil {
		logging.ExtractLoggerFromContext(ctx).Warn("Failed to list courses for the landing page", zap.Error(err))
		courses = nil
	}
	return landing.BuildPage(lh.content, courses, lh.openSet(c))
}

func (lh *LandingHandler) openSet(c echo.Context) landing.OpenSet {
	return landing.ParseOpenSet(c.QueryParam("open"), len(lh.content.FAQ))
}
