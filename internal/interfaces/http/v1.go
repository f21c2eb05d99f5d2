package http

import (
	"github.com/labstack/echo/v4"
)

func pageEndpoint(
	CourseHandler *CourseHandler,
	LandingHandler *LandingHandler,
	requestIDMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	return &endpoint{
		middlewares: []echo.MiddlewareFunc{requestIDMiddleware, traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				routes: []*route{
					{"GET", "/", LandingHandler.HandleLandingPage, nil},
				},
			},
			{
				prefix: "/courses",
				routes: []*route{
					{"GET", "", CourseHandler.HandleCoursesPage, nil},
					{"GET", "/:courseId", CourseHandler.HandleCoursePage, nil},
					{"GET", "/:courseId/modules/:moduleId", CourseHandler.HandleModulePage, nil},
				},
			},
		},
	}
}

func v1Endpoint(
	CourseHandler *CourseHandler,
	LandingHandler *LandingHandler,
	NavigateHandler *NavigateHandler,
	requestIDMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{requestIDMiddleware, traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/courses",
				routes: []*route{
					{"GET", "", CourseHandler.HandleListCourses, nil},
					{"GET", "/:courseId", CourseHandler.HandleGetCourse, nil},
					{"GET", "/:courseId/modules/:moduleId", CourseHandler.HandleGetModule, nil},
				},
			},
			{
				routes: []*route{
					{"GET", "/landing", LandingHandler.HandleGetLanding, nil},
					{"GET", "/faq", LandingHandler.HandleGetFAQ, nil},
				},
			},
			{
				prefix: "/ws",
				routes: []*route{
					{"GET", "/navigate", NavigateHandler.HandleNavigate, nil},
				},
			},
		},
	}
}
