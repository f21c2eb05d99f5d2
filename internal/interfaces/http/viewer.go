package http

import (
	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/auth"
	"github.com/labstack/echo/v4"
)

// viewerFrom request credential, anonymous when none is presented. The token
// is passed on as is, the progress backend decides whether it is any good.
func viewerFrom(c echo.Context, ju *auth.JWTUtil) domain.Viewer {
	token, err := ju.ExtractToken(c)
	if err != nil {
		return domain.Viewer{}
	}
	return domain.Viewer{Token: token}
}

func traceIDFrom(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
