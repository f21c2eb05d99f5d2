package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/ericzhangohoh/caplet/internal/domain"
	infra "github.com/ericzhangohoh/caplet/internal/infrastructure"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/auth"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/validate"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// navigateRequest a client navigation, RequestID is echoed in the reply
type navigateRequest struct {
	RequestID string `json:"requestId,omitempty"`
	CourseID  string `json:"courseId" validate:"required,max=128,printascii,excludes=/"`
	ModuleID  string `json:"moduleId" validate:"required,max=128,printascii,excludes=/"`
}

type navigateReply struct {
	RequestID string             `json:"requestId,omitempty"`
	Module    *domain.ModuleView `json:"module,omitempty"`
	Error     interface{}        `json:"error,omitempty"`
}

// NavigateHandler module loads over a websocket. Each frame starts a load and
// cancels the one still in flight, so a fast clicking viewer only ever gets
// the module they landed on.
type NavigateHandler struct {
	courseUseCase domain.CourseUseCase
	jwtUtil       *auth.JWTUtil
	validator     validate.Validator
	websocket     *infra.Websocket
}

// NewNavigateHandler ...
func NewNavigateHandler(
	CourseUseCase domain.CourseUseCase,
	JWTUtil *auth.JWTUtil,
	Validator validate.Validator,
	Websocket *infra.Websocket,
) *NavigateHandler {
	return &NavigateHandler{CourseUseCase, JWTUtil, Validator, Websocket}
}

// HandleNavigate GET /api/v1/ws/navigate, the viewer is read once from the
// upgrading request
func (nh *NavigateHandler) HandleNavigate(c echo.Context) error {
	viewer := viewerFrom(c, nh.jwtUtil)
	return nh.websocket.WithHeartbeat(func(ctx context.Context, conn *websocket.Conn) error {
		return nh.serve(ctx, conn, viewer)
	})(c)
}

func (nh *NavigateHandler) serve(ctx context.Context, conn *websocket.Conn, viewer domain.Viewer) error {
	var (
		writeLock sync.Mutex
		inflight  sync.WaitGroup
		cancel    context.CancelFunc = func() {}
	)
	defer func() {
		cancel()
		inflight.Wait()
	}()

	write := func(loadCtx context.Context, reply *navigateReply) {
		writeLock.Lock()
		defer writeLock.Unlock()
		if loadCtx.Err() != nil {
			return
		}
		if err := conn.WriteJSON(reply); err != nil {
			logging.ExtractLoggerFromContext(ctx).Debug("Failed to write navigation reply", zap.Error(err))
		}
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		req := new(navigateRequest)
		if err := json.Unmarshal(message, req); err != nil {
			write(ctx, &navigateReply{Error: NewRESTStandardError(http.StatusBadRequest, "malformed navigation frame")})
			continue
		}
		if errs := nh.validator.Struct(req); errs != nil {
			write(ctx, &navigateReply{
				RequestID: req.RequestID,
				Error:     NewRESTValidationError(http.StatusBadRequest, "invalid navigation frame", errs),
			})
			continue
		}

		cancel()
		var loadCtx context.Context
		loadCtx, cancel = context.WithCancel(ctx)
		inflight.Add(1)
		go func(loadCtx context.Context, req *navigateRequest) {
			defer inflight.Done()
			write(loadCtx, nh.load(loadCtx, req, viewer))
		}(loadCtx, req)
	}
}

func (nh *NavigateHandler) load(ctx context.Context, req *navigateRequest, viewer domain.Viewer) *navigateReply {
	view, err := nh.courseUseCase.LoadModule(ctx, domain.ID(req.CourseID), domain.ID(req.ModuleID), viewer)
	if err != nil {
		code, detail := statusFromError(err)
		return &navigateReply{RequestID: req.RequestID, Error: NewRESTStandardError(code, detail)}
	}
	return &navigateReply{RequestID: req.RequestID, Module: view}
}
