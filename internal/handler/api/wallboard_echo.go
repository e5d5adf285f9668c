package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"Wallboard/internal/domain/models"
	"Wallboard/internal/service/ratelimit"
	xhttp "Wallboard/pkg/http"
	xlogger "Wallboard/pkg/logger"
)

// StatusSource exposes the controller status readout.
type StatusSource interface {
	ID() string
	Status() models.StatusReadout
}

// SceneSelector exposes the rotator to HTTP callers.
type SceneSelector interface {
	Active() models.SceneView
	RequestSelect(i int) models.SceneView
}

// WallboardEchoHandler serves the local control surface.
type WallboardEchoHandler struct {
	logger  *xlogger.Logger
	status  StatusSource
	scenes  SceneSelector
	ws      http.Handler
	limiter *ratelimit.Limiter
}

// NewWallboardEchoHandler creates the handler. ws may be nil when the
// websocket display is disabled.
func NewWallboardEchoHandler(logger *xlogger.Logger, status StatusSource, scenes SceneSelector, ws http.Handler, limiter *ratelimit.Limiter) *WallboardEchoHandler {
	return &WallboardEchoHandler{logger: logger, status: status, scenes: scenes, ws: ws, limiter: limiter}
}

func (h *WallboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health/live", h.Live)
	e.GET("/health/ready", h.Ready)
	e.GET("/status", h.Status)
	e.POST("/scenes/:index", h.SelectScene)
	if h.ws != nil {
		e.GET("/ws", echo.WrapHandler(h.ws))
	}
}

func (h *WallboardEchoHandler) Live(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Ready reports whether at least one snapshot has been applied.
func (h *WallboardEchoHandler) Ready(c echo.Context) error {
	st := h.status.Status()
	if st.LastSuccess.IsZero() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("no snapshot received yet"))
	}
	return xhttp.SuccessResponse(c, map[string]string{
		"status":     "ready",
		"connection": string(st.Connection),
		"freshness":  string(st.Freshness),
	})
}

func (h *WallboardEchoHandler) Status(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, models.StatusResponse{
		Instance: h.status.ID(),
		Status:   h.status.Status(),
		Scene:    h.scenes.Active(),
	})
}

func (h *WallboardEchoHandler) SelectScene(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("scene selection rate limit exceeded"))
	}

	req := &models.SceneSelectRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	view := h.scenes.RequestSelect(req.Index)
	h.logger.Info("scene selected",
		xlogger.Int("index", view.Index),
		xlogger.String("scene", string(view.Scene)),
		xlogger.String("remote", c.RealIP()),
	)
	return xhttp.SuccessResponse(c, view)
}
