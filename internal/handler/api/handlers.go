// Package api wires the HTTP surface: the signal stream, on-demand
// analysis, configuration introspection, and push subscription management.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/internal/service/broadcast"
	"SignalPulse/internal/service/ratelimit"
	"SignalPulse/internal/service/webpush"
	"SignalPulse/internal/usecase"
	"SignalPulse/pkg/config"
	apphttp "SignalPulse/pkg/http"
	"SignalPulse/pkg/logger"
	"SignalPulse/pkg/util"
)

// Handler serves the public API.
type Handler struct {
	cfg         *config.Config
	scheduler   *usecase.Scheduler
	broadcaster *broadcast.Broadcaster
	store       drepo.SubscriptionStore
	vapid       webpush.VAPIDKeys
	limiter     *ratelimit.Limiter
	log         *logger.Logger
}

func NewHandler(
	cfg *config.Config,
	scheduler *usecase.Scheduler,
	broadcaster *broadcast.Broadcaster,
	store drepo.SubscriptionStore,
	vapid webpush.VAPIDKeys,
	limiter *ratelimit.Limiter,
	log *logger.Logger,
) *Handler {
	return &Handler{
		cfg:         cfg,
		scheduler:   scheduler,
		broadcaster: broadcaster,
		store:       store,
		vapid:       vapid,
		limiter:     limiter,
		log:         log,
	}
}

var _ apphttp.Handler = (*Handler)(nil)

// RegisterRoutes registers API routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/events", h.Events)
	e.GET("/ws", h.WebSocket)
	e.POST("/analyze", h.Analyze)
	e.GET("/config", h.Config)
	e.POST("/subscribe", h.Subscribe)
	e.GET("/vapid", h.VAPID)
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Analyze runs the engine on demand, streams the batch to subscribers,
// and returns it. Orders and pushes are never triggered from here.
// Requests are rate limited per client IP.
func (h *Handler) Analyze(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP()) {
		return apphttp.AppErrorResponse(c, apphttp.TooManyRequestsError("analyze rate limit exceeded"))
	}

	req := new(models.AnalyzeRequest)
	if errs := apphttp.ReadAndValidateRequest(c, req); errs != nil {
		return apphttp.BadRequestResponse(c, errs)
	}

	symbols := util.DedupeUpper(req.Symbols)
	batch, err := h.scheduler.Analyze(c.Request().Context(), symbols)
	if err != nil {
		h.log.Error("on-demand analysis failed", logger.Error(err))
		return apphttp.AppErrorResponse(c, apphttp.InternalError("analysis failed").WithError(err))
	}
	return apphttp.SuccessResponse(c, map[string]interface{}{"signals": batch})
}

// Config returns the effective engine configuration.
func (h *Handler) Config(c echo.Context) error {
	snap, err := h.cfg.Snapshot()
	if err != nil {
		h.log.Error("config snapshot failed", logger.Error(err))
		return apphttp.AppErrorResponse(c, apphttp.InternalErrorf("configuration snapshot: %v", err))
	}
	return apphttp.SuccessResponse(c, map[string]interface{}{
		"symbols":            snap.Symbols,
		"equity":             snap.Equity,
		"risk_per_trade_pct": snap.RiskPerTradePct,
		"period":             snap.Period,
		"interval":           snap.Interval,
		"auto_trade":         snap.AutoTrade,
		"poll_interval_sec":  int(h.cfg.Engine.PollInterval.Seconds()),
	})
}

// Subscribe registers a browser push subscription.
func (h *Handler) Subscribe(c echo.Context) error {
	req := new(models.SubscribeRequest)
	if errs := apphttp.ReadAndValidateRequest(c, req); errs != nil {
		return apphttp.BadRequestResponse(c, errs)
	}

	sub := models.PushSubscription{
		Endpoint: req.Endpoint,
		Keys: models.PushKeys{
			P256dh: req.Keys.P256dh,
			Auth:   req.Keys.Auth,
		},
	}
	if err := h.store.Add(sub); err != nil {
		h.log.Error("store subscription failed", logger.Error(err))
		return apphttp.AppErrorResponse(c, apphttp.InternalError("store subscription").WithError(err))
	}
	return apphttp.SuccessResponse(c, map[string]bool{"ok": true})
}

// VAPID returns the public key browsers need to subscribe.
func (h *Handler) VAPID(c echo.Context) error {
	return apphttp.SuccessResponse(c, map[string]string{"public_key": h.vapid.Public})
}
