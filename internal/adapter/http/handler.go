package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"duskvale/internal/app/ports"
	"duskvale/internal/app/replay"
	"duskvale/internal/app/session"
	"duskvale/internal/app/turn"
	"duskvale/internal/domain/quest"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const playerIDHeader = "X-Player-ID"

type Handler struct {
	SessionUC session.UseCase
	TurnUC    turn.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider

	// NewAnonID mints an identity when a client arrives without the
	// player header. The minted value is echoed back in the response.
	NewAnonID func() string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api/session")
	api.POST("/start", h.start)
	api.GET("/:id", h.state)
	api.GET("/:id/intro", h.intro)
	api.POST("/:id/act", h.act)
	api.POST("/:id/end", h.end)
	api.GET("/:id/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type actRequest struct {
	Action   string `json:"action"`
	UseMP    int    `json:"use_mp"`
	UseHeal  bool   `json:"use_heal"`
	UseBoost bool   `json:"use_boost"`
	Seed     *int64 `json:"seed,omitempty"`
}

func (h Handler) start(c context.Context, ctx *app.RequestContext) {
	anonID := headerPlayerID(ctx)
	if anonID == "" {
		if h.NewAnonID == nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", "missing x-player-id header")
			return
		}
		anonID = h.NewAnonID()
	}
	ctx.Response.Header.Set(playerIDHeader, anonID)

	resp, err := h.SessionUC.Start(c, session.StartRequest{AnonID: anonID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	if resp.Resumed {
		ctx.JSON(consts.StatusOK, resp)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SessionUC.State(c, session.StateRequest{
		SessionID: string(ctx.Param("id")),
		PlayerID:  playerFilter(c, h, ctx),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) intro(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SessionUC.Intro(c, session.IntroRequest{
		SessionID: string(ctx.Param("id")),
		PlayerID:  playerFilter(c, h, ctx),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) act(c context.Context, ctx *app.RequestContext) {
	var body actRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	req := turn.Request{
		SessionID:  string(ctx.Param("id")),
		PlayerID:   playerFilter(c, h, ctx),
		ActionText: body.Action,
		UseMP:      body.UseMP,
		UseHeal:    body.UseHeal,
		UseBoost:   body.UseBoost,
	}
	if body.Seed != nil {
		req.Rand = quest.SeededSource(*body.Seed)
	}

	resp, err := h.TurnUC.Execute(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) end(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SessionUC.End(c, session.EndRequest{
		SessionID: string(ctx.Param("id")),
		PlayerID:  playerFilter(c, h, ctx),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)

	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    string(ctx.Param("id")),
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func headerPlayerID(ctx *app.RequestContext) string {
	return strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
}

// playerFilter maps the anon header to the internal player id so reads and
// turns only ever touch the caller's own session. An absent header skips
// the ownership check.
func playerFilter(c context.Context, h Handler, ctx *app.RequestContext) string {
	anonID := headerPlayerID(ctx)
	if anonID == "" {
		return ""
	}
	player, err := h.SessionUC.Players.GetByAnonID(c, anonID)
	if err != nil {
		return "unknown:" + anonID
	}
	return player.ID
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, turn.ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, turn.ErrSessionNotActive),
		errors.Is(err, session.ErrSessionNotActive):
		writeErrorBody(ctx, consts.StatusConflict, "session_not_active", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
