package http_session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/justinhuang159/Grubble/internal/delivery/http/common"
	ws_room "github.com/justinhuang159/Grubble/internal/delivery/ws/room"
	"github.com/justinhuang159/Grubble/internal/model"
	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
)

type Controller struct {
	usecase *usecase_session.Usecase
	hub     *ws_room.Hub
	logger  *slog.Logger
}

func New(usecase *usecase_session.Usecase, hub *ws_room.Hub) *Controller {
	return &Controller{
		usecase: usecase,
		hub:     hub,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", c.create)
		sessions.GET("", c.list)
		sessions.GET("/:room_code", c.get)
		sessions.POST("/:room_code/join", c.join)
		sessions.POST("/:room_code/start", c.start)
		sessions.DELETE("/:room_code", c.delete)
	}
}

type CreateSessionRequestDTO struct {
	HostName     string  `json:"host_name" binding:"required,max=64"`
	Cuisine      *string `json:"cuisine" binding:"omitempty,max=64"`
	Price        *string `json:"price" binding:"omitempty,max=16"`
	RadiusMeters *int    `json:"radius_meters" binding:"omitempty,min=1,max=40000"`
	LocationText *string `json:"location_text" binding:"omitempty,max=256"`
}

type SessionResponseDTO struct {
	ID           string   `json:"id"`
	RoomCode     string   `json:"room_code"`
	HostName     string   `json:"host_name"`
	Status       string   `json:"status"`
	Cuisine      *string  `json:"cuisine"`
	Price        *string  `json:"price"`
	RadiusMeters *int     `json:"radius_meters"`
	LocationText *string  `json:"location_text"`
	Participants []string `json:"participants"`
}

func toSessionResponse(s model.Session) SessionResponseDTO {
	return SessionResponseDTO{
		ID:           s.ID.String(),
		RoomCode:     s.RoomCode,
		HostName:     s.HostName,
		Status:       s.Status,
		Cuisine:      s.Cuisine,
		Price:        s.Price,
		RadiusMeters: s.RadiusMeters,
		LocationText: s.LocationText,
		Participants: s.ParticipantNames(),
	}
}

func (c *Controller) create(ctx *gin.Context) {
	var req CreateSessionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	session, err := c.usecase.Create(ctx, usecase_session.CreateParams{
		HostName:     req.HostName,
		Cuisine:      req.Cuisine,
		Price:        req.Price,
		RadiusMeters: req.RadiusMeters,
		LocationText: req.LocationText,
	})
	if err != nil {
		c.respondError(ctx, "failed to create session", err)
		return
	}

	ctx.JSON(http.StatusCreated, toSessionResponse(session))
}

func (c *Controller) list(ctx *gin.Context) {
	sessions, err := c.usecase.List(ctx)
	if err != nil {
		c.respondError(ctx, "failed to list sessions", err)
		return
	}

	views := make([]SessionResponseDTO, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, toSessionResponse(s))
	}
	ctx.JSON(http.StatusOK, views)
}

func (c *Controller) get(ctx *gin.Context) {
	session, err := c.usecase.Get(ctx, ctx.Param("room_code"))
	if err != nil {
		c.respondError(ctx, "failed to get session", err)
		return
	}
	ctx.JSON(http.StatusOK, toSessionResponse(session))
}

type JoinSessionRequestDTO struct {
	UserName string `json:"user_name" binding:"required,max=64"`
}

func (c *Controller) join(ctx *gin.Context) {
	var req JoinSessionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	session, err := c.usecase.Join(ctx, ctx.Param("room_code"), req.UserName)
	if err != nil {
		c.respondError(ctx, "failed to join session", err)
		return
	}

	ctx.JSON(http.StatusOK, toSessionResponse(session))
}

type StartSessionRequestDTO struct {
	HostName string `json:"host_name" binding:"required,max=64"`
}

func (c *Controller) start(ctx *gin.Context) {
	var req StartSessionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	session, err := c.usecase.Start(ctx, ctx.Param("room_code"), req.HostName)
	if err != nil {
		c.respondError(ctx, "failed to start session", err)
		return
	}

	view := toSessionResponse(session)
	c.hub.BroadcastToRoom(session.RoomCode, ws_room.Message{
		Event:   ws_room.EventSessionStarted,
		Session: view,
	})

	ctx.JSON(http.StatusOK, view)
}

func (c *Controller) delete(ctx *gin.Context) {
	var req StartSessionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.usecase.Delete(ctx, ctx.Param("room_code"), req.HostName); err != nil {
		c.respondError(ctx, "failed to delete session", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) respondError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, slog.String("error", err.Error()))

	switch {
	case errors.Is(err, usecase_session.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
	case errors.Is(err, usecase_session.ErrForbidden):
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{Message: "forbidden"})
	case errors.Is(err, usecase_session.ErrConflict):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_session.ErrValidation):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_session.ErrUpstream):
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_session.ErrSourceNotConfigured):
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "restaurant source not configured"})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}
