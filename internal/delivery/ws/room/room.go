package ws_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
)

type Controller struct {
	hub      *Hub
	sessions *usecase_session.Usecase
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewController(hub *Hub, sessions *usecase_session.Usecase) *Controller {
	return &Controller{
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS layer in front.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sessions/:room_code/ws", c.connect)
}

func (c *Controller) connect(ctx *gin.Context) {
	roomCode := ctx.Param("room_code")

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	if _, err := c.sessions.Get(ctx, roomCode); err != nil {
		if errors.Is(err, usecase_session.ErrResourceNotFound) {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown room code"))
		}
		conn.Close()
		return
	}

	client := &Client{
		Hub:      c.hub,
		Conn:     conn,
		Send:     make(chan []byte, 16),
		RoomCode: roomCode,
	}

	c.hub.RegisterClient(client)
	go c.hub.StartClientWriting(client)
	go c.hub.StartClientReading(client)
}
