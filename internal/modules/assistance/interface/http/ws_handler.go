package handler

import (
	"context"
	"net/http"
	"time"

	"AssistHub/internal/modules/assistance/application/service"
	"AssistHub/internal/modules/assistance/domain/entity"
	userservice "AssistHub/internal/modules/user/application/service"
	"AssistHub/pkg/util/myjwt"
	"AssistHub/pkg/ws"
	"AssistHub/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WsHandler struct {
	hub           *ws.Hub
	communication service.CommunicationService
	userService   userservice.UserService
}

func NewWsHandler(hub *ws.Hub, communication service.CommunicationService, userService userservice.UserService) *WsHandler {
	return &WsHandler{
		hub:           hub,
		communication: communication,
		userService:   userService,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect upgrades the request to a websocket session. Browsers cannot set
// headers on the native WebSocket API, so the token travels as a query
// parameter instead of going through the auth middleware.
func (h *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	claims, err := myjwt.ParseToken(token)
	if err != nil || claims == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetUserByIDOrActorAccountName(c.Request.Context(), claims.UserID)
	if err != nil || user == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Error(err.Error())
		return
	}

	client := ws.NewClient(user.ID.String(), conn)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go client.WritePump()

	for {
		var message entity.CommunicationObject
		if err := conn.ReadJSON(&message); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		if err := h.communication.HandleFromUser(context.Background(), user, message); err != nil {
			zlog.Warn("inbound message from " + user.ID.String() + " rejected: " + err.Error())
			h.hub.SendToUser(user.ID.String(), message.ContextID, map[string]interface{}{
				"type":    "error",
				"message": err.Error(),
			})
		}
	}
}
