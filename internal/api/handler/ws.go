package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"samadhan/backend/internal/eventhub"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/policy"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeEventFeed оновлює HTTP-з'єднання до WebSocket і підключає
// staff-користувача до живого фіда подій звернень.
func (h *Handler) ServeEventFeed(c *gin.Context) {
	user := identity(c)
	if !policy.CanModerate(user) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Failed to upgrade connection."})
		return
	}

	client := &eventhub.WebSocketClient{
		Hub:    h.Hub,
		UserID: user.ID,
		Conn:   conn,
		Send:   make(chan models.GrievanceEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
