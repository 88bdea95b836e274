package handlers

import (
	"net/http"

	groupRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/group"
	userRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/user"
	"github.com/syedahibahasan/study-sync-backend/middleware"
	"github.com/syedahibahasan/study-sync-backend/models"
	"github.com/syedahibahasan/study-sync-backend/realtime"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ChatHandler upgrades group chat connections and bridges the websocket hub
// to the persisted message log.
type ChatHandler struct {
	Hub       *realtime.Hub
	GroupRepo groupRepoPkg.GroupRepository
	UserRepo  userRepoPkg.UserRepository
	upgrader  websocket.Upgrader
}

// NewChatHandler wires a ChatHandler.
func NewChatHandler(hub *realtime.Hub, groups groupRepoPkg.GroupRepository, users userRepoPkg.UserRepository) *ChatHandler {
	return &ChatHandler{
		Hub:       hub,
		GroupRepo: groups,
		UserRepo:  users,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is enforced on the REST surface; the socket carries a
			// bearer-authenticated user already.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS handles GET /api/groups/:groupId/ws. Only current members may
// join a group's room.
func (h *ChatHandler) ServeWS(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	groupID := c.Param("groupId")

	usr, err := h.UserRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if !usr.InGroup(groupID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this group"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", zap.String("groupID", groupID), zap.Error(err))
		return
	}

	client := realtime.NewClient(h.Hub, conn, usr.ID, usr.Username, logger)
	if err := h.Hub.JoinRoom(client, groupID); err != nil {
		logger.Warn("Room join refused", zap.String("connID", client.ID()), zap.Error(err))
		client.Close()
		return
	}

	go client.WritePump()
	client.ReadPump(func(sender *realtime.Client, msg realtime.InboundMessage) {
		h.postMessage(groupID, sender, msg)
	})
}

// postMessage persists an inbound chat message and then fans it out to the
// room. Persistence is the source of truth: when the append fails nothing
// is broadcast, and broadcast problems never surface to the sender.
func (h *ChatHandler) postMessage(groupID string, sender *realtime.Client, msg realtime.InboundMessage) {
	logger := utils.GetLogger()

	stored, err := h.GroupRepo.AppendMessage(groupID, models.ChatMessage{
		Sender:     sender.UserID,
		SenderName: sender.Username,
		Text:       msg.Text,
	})
	if err != nil {
		logger.Error("Failed to persist chat message",
			zap.String("groupID", groupID), zap.String("sender", sender.UserID), zap.Error(err))
		return
	}
	h.Hub.Broadcast(groupID, *stored)
}
