package handler

import (
	"skillswap-be/internal/pkg/logger"
	"skillswap-be/internal/pkg/serverutils"
	"skillswap-be/internal/service"
	internalWS "skillswap-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatHandler exposes message history over REST and the realtime
// channel over websocket.
type ChatHandler struct {
	messageService service.IMessageService
	hub            *internalWS.Hub
	relay          *internalWS.Relay
	logger         logger.ILogger
}

func NewChatHandler(messageService service.IMessageService, hub *internalWS.Hub, relay *internalWS.Relay, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		messageService: messageService,
		hub:            hub,
		relay:          relay,
		logger:         log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	// Token source priority: query param (browser standard), then
	// Authorization header (tooling standard).
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "missing token (query 'token' or Authorization header)"))
	}

	sessionUserID, err := serverutils.ParseUserToken(tokenStr)
	if err != nil {
		h.logger.Warn("ChatHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid token"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatHandler", "Starting chat session", map[string]interface{}{"user_id": sessionUserID})
			internalWS.ServeWs(h.hub, h.relay, conn, sessionUserID)
			h.logger.Info("ChatHandler", "Chat session ended", map[string]interface{}{"user_id": sessionUserID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetMessages returns the full two-party history with the given user,
// oldest first.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	otherID, err := c.ParamsInt("userId")
	if err != nil || otherID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	messages, err := h.messageService.GetMessages(c.UserContext(), userID, uint(otherID))
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Messages fetched", messages))
}

// GetConversations returns the users the caller has exchanged messages
// with, most recent conversation first.
func (h *ChatHandler) GetConversations(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	conversations, err := h.messageService.GetConversations(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Conversations fetched", conversations))
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	messages := router.Group("/messages")
	messages.Use(serverutils.JwtMiddleware)
	messages.Get("/:userId", h.GetMessages)

	router.Get("/conversations", serverutils.JwtMiddleware, h.GetConversations)

	// WebSocket
	router.Get("/ws", h.ServeWs)
}
