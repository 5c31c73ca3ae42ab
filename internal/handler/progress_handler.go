package handler

import (
	"propscore-webapp-be/internal/pkg/logger"
	internalWS "propscore-webapp-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const anonCookieName = "ps_anon_id"

// ProgressHandler upgrades dashboard clients to a websocket that streams
// wizard step updates. Identity follows the same rules as the HTTP
// middleware: a JWT when one is supplied, the anonymous cookie otherwise.
type ProgressHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewProgressHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *ProgressHandler {
	return &ProgressHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/progress", h.ServeWs)
}

func (h *ProgressHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := h.resolveUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("progress-handler", "starting websocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("progress-handler", "websocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// resolveUserID prefers a JWT (query param for browsers, Authorization header
// for tooling) and falls back to the anonymous session cookie.
func (h *ProgressHandler) resolveUserID(c *fiber.Ctx) (uuid.UUID, error) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr != "" {
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			h.logger.Warn("progress-handler", "invalid token in ws handshake", map[string]interface{}{"error": err})
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
		}
		userIDStr, ok := claims["user_id"].(string)
		if !ok {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "token missing user_id")
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id in token")
		}
		return userID, nil
	}

	// Anonymous sessions stream progress too; the wizard works before signup.
	if anonID := c.Cookies(anonCookieName); anonID != "" {
		if userID, err := uuid.Parse(anonID); err == nil {
			return userID, nil
		}
	}

	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing token or session cookie")
}
