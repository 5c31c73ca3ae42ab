package serverutils

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const anonCookieName = "ps_anon_id"

// IdentityMiddleware resolves the request identity. A valid bearer token
// yields the platform user id from its claims; otherwise the visitor gets a
// persisted anonymous UUID via cookie. Sessions must work before signup, so
// a missing or invalid token is never a 401 here.
func IdentityMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if userID, ok := claims["user_id"].(string); ok && userID != "" {
					ctx.Locals("user_id", userID)
					ctx.Locals("auth_token", tokenStr)
					ctx.Locals("authenticated", true)
					return ctx.Next()
				}
			}
		}
	}

	anonID := ctx.Cookies(anonCookieName)
	if _, err := uuid.Parse(anonID); err != nil {
		anonID = uuid.NewString()
		ctx.Cookie(&fiber.Cookie{
			Name:     anonCookieName,
			Value:    anonID,
			Expires:  time.Now().Add(365 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}

	ctx.Locals("user_id", anonID)
	ctx.Locals("auth_token", "")
	ctx.Locals("authenticated", false)
	return ctx.Next()
}

// UserID returns the identity resolved by IdentityMiddleware.
func UserID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// AuthToken returns the raw bearer token, empty for anonymous visitors. It
// is forwarded as-is to the scoring API.
func AuthToken(ctx *fiber.Ctx) string {
	if token, ok := ctx.Locals("auth_token").(string); ok {
		return token
	}
	return ""
}
