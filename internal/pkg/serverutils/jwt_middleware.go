package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is set at login so browser clients stay authenticated
// without managing the Authorization header themselves.
const SessionCookieName = "syncpad_session"

func tokenFromRequest(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ctx.Cookies(SessionCookieName)
}

func parseClaims(tokenStr string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr := tokenFromRequest(ctx)
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	claims, ok := parseClaims(tokenStr)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	ctx.Locals("user_id", claims["user_id"])
	ctx.Locals("user_role", claims["role"])
	return ctx.Next()
}

// OptionalJwtMiddleware resolves the requester identity when a token is
// present but lets anonymous requests through. The shared-note endpoints
// need this: the access decision differs for owners hitting their own link.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr := tokenFromRequest(ctx)
	if tokenStr != "" {
		if claims, ok := parseClaims(tokenStr); ok {
			ctx.Locals("user_id", claims["user_id"])
			ctx.Locals("user_role", claims["role"])
		}
	}
	return ctx.Next()
}

// AdminMiddleware must run after JwtMiddleware.
func AdminMiddleware(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("user_role").(string)
	if role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
	}
	return ctx.Next()
}
