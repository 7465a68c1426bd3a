package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GetUserIDFromCtx extracts the authenticated user's id from the JWT the
// middleware stored in c.Locals("user").
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return 0, err
	}
	if raw, ok := claims["user_id"]; ok {
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		case int64:
			return int(v), nil
		}
	}
	return 0, fiber.ErrUnauthorized
}

// GetIdentityFromCtx returns both the user id and the role claim. Handlers
// that gate on role use this instead of a second claims walk.
func GetIdentityFromCtx(c *fiber.Ctx) (int, string, error) {
	id, err := GetUserIDFromCtx(c)
	if err != nil {
		return 0, "", err
	}
	claims, err := claimsFromCtx(c)
	if err != nil {
		return 0, "", err
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleCustomer
	}
	return id, role, nil
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	u := c.Locals("user")
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
