package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"schoolku_backend/internals/features/users/auth/repository"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type LogoutController struct {
	Repo *repository.BlacklistRepository
}

func NewLogoutController(repo *repository.BlacklistRepository) *LogoutController {
	return &LogoutController{Repo: repo}
}

// tokens without exp stay revoked for a day
const defaultRevokeTTL = 24 * time.Hour

// POST /api/auth/logout. Runs behind AuthJWT, so the token is valid here.
func (ctl *LogoutController) Logout(c *fiber.Ctx) error {
	raw := helperAuth.RawAccessToken(c)

	expiresAt := time.Now().Add(defaultRevokeTTL)
	if claims, ok := c.Locals(helperAuth.LocClaims).(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			expiresAt = time.Unix(int64(exp), 0)
		}
	}

	if err := ctl.Repo.Revoke(c.UserContext(), raw, expiresAt); err != nil {
		log.Printf("[ERROR] revoke token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "logout failed")
	}
	if uid, err := helperAuth.GetUserID(c); err == nil {
		log.Printf("[INFO] user %s logged out", uid)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "logout successful", nil)
}
