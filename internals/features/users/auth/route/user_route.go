package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/users/auth/controller"
	"schoolku_backend/internals/features/users/auth/repository"
)

// AuthRoutes mounts token revocation; authed must already carry AuthJWT.
func AuthRoutes(authed fiber.Router, repo *repository.BlacklistRepository) {
	ctl := controller.NewLogoutController(repo)
	authed.Post("/auth/logout", ctl.Logout)
}
