package routes

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/constants"
	dirRepo "schoolku_backend/internals/features/school/directory/repository"
	dirRoute "schoolku_backend/internals/features/school/directory/route"
	ttRoute "schoolku_backend/internals/features/school/timetables/route"
	ttService "schoolku_backend/internals/features/school/timetables/service"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	"schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

type Deps struct {
	JWTSecret  string
	Timetables *ttService.Service
	Directory  dirRepo.Store
	Blacklist  *authRepo.BlacklistRepository // nil disables revocation
	Ping       func(context.Context) error   // nil for the memory driver
}

func SetupRoutes(app *fiber.App, d Deps) {
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.Ping)

	opts := authMiddleware.AuthJWTOpts{
		Secret:              d.JWTSecret,
		AllowCookieFallback: true,
	}
	if d.Blacklist != nil {
		opts.BlacklistChecker = d.Blacklist.Checker(middlewares.RequestTimeout)
	}

	log.Println("[INFO] Setting up /api group (JWT + any school role)...")
	api := app.Group("/api",
		authMiddleware.AuthJWT(opts),
		authMiddleware.OnlyRoles("Forbidden: unknown role", constants.AllRoles...),
	)

	adminOnly := []fiber.Handler{
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this endpoint"), constants.RoleAdmin),
		middlewares.WriteRateLimiter(),
	}

	log.Println("[INFO] Setting up timetable routes...")
	ttRoute.TimetableUserRoutes(api, d.Timetables)
	ttRoute.TimetableAdminRoutes(api, d.Timetables, adminOnly...)

	log.Println("[INFO] Setting up directory routes...")
	dirRoute.DirectoryUserRoutes(api, d.Directory)
	dirRoute.DirectoryAdminRoutes(api, d.Directory, adminOnly...)

	if d.Blacklist != nil {
		log.Println("[INFO] Setting up auth routes...")
		authRoute.AuthRoutes(api, d.Blacklist)
	}
}
