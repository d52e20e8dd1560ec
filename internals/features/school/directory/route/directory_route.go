package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/school/directory/controller"
	"schoolku_backend/internals/features/school/directory/repository"
)

// DirectoryUserRoutes is read-only, for every signed-in role.
func DirectoryUserRoutes(user fiber.Router, store repository.Store) {
	ctl := controller.New(store, nil)

	user.Get("/classes", ctl.ListClasses)
	user.Get("/classes/:id", ctl.GetClass)
	user.Get("/teachers", ctl.ListTeachers)
	user.Get("/teachers/:id", ctl.GetTeacher)
	user.Get("/subjects", ctl.ListSubjects)
	user.Get("/subjects/:id", ctl.GetSubject)
}

// DirectoryAdminRoutes shares the read prefix, so guards run per route.
func DirectoryAdminRoutes(r fiber.Router, store repository.Store, guards ...fiber.Handler) {
	ctl := controller.New(store, nil)
	with := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guards...), h)
	}

	r.Post("/classes", with(ctl.CreateClass)...)
	r.Post("/teachers", with(ctl.CreateTeacher)...)
	r.Post("/subjects", with(ctl.CreateSubject)...)
}
