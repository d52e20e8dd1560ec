package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/school/timetables/controller"
	"schoolku_backend/internals/features/school/timetables/service"
)

// TimetableUserRoutes is read-only, for every signed-in role.
func TimetableUserRoutes(user fiber.Router, svc *service.Service) {
	ctl := controller.New(svc, nil)

	// /load before /:id
	user.Get("/timetables/load", ctl.LoadReport)
	user.Get("/timetables", ctl.List)
	user.Get("/timetables/:id", ctl.Get)
	user.Get("/classes/:id/timetables", ctl.ClassWeek)
	user.Get("/teachers/:id/timetables", ctl.TeacherSchedule)
}

// TimetableAdminRoutes shares the read prefix, so guards run per route.
func TimetableAdminRoutes(r fiber.Router, svc *service.Service, guards ...fiber.Handler) {
	ctl := controller.New(svc, nil)
	with := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guards...), h)
	}

	r.Post("/timetables", with(ctl.Create)...)
	r.Patch("/timetables/:id", with(ctl.UpdatePeriods)...)
	r.Delete("/timetables/:id", with(ctl.Delete)...)
}
