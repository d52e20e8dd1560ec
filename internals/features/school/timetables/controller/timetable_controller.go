package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"schoolku_backend/internals/features/school/timetables/dto"
	"schoolku_backend/internals/features/school/timetables/model"
	"schoolku_backend/internals/features/school/timetables/repository"
	"schoolku_backend/internals/features/school/timetables/service"
	helper "schoolku_backend/internals/helpers"
)

type TimetableController struct {
	Svc      *service.Service
	Validate *validator.Validate
}

func New(svc *service.Service, v *validator.Validate) *TimetableController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &TimetableController{Svc: svc, Validate: v}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid uuid")
	}
	return id, nil
}

// writeError maps rule violations to 400 with their own error_code. A missing
// timetable addressed by id is 404; anything unclassified bubbles up as 500.
func writeError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.FromFiberError(c, fe)
	}
	var te *service.TimetableError
	if !errors.As(err, &te) {
		log.Printf("[ERROR] timetable %s %s: %+v", c.Method(), c.Path(), err)
		return err
	}
	switch {
	case te.Kind == service.KindValidation:
		return helper.JsonValidationError(c, te.Fields)
	case te.Kind == service.KindNotFound && te.Entity == "timetable":
		return helper.JsonErrorCode(c, fiber.StatusNotFound, string(te.Kind), te.Message)
	default:
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, string(te.Kind), te.Message)
	}
}

func (ctl *TimetableController) bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.Validate.Struct(out); err != nil {
		return service.Validation(helper.FieldErrors(err))
	}
	return nil
}

// POST /timetables
func (ctl *TimetableController) Create(c *fiber.Ctx) error {
	var req dto.CreateTimetableRequest
	if err := ctl.bind(c, &req); err != nil {
		return writeError(c, err)
	}
	in, err := req.ToInput()
	if err != nil {
		return writeError(c, err)
	}

	tt, err := ctl.Svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	log.Printf("[INFO] timetable created id=%s class=%s day=%s year=%s periods=%d",
		tt.TimetableID, tt.TimetableClassID, tt.TimetableDay, tt.TimetableAcademicYear, len(tt.Periods))
	return helper.JsonCreated(c, "timetable created", dto.FromModel(*tt))
}

// PATCH /timetables/:id
func (ctl *TimetableController) UpdatePeriods(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdatePeriodsRequest
	if err := ctl.bind(c, &req); err != nil {
		return writeError(c, err)
	}
	periods, err := req.ToInputs()
	if err != nil {
		return writeError(c, err)
	}

	tt, err := ctl.Svc.UpdatePeriods(c.UserContext(), id, periods)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "timetable updated", dto.FromModel(*tt))
}

// DELETE /timetables/:id
func (ctl *TimetableController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return helper.JsonDeleted(c, "timetable deleted", fiber.Map{"id": id})
}

// GET /timetables/:id
func (ctl *TimetableController) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	tt, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "", dto.FromModel(*tt))
}

// GET /timetables?class_id=&teacher_id=&day=&academic_year=&page=&per_page=
func (ctl *TimetableController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var f repository.ListFilter
	fields := map[string][]string{}
	if s := strings.TrimSpace(q.ClassID); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.ClassID = &id
		} else {
			fields["class_id"] = []string{"must be a valid uuid"}
		}
	}
	if s := strings.TrimSpace(q.TeacherID); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.TeacherID = &id
		} else {
			fields["teacher_id"] = []string{"must be a valid uuid"}
		}
	}
	if s := strings.TrimSpace(q.Day); s != "" {
		if d, err := model.ParseDay(s); err == nil {
			f.Day = &d
		} else {
			fields["day"] = []string{err.Error()}
		}
	}
	if s := strings.TrimSpace(q.AcademicYear); s != "" {
		f.AcademicYear = &s
	}
	if len(fields) > 0 {
		return helper.JsonValidationError(c, fields)
	}

	p := helper.ResolvePaging(c, 20, 200)
	f.Limit, f.Offset = p.Limit, p.Offset

	rows, total, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "", dto.FromModels(rows), &pg)
}

// GET /classes/:id/timetables?academic_year=
func (ctl *TimetableController) ClassWeek(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Svc.ClassWeek(c.UserContext(), id, strings.TrimSpace(c.Query("academic_year")))
	if err != nil {
		return writeNotFoundAs404(c, err)
	}
	return helper.JsonOK(c, "", dto.FromModels(rows))
}

// GET /teachers/:id/timetables?academic_year=
func (ctl *TimetableController) TeacherSchedule(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Svc.TeacherSchedule(c.UserContext(), id, strings.TrimSpace(c.Query("academic_year")))
	if err != nil {
		return writeNotFoundAs404(c, err)
	}
	return helper.JsonOK(c, "", dto.FromModels(rows))
}

// GET /timetables/load?day=&academic_year=
func (ctl *TimetableController) LoadReport(c *fiber.Ctx) error {
	day, err := model.ParseDay(c.Query("day"))
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"day": {err.Error()}})
	}
	year := strings.TrimSpace(c.Query("academic_year"))
	if year == "" {
		return helper.JsonValidationError(c, map[string][]string{"academic_year": {"is required"}})
	}
	rows, err := ctl.Svc.LoadReport(c.UserContext(), day, year)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "", dto.FromLoad(day, year, ctl.Svc.MaxPerDay(), rows))
}

// the path names the resource, so a missing one is 404
func writeNotFoundAs404(c *fiber.Ctx, err error) error {
	if service.KindOf(err) == service.KindNotFound {
		return helper.JsonErrorCode(c, fiber.StatusNotFound, string(service.KindNotFound), err.Error())
	}
	return writeError(c, err)
}
