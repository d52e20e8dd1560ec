package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"schoolku_backend/internals/features/school/directory/dto"
	"schoolku_backend/internals/features/school/directory/repository"
	helper "schoolku_backend/internals/helpers"
)

type DirectoryController struct {
	Store    repository.Store
	Validate *validator.Validate
}

func New(store repository.Store, v *validator.Validate) *DirectoryController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &DirectoryController{Store: store, Validate: v}
}

func idParam(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	return id, err == nil
}

// parse writes the error response itself and reports ok=false when the body is unusable.
func (ctl *DirectoryController) parse(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.Validate.Struct(out); err != nil {
		return false, helper.ValidationError(c, err)
	}
	return true, nil
}

func writeStoreErr(c *fiber.Ctx, err error, entity string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, entity+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "DUPLICATE_ENTRY", entity+" already exists")
	default:
		log.Printf("[ERROR] %s %s: %+v", c.Method(), c.Path(), err)
		return err
	}
}

func listPage(c *fiber.Ctx) (helper.Paging, repository.Page) {
	p := helper.ResolvePaging(c, 20, 200)
	return p, repository.Page{Limit: p.Limit, Offset: p.Offset}
}

/* ===================== Classes ===================== */

// POST /classes
func (ctl *DirectoryController) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if ok, err := ctl.parse(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := ctl.Store.CreateClass(c.UserContext(), m); err != nil {
		return writeStoreErr(c, err, "class")
	}
	return helper.JsonCreated(c, "class created", dto.FromClass(*m, nil))
}

// GET /classes
func (ctl *DirectoryController) ListClasses(c *fiber.Ctx) error {
	p, page := listPage(c)
	rows, total, err := ctl.Store.ListClasses(c.UserContext(), page)
	if err != nil {
		return writeStoreErr(c, err, "class")
	}
	out := make([]dto.ClassResponse, 0, len(rows))
	for _, m := range rows {
		ids, err := ctl.Store.ClassTeacherIDs(c.UserContext(), m.ClassID)
		if err != nil {
			return writeStoreErr(c, err, "class")
		}
		out = append(out, dto.FromClass(m, ids))
	}
	pg := helper.BuildPagination(total, p, len(out))
	return helper.JsonList(c, "", out, &pg)
}

// GET /classes/:id
func (ctl *DirectoryController) GetClass(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "id is not a valid uuid")
	}
	m, err := ctl.Store.GetClass(c.UserContext(), id)
	if err != nil {
		return writeStoreErr(c, err, "class")
	}
	ids, err := ctl.Store.ClassTeacherIDs(c.UserContext(), id)
	if err != nil {
		return writeStoreErr(c, err, "class")
	}
	return helper.JsonOK(c, "", dto.FromClass(*m, ids))
}

/* ===================== Teachers ===================== */

// POST /teachers
func (ctl *DirectoryController) CreateTeacher(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if ok, err := ctl.parse(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := ctl.Store.CreateTeacher(c.UserContext(), m); err != nil {
		return writeStoreErr(c, err, "teacher")
	}
	return helper.JsonCreated(c, "teacher created", dto.FromTeacher(*m, nil))
}

// GET /teachers
func (ctl *DirectoryController) ListTeachers(c *fiber.Ctx) error {
	p, page := listPage(c)
	rows, total, err := ctl.Store.ListTeachers(c.UserContext(), page)
	if err != nil {
		return writeStoreErr(c, err, "teacher")
	}
	out := make([]dto.TeacherResponse, 0, len(rows))
	for _, m := range rows {
		ids, err := ctl.Store.TeacherClassIDs(c.UserContext(), m.TeacherID)
		if err != nil {
			return writeStoreErr(c, err, "teacher")
		}
		out = append(out, dto.FromTeacher(m, ids))
	}
	pg := helper.BuildPagination(total, p, len(out))
	return helper.JsonList(c, "", out, &pg)
}

// GET /teachers/:id
func (ctl *DirectoryController) GetTeacher(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "id is not a valid uuid")
	}
	m, err := ctl.Store.GetTeacher(c.UserContext(), id)
	if err != nil {
		return writeStoreErr(c, err, "teacher")
	}
	ids, err := ctl.Store.TeacherClassIDs(c.UserContext(), id)
	if err != nil {
		return writeStoreErr(c, err, "teacher")
	}
	return helper.JsonOK(c, "", dto.FromTeacher(*m, ids))
}

/* ===================== Subjects ===================== */

// POST /subjects
func (ctl *DirectoryController) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if ok, err := ctl.parse(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := ctl.Store.CreateSubject(c.UserContext(), m); err != nil {
		return writeStoreErr(c, err, "subject")
	}
	return helper.JsonCreated(c, "subject created", dto.FromSubject(*m))
}

// GET /subjects
func (ctl *DirectoryController) ListSubjects(c *fiber.Ctx) error {
	p, page := listPage(c)
	rows, total, err := ctl.Store.ListSubjects(c.UserContext(), page)
	if err != nil {
		return writeStoreErr(c, err, "subject")
	}
	out := make([]dto.SubjectResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.FromSubject(m))
	}
	pg := helper.BuildPagination(total, p, len(out))
	return helper.JsonList(c, "", out, &pg)
}

// GET /subjects/:id
func (ctl *DirectoryController) GetSubject(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "id is not a valid uuid")
	}
	m, err := ctl.Store.GetSubject(c.UserContext(), id)
	if err != nil {
		return writeStoreErr(c, err, "subject")
	}
	return helper.JsonOK(c, "", dto.FromSubject(*m))
}
