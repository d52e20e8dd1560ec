package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/directory/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Page struct {
	Limit  int
	Offset int
}

// Store covers the collaborators timetables point at. Association ids come from
// the teacher_classes join table, which only the timetable core writes.
type Store interface {
	CreateClass(ctx context.Context, m *model.ClassModel) error
	GetClass(ctx context.Context, id uuid.UUID) (*model.ClassModel, error)
	ListClasses(ctx context.Context, p Page) ([]model.ClassModel, int64, error)
	ClassTeacherIDs(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error)

	CreateTeacher(ctx context.Context, m *model.TeacherModel) error
	GetTeacher(ctx context.Context, id uuid.UUID) (*model.TeacherModel, error)
	ListTeachers(ctx context.Context, p Page) ([]model.TeacherModel, int64, error)
	TeacherClassIDs(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error)

	CreateSubject(ctx context.Context, m *model.SubjectModel) error
	GetSubject(ctx context.Context, id uuid.UUID) (*model.SubjectModel, error)
	ListSubjects(ctx context.Context, p Page) ([]model.SubjectModel, int64, error)
}
