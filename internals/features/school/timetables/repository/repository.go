package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/timetables/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type ListFilter struct {
	ClassID      *uuid.UUID
	TeacherID    *uuid.UUID
	Day          *model.DayOfWeek
	AcademicYear *string
	Limit        int // 0 = no limit
	Offset       int
}

// Store is everything the timetable core reads and writes. Implementations must make
// Transaction atomic: either every write made through tx is kept, or none is.
type Store interface {
	// collaborator lookups
	ClassExists(ctx context.Context, id uuid.UUID) (bool, error)
	TeacherExists(ctx context.Context, id uuid.UUID) (bool, error)
	SubjectExists(ctx context.Context, id uuid.UUID) (bool, error)
	LinkTeacherClass(ctx context.Context, teacherID, classID uuid.UUID) error

	// LockDay serialises writers of one (day, academic year) until the transaction ends.
	LockDay(ctx context.Context, day model.DayOfWeek, academicYear string) error

	FindByClassDayYear(ctx context.Context, classID uuid.UUID, day model.DayOfWeek, academicYear string) (*model.TimetableModel, error)
	ListByDayYear(ctx context.Context, day model.DayOfWeek, academicYear string) ([]model.TimetableModel, error)
	Get(ctx context.Context, id uuid.UUID) (*model.TimetableModel, error)
	List(ctx context.Context, f ListFilter) ([]model.TimetableModel, int64, error)
	Create(ctx context.Context, m *model.TimetableModel) error
	ReplacePeriods(ctx context.Context, m *model.TimetableModel) error
	Delete(ctx context.Context, id uuid.UUID) error

	Transaction(ctx context.Context, fn func(tx Store) error) error
}
