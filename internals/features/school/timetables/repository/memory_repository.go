package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/databases/memdb"
	dirModel "schoolku_backend/internals/features/school/directory/model"
	"schoolku_backend/internals/features/school/timetables/model"
)

type memoryStore struct {
	db   *memdb.DB
	inTx bool
}

func NewMemoryStore(db *memdb.DB) Store {
	return &memoryStore{db: db}
}

func (s *memoryStore) read(fn func()) {
	if s.inTx {
		fn()
		return
	}
	s.db.Read(fn)
}

func (s *memoryStore) write(fn func() error) error {
	if s.inTx {
		return fn()
	}
	return s.db.Write(fn)
}

func (s *memoryStore) ClassExists(_ context.Context, id uuid.UUID) (ok bool, _ error) {
	s.read(func() { _, ok = s.db.Classes[id] })
	return ok, nil
}

func (s *memoryStore) TeacherExists(_ context.Context, id uuid.UUID) (ok bool, _ error) {
	s.read(func() { _, ok = s.db.Teachers[id] })
	return ok, nil
}

func (s *memoryStore) SubjectExists(_ context.Context, id uuid.UUID) (ok bool, _ error) {
	s.read(func() { _, ok = s.db.Subjects[id] })
	return ok, nil
}

func (s *memoryStore) LinkTeacherClass(_ context.Context, teacherID, classID uuid.UUID) error {
	return s.write(func() error {
		key := memdb.TeacherClassKey{TeacherID: teacherID, ClassID: classID}
		if _, ok := s.db.TeacherClasses[key]; !ok {
			s.db.TeacherClasses[key] = dirModel.TeacherClassModel{
				TeacherClassTeacherID: teacherID,
				TeacherClassClassID:   classID,
				TeacherClassCreatedAt: time.Now(),
			}
		}
		return nil
	})
}

// LockDay is a no-op: Transaction already holds the exclusive lock.
func (s *memoryStore) LockDay(context.Context, model.DayOfWeek, string) error { return nil }

func (s *memoryStore) FindByClassDayYear(_ context.Context, classID uuid.UUID, day model.DayOfWeek, academicYear string) (*model.TimetableModel, error) {
	var found *model.TimetableModel
	s.read(func() {
		for _, t := range s.db.Timetables {
			if t.TimetableClassID == classID && t.TimetableDay == day && t.TimetableAcademicYear == academicYear {
				cp := t.Clone()
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (s *memoryStore) ListByDayYear(_ context.Context, day model.DayOfWeek, academicYear string) ([]model.TimetableModel, error) {
	out := make([]model.TimetableModel, 0)
	s.read(func() {
		for _, t := range s.db.Timetables {
			if t.TimetableDay == day && t.TimetableAcademicYear == academicYear {
				out = append(out, t.Clone())
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimetableCreatedAt.Before(out[j].TimetableCreatedAt)
	})
	return out, nil
}

func (s *memoryStore) Get(_ context.Context, id uuid.UUID) (*model.TimetableModel, error) {
	var found *model.TimetableModel
	s.read(func() {
		if t, ok := s.db.Timetables[id]; ok {
			cp := t.Clone()
			found = &cp
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func hasTeacher(t model.TimetableModel, teacherID uuid.UUID) bool {
	for _, p := range t.Periods {
		if p.PeriodTeacherID == teacherID {
			return true
		}
	}
	return false
}

func (s *memoryStore) List(_ context.Context, f ListFilter) ([]model.TimetableModel, int64, error) {
	rows := make([]model.TimetableModel, 0)
	s.read(func() {
		for _, t := range s.db.Timetables {
			if f.ClassID != nil && t.TimetableClassID != *f.ClassID {
				continue
			}
			if f.Day != nil && t.TimetableDay != *f.Day {
				continue
			}
			if f.AcademicYear != nil && t.TimetableAcademicYear != *f.AcademicYear {
				continue
			}
			if f.TeacherID != nil && !hasTeacher(t, *f.TeacherID) {
				continue
			}
			rows = append(rows, t.Clone())
		}
	})

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TimetableAcademicYear != b.TimetableAcademicYear {
			return a.TimetableAcademicYear < b.TimetableAcademicYear
		}
		if a.TimetableClassID != b.TimetableClassID {
			return a.TimetableClassID.String() < b.TimetableClassID.String()
		}
		return a.TimetableDay.Order() < b.TimetableDay.Order()
	})

	total := int64(len(rows))
	if f.Limit > 0 {
		start := f.Offset
		if start < 0 {
			start = 0
		}
		if start > len(rows) {
			start = len(rows)
		}
		end := start + f.Limit
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	}
	return rows, total, nil
}

func (s *memoryStore) Create(_ context.Context, m *model.TimetableModel) error {
	return s.write(func() error {
		for _, t := range s.db.Timetables {
			if t.TimetableClassID == m.TimetableClassID && t.TimetableDay == m.TimetableDay &&
				t.TimetableAcademicYear == m.TimetableAcademicYear {
				return ErrDuplicate
			}
		}
		if m.TimetableID == uuid.Nil {
			m.TimetableID = uuid.New()
		}
		now := time.Now()
		m.TimetableCreatedAt = now
		m.TimetableUpdatedAt = now
		for i := range m.Periods {
			if m.Periods[i].PeriodID == uuid.Nil {
				m.Periods[i].PeriodID = uuid.New()
			}
			m.Periods[i].PeriodTimetableID = m.TimetableID
		}
		s.db.Timetables[m.TimetableID] = m.Clone()
		return nil
	})
}

func (s *memoryStore) ReplacePeriods(_ context.Context, m *model.TimetableModel) error {
	return s.write(func() error {
		cur, ok := s.db.Timetables[m.TimetableID]
		if !ok {
			return ErrNotFound
		}
		for i := range m.Periods {
			if m.Periods[i].PeriodID == uuid.Nil {
				m.Periods[i].PeriodID = uuid.New()
			}
			m.Periods[i].PeriodTimetableID = m.TimetableID
		}
		m.TimetableUpdatedAt = time.Now()
		cur.Periods = append([]model.TimetablePeriodModel(nil), m.Periods...)
		cur.TimetableUpdatedAt = m.TimetableUpdatedAt
		s.db.Timetables[m.TimetableID] = cur
		return nil
	})
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	return s.write(func() error {
		if _, ok := s.db.Timetables[id]; !ok {
			return ErrNotFound
		}
		delete(s.db.Timetables, id)
		return nil
	})
}

func (s *memoryStore) Transaction(_ context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.Tx(func() error {
		return fn(&memoryStore{db: s.db, inTx: true})
	})
}
