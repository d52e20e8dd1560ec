package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/databases/memdb"
	"schoolku_backend/internals/features/school/directory/model"
)

type memoryStore struct {
	db *memdb.DB
}

func NewMemoryStore(db *memdb.DB) Store {
	return &memoryStore{db: db}
}

func paginate[T any](rows []T, p Page) []T {
	if p.Limit <= 0 {
		return rows
	}
	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start > len(rows) {
		start = len(rows)
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func sameStr(a, b *string) bool {
	return a != nil && b != nil && strings.EqualFold(*a, *b)
}

func (s *memoryStore) CreateClass(_ context.Context, m *model.ClassModel) error {
	return s.db.Write(func() error {
		if m.ClassID == uuid.Nil {
			m.ClassID = uuid.New()
		}
		if _, ok := s.db.Classes[m.ClassID]; ok {
			return ErrDuplicate
		}
		now := time.Now()
		m.ClassCreatedAt, m.ClassUpdatedAt = now, now
		s.db.Classes[m.ClassID] = *m
		return nil
	})
}

func (s *memoryStore) GetClass(_ context.Context, id uuid.UUID) (out *model.ClassModel, err error) {
	s.db.Read(func() {
		if m, ok := s.db.Classes[id]; ok {
			out = &m
		}
	})
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *memoryStore) ListClasses(_ context.Context, p Page) ([]model.ClassModel, int64, error) {
	rows := make([]model.ClassModel, 0)
	s.db.Read(func() {
		for _, m := range s.db.Classes {
			rows = append(rows, m)
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ClassName != rows[j].ClassName {
			return rows[i].ClassName < rows[j].ClassName
		}
		return rows[i].ClassID.String() < rows[j].ClassID.String()
	})
	return paginate(rows, p), int64(len(rows)), nil
}

// links returns join rows oldest first.
func (s *memoryStore) links(match func(memdb.TeacherClassKey) bool) []model.TeacherClassModel {
	var out []model.TeacherClassModel
	s.db.Read(func() {
		for k, v := range s.db.TeacherClasses {
			if match(k) {
				out = append(out, v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].TeacherClassCreatedAt.Before(out[j].TeacherClassCreatedAt)
	})
	return out
}

func (s *memoryStore) ClassTeacherIDs(_ context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for _, l := range s.links(func(k memdb.TeacherClassKey) bool { return k.ClassID == classID }) {
		ids = append(ids, l.TeacherClassTeacherID)
	}
	return ids, nil
}

func (s *memoryStore) CreateTeacher(_ context.Context, m *model.TeacherModel) error {
	return s.db.Write(func() error {
		if m.TeacherID == uuid.Nil {
			m.TeacherID = uuid.New()
		}
		for _, t := range s.db.Teachers {
			if t.TeacherID == m.TeacherID || sameStr(t.TeacherEmail, m.TeacherEmail) {
				return ErrDuplicate
			}
		}
		now := time.Now()
		m.TeacherCreatedAt, m.TeacherUpdatedAt = now, now
		s.db.Teachers[m.TeacherID] = *m
		return nil
	})
}

func (s *memoryStore) GetTeacher(_ context.Context, id uuid.UUID) (out *model.TeacherModel, err error) {
	s.db.Read(func() {
		if m, ok := s.db.Teachers[id]; ok {
			out = &m
		}
	})
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *memoryStore) ListTeachers(_ context.Context, p Page) ([]model.TeacherModel, int64, error) {
	rows := make([]model.TeacherModel, 0)
	s.db.Read(func() {
		for _, m := range s.db.Teachers {
			rows = append(rows, m)
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TeacherName != rows[j].TeacherName {
			return rows[i].TeacherName < rows[j].TeacherName
		}
		return rows[i].TeacherID.String() < rows[j].TeacherID.String()
	})
	return paginate(rows, p), int64(len(rows)), nil
}

func (s *memoryStore) TeacherClassIDs(_ context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for _, l := range s.links(func(k memdb.TeacherClassKey) bool { return k.TeacherID == teacherID }) {
		ids = append(ids, l.TeacherClassClassID)
	}
	return ids, nil
}

func (s *memoryStore) CreateSubject(_ context.Context, m *model.SubjectModel) error {
	return s.db.Write(func() error {
		if m.SubjectID == uuid.Nil {
			m.SubjectID = uuid.New()
		}
		for _, t := range s.db.Subjects {
			if t.SubjectID == m.SubjectID || sameStr(t.SubjectCode, m.SubjectCode) {
				return ErrDuplicate
			}
		}
		now := time.Now()
		m.SubjectCreatedAt, m.SubjectUpdatedAt = now, now
		s.db.Subjects[m.SubjectID] = *m
		return nil
	})
}

func (s *memoryStore) GetSubject(_ context.Context, id uuid.UUID) (out *model.SubjectModel, err error) {
	s.db.Read(func() {
		if m, ok := s.db.Subjects[id]; ok {
			out = &m
		}
	})
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *memoryStore) ListSubjects(_ context.Context, p Page) ([]model.SubjectModel, int64, error) {
	rows := make([]model.SubjectModel, 0)
	s.db.Read(func() {
		for _, m := range s.db.Subjects {
			rows = append(rows, m)
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SubjectName != rows[j].SubjectName {
			return rows[i].SubjectName < rows[j].SubjectName
		}
		return rows[i].SubjectID.String() < rows[j].SubjectID.String()
	})
	return paginate(rows, p), int64(len(rows)), nil
}
