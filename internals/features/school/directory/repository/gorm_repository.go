package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/directory/model"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func mapErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return errors.Wrap(err, op)
	}
}

func create[T any](ctx context.Context, db *gorm.DB, m *T, op string) error {
	return mapErr(db.WithContext(ctx).Create(m).Error, op)
}

func first[T any](ctx context.Context, db *gorm.DB, col string, id uuid.UUID, op string) (*T, error) {
	var m T
	if err := db.WithContext(ctx).Where(col+" = ?", id).First(&m).Error; err != nil {
		return nil, mapErr(err, op)
	}
	return &m, nil
}

func list[T any](ctx context.Context, db *gorm.DB, order string, p Page, op string) ([]T, int64, error) {
	var (
		rows  []T
		total int64
	)
	q := db.WithContext(ctx).Model(new(T))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, op+" count")
	}
	q = q.Order(order)
	if p.Limit > 0 {
		q = q.Limit(p.Limit).Offset(p.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, op)
	}
	return rows, total, nil
}

func (s *gormStore) CreateClass(ctx context.Context, m *model.ClassModel) error {
	return create(ctx, s.db, m, "create class")
}

func (s *gormStore) GetClass(ctx context.Context, id uuid.UUID) (*model.ClassModel, error) {
	return first[model.ClassModel](ctx, s.db, "class_id", id, "get class")
}

func (s *gormStore) ListClasses(ctx context.Context, p Page) ([]model.ClassModel, int64, error) {
	return list[model.ClassModel](ctx, s.db, "class_name ASC, class_id ASC", p, "list classes")
}

func (s *gormStore) ClassTeacherIDs(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&model.TeacherClassModel{}).
		Where("teacher_class_class_id = ?", classID).
		Order("teacher_class_created_at ASC").
		Pluck("teacher_class_teacher_id", &ids).Error
	return ids, errors.Wrap(err, "class teachers")
}

func (s *gormStore) CreateTeacher(ctx context.Context, m *model.TeacherModel) error {
	return create(ctx, s.db, m, "create teacher")
}

func (s *gormStore) GetTeacher(ctx context.Context, id uuid.UUID) (*model.TeacherModel, error) {
	return first[model.TeacherModel](ctx, s.db, "teacher_id", id, "get teacher")
}

func (s *gormStore) ListTeachers(ctx context.Context, p Page) ([]model.TeacherModel, int64, error) {
	return list[model.TeacherModel](ctx, s.db, "teacher_name ASC, teacher_id ASC", p, "list teachers")
}

func (s *gormStore) TeacherClassIDs(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&model.TeacherClassModel{}).
		Where("teacher_class_teacher_id = ?", teacherID).
		Order("teacher_class_created_at ASC").
		Pluck("teacher_class_class_id", &ids).Error
	return ids, errors.Wrap(err, "teacher classes")
}

func (s *gormStore) CreateSubject(ctx context.Context, m *model.SubjectModel) error {
	return create(ctx, s.db, m, "create subject")
}

func (s *gormStore) GetSubject(ctx context.Context, id uuid.UUID) (*model.SubjectModel, error) {
	return first[model.SubjectModel](ctx, s.db, "subject_id", id, "get subject")
}

func (s *gormStore) ListSubjects(ctx context.Context, p Page) ([]model.SubjectModel, int64, error) {
	return list[model.SubjectModel](ctx, s.db, "subject_name ASC, subject_id ASC", p, "list subjects")
}
