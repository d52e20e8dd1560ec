package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dirModel "schoolku_backend/internals/features/school/directory/model"
	"schoolku_backend/internals/features/school/timetables/model"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) exists(ctx context.Context, table any, column string, id uuid.UUID) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(table).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return false, errors.Wrapf(err, "count %s", column)
	}
	return n > 0, nil
}

func (s *gormStore) ClassExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, &dirModel.ClassModel{}, "class_id", id)
}

func (s *gormStore) TeacherExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, &dirModel.TeacherModel{}, "teacher_id", id)
}

func (s *gormStore) SubjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, &dirModel.SubjectModel{}, "subject_id", id)
}

func (s *gormStore) LinkTeacherClass(ctx context.Context, teacherID, classID uuid.UUID) error {
	row := dirModel.TeacherClassModel{
		TeacherClassTeacherID: teacherID,
		TeacherClassClassID:   classID,
	}
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	return errors.Wrap(err, "link teacher class")
}

func (s *gormStore) LockDay(ctx context.Context, day model.DayOfWeek, academicYear string) error {
	key := fmt.Sprintf("timetable:%s:%s", day, academicYear)
	err := s.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
	return errors.Wrap(err, "lock day")
}

func withOrderedPeriods(db *gorm.DB) *gorm.DB {
	return db.Preload("Periods", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("period_position ASC")
	})
}

func (s *gormStore) FindByClassDayYear(ctx context.Context, classID uuid.UUID, day model.DayOfWeek, academicYear string) (*model.TimetableModel, error) {
	var m model.TimetableModel
	err := withOrderedPeriods(s.db.WithContext(ctx)).
		Where("timetable_class_id = ? AND timetable_day = ? AND timetable_academic_year = ?", classID, day, academicYear).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find timetable by class/day/year")
	}
	return &m, nil
}

func (s *gormStore) ListByDayYear(ctx context.Context, day model.DayOfWeek, academicYear string) ([]model.TimetableModel, error) {
	var rows []model.TimetableModel
	err := withOrderedPeriods(s.db.WithContext(ctx)).
		Where("timetable_day = ? AND timetable_academic_year = ?", day, academicYear).
		Order("timetable_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list timetables by day/year")
	}
	return rows, nil
}

func (s *gormStore) Get(ctx context.Context, id uuid.UUID) (*model.TimetableModel, error) {
	var m model.TimetableModel
	err := withOrderedPeriods(s.db.WithContext(ctx)).
		Where("timetable_id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get timetable")
	}
	return &m, nil
}

// dayOrderExpr sorts weekdays in school-week order instead of alphabetically.
func dayOrderExpr() string {
	var b strings.Builder
	b.WriteString("CASE timetable_day")
	for i, d := range model.Days {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", d, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(model.Days))
	return b.String()
}

func (s *gormStore) List(ctx context.Context, f ListFilter) ([]model.TimetableModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.TimetableModel{})
	if f.ClassID != nil {
		q = q.Where("timetable_class_id = ?", *f.ClassID)
	}
	if f.Day != nil {
		q = q.Where("timetable_day = ?", *f.Day)
	}
	if f.AcademicYear != nil {
		q = q.Where("timetable_academic_year = ?", *f.AcademicYear)
	}
	if f.TeacherID != nil {
		q = q.Where(`EXISTS (
			SELECT 1 FROM timetable_periods p
			 WHERE p.period_timetable_id = timetables.timetable_id
			   AND p.period_teacher_id = ?)`, *f.TeacherID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count timetables")
	}

	q = withOrderedPeriods(q).
		Order("timetable_academic_year ASC").
		Order("timetable_class_id ASC").
		Order(dayOrderExpr())
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []model.TimetableModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list timetables")
	}
	return rows, total, nil
}

func (s *gormStore) Create(ctx context.Context, m *model.TimetableModel) error {
	err := s.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "create timetable")
}

func (s *gormStore) ReplacePeriods(ctx context.Context, m *model.TimetableModel) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("period_timetable_id = ?", m.TimetableID).
		Delete(&model.TimetablePeriodModel{}).Error; err != nil {
		return errors.Wrap(err, "delete periods")
	}
	if len(m.Periods) > 0 {
		if err := db.Create(&m.Periods).Error; err != nil {
			return errors.Wrap(err, "insert periods")
		}
	}
	m.TimetableUpdatedAt = time.Now()
	err := db.Model(&model.TimetableModel{}).
		Where("timetable_id = ?", m.TimetableID).
		UpdateColumn("timetable_updated_at", m.TimetableUpdatedAt).Error
	return errors.Wrap(err, "touch timetable")
}

func (s *gormStore) Delete(ctx context.Context, id uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("period_timetable_id = ?", id).
		Delete(&model.TimetablePeriodModel{}).Error; err != nil {
		return errors.Wrap(err, "delete periods")
	}
	res := db.Where("timetable_id = ?", id).Delete(&model.TimetableModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete timetable")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
