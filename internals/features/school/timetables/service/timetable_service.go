package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"schoolku_backend/internals/features/school/timetables/model"
	"schoolku_backend/internals/features/school/timetables/repository"
)

// PeriodInput is one period as submitted, before ids are assigned.
type PeriodInput struct {
	PeriodNumber int
	StartTime    datatypes.Time
	EndTime      datatypes.Time
	SubjectID    uuid.UUID
	TeacherID    uuid.UUID
}

type CreateInput struct {
	ClassID      uuid.UUID
	Day          model.DayOfWeek
	AcademicYear string
	Periods      []PeriodInput
}

type Service struct {
	store     repository.Store
	cache     LoadCache // optional
	maxPerDay int
}

func New(store repository.Store, cache LoadCache, maxPerDay int) *Service {
	if maxPerDay <= 0 {
		maxPerDay = 7
	}
	return &Service{store: store, cache: cache, maxPerDay: maxPerDay}
}

func validatePeriods(periods []PeriodInput) error {
	fields := map[string][]string{}
	if len(periods) == 0 {
		fields["periods"] = append(fields["periods"], "at least one period is required")
	}
	seen := map[int]bool{}
	for i, p := range periods {
		key := fmt.Sprintf("periods[%d]", i)
		if p.PeriodNumber < 1 {
			fields[key+".periodNumber"] = append(fields[key+".periodNumber"], "must be >= 1")
		}
		if seen[p.PeriodNumber] {
			fields[key+".periodNumber"] = append(fields[key+".periodNumber"], "duplicate period number")
		}
		seen[p.PeriodNumber] = true
		if p.EndTime <= p.StartTime {
			fields[key+".endTime"] = append(fields[key+".endTime"], "must be after startTime")
		}
	}
	if len(fields) > 0 {
		return Validation(fields)
	}
	return nil
}

func toPeriodModels(in []PeriodInput) []model.TimetablePeriodModel {
	out := make([]model.TimetablePeriodModel, len(in))
	for i, p := range in {
		out[i] = model.TimetablePeriodModel{
			PeriodID:        uuid.New(),
			PeriodPosition:  i,
			PeriodNumber:    p.PeriodNumber,
			PeriodStartTime: p.StartTime,
			PeriodEndTime:   p.EndTime,
			PeriodSubjectID: p.SubjectID,
			PeriodTeacherID: p.TeacherID,
		}
	}
	return out
}

// Create stores a class's timetable for one day after every rule passes.
// Checks and writes run in one transaction holding the (day, year) lock, so a
// rejected request leaves no timetable and no teacher-class link behind.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.TimetableModel, error) {
	if err := validatePeriods(in.Periods); err != nil {
		return nil, err
	}

	tt := &model.TimetableModel{
		TimetableID:           uuid.New(),
		TimetableClassID:      in.ClassID,
		TimetableDay:          in.Day,
		TimetableAcademicYear: in.AcademicYear,
		Periods:               toPeriodModels(in.Periods),
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		ok, err := tx.ClassExists(ctx, in.ClassID)
		if err != nil {
			return errors.Wrap(err, "class lookup")
		}
		if !ok {
			return NotFound("class")
		}

		if err := tx.LockDay(ctx, in.Day, in.AcademicYear); err != nil {
			return errors.Wrap(err, "lock day")
		}

		_, err = tx.FindByClassDayYear(ctx, in.ClassID, in.Day, in.AcademicYear)
		switch {
		case err == nil:
			return DuplicateEntry()
		case !errors.Is(err, repository.ErrNotFound):
			return errors.Wrap(err, "find existing timetable")
		}

		entries, err := tx.ListByDayYear(ctx, in.Day, in.AcademicYear)
		if err != nil {
			return errors.Wrap(err, "load day")
		}

		ck := Checker{Lookups: tx, MaxPerDay: s.maxPerDay}
		links, err := ck.Check(ctx, in.ClassID, tt.Periods, BuildDailyLoad(entries))
		if err != nil {
			return err
		}

		if err := tx.Create(ctx, tt); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return DuplicateEntry()
			}
			return errors.Wrap(err, "create timetable")
		}
		return applyLinks(ctx, tx, links)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, in.Day, in.AcademicYear)
	return tt, nil
}

func applyLinks(ctx context.Context, tx repository.Store, links []Link) error {
	for _, l := range links {
		if err := tx.LinkTeacherClass(ctx, l.TeacherID, l.ClassID); err != nil {
			return errors.Wrap(err, "link teacher to class")
		}
	}
	return nil
}

func samePeriod(a model.TimetablePeriodModel, b PeriodInput) bool {
	return a.PeriodNumber == b.PeriodNumber &&
		a.PeriodStartTime == b.StartTime &&
		a.PeriodEndTime == b.EndTime &&
		a.PeriodSubjectID == b.SubjectID &&
		a.PeriodTeacherID == b.TeacherID
}

// UpdatePeriods replaces the period list of an existing timetable. Only periods that
// differ from the stored ones have their teacher and subject re-checked; conflict and
// capacity are not re-evaluated on update.
func (s *Service) UpdatePeriods(ctx context.Context, id uuid.UUID, periods []PeriodInput) (*model.TimetableModel, error) {
	if err := validatePeriods(periods); err != nil {
		return nil, err
	}

	var out *model.TimetableModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		cur, err := tx.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("timetable")
		}
		if err != nil {
			return errors.Wrap(err, "get timetable")
		}

		if err := tx.LockDay(ctx, cur.TimetableDay, cur.TimetableAcademicYear); err != nil {
			return errors.Wrap(err, "lock day")
		}

		byNumber := make(map[int]model.TimetablePeriodModel, len(cur.Periods))
		for _, p := range cur.Periods {
			byNumber[p.PeriodNumber] = p
		}

		next := toPeriodModels(periods)
		ck := Checker{Lookups: tx, MaxPerDay: s.maxPerDay}
		var links []Link
		linked := map[uuid.UUID]bool{}
		for i, p := range periods {
			if old, ok := byNumber[p.PeriodNumber]; ok && samePeriod(old, p) {
				continue
			}
			if err := ck.checkRefs(ctx, next[i]); err != nil {
				return err
			}
			if !linked[p.TeacherID] {
				linked[p.TeacherID] = true
				links = append(links, Link{TeacherID: p.TeacherID, ClassID: cur.TimetableClassID})
			}
		}

		cur.Periods = next
		if err := tx.ReplacePeriods(ctx, cur); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NotFound("timetable")
			}
			return errors.Wrap(err, "replace periods")
		}
		if err := applyLinks(ctx, tx, links); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, out.TimetableDay, out.TimetableAcademicYear)
	return out, nil
}

// Delete removes the timetable and its periods. Teacher-class links stay.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var day model.DayOfWeek
	var year string
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		cur, err := tx.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("timetable")
		}
		if err != nil {
			return errors.Wrap(err, "get timetable")
		}
		day, year = cur.TimetableDay, cur.TimetableAcademicYear
		if err := tx.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NotFound("timetable")
			}
			return errors.Wrap(err, "delete timetable")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, day, year)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.TimetableModel, error) {
	m, err := s.store.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFound("timetable")
	}
	if err != nil {
		return nil, errors.Wrap(err, "get timetable")
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, f repository.ListFilter) ([]model.TimetableModel, int64, error) {
	rows, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list timetables")
	}
	return rows, total, nil
}

// ClassWeek returns every day of a class for one academic year, in weekday order.
func (s *Service) ClassWeek(ctx context.Context, classID uuid.UUID, academicYear string) ([]model.TimetableModel, error) {
	ok, err := s.store.ClassExists(ctx, classID)
	if err != nil {
		return nil, errors.Wrap(err, "class lookup")
	}
	if !ok {
		return nil, NotFound("class")
	}
	f := repository.ListFilter{ClassID: &classID}
	if academicYear != "" {
		f.AcademicYear = &academicYear
	}
	rows, _, err := s.List(ctx, f)
	return rows, err
}

// TeacherSchedule returns the timetables a teacher appears in, periods filtered to
// theirs, ordered by weekday then period number.
func (s *Service) TeacherSchedule(ctx context.Context, teacherID uuid.UUID, academicYear string) ([]model.TimetableModel, error) {
	ok, err := s.store.TeacherExists(ctx, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "teacher lookup")
	}
	if !ok {
		return nil, NotFound("teacher")
	}
	f := repository.ListFilter{TeacherID: &teacherID}
	if academicYear != "" {
		f.AcademicYear = &academicYear
	}
	rows, _, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		mine := rows[i].Periods[:0]
		for _, p := range rows[i].Periods {
			if p.PeriodTeacherID == teacherID {
				mine = append(mine, p)
			}
		}
		rows[i].Periods = mine
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TimetableAcademicYear != b.TimetableAcademicYear {
			return a.TimetableAcademicYear < b.TimetableAcademicYear
		}
		if a.TimetableDay.Order() != b.TimetableDay.Order() {
			return a.TimetableDay.Order() < b.TimetableDay.Order()
		}
		return firstPeriod(a) < firstPeriod(b)
	})
	return rows, nil
}

func firstPeriod(t model.TimetableModel) int {
	n := 0
	for i, p := range t.Periods {
		if i == 0 || p.PeriodNumber < n {
			n = p.PeriodNumber
		}
	}
	return n
}

// LoadReport ranks teachers by period count on one day. Served from cache when present.
func (s *Service) LoadReport(ctx context.Context, day model.DayOfWeek, academicYear string) ([]TeacherLoad, error) {
	if s.cache != nil {
		if rep, ok, err := s.cache.Get(ctx, day, academicYear); err != nil {
			log.Printf("[WARN] load cache get: %v", err)
		} else if ok {
			return rep, nil
		}
	}

	entries, err := s.store.ListByDayYear(ctx, day, academicYear)
	if err != nil {
		return nil, errors.Wrap(err, "load day")
	}
	rep := BuildDailyLoad(entries).Ranked()

	if s.cache != nil {
		if err := s.cache.Set(ctx, day, academicYear, rep); err != nil {
			log.Printf("[WARN] load cache set: %v", err)
		}
	}
	return rep, nil
}

// MaxPerDay is the configured daily cap.
func (s *Service) MaxPerDay() int { return s.maxPerDay }

func (s *Service) invalidate(ctx context.Context, day model.DayOfWeek, academicYear string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, day, academicYear); err != nil {
		log.Printf("[WARN] load cache invalidate %s/%s: %v", day, academicYear, err)
	}
}
