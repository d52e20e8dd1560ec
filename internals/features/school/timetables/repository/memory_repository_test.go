package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/databases/memdb"
	"schoolku_backend/internals/features/school/timetables/model"
)

func newTimetable(classID, teacherID uuid.UUID, day model.DayOfWeek, numbers ...int) *model.TimetableModel {
	m := &model.TimetableModel{TimetableClassID: classID, TimetableDay: day, TimetableAcademicYear: "2024/2025"}
	for i, n := range numbers {
		m.Periods = append(m.Periods, model.TimetablePeriodModel{
			PeriodPosition:  i,
			PeriodNumber:    n,
			PeriodStartTime: model.MustHHMM("07:00"),
			PeriodEndTime:   model.MustHHMM("07:40"),
			PeriodSubjectID: uuid.New(),
			PeriodTeacherID: teacherID,
		})
	}
	return m
}

func TestMemoryStore_CreateRejectsDuplicateSlot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(memdb.New())
	class := uuid.New()

	first := newTimetable(class, uuid.New(), model.Monday, 1)
	require.NoError(t, s.Create(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.TimetableID)
	assert.Equal(t, first.TimetableID, first.Periods[0].PeriodTimetableID)

	err := s.Create(ctx, newTimetable(class, uuid.New(), model.Monday, 2))
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, s.Create(ctx, newTimetable(class, uuid.New(), model.Tuesday, 2)))
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(memdb.New())
	m := newTimetable(uuid.New(), uuid.New(), model.Monday, 1)
	require.NoError(t, s.Create(ctx, m))

	got, err := s.Get(ctx, m.TimetableID)
	require.NoError(t, err)
	got.Periods[0].PeriodNumber = 99

	again, err := s.Get(ctx, m.TimetableID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Periods[0].PeriodNumber)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(memdb.New())
	teacher := uuid.New()
	class := uuid.New()

	require.NoError(t, s.Create(ctx, newTimetable(class, teacher, model.Friday, 1)))
	require.NoError(t, s.Create(ctx, newTimetable(class, teacher, model.Sunday, 1)))
	require.NoError(t, s.Create(ctx, newTimetable(class, uuid.New(), model.Monday, 1)))
	require.NoError(t, s.Create(ctx, newTimetable(uuid.New(), teacher, model.Monday, 2)))

	rows, total, err := s.List(ctx, ListFilter{ClassID: &class})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, []model.DayOfWeek{model.Sunday, model.Monday, model.Friday},
		[]model.DayOfWeek{rows[0].TimetableDay, rows[1].TimetableDay, rows[2].TimetableDay})

	_, total, err = s.List(ctx, ListFilter{TeacherID: &teacher})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	monday := model.Monday
	rows, total, err = s.List(ctx, ListFilter{Day: &monday, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 1)

	rows, total, err = s.List(ctx, ListFilter{Limit: 20, Offset: -(1 << 30)})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, rows, 4)

	rows, _, err = s.List(ctx, ListFilter{Limit: 20, Offset: 1 << 30})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(memdb.New())
	teacher, class := uuid.New(), uuid.New()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx Store) error {
		require.NoError(t, tx.Create(ctx, newTimetable(class, teacher, model.Monday, 1)))
		require.NoError(t, tx.LinkTeacherClass(ctx, teacher, class))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, total, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}

func TestMemoryStore_ReplaceAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(memdb.New())
	m := newTimetable(uuid.New(), uuid.New(), model.Monday, 1)
	require.NoError(t, s.Create(ctx, m))

	m.Periods = newTimetable(m.TimetableClassID, uuid.New(), model.Monday, 3, 4).Periods
	require.NoError(t, s.ReplacePeriods(ctx, m))
	got, err := s.Get(ctx, m.TimetableID)
	require.NoError(t, err)
	assert.Len(t, got.Periods, 2)

	require.NoError(t, s.Delete(ctx, m.TimetableID))
	assert.ErrorIs(t, s.Delete(ctx, m.TimetableID), ErrNotFound)
	assert.ErrorIs(t, s.ReplacePeriods(ctx, m), ErrNotFound)
}
