package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/timetables/model"
)

func entry(classID uuid.UUID, periods ...model.TimetablePeriodModel) model.TimetableModel {
	return model.TimetableModel{
		TimetableID:           uuid.New(),
		TimetableClassID:      classID,
		TimetableDay:          model.Monday,
		TimetableAcademicYear: "2024",
		Periods:               periods,
	}
}

func period(n int, teacherID uuid.UUID) model.TimetablePeriodModel {
	return model.TimetablePeriodModel{
		PeriodID:        uuid.New(),
		PeriodNumber:    n,
		PeriodStartTime: model.MustHHMM("07:00"),
		PeriodEndTime:   model.MustHHMM("07:45"),
		PeriodSubjectID: uuid.New(),
		PeriodTeacherID: teacherID,
	}
}

func TestBuildDailyLoad(t *testing.T) {
	t1, t2 := uuid.New(), uuid.New()
	c1, c2 := uuid.New(), uuid.New()

	load := BuildDailyLoad([]model.TimetableModel{
		entry(c1, period(1, t1), period(2, t2), period(3, t1)),
		entry(c2, period(1, t2)),
	})

	assert.Equal(t, 2, load.Counts[t1])
	assert.Equal(t, 2, load.Counts[t2])
	assert.Len(t, load.Slots, 4)
	assert.Contains(t, load.Slots, Slot{ClassID: c2, PeriodNumber: 1, TeacherID: t2})
}

func TestBuildDailyLoad_Empty(t *testing.T) {
	load := BuildDailyLoad(nil)
	require.NotNil(t, load.Counts)
	assert.Empty(t, load.Slots)
	assert.Empty(t, load.Ranked())
}

func TestConflictFor_IgnoresSameClass(t *testing.T) {
	teacher, own, other := uuid.New(), uuid.New(), uuid.New()
	load := BuildDailyLoad([]model.TimetableModel{entry(own, period(1, teacher))})

	_, hit := load.conflictFor(own, teacher, 1)
	assert.False(t, hit)

	s, hit := load.conflictFor(other, teacher, 1)
	assert.True(t, hit)
	assert.Equal(t, own, s.ClassID)

	_, hit = load.conflictFor(other, teacher, 2)
	assert.False(t, hit)
}

func TestRanked(t *testing.T) {
	busy, idle := uuid.New(), uuid.New()
	c := uuid.New()
	load := BuildDailyLoad([]model.TimetableModel{
		entry(c, period(1, busy), period(2, idle), period(3, busy)),
	})

	got := load.Ranked()
	require.Len(t, got, 2)
	assert.Equal(t, TeacherLoad{TeacherID: busy, Periods: 2}, got[0])
	assert.Equal(t, TeacherLoad{TeacherID: idle, Periods: 1}, got[1])
}
