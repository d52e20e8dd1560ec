package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/timetables/model"
	"schoolku_backend/internals/features/school/timetables/service"
)

func period(n int, start, end string) PeriodRequest {
	return PeriodRequest{PeriodNumber: n, StartTime: start, EndTime: end, Subject: uuid.NewString(), Teacher: uuid.NewString()}
}

func TestToInput(t *testing.T) {
	req := CreateTimetableRequest{
		Class:        uuid.NewString(),
		Day:          "monday",
		AcademicYear: "2024/2025",
		Periods:      []PeriodRequest{period(1, "07:00", "07:45")},
	}
	in, err := req.ToInput()
	require.NoError(t, err)
	assert.Equal(t, model.Monday, in.Day)
	require.Len(t, in.Periods, 1)
	assert.Equal(t, "07:45", model.FormatHHMM(in.Periods[0].EndTime))

	req.Day = "Saturday"
	_, err = req.ToInput()
	var te *service.TimetableError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Fields, "day")
}

func TestToInputs_TimeErrorsAreIndexed(t *testing.T) {
	req := UpdatePeriodsRequest{Periods: []PeriodRequest{
		period(1, "07:00", "07:45"),
		period(2, "7am", "08:30"),
		period(3, "08:30", "late"),
	}}
	_, err := req.ToInputs()

	var te *service.TimetableError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, service.KindValidation, te.Kind)
	assert.Len(t, te.Fields, 2)
	assert.Contains(t, te.Fields, "periods[1].startTime")
	assert.Contains(t, te.Fields, "periods[2].endTime")
}

