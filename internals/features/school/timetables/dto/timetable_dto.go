package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/timetables/model"
	"schoolku_backend/internals/features/school/timetables/service"
)

/* =======================================================
   Requests
   ======================================================= */

type PeriodRequest struct {
	PeriodNumber int    `json:"periodNumber" validate:"required,gte=1"`
	StartTime    string `json:"startTime"    validate:"required,hhmm"`
	EndTime      string `json:"endTime"      validate:"required,hhmm"`
	Subject      string `json:"subject"      validate:"required,uuid"`
	Teacher      string `json:"teacher"      validate:"required,uuid"`
}

type CreateTimetableRequest struct {
	Class        string          `json:"class"        validate:"required,uuid"`
	Day          string          `json:"day"          validate:"required"`
	AcademicYear string          `json:"academicYear" validate:"required,max=20"`
	Periods      []PeriodRequest `json:"periods"      validate:"required,min=1,dive"`
}

type UpdatePeriodsRequest struct {
	Periods []PeriodRequest `json:"periods" validate:"required,min=1,dive"`
}

// ToInput assumes the request passed validation.
func (r CreateTimetableRequest) ToInput() (service.CreateInput, error) {
	day, err := model.ParseDay(r.Day)
	if err != nil {
		return service.CreateInput{}, service.Validation(map[string][]string{"day": {err.Error()}})
	}
	periods, err := toPeriodInputs(r.Periods)
	if err != nil {
		return service.CreateInput{}, err
	}
	return service.CreateInput{
		ClassID:      uuid.MustParse(r.Class),
		Day:          day,
		AcademicYear: r.AcademicYear,
		Periods:      periods,
	}, nil
}

func (r UpdatePeriodsRequest) ToInputs() ([]service.PeriodInput, error) {
	return toPeriodInputs(r.Periods)
}

func toPeriodInputs(in []PeriodRequest) ([]service.PeriodInput, error) {
	out := make([]service.PeriodInput, 0, len(in))
	fields := map[string][]string{}
	for i, p := range in {
		start, err := model.ParseHHMM(p.StartTime)
		if err != nil {
			key := fmt.Sprintf("periods[%d].startTime", i)
			fields[key] = append(fields[key], err.Error())
		}
		end, err := model.ParseHHMM(p.EndTime)
		if err != nil {
			key := fmt.Sprintf("periods[%d].endTime", i)
			fields[key] = append(fields[key], err.Error())
		}
		out = append(out, service.PeriodInput{
			PeriodNumber: p.PeriodNumber,
			StartTime:    start,
			EndTime:      end,
			SubjectID:    uuid.MustParse(p.Subject),
			TeacherID:    uuid.MustParse(p.Teacher),
		})
	}
	if len(fields) > 0 {
		return nil, service.Validation(fields)
	}
	return out, nil
}

/* =======================================================
   Responses
   ======================================================= */

type PeriodResponse struct {
	ID           uuid.UUID `json:"id"`
	PeriodNumber int       `json:"periodNumber"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Subject      uuid.UUID `json:"subject"`
	Teacher      uuid.UUID `json:"teacher"`
}

type TimetableResponse struct {
	ID           uuid.UUID        `json:"id"`
	Class        uuid.UUID        `json:"class"`
	Day          model.DayOfWeek  `json:"day"`
	AcademicYear string           `json:"academicYear"`
	Periods      []PeriodResponse `json:"periods"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func FromModel(m model.TimetableModel) TimetableResponse {
	ps := make([]PeriodResponse, 0, len(m.Periods))
	for _, p := range m.Periods {
		ps = append(ps, PeriodResponse{
			ID:           p.PeriodID,
			PeriodNumber: p.PeriodNumber,
			StartTime:    model.FormatHHMM(p.PeriodStartTime),
			EndTime:      model.FormatHHMM(p.PeriodEndTime),
			Subject:      p.PeriodSubjectID,
			Teacher:      p.PeriodTeacherID,
		})
	}
	return TimetableResponse{
		ID:           m.TimetableID,
		Class:        m.TimetableClassID,
		Day:          m.TimetableDay,
		AcademicYear: m.TimetableAcademicYear,
		Periods:      ps,
		CreatedAt:    m.TimetableCreatedAt,
		UpdatedAt:    m.TimetableUpdatedAt,
	}
}

func FromModels(rows []model.TimetableModel) []TimetableResponse {
	out := make([]TimetableResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type TeacherLoadResponse struct {
	Teacher   uuid.UUID `json:"teacher"`
	Periods   int       `json:"periods"`
	Remaining int       `json:"remaining"`
}

type LoadReportResponse struct {
	Day          model.DayOfWeek       `json:"day"`
	AcademicYear string                `json:"academicYear"`
	MaxPerDay    int                   `json:"maxPerDay"`
	Teachers     []TeacherLoadResponse `json:"teachers"`
}

func FromLoad(day model.DayOfWeek, year string, maxPerDay int, rows []service.TeacherLoad) LoadReportResponse {
	out := LoadReportResponse{Day: day, AcademicYear: year, MaxPerDay: maxPerDay, Teachers: make([]TeacherLoadResponse, 0, len(rows))}
	for _, r := range rows {
		rem := maxPerDay - r.Periods
		if rem < 0 {
			rem = 0
		}
		out.Teachers = append(out.Teachers, TeacherLoadResponse{Teacher: r.TeacherID, Periods: r.Periods, Remaining: rem})
	}
	return out
}

/* =======================================================
   Query
   ======================================================= */

type ListQuery struct {
	ClassID      string `query:"class_id"`
	TeacherID    string `query:"teacher_id"`
	Day          string `query:"day"`
	AcademicYear string `query:"academic_year"`
}
