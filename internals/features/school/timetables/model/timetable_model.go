package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Sunday    DayOfWeek = "Sunday"
)

// Days is the school week in display order. Saturday is not a school day.
var Days = []DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseDay accepts any casing ("monday", "MONDAY") and returns the canonical day.
func ParseDay(s string) (DayOfWeek, error) {
	s = strings.TrimSpace(s)
	for _, d := range Days {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day %q", s)
}

// Order gives the weekday position used for sorting (Sunday first).
func (d DayOfWeek) Order() int {
	for i, v := range Days {
		if v == d {
			return i
		}
	}
	return len(Days)
}

// TimetableModel is one row per (class, day, academic year).
type TimetableModel struct {
	TimetableID           uuid.UUID `json:"timetable_id"            gorm:"column:timetable_id;type:uuid;primaryKey"`
	TimetableClassID      uuid.UUID `json:"timetable_class_id"      gorm:"column:timetable_class_id;type:uuid;not null;uniqueIndex:uq_timetables_class_day_year,priority:1"`
	TimetableDay          DayOfWeek `json:"timetable_day"           gorm:"column:timetable_day;type:varchar(16);not null;uniqueIndex:uq_timetables_class_day_year,priority:2;index:idx_timetables_day_year,priority:1"`
	TimetableAcademicYear string    `json:"timetable_academic_year" gorm:"column:timetable_academic_year;type:varchar(20);not null;uniqueIndex:uq_timetables_class_day_year,priority:3;index:idx_timetables_day_year,priority:2"`

	Periods []TimetablePeriodModel `json:"periods" gorm:"foreignKey:PeriodTimetableID;references:TimetableID;constraint:OnDelete:CASCADE"`

	TimetableCreatedAt time.Time `json:"timetable_created_at" gorm:"column:timetable_created_at;not null;autoCreateTime"`
	TimetableUpdatedAt time.Time `json:"timetable_updated_at" gorm:"column:timetable_updated_at;not null;autoUpdateTime"`
}

func (TimetableModel) TableName() string { return "timetables" }

// TimetablePeriodModel is a period inside a timetable. Position keeps the submitted list order.
type TimetablePeriodModel struct {
	PeriodID          uuid.UUID      `json:"period_id"           gorm:"column:period_id;type:uuid;primaryKey"`
	PeriodTimetableID uuid.UUID      `json:"period_timetable_id" gorm:"column:period_timetable_id;type:uuid;not null;index"`
	PeriodPosition    int            `json:"period_position"     gorm:"column:period_position;not null"`
	PeriodNumber      int            `json:"period_number"       gorm:"column:period_number;not null"`
	PeriodStartTime   datatypes.Time `json:"period_start_time"   gorm:"column:period_start_time;not null"`
	PeriodEndTime     datatypes.Time `json:"period_end_time"     gorm:"column:period_end_time;not null"`
	PeriodSubjectID   uuid.UUID      `json:"period_subject_id"   gorm:"column:period_subject_id;type:uuid;not null"`
	PeriodTeacherID   uuid.UUID      `json:"period_teacher_id"   gorm:"column:period_teacher_id;type:uuid;not null;index"`
}

func (TimetablePeriodModel) TableName() string { return "timetable_periods" }

// Clone returns a deep copy, periods included.
func (m TimetableModel) Clone() TimetableModel {
	out := m
	out.Periods = append([]TimetablePeriodModel(nil), m.Periods...)
	return out
}

// FormatHHMM renders a datatypes.Time as "15:04".
func FormatHHMM(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int((d%time.Hour)/time.Minute))
}

// ParseHHMM parses "15:04" (or "15:04:05") into a time-of-day.
func ParseHHMM(s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time format (want HH:mm)")
		}
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
}

// MustHHMM is ParseHHMM for literals; it panics on bad input.
func MustHHMM(s string) datatypes.Time {
	t, err := ParseHHMM(s)
	if err != nil {
		panic(err)
	}
	return t
}
