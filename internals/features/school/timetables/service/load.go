package service

import (
	"sort"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/timetables/model"
)

// Slot is one scheduled period of one class.
type Slot struct {
	ClassID      uuid.UUID
	PeriodNumber int
	TeacherID    uuid.UUID
}

// DailyLoad is the state of one (day, academic year) across all classes.
type DailyLoad struct {
	Counts map[uuid.UUID]int
	Slots  []Slot
}

// BuildDailyLoad tallies every period of every entry. Entries are expected to share
// the same day and academic year.
func BuildDailyLoad(entries []model.TimetableModel) DailyLoad {
	load := DailyLoad{Counts: make(map[uuid.UUID]int)}
	for _, e := range entries {
		for _, p := range e.Periods {
			load.Counts[p.PeriodTeacherID]++
			load.Slots = append(load.Slots, Slot{
				ClassID:      e.TimetableClassID,
				PeriodNumber: p.PeriodNumber,
				TeacherID:    p.PeriodTeacherID,
			})
		}
	}
	return load
}

// conflictFor returns the first slot holding teacherID at periodNumber in another class.
func (l DailyLoad) conflictFor(classID, teacherID uuid.UUID, periodNumber int) (Slot, bool) {
	for _, s := range l.Slots {
		if s.PeriodNumber == periodNumber && s.TeacherID == teacherID && s.ClassID != classID {
			return s, true
		}
	}
	return Slot{}, false
}

type TeacherLoad struct {
	TeacherID uuid.UUID
	Periods   int
}

// Ranked lists teachers by period count (desc), ties by id.
func (l DailyLoad) Ranked() []TeacherLoad {
	out := make([]TeacherLoad, 0, len(l.Counts))
	for id, n := range l.Counts {
		out = append(out, TeacherLoad{TeacherID: id, Periods: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Periods != out[j].Periods {
			return out[i].Periods > out[j].Periods
		}
		return out[i].TeacherID.String() < out[j].TeacherID.String()
	})
	return out
}
