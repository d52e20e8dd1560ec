package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"schoolku_backend/internals/features/school/timetables/model"
)

// Lookups resolves the ids a period refers to.
type Lookups interface {
	TeacherExists(ctx context.Context, id uuid.UUID) (bool, error)
	SubjectExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Link is a teacher <-> class association to record once the timetable is stored.
type Link struct {
	TeacherID uuid.UUID
	ClassID   uuid.UUID
}

type Checker struct {
	Lookups   Lookups
	MaxPerDay int
}

// Check walks periods in list order. Each accepted period adds one to its teacher's
// running count, so a later period of the same request sees the earlier ones.
// Nothing is written; the returned links are deduplicated and in first-seen order.
func (ck Checker) Check(ctx context.Context, classID uuid.UUID, periods []model.TimetablePeriodModel, load DailyLoad) ([]Link, error) {
	running := make(map[uuid.UUID]int, len(load.Counts))
	for id, n := range load.Counts {
		running[id] = n
	}

	links := make([]Link, 0, len(periods))
	seen := make(map[uuid.UUID]struct{}, len(periods))

	for _, p := range periods {
		if err := ck.checkRefs(ctx, p); err != nil {
			return nil, err
		}

		if _, hit := load.conflictFor(classID, p.PeriodTeacherID, p.PeriodNumber); hit {
			return nil, Conflict(p.PeriodNumber)
		}

		if n := running[p.PeriodTeacherID]; n >= ck.MaxPerDay {
			return nil, CapacityExceeded(n)
		}
		running[p.PeriodTeacherID]++

		if _, ok := seen[p.PeriodTeacherID]; !ok {
			seen[p.PeriodTeacherID] = struct{}{}
			links = append(links, Link{TeacherID: p.PeriodTeacherID, ClassID: classID})
		}
	}
	return links, nil
}

func (ck Checker) checkRefs(ctx context.Context, p model.TimetablePeriodModel) error {
	ok, err := ck.Lookups.TeacherExists(ctx, p.PeriodTeacherID)
	if err != nil {
		return errors.Wrap(err, "teacher lookup")
	}
	if !ok {
		return NotFound("teacher")
	}
	ok, err = ck.Lookups.SubjectExists(ctx, p.PeriodSubjectID)
	if err != nil {
		return errors.Wrap(err, "subject lookup")
	}
	if !ok {
		return NotFound("subject")
	}
	return nil
}
