package directory

import (
	"context"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"schoolku_backend/internals/features/school/directory/model"
	"schoolku_backend/internals/features/school/directory/repository"
)

// Seed is the file layout read by SeedDirectoryFromJSON. Rows carry their own ids
// so timetable fixtures can reference them.
type Seed struct {
	Subjects []model.SubjectModel `json:"subjects"`
	Teachers []model.TeacherModel `json:"teachers"`
	Classes  []model.ClassModel   `json:"classes"`
}

type Result struct {
	Inserted int
	Skipped  int
}

func SeedDirectoryFromJSON(ctx context.Context, store repository.Store, filePath string) (Result, error) {
	log.Println("[INFO] reading seed file:", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return Result{}, errors.Wrap(err, "read seed file")
	}
	var seed Seed
	if err := sonic.Unmarshal(raw, &seed); err != nil {
		return Result{}, errors.Wrap(err, "decode seed file")
	}
	return SeedDirectory(ctx, store, seed)
}

// SeedDirectory inserts rows whose id is not present yet. Rows that collide on a
// unique column are skipped as well.
func SeedDirectory(ctx context.Context, store repository.Store, seed Seed) (Result, error) {
	var res Result

	step := func(kind string, id any, exists func() error, create func() error) error {
		err := exists()
		switch {
		case err == nil:
			res.Skipped++
			log.Printf("[INFO] %s %v already exists, skipped", kind, id)
			return nil
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		if err := create(); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				res.Skipped++
				log.Printf("[WARN] %s %v duplicates an existing row, skipped", kind, id)
				return nil
			}
			return err
		}
		res.Inserted++
		return nil
	}

	for i := range seed.Subjects {
		m := &seed.Subjects[i]
		err := step("subject", m.SubjectID,
			func() error { _, err := store.GetSubject(ctx, m.SubjectID); return err },
			func() error { return store.CreateSubject(ctx, m) })
		if err != nil {
			return res, err
		}
	}
	for i := range seed.Teachers {
		m := &seed.Teachers[i]
		err := step("teacher", m.TeacherID,
			func() error { _, err := store.GetTeacher(ctx, m.TeacherID); return err },
			func() error { return store.CreateTeacher(ctx, m) })
		if err != nil {
			return res, err
		}
	}
	for i := range seed.Classes {
		m := &seed.Classes[i]
		err := step("class", m.ClassID,
			func() error { _, err := store.GetClass(ctx, m.ClassID); return err },
			func() error { return store.CreateClass(ctx, m) })
		if err != nil {
			return res, err
		}
	}

	log.Printf("[INFO] seed done: %d inserted, %d skipped", res.Inserted, res.Skipped)
	return res, nil
}
