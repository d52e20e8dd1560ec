// Package memdb is an in-process database used with DB_DRIVER=memory and in tests.
package memdb

import (
	"sync"

	"github.com/google/uuid"

	dirModel "schoolku_backend/internals/features/school/directory/model"
	ttModel "schoolku_backend/internals/features/school/timetables/model"
)

type TeacherClassKey struct {
	TeacherID uuid.UUID
	ClassID   uuid.UUID
}

type DB struct {
	mu sync.RWMutex

	Classes        map[uuid.UUID]dirModel.ClassModel
	Teachers       map[uuid.UUID]dirModel.TeacherModel
	Subjects       map[uuid.UUID]dirModel.SubjectModel
	TeacherClasses map[TeacherClassKey]dirModel.TeacherClassModel
	Timetables     map[uuid.UUID]ttModel.TimetableModel
}

func New() *DB {
	return &DB{
		Classes:        make(map[uuid.UUID]dirModel.ClassModel),
		Teachers:       make(map[uuid.UUID]dirModel.TeacherModel),
		Subjects:       make(map[uuid.UUID]dirModel.SubjectModel),
		TeacherClasses: make(map[TeacherClassKey]dirModel.TeacherClassModel),
		Timetables:     make(map[uuid.UUID]ttModel.TimetableModel),
	}
}

// Read runs fn under the shared lock.
func (db *DB) Read(fn func()) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn()
}

// Write runs fn under the exclusive lock.
func (db *DB) Write(fn func() error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn()
}

// Tx runs fn under the exclusive lock and restores every table if fn fails.
// Rows are stored by value and never mutated in place, so copying the maps is enough.
func (db *DB) Tx(fn func() error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	snap := db.copyTables()
	if err := fn(); err != nil {
		db.restore(snap)
		return err
	}
	return nil
}

type tables struct {
	classes        map[uuid.UUID]dirModel.ClassModel
	teachers       map[uuid.UUID]dirModel.TeacherModel
	subjects       map[uuid.UUID]dirModel.SubjectModel
	teacherClasses map[TeacherClassKey]dirModel.TeacherClassModel
	timetables     map[uuid.UUID]ttModel.TimetableModel
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (db *DB) copyTables() tables {
	return tables{
		classes:        copyMap(db.Classes),
		teachers:       copyMap(db.Teachers),
		subjects:       copyMap(db.Subjects),
		teacherClasses: copyMap(db.TeacherClasses),
		timetables:     copyMap(db.Timetables),
	}
}

func (db *DB) restore(t tables) {
	db.Classes = t.classes
	db.Teachers = t.teachers
	db.Subjects = t.subjects
	db.TeacherClasses = t.teacherClasses
	db.Timetables = t.timetables
}
