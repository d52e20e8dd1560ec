package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/databases/memdb"
	"schoolku_backend/internals/features/school/directory/model"
)

func TestMemoryStore_TeacherEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(memdb.New())
	email := "siti@schoolku.test"
	require.NoError(t, s.CreateTeacher(ctx, &model.TeacherModel{TeacherName: "Siti", TeacherEmail: &email}))

	upper := "SITI@schoolku.test"
	err := s.CreateTeacher(ctx, &model.TeacherModel{TeacherName: "Other", TeacherEmail: &upper})
	assert.ErrorIs(t, err, ErrDuplicate)

	// no email never collides
	require.NoError(t, s.CreateTeacher(ctx, &model.TeacherModel{TeacherName: "A"}))
	require.NoError(t, s.CreateTeacher(ctx, &model.TeacherModel{TeacherName: "B"}))
}

func TestMemoryStore_ListClassesPages(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(memdb.New())
	for _, name := range []string{"7C", "7A", "7B"} {
		require.NoError(t, s.CreateClass(ctx, &model.ClassModel{ClassName: name}))
	}

	rows, total, err := s.ListClasses(ctx, Page{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "7A", rows[0].ClassName)

	rows, _, err = s.ListClasses(ctx, Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7C", rows[0].ClassName)

	rows, _, err = s.ListClasses(ctx, Page{Limit: 2, Offset: -40})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = s.GetClass(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_AssociationIDs(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	s := NewMemoryStore(db)
	teacher, classA, classB := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, db.Write(func() error {
		for _, c := range []uuid.UUID{classA, classB} {
			db.TeacherClasses[memdb.TeacherClassKey{TeacherID: teacher, ClassID: c}] = model.TeacherClassModel{
				TeacherClassTeacherID: teacher, TeacherClassClassID: c, TeacherClassCreatedAt: time.Now(),
			}
		}
		return nil
	}))

	ids, err := s.TeacherClassIDs(ctx, teacher)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{classA, classB}, ids)

	ids, err = s.ClassTeacherIDs(ctx, classA)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{teacher}, ids)

	ids, err = s.ClassTeacherIDs(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
