package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/databases/memdb"
	"schoolku_backend/internals/features/school/directory/model"
	"schoolku_backend/internals/features/school/directory/repository"
)

func TestSeedDirectoryFromJSON_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(memdb.New())

	res, err := SeedDirectoryFromJSON(ctx, store, "data_directory.json")
	require.NoError(t, err)
	assert.Equal(t, 7, res.Inserted)
	assert.Equal(t, 0, res.Skipped)

	res, err = SeedDirectoryFromJSON(ctx, store, "data_directory.json")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 7, res.Skipped)

	teacher, err := store.GetTeacher(ctx, uuid.MustParse("8d2e7c41-6b0f-4f4e-a3a5-2b1c9e7d3b02"))
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", teacher.TeacherName)
	assert.Len(t, teacher.TeacherSubjectIDs, 2)
}

func TestSeedDirectory_SkipsUniqueCollision(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(memdb.New())
	code := "MTK"
	require.NoError(t, store.CreateSubject(ctx, &model.SubjectModel{SubjectName: "Math", SubjectCode: &code}))

	other := "mtk"
	res, err := SeedDirectory(ctx, store, Seed{Subjects: []model.SubjectModel{
		{SubjectID: uuid.New(), SubjectName: "Mathematics", SubjectCode: &other},
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
}

func TestSeedDirectoryFromJSON_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := SeedDirectoryFromJSON(context.Background(), repository.NewMemoryStore(memdb.New()), path)
	assert.Error(t, err)

	_, err = SeedDirectoryFromJSON(context.Background(), repository.NewMemoryStore(memdb.New()), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
