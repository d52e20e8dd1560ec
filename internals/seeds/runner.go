package seeds

import (
	"context"

	"schoolku_backend/internals/features/school/directory/repository"
	directory "schoolku_backend/internals/seeds/directory"
)

const DefaultDirectorySeed = "internals/seeds/directory/data_directory.json"

// RunAllSeeds loads every fixture in dependency order.
func RunAllSeeds(ctx context.Context, store repository.Store, directoryFile string) error {
	if directoryFile == "" {
		directoryFile = DefaultDirectorySeed
	}
	_, err := directory.SeedDirectoryFromJSON(ctx, store, directoryFile)
	return err
}
