package scheduler

import (
	"context"
	"log"
	"time"

	"schoolku_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler purges tokens expired more than ttlDays ago, once a day,
// until ctx is cancelled.
func StartBlacklistCleanupScheduler(ctx context.Context, repo *repository.BlacklistRepository, ttlDays int) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	go func() {
		t := time.NewTicker(24 * time.Hour)
		defer t.Stop()
		for {
			runCleanup(ctx, repo, ttlDays)
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func runCleanup(ctx context.Context, repo *repository.BlacklistRepository, ttlDays int) {
	cutoff := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := repo.PurgeExpired(ctx, cutoff, 100)
	if err != nil {
		log.Printf("[ERROR] token_blacklist cleanup: %v", err)
		return
	}
	log.Printf("[INFO] token_blacklist cleanup removed %d rows", n)
}
