package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/users/auth/model"
)

type BlacklistRepository struct {
	db     *gorm.DB
	secret string
}

func NewBlacklistRepository(db *gorm.DB, jwtSecret string) *BlacklistRepository {
	return &BlacklistRepository{db: db, secret: jwtSecret}
}

func (r *BlacklistRepository) hash(raw string) string {
	m := hmac.New(sha256.New, []byte(r.secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// Revoke stores the token until expiresAt. Revoking twice refreshes the expiry.
func (r *BlacklistRepository) Revoke(ctx context.Context, raw string, expiresAt time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	row := model.TokenBlacklist{Token: r.hash(raw), ExpiredAt: expiresAt}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{"expired_at": expiresAt, "deleted_at": nil}),
	}).Create(&row).Error
	return errors.Wrap(err, "revoke token")
}

func (r *BlacklistRepository) IsRevoked(ctx context.Context, raw string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", r.hash(raw), time.Now()).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "check revoked token")
	}
	return n > 0, nil
}

// Checker adapts IsRevoked to the JWT middleware hook.
func (r *BlacklistRepository) Checker(timeout time.Duration) func(string) (bool, error) {
	return func(raw string) (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return r.IsRevoked(ctx, raw)
	}
}

// PurgeExpired hard-deletes up to limit rows that expired before cutoff.
func (r *BlacklistRepository) PurgeExpired(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	sub := r.db.Model(&model.TokenBlacklist{}).Unscoped().
		Select("id").Where("expired_at < ?", cutoff).Limit(limit)
	res := r.db.WithContext(ctx).Unscoped().Where("id IN (?)", sub).Delete(&model.TokenBlacklist{})
	return res.RowsAffected, errors.Wrap(res.Error, "purge expired tokens")
}
