package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"schoolku_backend/internals/features/school/timetables/model"
)

// LoadCache stores rendered load reports. It only backs the read endpoint;
// conflict and capacity checks always read the store.
type LoadCache interface {
	Get(ctx context.Context, day model.DayOfWeek, academicYear string) ([]TeacherLoad, bool, error)
	Set(ctx context.Context, day model.DayOfWeek, academicYear string, report []TeacherLoad) error
	Invalidate(ctx context.Context, day model.DayOfWeek, academicYear string) error
}

type RedisLoadCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLoadCache(rdb *redis.Client, ttl time.Duration) *RedisLoadCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisLoadCache{rdb: rdb, ttl: ttl}
}

func loadKey(day model.DayOfWeek, academicYear string) string {
	return fmt.Sprintf("timetable:load:%s:%s", day, academicYear)
}

func (c *RedisLoadCache) Get(ctx context.Context, day model.DayOfWeek, academicYear string) ([]TeacherLoad, bool, error) {
	raw, err := c.rdb.Get(ctx, loadKey(day, academicYear)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get load")
	}
	var out []TeacherLoad
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, errors.Wrap(err, "decode load")
	}
	return out, true, nil
}

func (c *RedisLoadCache) Set(ctx context.Context, day model.DayOfWeek, academicYear string, report []TeacherLoad) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "encode load")
	}
	return errors.Wrap(c.rdb.Set(ctx, loadKey(day, academicYear), raw, c.ttl).Err(), "redis set load")
}

func (c *RedisLoadCache) Invalidate(ctx context.Context, day model.DayOfWeek, academicYear string) error {
	return errors.Wrap(c.rdb.Del(ctx, loadKey(day, academicYear)).Err(), "redis del load")
}
