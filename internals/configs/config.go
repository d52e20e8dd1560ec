package configs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	Conf      *viper.Viper
	JWTSecret string
)

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("app_env", "development")
	Conf.SetDefault("port", "3000")
	Conf.SetDefault("db_driver", "postgres")
	Conf.SetDefault("db_sslmode", "require")
	Conf.SetDefault("jwt_secret", "")
	Conf.SetDefault("redis_addr", "")
	Conf.SetDefault("rollbar_token", "")
	Conf.SetDefault("cors_origins", "")
	Conf.SetDefault("trusted_proxies", "")
	Conf.SetDefault("timetable_max_daily_periods", 7)
	Conf.SetDefault("timetable_load_cache_ttl", 60*time.Second)
	Conf.SetDefault("token_blacklist_ttl_days", 7)

	Conf.AutomaticEnv()
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if GetEnv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env not found, using system environment")
		} else {
			log.Println("[INFO] .env loaded")
		}
	} else {
		log.Println("[INFO] running on Railway, using system environment")
	}

	JWTSecret = Conf.GetString("jwt_secret")
	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	} else {
		log.Println("[INFO] JWT_SECRET loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// MaxDailyPeriods is the number of periods a teacher may hold on one day.
func MaxDailyPeriods() int {
	if n := Conf.GetInt("timetable_max_daily_periods"); n > 0 {
		return n
	}
	return 7
}

// TrustedProxies is the comma separated TRUSTED_PROXIES list (IPs or CIDRs).
// X-Forwarded-For is honoured only for requests coming from one of them.
func TrustedProxies() []string {
	out := make([]string, 0)
	for _, p := range strings.Split(Conf.GetString("trusted_proxies"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadCacheTTL() time.Duration {
	return Conf.GetDuration("timetable_load_cache_ttl")
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if Conf.GetString("app_env") == "development" {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
