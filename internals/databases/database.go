package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	authModel "schoolku_backend/internals/features/users/auth/model"
	dirModel "schoolku_backend/internals/features/school/directory/model"
	ttModel "schoolku_backend/internals/features/school/timetables/model"
)

var DB *gorm.DB

func dsn() string {
	c := configs.Conf
	// statement_timeout matches the request timeout guard
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolku&options=-c statement_timeout=3000",
		c.GetString("db_user"),
		c.GetString("db_password"),
		c.GetString("db_host"),
		c.GetString("db_port"),
		c.GetString("db_name"),
		c.GetString("db_sslmode"),
	)
}

func ConnectDB() error {
	log.Println("[INFO] connecting to PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return errors.Wrap(err, "open postgres")
	}
	DB = db
	log.Println("[INFO] DB connected")
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx); err != nil {
			log.Printf("[WARN] warm-up ping: %v", err)
			return
		}
		DB.WithContext(ctx).Exec("SELECT 1 FROM timetables LIMIT 1")
	}()
}

func Ping(ctx context.Context) error {
	if DB == nil {
		return errors.New("database not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(
		&dirModel.ClassModel{},
		&dirModel.TeacherModel{},
		&dirModel.SubjectModel{},
		&dirModel.TeacherClassModel{},
		&ttModel.TimetableModel{},
		&ttModel.TimetablePeriodModel{},
		&authModel.TokenBlacklist{},
	), "auto migrate")
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
