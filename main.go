package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rollbar/rollbar-go"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/databases/memdb"
	dirRepo "schoolku_backend/internals/features/school/directory/repository"
	ttRepo "schoolku_backend/internals/features/school/timetables/repository"
	ttService "schoolku_backend/internals/features/school/timetables/service"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
	scheduler "schoolku_backend/internals/features/users/auth/scheduler"
	middlewares "schoolku_backend/internals/middlewares"
	routes "schoolku_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	conf := configs.Conf

	middlewares.InitRollbar(conf.GetString("rollbar_token"), conf.GetString("app_env"))
	defer rollbar.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	deps := routes.Deps{JWTSecret: configs.JWTSecret}

	switch conf.GetString("db_driver") {
	case "memory":
		log.Println("[WARN] DB_DRIVER=memory, data is lost on restart")
		mem := memdb.New()
		deps.Directory = dirRepo.NewMemoryStore(mem)
		deps.Timetables = ttService.New(ttRepo.NewMemoryStore(mem), loadCache(ctx), configs.MaxDailyPeriods())
	default:
		if err := database.ConnectDB(); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		database.TunePool()
		database.WarmUpQueries()
		defer database.Close()

		blacklist := authRepo.NewBlacklistRepository(database.DB, configs.JWTSecret)
		scheduler.StartBlacklistCleanupScheduler(ctx, blacklist, conf.GetInt("token_blacklist_ttl_days"))

		deps.Directory = dirRepo.NewGormStore(database.DB)
		deps.Timetables = ttService.New(ttRepo.NewGormStore(database.DB), loadCache(ctx), configs.MaxDailyPeriods())
		deps.Blacklist = blacklist
		deps.Ping = database.Ping
	}

	app := routes.NewApp()
	middlewares.SetupMiddlewares(app)
	routes.SetupRoutes(app, deps)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := conf.GetString("port")
	go func() {
		log.Printf("[INFO] listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("[ERROR] server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)
}

// loadCache is nil when REDIS_ADDR is unset or unreachable; the report then reads the store.
func loadCache(ctx context.Context) ttService.LoadCache {
	rdb, err := database.ConnectRedis(ctx, configs.Conf.GetString("redis_addr"))
	if err != nil {
		log.Printf("[WARN] load cache disabled: %v", err)
		return nil
	}
	if rdb == nil {
		return nil
	}
	return ttService.NewRedisLoadCache(rdb, configs.LoadCacheTTL())
}
