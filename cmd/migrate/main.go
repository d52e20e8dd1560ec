package main

import (
	"context"
	"flag"
	"log"
	"time"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	dirRepo "schoolku_backend/internals/features/school/directory/repository"
	"schoolku_backend/internals/seeds"
)

func main() {
	seed := flag.Bool("seed", false, "load the directory fixture after migrating")
	seedFile := flag.String("seed-file", seeds.DefaultDirectorySeed, "directory fixture (json)")
	flag.Parse()

	configs.LoadEnv()
	if err := database.ConnectDB(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer database.Close()

	start := time.Now()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("[ERROR] migrate: %v", err)
	}
	log.Printf("[INFO] migrate done in %s", time.Since(start).Round(time.Millisecond))

	if !*seed {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := seeds.RunAllSeeds(ctx, dirRepo.NewGormStore(database.DB), *seedFile); err != nil {
		log.Fatalf("[ERROR] seed: %v", err)
	}
}
