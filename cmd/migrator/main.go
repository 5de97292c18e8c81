package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"blood-bank-api/config"
	"blood-bank-api/internal/infrastructure/database"
	"blood-bank-api/internal/repository"
	"blood-bank-api/migrations"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	command := args[0]

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatalf("Migrator supports the %s driver only, got %s", config.DriverPostgres, cfg.DB.Driver)
	}

	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	goose.SetBaseFS(migrations.Files)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set goose dialect: %v", err)
	}

	switch command {
	case "up":
		if err := goose.Up(sqlDB, "."); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied")
	case "down":
		if err := goose.Down(sqlDB, "."); err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		log.Info("Last migration rolled back")
	case "status":
		if err := goose.Status(sqlDB, "."); err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
	case "seed":
		err := database.Seed(db, log, cfg.Seed, repository.NewUserRepository(), repository.NewBloodInventoryRepository())
		if err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Info("Seed data applied")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Usage: migrator <command>")
	fmt.Println("Commands:")
	fmt.Println("  up      - apply all pending migrations")
	fmt.Println("  down    - roll back the latest migration")
	fmt.Println("  status  - print migration status")
	fmt.Println("  seed    - create inventory rows and the admin account")
}
