package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vela-pay/vela_pay/internal/admin"
	"github.com/vela-pay/vela_pay/internal/config"
	"github.com/vela-pay/vela_pay/internal/infra"
	"github.com/vela-pay/vela_pay/internal/logging"
	"github.com/vela-pay/vela_pay/internal/migrations"
)

const (
	defaultAdminName  = "Bootstrap Admin"
	defaultAdminEmail = "admin@velapay.local"
)

func main() {
	seed := flag.Bool("seed", false, "seed the bootstrap admin account after migrating")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.AppEnv)

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	if !*seed {
		return
	}

	ctx := context.Background()

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	input := admin.SeedInput{
		Name:     getEnv("ADMIN_NAME", defaultAdminName),
		Email:    getEnv("ADMIN_EMAIL", defaultAdminEmail),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if input.Password == "" {
		logger.Error("ADMIN_PASSWORD must be set to seed the bootstrap admin")
		os.Exit(1)
	}

	if err := admin.EnsureBootstrapAdmin(ctx, admin.NewPostgresRepository(db), input, logger); err != nil {
		logger.Error("seed bootstrap admin", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
