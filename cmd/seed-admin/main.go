// seed-admin создаёт или перезаписывает учётную запись администратора.
// Пароль хранится только в виде bcrypt-хэша.
//
//	DATABASE_URL=mongodb://localhost:27017/cms ADMIN_PASSWORD=... go run ./cmd/seed-admin --username admin
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage/mongo"
)

func main() {
	var (
		dbURL    string
		username string
		password string
		name     string
		inactive bool
	)

	flag.StringVar(&dbURL, "db", os.Getenv("DATABASE_URL"), "MongoDB URI (default $DATABASE_URL)")
	flag.StringVar(&username, "username", getEnv("ADMIN_USERNAME", "admin"), "admin username")
	flag.StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password (default $ADMIN_PASSWORD)")
	flag.StringVar(&name, "name", getEnv("ADMIN_NAME", "Administrador"), "display name")
	flag.BoolVar(&inactive, "inactive", false, "create the account disabled")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if dbURL == "" || password == "" {
		log.Error("seed_args_missing", slog.String("hint", "set --db/DATABASE_URL and --password/ADMIN_PASSWORD"))
		os.Exit(2)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		log.Error("password_hash_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := mongo.New(ctx, dbURL)
	if err != nil {
		log.Error("mongo_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close(context.Background()) }()

	admin, err := db.UpsertAdmin(ctx, models.Admin{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Active:       !inactive,
	})
	if err != nil {
		log.Error("admin_upsert_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("admin_seeded",
		slog.String("admin_id", admin.ID),
		slog.String("username", admin.Username),
		slog.Bool("active", admin.Active),
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
