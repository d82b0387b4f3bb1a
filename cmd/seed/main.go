// Package main creates the demo account used to log in and record deposits.
package main

import (
	"context"
	"errors"
	"os"

	"depositor/internal/config"
	"depositor/internal/logger"
	"depositor/internal/models"
	"depositor/internal/repositories"
	"depositor/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.Must(cfg.Env).Named("seed")
	defer log.Sync() //nolint:errcheck

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	name := config.GetEnv("SEED_NAME", "Demo User")

	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD must be set in environment")
	}
	if err := validation.ValidatePassword(password); err != nil {
		log.Fatal("SEED_PASSWORD rejected", zap.Error(err))
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db, nil, log)

	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		log.Info("user already exists", zap.String("email", email))
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		log.Fatal("failed to look up user", zap.Error(err))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}

	user := &models.User{
		Email:        email,
		Password:     string(hashedPassword),
		Name:         name,
		Role:         "user",
		TokenVersion: 1,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal("failed to create user", zap.Error(err))
	}

	log.Info("user created", zap.Uint("id", user.ID), zap.String("email", user.Email))
}
