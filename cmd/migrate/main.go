package main

import (
	"errors"
	"os"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/dsn"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/role"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	// New runs AutoMigrate for every model
	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	defer repo.Close()

	if err := repo.SeedCounter(repository.CounterRequest); err != nil {
		logrus.Fatalf("Failed to seed counters: %v", err)
	}

	if err := seedAdmin(repo, os.Getenv("ADMIN_LOGIN"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		logrus.Fatalf("Failed to seed admin: %v", err)
	}

	logrus.Info("Database migration completed successfully")
}

// seedAdmin creates the first admin. Admins cannot self-register.
func seedAdmin(repo *repository.Repository, login, password string) error {
	if login == "" || password == "" {
		logrus.Info("ADMIN_LOGIN or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	_, err := repo.GetUserByLogin(login)
	if err == nil {
		logrus.Infof("admin %s already exists", login)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := repo.CreateUser(&ds.User{Login: login, Password: string(hash), Role: role.Admin}); err != nil {
		return err
	}
	logrus.Infof("admin %s created", login)
	return nil
}
