package main

import (
	"log"
	"os"
	"time"

	"syncpad-be/internal/model"
	"syncpad-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the initial admin account. Idempotent: an existing admin with the
// same email is left untouched.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	email := getenvDefault("ADMIN_EMAIL", "admin@syncpad.local")
	password := getenvDefault("ADMIN_PASSWORD", "changeme-now")

	var count int64
	db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		color.Yellow("Admin %s already exists, nothing to do", email)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: Failed to hash password: %v", err)
		os.Exit(1)
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte("syncpad"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: Failed to hash security answer: %v", err)
		os.Exit(1)
	}

	admin := model.User{
		Id:                 uuid.New(),
		Email:              email,
		FullName:           "SyncPad Admin",
		PasswordHash:       string(passwordHash),
		Role:               "admin",
		Status:             "active",
		SecurityQuestion:   "What is the name of this application?",
		SecurityAnswerHash: string(answerHash),
		CreatedAt:          time.Now(),
	}

	if err := db.Create(&admin).Error; err != nil {
		color.Red("Error: Failed to create admin: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Admin account created: %s", email)
	if password == "changeme-now" {
		color.Yellow("Default password in use. Set ADMIN_PASSWORD and reseed, or change it after first login.")
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
