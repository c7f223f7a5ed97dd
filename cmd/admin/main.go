package main

import (
	"fmt"
	"log"
	"os"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Стандартний набір відділів для нового розгортання.
var defaultDepartments = []string{
	"Water Supply",
	"Roads and Transport",
	"Sanitation",
	"Electricity",
	"Public Health",
}

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "seed-departments":
		if err := seedDepartments(db); err != nil {
			log.Fatalf("Error seeding departments: %v", err)
		}
		fmt.Println("Departments seeded.")
	case "create-staff":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin create-staff <username> <password> [email]")
			os.Exit(1)
		}
		username, password := os.Args[2], os.Args[3]
		email := ""
		if len(os.Args) > 4 {
			email = os.Args[4]
		}
		if err := createStaff(storageSvc, username, password, email); err != nil {
			log.Fatalf("Error creating staff user: %v", err)
		}
		fmt.Printf("Staff user %s has been created.\n", username)
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <username>")
			os.Exit(1)
		}
		username := os.Args[2]
		if err := promote(db, storageSvc, username); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s has been promoted to staff.\n", username)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func seedDepartments(db *gorm.DB) error {
	for _, name := range defaultDepartments {
		department := models.Department{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&department).Error; err != nil {
			return err
		}
	}
	return nil
}

func createStaff(s storage.Storage, username, password, email string) error {
	if len([]rune(password)) < config.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", config.MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.CreateUser(&models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      true,
	})
}

func promote(db *gorm.DB, s storage.Storage, username string) error {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	return db.Model(user).Update("is_staff", true).Error
}
