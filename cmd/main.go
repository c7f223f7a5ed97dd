package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"samadhan/backend/internal/api/handler"
	"samadhan/backend/internal/config"
	"samadhan/backend/internal/eventhub"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
	"samadhan/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL (TranslateError — щоб порушення унікальності
	// приходило як gorm.ErrDuplicatedKey, а не помилка драйвера)
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Grievance{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Samadhan Grievance API...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Хаб подій для staff-фіда
	hub := eventhub.NewManager(s)
	go hub.Run()
	hub.StartPubSubListener()

	// 3. Telegram-нотифікації (опційно)
	if cfg.TelegramBotToken != "" && cfg.TelegramOpsChatID != 0 {
		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramOpsChatID, s)
		if err != nil {
			log.Fatalf("Не вдалося запустити Telegram-нотифікатор: %v", err)
		}
		go notifier.Run()
	}

	// 4. Налаштування Gin та роутингу
	r := gin.Default()
	r.Use(handler.RequestID())

	h := handler.NewHandler(s, hub, []byte(cfg.JWTSecret))
	h.RegisterRoutes(r)

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
