package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Сигнальні помилки, які обробники перекладають у HTTP-статуси.
var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// GrievanceFilter описує видимість, пошук, сортування та пагінацію
// для вибірки звернень. Нульовий CitizenID означає "без обмеження"
// (staff бачить усі звернення).
type GrievanceFilter struct {
	CitizenID *uint
	Search    string
	Ordering  string
	Page      int
	PageSize  int
}

// orderings — дозволені поля сортування (ключ — значення query-параметра).
var orderings = map[string]string{
	"created_at":  "created_at asc",
	"-created_at": "created_at desc",
	"updated_at":  "updated_at asc",
	"-updated_at": "updated_at desc",
	"priority":    "priority asc",
	"-priority":   "priority desc",
}

// OrderClause повертає SQL-сортування для фільтра. Невідомі значення
// Ordering відкидаються на типове "created_at desc".
func (f GrievanceFilter) OrderClause() string {
	if clause, ok := orderings[f.Ordering]; ok {
		return clause
	}
	return "created_at desc"
}

// Limit повертає нормалізований розмір сторінки: типово
// config.DefaultPageSize, не більше config.MaxPageSize.
func (f GrievanceFilter) Limit() int {
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = config.DefaultPageSize
	}
	if pageSize > config.MaxPageSize {
		pageSize = config.MaxPageSize
	}
	return pageSize
}

// Offset повертає зсув для нормалізованої сторінки (нумерація з 1).
func (f GrievanceFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)

	ListDepartments() ([]models.Department, error)
	GetDepartmentByID(id uint) (*models.Department, error)

	CreateGrievance(grievance *models.Grievance) error
	ListGrievances(filter GrievanceFilter) ([]models.Grievance, int64, error)
	GetGrievanceByID(id uint, citizenID *uint) (*models.Grievance, error)
	SaveGrievance(grievance *models.Grievance) error
	SetGrievanceStatus(id uint, status models.GrievanceStatus) error
	AssignGrievance(id uint, userID uint) error
	DeleteGrievance(id uint) error

	CreateComment(comment *models.Comment) error
	ListComments(grievanceID uint) ([]models.Comment, error)

	PublishEvent(event models.GrievanceEvent) error
	SubscribeEvents() *redis.PubSub
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser зберігає нового користувача. Унікальність імені перевіряється
// тут, щоб обробник отримав ErrUsernameTaken замість помилки драйвера.
// Попередня перевірка дає зрозумілу помилку в типовому випадку; гонку
// двох одночасних реєстрацій ловить unique-індекс, і помилку порушення
// унікальності Create теж перекладає в ErrUsernameTaken (потрібен
// gorm.Config{TranslateError: true} при відкритті з'єднання).
func (s *Service) CreateUser(user *models.User) error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListDepartments повертає всі відділи, відсортовані за назвою.
func (s *Service) ListDepartments() ([]models.Department, error) {
	var departments []models.Department
	if err := s.DB.Order("name asc").Find(&departments).Error; err != nil {
		log.Printf("ERROR: Failed to list departments: %v", err)
		return nil, err
	}
	return departments, nil
}

func (s *Service) GetDepartmentByID(id uint) (*models.Department, error) {
	var department models.Department
	err := s.DB.First(&department, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (s *Service) CreateGrievance(grievance *models.Grievance) error {
	if err := s.DB.Create(grievance).Error; err != nil {
		log.Printf("ERROR: Failed to create grievance for citizen %d: %v", grievance.CitizenID, err)
		return err
	}
	// Перечитуємо зі зв'язками, щоб відповідь містила імена citizen/department.
	return s.DB.
		Preload("Citizen").Preload("Department").Preload("AssignedTo").
		First(grievance, grievance.ID).Error
}

// ListGrievances виконує вибірку з урахуванням видимості, пошуку,
// сортування та пагінації. Зв'язки підвантажуються одним Preload на
// колонку, без окремих запитів на кожен рядок.
func (s *Service) ListGrievances(filter GrievanceFilter) ([]models.Grievance, int64, error) {
	query := s.DB.Model(&models.Grievance{})

	if filter.CitizenID != nil {
		query = query.Where("citizen_id = ?", *filter.CitizenID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("ERROR: Failed to count grievances: %v", err)
		return nil, 0, err
	}

	var grievances []models.Grievance
	err := query.
		Preload("Citizen").Preload("Department").Preload("AssignedTo").
		Order(filter.OrderClause()).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&grievances).Error
	if err != nil {
		log.Printf("ERROR: Failed to list grievances: %v", err)
		return nil, 0, err
	}
	return grievances, total, nil
}

// GetGrievanceByID шукає звернення в межах видимості. Ненульовий citizenID
// обмежує вибірку власними зверненнями: чуже звернення дає ErrNotFound,
// так само як і неіснуюче.
func (s *Service) GetGrievanceByID(id uint, citizenID *uint) (*models.Grievance, error) {
	query := s.DB.Preload("Citizen").Preload("Department").Preload("AssignedTo")
	if citizenID != nil {
		query = query.Where("citizen_id = ?", *citizenID)
	}

	var grievance models.Grievance
	err := query.First(&grievance, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get grievance %d: %v", id, err)
		return nil, err
	}
	return &grievance, nil
}

func (s *Service) SaveGrievance(grievance *models.Grievance) error {
	return s.DB.Save(grievance).Error
}

// SetGrievanceStatus оновлює лише групу полів status+updated_at
// одним UPDATE (останній запис перемагає).
func (s *Service) SetGrievanceStatus(id uint, status models.GrievanceStatus) error {
	result := s.DB.Model(&models.Grievance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignGrievance оновлює лише групу полів assigned_to_id+updated_at.
func (s *Service) AssignGrievance(id uint, userID uint) error {
	result := s.DB.Model(&models.Grievance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to_id": userID,
			"updated_at":     gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGrievance видаляє звернення разом із коментарями в одній
// транзакції (явний каскад, не покладаємося на налаштування схеми).
func (s *Service) DeleteGrievance(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grievance_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Grievance{}, id).Error
	})
}

func (s *Service) CreateComment(comment *models.Comment) error {
	if err := s.DB.Create(comment).Error; err != nil {
		log.Printf("ERROR: Failed to save comment for grievance %d: %v", comment.GrievanceID, err)
		return err
	}
	return s.DB.Preload("Author").First(comment, comment.ID).Error
}

// ListComments повертає коментарі звернення за часом створення (asc).
func (s *Service) ListComments(grievanceID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.DB.Preload("Author").
		Where("grievance_id = ?", grievanceID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		log.Printf("ERROR: Failed to list comments for grievance %d: %v", grievanceID, err)
		return nil, err
	}
	return comments, nil
}

// PublishEvent публікує подію життєвого циклу звернення в Redis Pub/Sub.
func (s *Service) PublishEvent(event models.GrievanceEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, config.EventsChannel, string(payload)).Err()
}

// SubscribeEvents підписується на канал подій звернень.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, config.EventsChannel)
}
