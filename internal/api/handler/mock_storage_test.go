package handler_test

import (
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListDepartments() ([]models.Department, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Department), args.Error(1)
}

func (m *MockStorage) GetDepartmentByID(id uint) (*models.Department, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockStorage) CreateGrievance(grievance *models.Grievance) error {
	args := m.Called(grievance)
	return args.Error(0)
}

func (m *MockStorage) ListGrievances(filter storage.GrievanceFilter) ([]models.Grievance, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Grievance), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) GetGrievanceByID(id uint, citizenID *uint) (*models.Grievance, error) {
	args := m.Called(id, citizenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grievance), args.Error(1)
}

func (m *MockStorage) SaveGrievance(grievance *models.Grievance) error {
	args := m.Called(grievance)
	return args.Error(0)
}

func (m *MockStorage) SetGrievanceStatus(id uint, status models.GrievanceStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockStorage) AssignGrievance(id uint, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockStorage) DeleteGrievance(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CreateComment(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockStorage) ListComments(grievanceID uint) ([]models.Comment, error) {
	args := m.Called(grievanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockStorage) PublishEvent(event models.GrievanceEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockStorage) SubscribeEvents() *redis.PubSub {
	args := m.Called()
	return args.Get(0).(*redis.PubSub)
}
