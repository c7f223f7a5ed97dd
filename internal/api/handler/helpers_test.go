package handler_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"samadhan/backend/internal/api/handler"
	"samadhan/backend/internal/eventhub"
	"samadhan/backend/internal/models"
)

const testSecret = "test-secret"

func newTestRouter(storageMock *MockStorage) (*handler.Handler, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(storageMock, eventhub.NewManager(storageMock), []byte(testSecret))
	router := gin.New()
	h.RegisterRoutes(router)
	return h, router
}

// asUser issues a token for user and wires the storage mock so that
// AuthRequired resolves the token back to this user on every request.
func asUser(t *testing.T, h *handler.Handler, storageMock *MockStorage, user *models.User) string {
	t.Helper()
	token, err := h.IssueToken(user)
	require.NoError(t, err)
	storageMock.On("GetUserByID", user.ID).Return(user, nil)
	return "Bearer " + token
}

func perform(router *gin.Engine, method, path, authHeader string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func citizenUser() *models.User {
	return &models.User{ID: 7, Username: "asha", Email: "asha@example.com"}
}

func staffUser() *models.User {
	return &models.User{ID: 2, Username: "officer", IsStaff: true}
}

// ownGrievance returns a grievance owned by the given citizen.
func ownGrievance(citizen *models.User) *models.Grievance {
	return &models.Grievance{
		ID:          11,
		Title:       "Broken streetlight",
		Description: "The light on 5th cross has been out for a week.",
		Status:      models.StatusNew,
		Priority:    models.PriorityMedium,
		CitizenID:   citizen.ID,
		Citizen:     citizen,
	}
}
