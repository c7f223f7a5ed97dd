package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
)

func TestListDepartments(t *testing.T) {
	storageMock := new(MockStorage)
	h, router := newTestRouter(storageMock)

	auth := asUser(t, h, storageMock, citizenUser())
	storageMock.On("ListDepartments").Return([]models.Department{
		{ID: 1, Name: "Roads and Transport"},
		{ID: 2, Name: "Water Supply"},
	}, nil)

	resp := perform(router, http.MethodGet, "/departments/", auth, nil)

	assert.Equal(t, http.StatusOK, resp.Code)

	var out []map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Len(t, out, 2)
	assert.Equal(t, "Roads and Transport", out[0]["name"])
}

func TestListDepartments_RequiresAuth(t *testing.T) {
	storageMock := new(MockStorage)
	_, router := newTestRouter(storageMock)

	resp := perform(router, http.MethodGet, "/departments/", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetDepartment_NotFound(t *testing.T) {
	storageMock := new(MockStorage)
	h, router := newTestRouter(storageMock)

	auth := asUser(t, h, storageMock, citizenUser())
	storageMock.On("GetDepartmentByID", uint(99)).Return(nil, storage.ErrNotFound)

	resp := perform(router, http.MethodGet, "/departments/99/", auth, nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetDepartment(t *testing.T) {
	storageMock := new(MockStorage)
	h, router := newTestRouter(storageMock)

	auth := asUser(t, h, storageMock, citizenUser())
	storageMock.On("GetDepartmentByID", uint(1)).Return(&models.Department{ID: 1, Name: "Sanitation"}, nil)

	resp := perform(router, http.MethodGet, "/departments/1/", auth, nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Sanitation")
}
