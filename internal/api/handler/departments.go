package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"samadhan/backend/internal/storage"
)

// Departments are read-only: any authenticated identity may list and
// retrieve them, nobody may write them through the API.

// ListDepartments повертає всі відділи (відсортовані за назвою).
func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.Storage.ListDepartments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, departments)
}

// GetDepartment повертає один відділ за ID.
func (h *Handler) GetDepartment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	department, err := h.Storage.GetDepartmentByID(uint(id))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, department)
}
