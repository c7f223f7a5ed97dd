package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/policy"
	"samadhan/backend/internal/storage"
)

// visibleGrievance завантажує звернення в межах видимості запитувача.
// Чуже або неіснуюче звернення однаково дає 404 — випадковий перебір
// ідентифікаторів не розкриває існування чужих звернень.
func (h *Handler) visibleGrievance(c *gin.Context) (*models.Grievance, bool) {
	user := identity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}

	grievance, err := h.Storage.GetGrievanceByID(uint(id), policy.GrievanceScope(user))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return nil, false
	}
	return grievance, true
}

// positiveQueryParam читає цілочисельний query-параметр. Відсутній
// параметр дає fallback; нечислове або недодатне значення — помилку.
func positiveQueryParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}

// publishEvent надсилає подію в Redis; помилка публікації не завалює
// запит, лише потрапляє в лог.
func (h *Handler) publishEvent(event models.GrievanceEvent) {
	if err := h.Storage.PublishEvent(event); err != nil {
		log.Printf("ERROR: Failed to publish grievance event: %v", err)
	}
}

// ListGrievances повертає звернення, видимі запитувачу: staff бачить усі,
// громадянин — лише власні. Підтримує search, ordering та пагінацію.
func (h *Handler) ListGrievances(c *gin.Context) {
	user := identity(c)

	page, err := positiveQueryParam(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"page": "A valid positive integer is required."}})
		return
	}
	pageSize, err := positiveQueryParam(c, "page_size", config.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"page_size": "A valid positive integer is required."}})
		return
	}

	grievances, total, err := h.Storage.ListGrievances(storage.GrievanceFilter{
		CitizenID: policy.GrievanceScope(user),
		Search:    c.Query("search"),
		Ordering:  c.DefaultQuery("ordering", "-created_at"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": newGrievanceListResponse(grievances),
	})
}

// CreateGrievance реєструє нове звернення. Громадянин і статус беруться
// з контексту запиту, а не з тіла: citizen = запитувач, status = NEW.
func (h *Handler) CreateGrievance(c *gin.Context) {
	user := identity(c)

	var form grievanceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}
	if errs := form.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if form.Department != nil {
		if _, err := h.Storage.GetDepartmentByID(*form.Department); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"department": "Invalid department."}})
			return
		}
	}

	priority := models.PriorityMedium
	if form.Priority != nil {
		priority = models.GrievancePriority(*form.Priority)
	}

	grievance := &models.Grievance{
		Title:        strings.TrimSpace(form.Title),
		Description:  form.Description,
		Status:       models.StatusNew,
		Priority:     priority,
		CitizenID:    user.ID,
		DepartmentID: form.Department,
		Tags:         form.Tags,
	}
	if err := h.Storage.CreateGrievance(grievance); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	h.publishEvent(models.GrievanceEvent{
		Type:        models.EventGrievanceCreated,
		GrievanceID: grievance.ID,
		ActorID:     user.ID,
		Title:       grievance.Title,
		Status:      grievance.Status,
		Priority:    grievance.Priority,
	})

	c.JSON(http.StatusCreated, newGrievanceResponse(grievance))
}

// GetGrievance повертає одне звернення в межах видимості.
func (h *Handler) GetGrievance(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newGrievanceResponse(grievance))
}

// UpdateGrievance — повне оновлення (PUT): title і description обов'язкові.
func (h *Handler) UpdateGrievance(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}
	user := identity(c)
	if !policy.CanAccessGrievance(user, grievance) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}

	var form grievanceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}
	if errs := form.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}
	if form.Department != nil {
		if _, err := h.Storage.GetDepartmentByID(*form.Department); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"department": "Invalid department."}})
			return
		}
	}

	// Citizen, status та часові мітки через цей шлях не змінюються.
	grievance.Title = strings.TrimSpace(form.Title)
	grievance.Description = form.Description
	grievance.DepartmentID = form.Department
	grievance.Department = nil
	if form.Priority != nil {
		grievance.Priority = models.GrievancePriority(*form.Priority)
	}
	grievance.Tags = form.Tags

	if err := h.Storage.SaveGrievance(grievance); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	updated, err := h.Storage.GetGrievanceByID(grievance.ID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, newGrievanceResponse(updated))
}

// PatchGrievance — часткове оновлення: змінюються лише надіслані поля.
func (h *Handler) PatchGrievance(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}
	user := identity(c)
	if !policy.CanAccessGrievance(user, grievance) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}

	var form grievancePatchForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}
	if errs := form.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if form.Title != nil {
		grievance.Title = strings.TrimSpace(*form.Title)
	}
	if form.Description != nil {
		grievance.Description = *form.Description
	}
	if form.Department != nil {
		if _, err := h.Storage.GetDepartmentByID(*form.Department); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"department": "Invalid department."}})
			return
		}
		grievance.DepartmentID = form.Department
		grievance.Department = nil
	}
	if form.Priority != nil {
		grievance.Priority = models.GrievancePriority(*form.Priority)
	}
	if form.Tags != nil {
		grievance.Tags = form.Tags
	}

	if err := h.Storage.SaveGrievance(grievance); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	updated, err := h.Storage.GetGrievanceByID(grievance.ID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, newGrievanceResponse(updated))
}

// DeleteGrievance видаляє звернення разом із коментарями.
func (h *Handler) DeleteGrievance(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}
	user := identity(c)
	if !policy.CanAccessGrievance(user, grievance) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}

	if err := h.Storage.DeleteGrievance(grievance.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments повертає коментарі звернення за часом створення.
// Видимість та сама, що й у самого звернення.
func (h *Handler) ListComments(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}

	comments, err := h.Storage.ListComments(grievance.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	results := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, newCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, results)
}

// CreateComment додає коментар до видимого звернення. Автор — запитувач;
// текст без пробільних символів не приймається.
func (h *Handler) CreateComment(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}
	user := identity(c)

	var form commentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}

	text := strings.TrimSpace(form.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Text is required"})
		return
	}

	comment := &models.Comment{
		GrievanceID: grievance.ID,
		AuthorID:    user.ID,
		Text:        text,
	}
	if err := h.Storage.CreateComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	h.publishEvent(models.GrievanceEvent{
		Type:        models.EventCommented,
		GrievanceID: grievance.ID,
		ActorID:     user.ID,
		Title:       grievance.Title,
		Status:      grievance.Status,
		Priority:    grievance.Priority,
	})

	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// SetStatus — службова операція. Доступна лише staff, незалежно від
// володіння: власник-громадянин отримує 403.
func (h *Handler) SetStatus(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}
	user := identity(c)
	if !policy.CanModerate(user) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}

	var form setStatusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}

	status := models.GrievanceStatus(form.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status"})
		return
	}

	if err := h.Storage.SetGrievanceStatus(grievance.ID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	updated, err := h.Storage.GetGrievanceByID(grievance.ID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	h.publishEvent(models.GrievanceEvent{
		Type:        models.EventStatusChanged,
		GrievanceID: updated.ID,
		ActorID:     user.ID,
		Title:       updated.Title,
		Status:      updated.Status,
		Priority:    updated.Priority,
	})

	c.JSON(http.StatusOK, newGrievanceResponse(updated))
}

// Assign — службова операція призначення виконавця. Лише staff.
func (h *Handler) Assign(c *gin.Context) {
	grievance, ok := h.visibleGrievance(c)
	if !ok {
		return
	}
	user := identity(c)
	if !policy.CanModerate(user) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}

	var form assignForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}
	if form.UserID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "user_id is required"})
		return
	}

	assignee, err := h.Storage.GetUserByID(*form.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	if err := h.Storage.AssignGrievance(grievance.ID, assignee.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	updated, err := h.Storage.GetGrievanceByID(grievance.ID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	h.publishEvent(models.GrievanceEvent{
		Type:        models.EventAssigned,
		GrievanceID: updated.ID,
		ActorID:     user.ID,
		AssigneeID:  assignee.ID,
		Title:       updated.Title,
		Status:      updated.Status,
		Priority:    updated.Priority,
	})

	c.JSON(http.StatusOK, newGrievanceResponse(updated))
}
