package handler

import (
	"strings"
	"unicode/utf8"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
)

// Wire representations are explicit structs with explicit mapping from the
// domain entities. Read-only fields (citizen, status, timestamps) exist
// only on the response side, so a client-supplied value has nowhere to go.

// UserResponse is the public view of a user. The credential never leaves
// the server.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	}
}

// GrievanceResponse mirrors the grievance entity plus the denormalized
// names pre-loaded from its relations.
type GrievanceResponse struct {
	ID             uint                     `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	Status         models.GrievanceStatus   `json:"status"`
	Priority       models.GrievancePriority `json:"priority"`
	Citizen        uint                     `json:"citizen"`
	CitizenName    string                   `json:"citizen_name"`
	Department     *uint                    `json:"department"`
	DepartmentName string                   `json:"department_name"`
	AssignedTo     *uint                    `json:"assigned_to"`
	Tags           []string                 `json:"tags"`
	CreatedAt      string                   `json:"created_at"`
	UpdatedAt      string                   `json:"updated_at"`
}

func newGrievanceResponse(g *models.Grievance) GrievanceResponse {
	resp := GrievanceResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Status:      g.Status,
		Priority:    g.Priority,
		Citizen:     g.CitizenID,
		Department:  g.DepartmentID,
		AssignedTo:  g.AssignedToID,
		Tags:        g.Tags,
		CreatedAt:   g.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000Z"),
		UpdatedAt:   g.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000000Z"),
	}
	if g.Citizen != nil {
		resp.CitizenName = g.Citizen.Username
	}
	if g.Department != nil {
		resp.DepartmentName = g.Department.Name
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

func newGrievanceListResponse(grievances []models.Grievance) []GrievanceResponse {
	results := make([]GrievanceResponse, 0, len(grievances))
	for i := range grievances {
		results = append(results, newGrievanceResponse(&grievances[i]))
	}
	return results
}

// CommentResponse is the wire form of a comment.
type CommentResponse struct {
	ID         uint   `json:"id"`
	Author     uint   `json:"author"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
}

func newCommentResponse(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Author:    comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000Z"),
	}
	if comment.Author != nil {
		resp.AuthorName = comment.Author.Username
	}
	return resp
}

// --- Request forms ---

type registerForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validate повертає помилки по полях; порожня мапа означає валідну форму.
func (f *registerForm) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "This field is required."
	}
	if utf8.RuneCountInString(f.Password) < config.MinPasswordLength {
		errs["password"] = "Password must be at least 8 characters."
	}
	return errs
}

type loginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// grievanceForm is bound for create and full update. Citizen, status and
// timestamps are absent on purpose: whatever the client sends for them is
// dropped during binding.
type grievanceForm struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Department  *uint    `json:"department"`
	Priority    *int     `json:"priority"`
	Tags        []string `json:"tags"`
}

func (f *grievanceForm) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "This field is required."
	} else if utf8.RuneCountInString(f.Title) > config.MaxTitleLength {
		errs["title"] = "Ensure this field has no more than 200 characters."
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "This field is required."
	}
	if f.Priority != nil && !models.GrievancePriority(*f.Priority).IsValid() {
		errs["priority"] = "Invalid priority."
	}
	return errs
}

// grievancePatchForm is bound for partial update; every field is optional.
type grievancePatchForm struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Department  *uint    `json:"department"`
	Priority    *int     `json:"priority"`
	Tags        []string `json:"tags"`
}

func (f *grievancePatchForm) validate() map[string]string {
	errs := make(map[string]string)
	if f.Title != nil {
		if strings.TrimSpace(*f.Title) == "" {
			errs["title"] = "This field may not be blank."
		} else if utf8.RuneCountInString(*f.Title) > config.MaxTitleLength {
			errs["title"] = "Ensure this field has no more than 200 characters."
		}
	}
	if f.Description != nil && strings.TrimSpace(*f.Description) == "" {
		errs["description"] = "This field may not be blank."
	}
	if f.Priority != nil && !models.GrievancePriority(*f.Priority).IsValid() {
		errs["priority"] = "Invalid priority."
	}
	return errs
}

type commentForm struct {
	Text string `json:"text"`
}

type setStatusForm struct {
	Status string `json:"status"`
}

type assignForm struct {
	UserID *uint `json:"user_id"`
}
