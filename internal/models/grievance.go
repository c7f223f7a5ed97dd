package models

import (
	"time"

	"github.com/lib/pq" // Необхідний для pq.StringArray
)

// GrievanceStatus is the lifecycle state of a grievance.
type GrievanceStatus string

const (
	StatusNew        GrievanceStatus = "NEW"
	StatusInProgress GrievanceStatus = "IN_PROGRESS"
	StatusResolved   GrievanceStatus = "RESOLVED"
	StatusRejected   GrievanceStatus = "REJECTED"
)

// IsValid reports whether s is one of the four enumerated statuses.
func (s GrievanceStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Label returns the human-readable form of the status.
func (s GrievanceStatus) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// GrievancePriority is the urgency of a grievance.
type GrievancePriority int

const (
	PriorityLow      GrievancePriority = 1
	PriorityMedium   GrievancePriority = 2
	PriorityHigh     GrievancePriority = 3
	PriorityCritical GrievancePriority = 4
)

// IsValid reports whether p is one of the four enumerated priorities.
func (p GrievancePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Label returns the human-readable form of the priority.
func (p GrievancePriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	}
	return "Unknown"
}

// Grievance is a citizen-filed complaint tracked through the workflow.
// The citizen reference is set once at creation and never changes; the
// department and assignee references are nullified when the referenced
// row is deleted, so the grievance itself survives.
type Grievance struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"type:varchar(200);not null" json:"title"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Status      GrievanceStatus   `gorm:"type:varchar(20);not null;default:'NEW'" json:"status"`
	Priority    GrievancePriority `gorm:"not null;default:2" json:"priority"`

	CitizenID uint  `gorm:"not null;index" json:"citizen"`
	Citizen   *User `gorm:"foreignKey:CitizenID;constraint:OnDelete:CASCADE" json:"-"`

	DepartmentID *uint       `json:"department"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"-"`

	AssignedToID *uint `json:"assigned_to"`
	AssignedTo   *User `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"-"`

	// Tags — довільні мітки для фільтрації (наприклад "water", "roads").
	Tags pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
