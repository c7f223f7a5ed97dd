// Package policy centralizes the access rules for grievances.
// Every handler goes through these functions; the ownership rule is
// defined once and tested once.
package policy

import "samadhan/backend/internal/models"

// CanAccessGrievance reports whether user may read or write grievance.
// Staff may access any grievance; everyone else only their own.
func CanAccessGrievance(user *models.User, grievance *models.Grievance) bool {
	if user == nil || grievance == nil {
		return false
	}
	if user.IsStaff {
		return true
	}
	return grievance.CitizenID == user.ID
}

// CanModerate reports whether user may run the staff-only sub-operations
// (set_status, assign). Ownership does not matter here: a citizen cannot
// change the status of their own grievance.
func CanModerate(user *models.User) bool {
	return user != nil && user.IsStaff
}

// GrievanceScope returns the citizen-id filter to apply to grievance
// queries for user: nil for staff (no restriction), the user's own id
// otherwise. Applying the scope before any per-row check means an
// invisible grievance is indistinguishable from a missing one.
func GrievanceScope(user *models.User) *uint {
	if user.IsStaff {
		return nil
	}
	id := user.ID
	return &id
}
