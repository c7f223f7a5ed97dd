package models

// Department represents an organizational unit a grievance can be routed to.
// Departments are read-only over the HTTP API; they are created by the
// admin CLI or directly in the database.
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
}
