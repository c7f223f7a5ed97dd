package models

import "time"

// Comment is a note attached to a grievance. Comments share the lifecycle
// of their grievance: deleting the grievance deletes its comments.
type Comment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GrievanceID uint       `gorm:"not null;index" json:"grievance"`
	Grievance   *Grievance `gorm:"foreignKey:GrievanceID;constraint:OnDelete:CASCADE" json:"-"`

	AuthorID uint  `gorm:"not null" json:"author"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`

	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
