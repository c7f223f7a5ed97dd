package models

import "time"

// User представляє обліковий запис у системі.
// PasswordHash ніколи не потрапляє у відповіді API (json:"-").
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `json:"email"`
	// Хеш пароля (bcrypt). Хешування делеговане реєстрації та admin CLI.
	PasswordHash string `gorm:"not null" json:"-"`
	// IsStaff відкриває доступ до всіх звернень та службових операцій.
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}
