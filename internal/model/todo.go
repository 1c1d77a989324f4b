package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a task item owned by exactly one user. The owner is stamped at
// creation from the authenticated identity and never changes.
type Todo struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Text      string    `json:"text" gorm:"size:1024;not null"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
