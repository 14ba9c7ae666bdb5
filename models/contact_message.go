package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a stored contact-form submission. Messages are persisted
// before being forwarded to the email service so a delivery failure never
// loses the submission.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	Forwarded bool      `json:"forwarded" db:"forwarded" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
