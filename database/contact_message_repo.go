package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/models"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ContactMessageRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all contact messages, most recent first
func (r *ContactMessageRepo) FindAll() ([]*models.ContactMessage, error) {
	var messages []*models.ContactMessage
	err := r.db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

// Add inserts a new contact message into the database
func (r *ContactMessageRepo) Add(message *models.ContactMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return r.db.Create(message).Error
}

// MarkForwarded records that the message was handed to the email service
func (r *ContactMessageRepo) MarkForwarded(id uuid.UUID) error {
	return r.db.Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("forwarded", true).Error
}
