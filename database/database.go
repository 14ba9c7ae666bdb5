package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/models"
)

type Database struct {
	projectRepo        *ProjectRepo
	contactMessageRepo *ContactMessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:        NewProjectRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

// Migrate creates or updates the schema for all models. The content_blocks
// foreign key cascades on delete where the store supports it; the project
// repository still deletes block rows explicitly.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.ContentBlock{},
		&models.ContactMessage{},
	)
}
