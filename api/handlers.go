package api

import (
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, config map[string]string, imageStore *services.ImageStore) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo()),
		contactHandler: newContactHandler(database.ContactMessageRepo(), config),
		imageHandler:   newImageHandler(imageStore),
	}
}
