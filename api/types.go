package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	contactHandler contactHandler
	imageHandler   imageHandler
}

// BlockInput is one content block as submitted by the admin UI. Content is a
// JSON string for paragraph/heading/quote/image blocks and a JSON array of
// strings for list blocks; the shape is checked against Type before anything
// is written. ID may be supplied to keep a block's identity across an update;
// otherwise a fresh one is assigned.
type BlockInput struct {
	ID      uuid.UUID        `json:"id,omitempty"`
	Type    models.BlockType `json:"type"`
	Content json.RawMessage  `json:"content"`
}

// ProjectInput is the request body for create and update. Slug is derived
// from the title when omitted. Update replaces the entire description
// sequence; it is never merged with the stored one.
type ProjectInput struct {
	Slug          string                `json:"slug,omitempty"`
	Title         string                `json:"title"`
	Summary       string                `json:"summary"`
	Description   []BlockInput          `json:"description"`
	Tags          []string              `json:"tags"`
	Image         string                `json:"image"`
	GithubURL     string                `json:"githubUrl,omitempty"`
	CustomButtons []models.CustomButton `json:"customButtons,omitempty"`
}

// BlockResponse mirrors the stored block, content in its wire shape.
type BlockResponse struct {
	ID      uuid.UUID        `json:"id"`
	Type    models.BlockType `json:"type"`
	Content json.RawMessage  `json:"content"`
}

// ProjectResponse is the public JSON shape of a project with its ordered
// description blocks.
type ProjectResponse struct {
	ID            uuid.UUID             `json:"id"`
	Slug          string                `json:"slug"`
	Title         string                `json:"title"`
	Summary       string                `json:"summary"`
	Description   []BlockResponse       `json:"description"`
	Tags          []string              `json:"tags"`
	Image         string                `json:"image"`
	GithubURL     string                `json:"githubUrl,omitempty"`
	CustomButtons []models.CustomButton `json:"customButtons,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func newProjectResponse(project *models.Project) ProjectResponse {
	blocks := make([]BlockResponse, 0, len(project.Blocks))
	for _, b := range project.Blocks {
		blocks = append(blocks, BlockResponse{
			ID:      b.ID,
			Type:    b.Type,
			Content: json.RawMessage(b.Content),
		})
	}

	response := ProjectResponse{
		ID:            project.ID,
		Slug:          project.Slug,
		Title:         project.Title,
		Summary:       project.Summary,
		Description:   blocks,
		Tags:          project.Tags,
		Image:         project.Image,
		CustomButtons: project.CustomButtons.Data(),
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
	if project.GithubURL != nil {
		response.GithubURL = *project.GithubURL
	}
	return response
}

func newProjectListResponse(projects []*models.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, newProjectResponse(p))
	}
	return responses
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
