package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects retrieves all projects with their description blocks
// @Summary Get all projects
// @Description Retrieves all projects, most recently created first, with their ordered description blocks
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {array} ProjectResponse "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, newProjectListResponse(projects))
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves a project by ID with its ordered description blocks
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectResponse "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(project))
	}
}

// getProjectBySlug retrieves a specific project by its slug
// @Summary Get project by slug
// @Description Retrieves the most recently created project with the given slug
// @Tags Projects
// @Accept json
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} ProjectResponse "Project details"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /api/projects/slug/{slug} [get]
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.projectRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(project))
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project with its description blocks; the id is assigned by the store
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body ProjectInput true "Project data"
// @Success 201 {object} ProjectResponse "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication and rate limiting handled by middleware

		input, err := h.decodeInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := projectFromInput(input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Add(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.logMutation(r, "Project created", project.ID)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newProjectResponse(project))
	}
}

// updateProject updates an existing project
// @Summary Update project
// @Description Replaces the scalar fields and the entire description block sequence of a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body ProjectInput true "Updated project data"
// @Success 200 {object} ProjectResponse "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating project"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := h.decodeInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := projectFromInput(input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.ID = projectID

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.logMutation(r, "Project updated", projectID)

		// Reload so the response carries timestamps and stored block ids
		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(updated))
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project and all of its description blocks
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.logMutation(r, "Project deleted", projectID)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// logMutation records who performed a mutation; the user id was stamped onto
// the context by the auth middleware.
func (h projectHandler) logMutation(r *http.Request, action string, projectID uuid.UUID) {
	event := h.logger.Info().Str("projectID", projectID.String())
	if userID, err := ctxGetUserID(r.Context()); err == nil {
		event = event.Str("userID", userID)
	}
	event.Msg(action)
}

func (h projectHandler) decodeInput(r *http.Request) (ProjectInput, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		return ProjectInput{}, errs.NewBadRequestError("failed to read request body")
	}

	var input ProjectInput
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&input); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
		return ProjectInput{}, errs.NewInvalidJSONError(err)
	}
	return input, nil
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}

// projectFromInput validates the input and converts it to a project row plus
// its ordered block rows. The slug is derived from the title unless supplied.
func projectFromInput(input ProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(input.Summary) == "" {
		return nil, errs.NewMissingRequiredFieldError("summary")
	}
	if strings.TrimSpace(input.Image) == "" {
		return nil, errs.NewMissingRequiredFieldError("image")
	}
	if input.Tags == nil {
		return nil, errs.NewMissingRequiredFieldError("tags")
	}
	if len(input.Tags) > models.MaxTags {
		return nil, errs.NewInvalidFieldError("tags", fmt.Sprintf("at most %d tags are allowed", models.MaxTags))
	}
	if len(input.CustomButtons) > models.MaxCustomButtons {
		return nil, errs.NewInvalidFieldError("customButtons", fmt.Sprintf("at most %d custom buttons are allowed", models.MaxCustomButtons))
	}
	for _, button := range input.CustomButtons {
		if button.Label == "" || button.URL == "" {
			return nil, errs.NewInvalidFieldError("customButtons", "label and url are required")
		}
	}

	blocks := make([]models.ContentBlock, 0, len(input.Description))
	for i, block := range input.Description {
		content, err := models.ParseBlockContent(block.Type, block.Content)
		if err != nil {
			return nil, errs.NewInvalidFieldError("description", fmt.Sprintf("block %d: %v", i, err))
		}
		raw, err := content.JSON(block.Type)
		if err != nil {
			return nil, errs.NewInvalidFieldError("description", fmt.Sprintf("block %d: %v", i, err))
		}
		blocks = append(blocks, models.ContentBlock{
			ID:      block.ID,
			Type:    block.Type,
			Content: raw,
		})
	}

	slug := input.Slug
	if slug == "" {
		slug = models.GenerateSlug(input.Title)
	}

	project := &models.Project{
		Slug:    slug,
		Title:   input.Title,
		Summary: input.Summary,
		Tags:    datatypes.JSONSlice[string](input.Tags),
		Image:   input.Image,
		Blocks:  blocks,
	}
	if input.GithubURL != "" {
		githubURL := input.GithubURL
		project.GithubURL = &githubURL
	}
	if len(input.CustomButtons) > 0 {
		project.CustomButtons = datatypes.NewJSONType(input.CustomButtons)
	}
	return project, nil
}
