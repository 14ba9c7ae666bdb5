package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.ContactMessageRepo
	config      map[string]string
}

func newContactHandler(messageRepo *database.ContactMessageRepo, config map[string]string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		config:      config,
	}
}

// ContactInput is the contact form payload
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// submitContact stores a contact-form submission and forwards it by email
// @Summary Submit contact form
// @Description Validates a contact form submission, stores it, and forwards it to the site owner
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body ContactInput true "Contact form data"
// @Success 200 {object} map[string]any "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid contact data"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error delivering message"
// @Router /api/contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Rate limiting handled by middleware

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var input ContactInput
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if strings.TrimSpace(input.Name) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if strings.TrimSpace(input.Email) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if strings.TrimSpace(input.Message) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("message"))
			return
		}
		if !emailPattern.MatchString(input.Email) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("email", "invalid email address"))
			return
		}

		message := &models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Message: input.Message,
		}

		// Stored before forwarding so a delivery failure never loses it
		if err := h.messageRepo.Add(message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create contact message", "contact_messages", err))
			return
		}

		if err := services.ForwardContactMessage(h.config, message); err != nil {
			h.logger.Error().Err(err).Str("messageID", message.ID.String()).Msg("Failed to forward contact message")
			h.responder.WriteError(w, errs.NewInternalError("failed to send message, please try again"))
			return
		}

		if err := h.messageRepo.MarkForwarded(message.ID); err != nil {
			h.logger.Warn().Err(err).Str("messageID", message.ID.String()).Msg("Failed to mark contact message as forwarded")
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "Message sent successfully!",
		})
	}
}
