package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
)

// maxImageUploadBytes bounds the multipart form held in memory.
const maxImageUploadBytes = 10 << 20

type imageHandler struct {
	responder  Responder
	logger     zerolog.Logger
	imageStore *services.ImageStore
}

func newImageHandler(imageStore *services.ImageStore) imageHandler {
	logger := log.With().Str("handlerName", "imageHandler").Logger()

	return imageHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		imageStore: imageStore,
	}
}

// uploadImage stores an uploaded image and returns its public URL
// @Summary Upload image
// @Description Uploads an image to object storage and returns the public URL to reference it by
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param bucket formData string false "Target bucket: project (default) or content"
// @Success 200 {object} map[string]string "Public URL of the uploaded image"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or non-image file"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Upload failed"
// @Router /api/images [post]
func (h imageHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		if h.imageStore == nil {
			h.responder.WriteError(w, errs.NewInternalError("image storage is not configured"))
			return
		}

		if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "only image uploads are accepted"))
			return
		}

		bucket := services.BucketProjectImages
		if r.FormValue("bucket") == "content" {
			bucket = services.BucketContentImages
		}

		url, err := h.imageStore.Upload(r.Context(), bucket, header.Filename, contentType, file)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to upload image")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to upload image", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"url": url})
	}
}
