package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

func validInput() ProjectInput {
	return ProjectInput{
		Title:   "Trail Tracker",
		Summary: "A GPS trail logger.",
		Image:   "https://images.example.com/trail.png",
		Tags:    []string{"go"},
		Description: []BlockInput{
			{Type: models.BlockParagraph, Content: json.RawMessage(`"Tracks hikes offline."`)},
		},
	}
}

func TestProjectFromInput(t *testing.T) {
	project, err := projectFromInput(validInput())
	require.NoError(t, err)
	require.Equal(t, "trail-tracker", project.Slug)
	require.Len(t, project.Blocks, 1)

	missingTitle := validInput()
	missingTitle.Title = "  "
	_, err = projectFromInput(missingTitle)
	require.True(t, errs.IsMissingRequiredFieldError(err))

	tooManyTags := validInput()
	tooManyTags.Tags = []string{"a", "b", "c", "d", "e", "f"}
	_, err = projectFromInput(tooManyTags)
	require.True(t, errs.IsInvalidFieldError(err))

	badBlock := validInput()
	badBlock.Description = []BlockInput{
		{Type: models.BlockList, Content: json.RawMessage(`"not an array"`)},
	}
	_, err = projectFromInput(badBlock)
	require.True(t, errs.IsInvalidFieldError(err))
}

func TestDecodeInputRejectsBadJSON(t *testing.T) {
	h := newProjectHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"title":`))
	_, err := h.decodeInput(req)
	require.True(t, errs.IsInvalidJSONError(err))
}
