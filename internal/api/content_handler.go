package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/copyforge-api/internal/api/shared"
	"github.com/phrazzld/copyforge-api/internal/platform/logger"
	"github.com/phrazzld/copyforge-api/internal/service"
)

// GenerateContentRequest is the body of POST /api/content/generate.
// Field presence is checked by the content service so the error message
// matches the one the gateway reports.
type GenerateContentRequest struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
}

// RefineContentRequest is the body of POST /api/content/refine.
type RefineContentRequest struct {
	Content     string `json:"content"`
	Instruction string `json:"instruction"`
}

// ContentResponse carries generated or refined text.
type ContentResponse struct {
	Text string `json:"text"`
}

// ContentHandler exposes the generation gateway over HTTP.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GenerateContent handles POST /api/content/generate requests
func (h *ContentHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req GenerateContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	text, err := h.contentService.GenerateContent(r.Context(), req.Topic, req.Platform, req.Tone)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Debug("content generated",
		slog.String("platform", req.Platform),
		slog.Int("text_length", len(text)))
	shared.RespondWithJSON(w, r, http.StatusOK, ContentResponse{Text: text})
}

// RefineContent handles POST /api/content/refine requests
func (h *ContentHandler) RefineContent(w http.ResponseWriter, r *http.Request) {
	var req RefineContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	text, err := h.contentService.RefineContent(r.Context(), req.Content, req.Instruction)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ContentResponse{Text: text})
}
