package suggestion

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sprintsync/sprintsync-api/internal/auth"
	apierrors "github.com/sprintsync/sprintsync-api/internal/errors"
	"github.com/sprintsync/sprintsync-api/internal/events"
	"github.com/sprintsync/sprintsync-api/internal/logger"
)

// SuggestRequest is the body of POST /ai/suggest.
type SuggestRequest struct {
	Title string `json:"title"`
}

// SuggestResponse pairs the requested title with its suggestion.
type SuggestResponse struct {
	Title      string     `json:"title"`
	Suggestion Suggestion `json:"suggestion"`
}

// Handler handles HTTP requests for AI suggestions.
type Handler struct {
	service *Service
	events  *events.Emitter
	logger  *logger.Logger
}

// NewHandler creates a new suggestion handler. emitter may be nil.
func NewHandler(service *Service, emitter *events.Emitter, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		events:  emitter,
		logger:  logger,
	}
}

// Suggest handles POST /ai/suggest
func (h *Handler) Suggest(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		apierrors.AbortWithUnauthorized(c, "Unauthorized", nil)
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Title is required.", nil)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		apierrors.AbortWithBadRequest(c, "Title is required.", nil)
		return
	}
	title := req.Title

	ctx := logger.WithOperation(c.Request.Context(), "suggest")
	result := h.service.Suggest(ctx, title, strconv.FormatInt(userID, 10))

	h.events.Emit(ctx, events.SubjectSuggestionGenerated, userID, gin.H{
		"title":      title,
		"source":     result.Source,
		"confidence": result.Confidence,
	})

	c.JSON(http.StatusOK, SuggestResponse{
		Title:      title,
		Suggestion: result,
	})
}
