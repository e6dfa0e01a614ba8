package catalog_get

import (
	"net/http"
	"time"

	"lionhearts/internal/handlers/rest/dto"
	"lionhearts/internal/handlers/rest/respond"
	"lionhearts/pkg/logger"
)

// Handler serves the static catalog. The body is built once.
type Handler struct {
	log      handlerLogger
	response dto.CatalogResponse
}

func New(log handlerLogger, eventDate time.Time) *Handler {
	return &Handler{
		log:      log,
		response: dto.NewCatalogResponse(eventDate.Format(time.DateOnly)),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	err := respond.JSON(w, http.StatusOK, h.response)
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
