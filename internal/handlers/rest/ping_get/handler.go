package ping_get

import (
	"net/http"

	"lionhearts/internal/handlers/rest/dto"
	"lionhearts/internal/handlers/rest/respond"
	"lionhearts/pkg/logger"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	res := dto.PingResponse{
		Message: &message,
	}

	err := respond.JSON(w, http.StatusOK, res)
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
