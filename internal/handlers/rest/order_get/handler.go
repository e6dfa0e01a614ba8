package order_get

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"lionhearts/internal/handlers/rest/dto"
	"lionhearts/internal/handlers/rest/respond"
	"lionhearts/internal/service/order"
	"lionhearts/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderNumber := mux.Vars(r)["orderNumber"]
	code := r.URL.Query().Get("code")

	found, err := h.service.Track(r.Context(), orderNumber, code)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrValidation):
			h.write(respond.Error(w, http.StatusBadRequest, order.MsgTrackingCodeRequired))
		case errors.Is(err, order.ErrOrderNotFound):
			h.write(respond.Error(w, http.StatusNotFound, respond.MsgNotFound))
		default:
			h.log.Error("track order", logger.NewField("error", err))
			h.write(respond.Error(w, http.StatusInternalServerError, respond.MsgInternal))
		}
		return
	}

	h.write(respond.JSON(w, http.StatusOK, dto.ToCustomerOrder(found)))
}

func (h *Handler) write(err error) {
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
