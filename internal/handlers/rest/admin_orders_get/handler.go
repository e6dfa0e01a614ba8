package admin_orders_get

import (
	"errors"
	"net/http"

	"lionhearts/internal/entities"
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
	var filter entities.OrderFilter
	if status := r.URL.Query().Get("status"); status != "" {
		s := entities.OrderStatusType(status)
		filter.Status = &s
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrValidation):
			h.write(respond.Error(w, http.StatusBadRequest, order.MsgUnknownStatusFilter))
		default:
			h.log.Error("list orders", logger.NewField("error", err))
			h.write(respond.Error(w, http.StatusInternalServerError, respond.MsgInternal))
		}
		return
	}

	h.write(respond.JSON(w, http.StatusOK, dto.OrderListResponse{
		Orders: dto.ToAdminOrderList(orders),
	}))
}

func (h *Handler) write(err error) {
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
