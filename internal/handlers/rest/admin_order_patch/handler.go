package admin_order_patch

import (
	"encoding/json"
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
	id := mux.Vars(r)["id"]

	var req dto.OrderPatchRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, respond.MaxBodyBytes)).Decode(&req)
	if err != nil {
		h.write(respond.Error(w, http.StatusBadRequest, respond.MsgBadRequest))
		return
	}

	updated, err := h.service.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		if handled, writeErr := respond.ClientError(w, err); handled {
			h.write(writeErr)
			return
		}

		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.write(respond.Error(w, http.StatusNotFound, respond.MsgNotFound))
		default:
			h.log.Error("update order",
				logger.NewField("error", err),
				logger.NewField("order_id", id),
			)
			h.write(respond.Error(w, http.StatusInternalServerError, respond.MsgInternal))
		}
		return
	}

	h.log.Info("order updated",
		logger.NewField("order_id", updated.ID),
		logger.NewField("status", updated.Status.String()),
	)
	h.write(respond.JSON(w, http.StatusOK, dto.OrderPatchResponse{
		Order: dto.ToAdminOrder(updated),
	}))
}

func (h *Handler) write(err error) {
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
