package admin_order_audit_get

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
	id := mux.Vars(r)["id"]

	entries, err := h.service.Audit(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.write(respond.Error(w, http.StatusNotFound, respond.MsgNotFound))
		default:
			h.log.Error("list audit", logger.NewField("error", err), logger.NewField("order_id", id))
			h.write(respond.Error(w, http.StatusInternalServerError, respond.MsgInternal))
		}
		return
	}

	h.write(respond.JSON(w, http.StatusOK, dto.AuditListResponse{
		Entries: dto.ToAuditEntryList(entries),
	}))
}

func (h *Handler) write(err error) {
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
