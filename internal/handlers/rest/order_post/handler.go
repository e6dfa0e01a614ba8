package order_post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

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

// ServeHTTP checks the gate before reading the body, so a closed date wins
// over a malformed payload.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CheckOpen(); err != nil {
		h.fail(w, err)
		return
	}

	var req dto.OrderCreateRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, respond.MaxBodyBytes)).Decode(&req)
	if err != nil {
		h.write(respond.JSON(w, http.StatusBadRequest, respond.FromValidation(decodeError(err))))
		return
	}

	confirmation, err := h.service.Create(r.Context(), req.ToDomain())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.write(respond.JSON(w, http.StatusOK, dto.FromConfirmation(confirmation)))
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handled, writeErr := respond.ClientError(w, err)
	if handled {
		h.write(writeErr)
		return
	}

	h.log.Error("create order", logger.NewField("error", err))
	h.write(respond.Error(w, http.StatusInternalServerError, respond.MsgCreateFailed))
}

// decodeError keeps the offending field of a type mismatch; any other decode
// failure has no field to point at.
func decodeError(err error) *order.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &order.ValidationError{
			Message: order.MsgInvalidOrder,
			Issues: []order.FieldIssue{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("Expected %s, received %s.", jsonKind(typeErr.Type), typeErr.Value),
			}},
		}
	}
	return &order.ValidationError{Message: order.MsgInvalidOrder}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func (h *Handler) write(err error) {
	if err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}
