// Package respond writes JSON bodies and the shared error envelope.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"lionhearts/internal/handlers/rest/dto"
	"lionhearts/internal/service/order"
)

const (
	MsgCreateFailed = "Unable to place order. Please try again."
	MsgNotFound     = "Order not found."
	MsgUnauthorized = "Unauthorized."
	MsgInternal     = "Something went wrong. Please try again."
	MsgBadRequest   = "Invalid request body."
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 64 << 10

func JSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func Error(w http.ResponseWriter, status int, message string) error {
	return JSON(w, status, dto.ErrorResponse{Error: message})
}

// ClientError writes the 400 body for validation and closed-gate failures.
// It reports false when err is neither, leaving the response untouched.
func ClientError(w http.ResponseWriter, err error) (bool, error) {
	var closedErr *order.ClosedError
	if errors.As(err, &closedErr) {
		return true, Error(w, http.StatusBadRequest, closedErr.Message())
	}

	var validationErr *order.ValidationError
	if errors.As(err, &validationErr) {
		return true, JSON(w, http.StatusBadRequest, FromValidation(validationErr))
	}

	return false, nil
}

func FromValidation(err *order.ValidationError) dto.ErrorResponse {
	res := dto.ErrorResponse{Error: err.Message}
	if len(err.Issues) > 0 {
		res.Issues = &dto.Issues{
			FormErrors:  []string{},
			FieldErrors: err.FieldErrors(),
		}
	}
	return res
}
