package notification

import "errors"

var (
	ErrUndefinedStatus = errors.New("undefined order status")
	ErrOrderNotFound   = errors.New("order not found")
	ErrStatusMismatch  = errors.New("order status does not match event")
	ErrNothingToNotify = errors.New("status has no addressee notice")
)
