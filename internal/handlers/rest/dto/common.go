package dto

type ErrorResponse struct {
	Error  string  `json:"error"`
	Issues *Issues `json:"issues,omitempty"`
}

// Issues mirrors the flattened form-error shape clients already parse.
type Issues struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}
