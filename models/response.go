package models

// Response is the envelope every handler replies with. Payloads are merged
// in beside these keys by the handlers.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
