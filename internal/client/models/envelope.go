package models

// Envelope is the uniform response shape of every backend endpoint.
type Envelope[T any] struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Error   *string `json:"error,omitempty"`
	Data    *T      `json:"data,omitempty"`
}

// Text returns the error text, then the message, then fallback, skipping
// empty values.
func (e *Envelope[T]) Text(fallback string) string {
	if e == nil {
		return fallback
	}
	if e.Error != nil && *e.Error != "" {
		return *e.Error
	}
	if e.Message != nil && *e.Message != "" {
		return *e.Message
	}
	return fallback
}

// MessageOr returns the message or fallback.
func (e *Envelope[T]) MessageOr(fallback string) string {
	if e == nil || e.Message == nil || *e.Message == "" {
		return fallback
	}
	return *e.Message
}
