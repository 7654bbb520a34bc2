package models

import "github.com/google/uuid"

// EventResponse is the public view of an event
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       string    `json:"start"` // RFC 3339
	End         string    `json:"end"`   // RFC 3339
}

// CreateEventResponse represents the response after creating an event
type CreateEventResponse struct {
	Msg string    `json:"msg"`
	ID  uuid.UUID `json:"id"`
}
