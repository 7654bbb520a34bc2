package models

// EventRequest represents the request body for creating or updating an event.
// Timestamps stay strings until the service parses them so that a bad
// format is reported after ownership has been checked.
type EventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"` // Optional, defaults to ""
	Start       string  `json:"start" validate:"required"`
	End         string  `json:"end" validate:"required"`
}

// ListRange holds the optional query bounds of an event listing.
// An empty string means the bound is absent.
type ListRange struct {
	Start string
	End   string
}
