package entities

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a calendar event owned by exactly one user
type Event struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"` // Assigned at creation, never reassigned
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Within reports whether the event lies entirely inside [start, end].
// An event that only overlaps the window is not within it.
func (e Event) Within(start, end time.Time) bool {
	return !e.StartTime.Before(start) && !e.EndTime.After(end)
}
