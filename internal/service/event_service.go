package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"calendar-be/internal/calendar"
	"calendar-be/internal/entities"
	"calendar-be/internal/models"
	"calendar-be/internal/repository"
)

const qrCodeSize = 256

// EventService defines the interface for event business logic. Every
// operation is scoped to userID, the identity taken from a verified token.
type EventService interface {
	List(ctx context.Context, userID uuid.UUID, rng models.ListRange) ([]models.EventResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *models.EventRequest) (uuid.UUID, error)
	Update(ctx context.Context, userID, eventID uuid.UUID, req *models.EventRequest) error
	Delete(ctx context.Context, userID, eventID uuid.UUID) error
	Export(ctx context.Context, userID uuid.UUID, rng models.ListRange) ([]byte, error)
	QRCode(ctx context.Context, userID, eventID uuid.UUID) ([]byte, error)
}

type eventService struct {
	repo repository.EventRepository
	now  func() time.Time
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{
		repo: repo,
		now:  time.Now,
	}
}

// List returns the user's events. With both bounds present only events lying
// entirely inside the range are returned; otherwise all of them.
func (s *eventService) List(ctx context.Context, userID uuid.UUID, rng models.ListRange) ([]models.EventResponse, error) {
	events, err := s.selectEvents(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	responses := make([]models.EventResponse, len(events))
	for i, event := range events {
		responses[i] = toResponse(event)
	}
	return responses, nil
}

// Create stores a new event owned by userID
func (s *eventService) Create(ctx context.Context, userID uuid.UUID, req *models.EventRequest) (uuid.UUID, error) {
	fields, err := parseEventRequest(req)
	if err != nil {
		return uuid.Nil, err
	}

	event := &entities.Event{
		ID:          uuid.New(),
		OwnerID:     userID,
		Title:       fields.title,
		Description: fields.description,
		StartTime:   fields.start,
		EndTime:     fields.end,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event.ID, nil
}

// Update overwrites title, description, start and end in place. Existence
// and ownership are checked before the request body is validated.
func (s *eventService) Update(ctx context.Context, userID, eventID uuid.UUID, req *models.EventRequest) error {
	event, err := s.ownedEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}

	fields, err := parseEventRequest(req)
	if err != nil {
		return err
	}

	event.Title = fields.title
	event.Description = fields.description
	event.StartTime = fields.start
	event.EndTime = fields.end

	err = s.repo.Update(ctx, event)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, MsgEventNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// Delete removes an owned event permanently
func (s *eventService) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	event, err := s.ownedEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, event)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, MsgEventNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// Export renders the same selection as List as an iCalendar document
func (s *eventService) Export(ctx context.Context, userID uuid.UUID, rng models.ListRange) ([]byte, error) {
	events, err := s.selectEvents(ctx, userID, rng)
	if err != nil {
		return nil, err
	}
	return calendar.Encode(events, s.now())
}

// QRCode returns a PNG QR code holding the event's iCalendar text
func (s *eventService) QRCode(ctx context.Context, userID, eventID uuid.UUID) ([]byte, error) {
	event, err := s.ownedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	payload, err := calendar.Encode([]entities.Event{*event}, s.now())
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

func (s *eventService) selectEvents(ctx context.Context, userID uuid.UUID, rng models.ListRange) ([]entities.Event, error) {
	var (
		start, end time.Time
		bounded    = rng.Start != "" && rng.End != ""
		err        error
	)
	if bounded {
		if start, err = ParseTimestamp(rng.Start); err != nil {
			return nil, newError(ErrFormat, MsgInvalidDate)
		}
		if end, err = ParseTimestamp(rng.End); err != nil {
			return nil, newError(ErrFormat, MsgInvalidDate)
		}
	}

	events, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	if !bounded {
		return events, nil
	}

	selected := make([]entities.Event, 0, len(events))
	for _, event := range events {
		if event.Within(start, end) {
			selected = append(selected, event)
		}
	}
	return selected, nil
}

// ownedEvent loads an event and checks that userID owns it
func (s *eventService) ownedEvent(ctx context.Context, userID, eventID uuid.UUID) (*entities.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, MsgEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if event.OwnerID != userID {
		return nil, newError(ErrForbidden, MsgPermissionDenied)
	}
	return event, nil
}

type eventFields struct {
	title       string
	description string
	start       time.Time
	end         time.Time
}

// parseEventRequest checks required fields, then timestamp formats.
// End before start is accepted.
func parseEventRequest(req *models.EventRequest) (eventFields, error) {
	if err := validateInput(req); err != nil {
		return eventFields{}, err
	}

	start, err := ParseTimestamp(req.Start)
	if err != nil {
		return eventFields{}, newError(ErrFormat, MsgInvalidDate)
	}
	end, err := ParseTimestamp(req.End)
	if err != nil {
		return eventFields{}, newError(ErrFormat, MsgInvalidDate)
	}

	fields := eventFields{
		title: req.Title,
		start: start,
		end:   end,
	}
	if req.Description != nil {
		fields.description = *req.Description
	}
	return fields, nil
}

func toResponse(event entities.Event) models.EventResponse {
	return models.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Start:       FormatTimestamp(event.StartTime),
		End:         FormatTimestamp(event.EndTime),
	}
}
