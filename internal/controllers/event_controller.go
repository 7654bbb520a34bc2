package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calendar-be/internal/models"
	"calendar-be/internal/service"
)

type EventController struct {
	eventService service.EventService
}

func NewEventController(eventService service.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// ListEvents handles GET /api/events?start=<ISO>&end=<ISO>
func (ec *EventController) ListEvents(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rng := models.ListRange{Start: c.Query("start"), End: c.Query("end")}
	events, err := ec.eventService.List(c.Request.Context(), userID, rng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// CreateEvent handles POST /api/events
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	eventID, err := ec.eventService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreateEventResponse{Msg: "Event created", ID: eventID})
}

// UpdateEvent handles PUT /api/events/:id
func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req models.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ec.eventService.Update(c.Request.Context(), userID, eventID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Event updated"})
}

// DeleteEvent handles DELETE /api/events/:id
func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	if err := ec.eventService.Delete(c.Request.Context(), userID, eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Event deleted"})
}
