package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calendar-be/internal/models"
)

// ExportCalendar handles GET /api/calendar/export?start=<ISO>&end=<ISO>
func (ec *EventController) ExportCalendar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rng := models.ListRange{Start: c.Query("start"), End: c.Query("end")}
	data, err := ec.eventService.Export(c.Request.Context(), userID, rng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=events.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// GenerateQRCode handles GET /api/events/:id/qrcode
func (ec *EventController) GenerateQRCode(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	pngData, err := ec.eventService.QRCode(c.Request.Context(), userID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=event.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
