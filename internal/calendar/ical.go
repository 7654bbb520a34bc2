package calendar

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"calendar-be/internal/entities"
)

const productID = "-//calendar-be//events//EN"

// emptyCalendar is returned for an export without events; the encoder
// refuses a VCALENDAR that has no components.
var emptyCalendar = []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + productID + "\r\nEND:VCALENDAR\r\n")

// Encode renders events as an iCalendar document, one VEVENT each.
// stamp becomes the DTSTAMP of every component.
func Encode(events []entities.Event, stamp time.Time) ([]byte, error) {
	if len(events) == 0 {
		return append([]byte(nil), emptyCalendar...), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for i := range events {
		cal.Children = append(cal.Children, toICal(&events[i], stamp))
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// toICal converts an event to a VEVENT. Times are written in UTC so no
// VTIMEZONE is needed.
func toICal(event *entities.Event, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.ID.String())
	ve.Props.SetText(ical.PropSummary, event.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.StartTime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EndTime.UTC())

	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	return ve
}
