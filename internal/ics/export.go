// Package ics serializes a user's calendar to an iCalendar feed.
package ics

import (
	"fmt"

	ical "github.com/arran4/golang-ical"

	"shared-calendar/internal/model"
)

// Feed renders the events as a VCALENDAR document. Recurring events keep
// their RRULE so the consuming client expands occurrences itself.
func Feed(user *model.User, events []model.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	for _, ev := range events {
		ve := cal.AddEvent(fmt.Sprintf("event-%d@shared-calendar", ev.ID))
		ve.SetCreatedTime(ev.CreatedAt)
		ve.SetDtStampTime(ev.UpdatedAt)
		ve.SetStartAt(ev.StartTime)
		ve.SetEndAt(ev.EndTime)
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.RecurrenceRule != "" {
			ve.AddRrule(ev.RecurrenceRule)
		}
		if user != nil {
			ve.SetOrganizer("mailto:" + user.Email)
		}
	}

	return cal.Serialize()
}
