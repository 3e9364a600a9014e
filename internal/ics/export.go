// Package ics renders stored events as an iCalendar feed so schedules can
// be pulled into external calendar clients.
package ics

import (
	"strings"

	ical "github.com/arran4/golang-ical"

	"eventscheduler/internal/domain"
)

const prodID = "-//eventscheduler//event export//EN"

// BuildCalendar serializes the events into a VCALENDAR. Instants are
// emitted as UTC; the authoring timezone travels in the description since
// clients render in their own zone anyway.
func BuildCalendar(events []domain.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for i := range events {
		event := &events[i]

		ve := cal.AddEvent(event.ID)
		ve.SetCreatedTime(event.CreatedAt)
		ve.SetDtStampTime(event.UpdatedAt)
		ve.SetModifiedAt(event.UpdatedAt)
		ve.SetStartAt(event.StartDate)
		ve.SetEndAt(event.EndDate)
		ve.SetSummary(summaryFor(event))
		ve.SetDescription("Authored in " + event.Timezone)
	}

	return cal.Serialize()
}

func summaryFor(event *domain.Event) string {
	return "Event for " + strings.Join(event.Profiles, ", ")
}
