package domain

import (
	"time"

	"eventscheduler/internal/timezone"
)

// Event is a scheduled entry owned by one or more profiles. Start and end
// bounds are stored as absolute UTC instants; Timezone records the zone the
// event was authored in and is the default zone for display.
type Event struct {
	ID        string        `json:"id"`
	Profiles  []string      `json:"profiles"`
	Timezone  string        `json:"timezone"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	ChangeLog []ChangeEntry `json:"changeLog"`
}

// ChangeEntry records which top-level fields changed in one update.
// Entries are append-only, oldest first, and are never written at creation.
type ChangeEntry struct {
	Fields    []string  `json:"fields"`
	ChangedAt time.Time `json:"changedAt"`
}

// EventView is an Event projected into a display timezone. All timestamps
// are wall-clock strings with the zone's offset, e.g. "2024-06-01T09:00:00+05:30".
type EventView struct {
	ID              string            `json:"id"`
	Profiles        []string          `json:"profiles"`
	Timezone        string            `json:"timezone"`
	StartDate       string            `json:"startDate"`
	EndDate         string            `json:"endDate"`
	DisplayTimezone string            `json:"displayTimezone"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
	ChangeLog       []ChangeEntryView `json:"changeLog"`
}

// ChangeEntryView is a ChangeEntry with its timestamp rendered in the
// view's display timezone.
type ChangeEntryView struct {
	Fields    []string `json:"fields"`
	ChangedAt string   `json:"changedAt"`
}

// Validate enforces the event's data-model invariants. A returned error is
// always a *ValidationError naming the offending field; persistence must
// not proceed on failure.
func (e *Event) Validate() error {
	if len(e.Profiles) == 0 {
		return &ValidationError{Field: "profiles", Message: "at least one profile is required"}
	}
	if e.Timezone == "" {
		return &ValidationError{Field: "timezone", Message: "timezone is required"}
	}
	if !timezone.IsValid(e.Timezone) {
		return &ValidationError{
			Field:   "timezone",
			Message: e.Timezone + " is not a valid timezone, use IANA timezone names like 'UTC', 'Asia/Kolkata', 'America/New_York'",
		}
	}
	if e.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Message: "start date is required"}
	}
	if e.EndDate.IsZero() {
		return &ValidationError{Field: "endDate", Message: "end date is required"}
	}
	if e.EndDate.Before(e.StartDate) {
		return &ValidationError{Field: "endDate", Message: "end date must be after or equal to start date"}
	}
	return nil
}

// Snapshot returns a deep copy of the event, used as the immutable
// pre-update state that ChangedFields diffs against.
func (e *Event) Snapshot() Event {
	snap := *e
	snap.Profiles = append([]string(nil), e.Profiles...)
	snap.ChangeLog = append([]ChangeEntry(nil), e.ChangeLog...)
	return snap
}

// ChangedFields compares the event against a pre-mutation snapshot and
// returns the names of the settable fields whose values differ, in
// declaration order. UpdatedAt and the change log itself are never
// considered.
func (e *Event) ChangedFields(prev Event) []string {
	var fields []string
	if !equalProfiles(e.Profiles, prev.Profiles) {
		fields = append(fields, "profiles")
	}
	if e.Timezone != prev.Timezone {
		fields = append(fields, "timezone")
	}
	if !e.StartDate.Equal(prev.StartDate) {
		fields = append(fields, "startDate")
	}
	if !e.EndDate.Equal(prev.EndDate) {
		fields = append(fields, "endDate")
	}
	return fields
}

// RecordChange appends one change-log entry for an update of an existing
// event. Invoked with an empty field set it is a no-op; it is never
// invoked at creation.
func (e *Event) RecordChange(fields []string, at time.Time) {
	if len(fields) == 0 {
		return
	}
	e.ChangeLog = append(e.ChangeLog, ChangeEntry{Fields: fields, ChangedAt: at})
}

// Project renders the event in displayZone, or in the event's own
// timezone when displayZone is empty (the author's view).
func (e *Event) Project(displayZone string) (*EventView, error) {
	zone := displayZone
	if zone == "" {
		zone = e.Timezone
	}

	start, err := timezone.Format(e.StartDate, zone)
	if err != nil {
		return nil, err
	}
	end, err := timezone.Format(e.EndDate, zone)
	if err != nil {
		return nil, err
	}
	createdAt, err := timezone.Format(e.CreatedAt, zone)
	if err != nil {
		return nil, err
	}
	updatedAt, err := timezone.Format(e.UpdatedAt, zone)
	if err != nil {
		return nil, err
	}

	changeLog := make([]ChangeEntryView, 0, len(e.ChangeLog))
	for _, entry := range e.ChangeLog {
		changedAt, err := timezone.Format(entry.ChangedAt, zone)
		if err != nil {
			return nil, err
		}
		changeLog = append(changeLog, ChangeEntryView{Fields: entry.Fields, ChangedAt: changedAt})
	}

	return &EventView{
		ID:              e.ID,
		Profiles:        e.Profiles,
		Timezone:        e.Timezone,
		StartDate:       start,
		EndDate:         end,
		DisplayTimezone: zone,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		ChangeLog:       changeLog,
	}, nil
}

func equalProfiles(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
