package domain

import (
	"errors"
	"testing"
	"time"
)

func validEvent(t *testing.T) *Event {
	t.Helper()
	return &Event{
		ID:        "evt-1",
		Profiles:  []string{"u1"},
		Timezone:  "Asia/Kolkata",
		StartDate: time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 1, 4, 30, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validEvent(t).Validate(); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}
}

func TestValidate_EmptyProfiles(t *testing.T) {
	e := validEvent(t)
	e.Profiles = nil

	var verr *ValidationError
	if err := e.Validate(); !errors.As(err, &verr) || verr.Field != "profiles" {
		t.Errorf("expected validation error on profiles, got %v", err)
	}
}

func TestValidate_InvalidTimezone(t *testing.T) {
	e := validEvent(t)
	e.Timezone = "Mars/Phobos"

	var verr *ValidationError
	if err := e.Validate(); !errors.As(err, &verr) || verr.Field != "timezone" {
		t.Errorf("expected validation error on timezone, got %v", err)
	}
}

func TestValidate_EndBeforeStart(t *testing.T) {
	e := validEvent(t)
	e.EndDate = e.StartDate.Add(-time.Minute)

	var verr *ValidationError
	if err := e.Validate(); !errors.As(err, &verr) || verr.Field != "endDate" {
		t.Errorf("expected validation error on endDate, got %v", err)
	}
}

func TestValidate_EndEqualsStart(t *testing.T) {
	e := validEvent(t)
	e.EndDate = e.StartDate

	if err := e.Validate(); err != nil {
		t.Errorf("end == start should be allowed, got %v", err)
	}
}

func TestChangedFields_NoChange(t *testing.T) {
	e := validEvent(t)
	snap := e.Snapshot()

	if fields := e.ChangedFields(snap); len(fields) != 0 {
		t.Errorf("expected no changed fields, got %v", fields)
	}
}

func TestChangedFields_ValueEquality(t *testing.T) {
	e := validEvent(t)
	snap := e.Snapshot()

	// Same instant, different wall-clock representation — not a change.
	loc, _ := time.LoadLocation("Asia/Kolkata")
	e.StartDate = snap.StartDate.In(loc)

	if fields := e.ChangedFields(snap); len(fields) != 0 {
		t.Errorf("same instant in another zone counted as change: %v", fields)
	}
}

func TestChangedFields_DetectsEach(t *testing.T) {
	e := validEvent(t)
	snap := e.Snapshot()

	e.Profiles = []string{"u1", "u2"}
	e.Timezone = "UTC"
	e.StartDate = e.StartDate.Add(time.Hour)
	e.EndDate = e.EndDate.Add(time.Hour)

	fields := e.ChangedFields(snap)
	want := map[string]bool{"profiles": true, "timezone": true, "startDate": true, "endDate": true}
	if len(fields) != len(want) {
		t.Fatalf("got %v, want all of %v", fields, want)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected field %q in %v", f, fields)
		}
	}
}

func TestChangedFields_ProfileOrderMatters(t *testing.T) {
	e := validEvent(t)
	e.Profiles = []string{"u1", "u2"}
	snap := e.Snapshot()

	// Profiles are an order-preserving sequence, not a set.
	e.Profiles = []string{"u2", "u1"}
	fields := e.ChangedFields(snap)
	if len(fields) != 1 || fields[0] != "profiles" {
		t.Errorf("reordered profiles should count as a change, got %v", fields)
	}
}

func TestRecordChange_EmptySetIsNoOp(t *testing.T) {
	e := validEvent(t)
	e.RecordChange(nil, time.Now())

	if len(e.ChangeLog) != 0 {
		t.Errorf("empty change set appended an entry: %v", e.ChangeLog)
	}
}

func TestRecordChange_Appends(t *testing.T) {
	e := validEvent(t)
	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	e.RecordChange([]string{"timezone"}, at)

	if len(e.ChangeLog) != 1 {
		t.Fatalf("expected 1 change-log entry, got %d", len(e.ChangeLog))
	}
	entry := e.ChangeLog[0]
	if len(entry.Fields) != 1 || entry.Fields[0] != "timezone" {
		t.Errorf("unexpected fields %v", entry.Fields)
	}
	if !entry.ChangedAt.Equal(at) {
		t.Errorf("changedAt = %v, want %v", entry.ChangedAt, at)
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	e := validEvent(t)
	e.RecordChange([]string{"profiles"}, time.Now())
	snap := e.Snapshot()

	e.Profiles[0] = "mutated"
	e.ChangeLog[0].Fields[0] = "mutated"

	if snap.Profiles[0] != "u1" {
		t.Error("snapshot profiles share backing array with event")
	}
	if len(snap.ChangeLog) != 1 {
		t.Errorf("snapshot change log length %d", len(snap.ChangeLog))
	}
}

func TestProject_DefaultsToOwnTimezone(t *testing.T) {
	e := validEvent(t)

	view, err := e.Project("")
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if view.DisplayTimezone != "Asia/Kolkata" {
		t.Errorf("displayTimezone = %q, want Asia/Kolkata", view.DisplayTimezone)
	}
	if view.StartDate != "2024-06-01T09:00:00+05:30" {
		t.Errorf("startDate = %q", view.StartDate)
	}
	if view.EndDate != "2024-06-01T10:00:00+05:30" {
		t.Errorf("endDate = %q", view.EndDate)
	}
}

func TestProject_ExplicitZone(t *testing.T) {
	e := validEvent(t)

	view, err := e.Project("UTC")
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if view.DisplayTimezone != "UTC" {
		t.Errorf("displayTimezone = %q, want UTC", view.DisplayTimezone)
	}
	if view.StartDate != "2024-06-01T03:30:00+00:00" {
		t.Errorf("startDate = %q", view.StartDate)
	}
	// The stored timezone is reported unchanged.
	if view.Timezone != "Asia/Kolkata" {
		t.Errorf("timezone = %q, want Asia/Kolkata", view.Timezone)
	}
}

func TestProject_ChangeLogTimestampsZoned(t *testing.T) {
	e := validEvent(t)
	e.RecordChange([]string{"timezone"}, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	view, err := e.Project("Asia/Kolkata")
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if len(view.ChangeLog) != 1 {
		t.Fatalf("expected 1 change-log entry, got %d", len(view.ChangeLog))
	}
	if view.ChangeLog[0].ChangedAt != "2024-06-01T05:30:00+05:30" {
		t.Errorf("changedAt = %q", view.ChangeLog[0].ChangedAt)
	}
}

func TestProject_InvalidZone(t *testing.T) {
	e := validEvent(t)
	if _, err := e.Project("Mars/Phobos"); err == nil {
		t.Error("expected error projecting into invalid zone")
	}
}
