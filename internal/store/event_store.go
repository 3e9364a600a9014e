package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"eventscheduler/internal/domain"
	"eventscheduler/internal/timezone"
)

const eventColumns = "id, profiles, timezone, start_date, end_date, created_at, updated_at, change_log"

// CreateEventRequest carries wall-clock start/end strings that are
// interpreted in the request's timezone.
type CreateEventRequest struct {
	Profiles  []string `json:"profiles"`
	Timezone  string   `json:"timezone"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
}

// UpdateEventRequest is a partial patch. Supplied start/end strings are
// re-interpreted in the patch timezone when present, otherwise in the
// event's stored timezone.
type UpdateEventRequest struct {
	Profiles  []string `json:"profiles,omitempty"`
	Timezone  *string  `json:"timezone,omitempty"`
	StartDate *string  `json:"startDate,omitempty"`
	EndDate   *string  `json:"endDate,omitempty"`
}

// newEventFromRequest converts the request's local times to UTC in the
// request timezone and builds a validated event. The change log starts
// empty; creation never records a change entry.
func newEventFromRequest(req CreateEventRequest, now time.Time) (*domain.Event, error) {
	switch {
	case req.Timezone == "":
		return nil, &domain.MissingFieldError{Field: "timezone"}
	case req.StartDate == "":
		return nil, &domain.MissingFieldError{Field: "startDate"}
	case req.EndDate == "":
		return nil, &domain.MissingFieldError{Field: "endDate"}
	}

	start, err := convertBound("startDate", req.StartDate, req.Timezone)
	if err != nil {
		return nil, err
	}
	end, err := convertBound("endDate", req.EndDate, req.Timezone)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:        uuid.NewString(),
		Profiles:  req.Profiles,
		Timezone:  req.Timezone,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
		ChangeLog: []domain.ChangeEntry{},
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}
	return event, nil
}

// CreateEvent builds an event from the request and persists it.
func (s *PostgresStore) CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	event, err := newEventFromRequest(req, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, event.ID, event.Profiles, event.Timezone, event.StartDate, event.EndDate,
		event.CreatedAt, event.UpdatedAt, event.ChangeLog)
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}

	return event, nil
}

// GetEvent returns the event or nil when no row matches.
func (s *PostgresStore) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1
	`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return event, nil
}

// ListEvents returns events newest first, optionally filtered to those
// that include the given profile. The sort is on the stored created_at
// column; ordering among equal timestamps is unspecified.
func (s *PostgresStore) ListEvents(ctx context.Context, profile string) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []interface{}{}

	if profile != "" {
		query += " WHERE $1 = ANY(profiles)"
		args = append(args, profile)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	return events, nil
}

// UpdateEvent applies the patch to the stored event and commits the merged
// record together with its change-log entry in a single write. It returns
// the updated event and the names of the fields that actually changed;
// a patch that changes nothing performs no write. A nil event means the id
// was not found.
func (s *PostgresStore) UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*domain.Event, []string, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if event == nil {
		return nil, nil, nil
	}

	changed, err := mergePatch(event, req, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}
	if len(changed) == 0 {
		return event, nil, nil
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE events
		SET profiles = $2, timezone = $3, start_date = $4, end_date = $5,
		    updated_at = $6, change_log = $7
		WHERE id = $1
	`, event.ID, event.Profiles, event.Timezone, event.StartDate, event.EndDate,
		event.UpdatedAt, event.ChangeLog)
	if err != nil {
		return nil, nil, fmt.Errorf("updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Deleted between read and write.
		return nil, nil, nil
	}

	return event, changed, nil
}

// mergePatch applies the patch to the event in place against an immutable
// snapshot: resolve the effective timezone, convert any supplied dates,
// diff, validate and append the change-log entry. It returns the changed
// field names; when none changed the event is left untouched and no entry
// is recorded.
func mergePatch(event *domain.Event, req UpdateEventRequest, now time.Time) ([]string, error) {
	snapshot := event.Snapshot()

	// Both date fields share one effective timezone, resolved before
	// either is converted.
	effectiveZone := event.Timezone
	if req.Timezone != nil {
		effectiveZone = *req.Timezone
	}

	if req.Profiles != nil {
		event.Profiles = req.Profiles
	}
	if req.Timezone != nil {
		event.Timezone = *req.Timezone
	}
	if req.StartDate != nil {
		start, err := convertBound("startDate", *req.StartDate, effectiveZone)
		if err != nil {
			return nil, err
		}
		// Re-supplying the same instant in a different textual form is
		// not a change.
		if !start.Equal(event.StartDate) {
			event.StartDate = start
		}
	}
	if req.EndDate != nil {
		end, err := convertBound("endDate", *req.EndDate, effectiveZone)
		if err != nil {
			return nil, err
		}
		if !end.Equal(event.EndDate) {
			event.EndDate = end
		}
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	changed := event.ChangedFields(snapshot)
	if len(changed) == 0 {
		return nil, nil
	}

	event.RecordChange(changed, now)
	event.UpdatedAt = now
	return changed, nil
}

// DeleteEvent hard-deletes the event. It reports whether a row existed;
// profiles referenced by the event are not touched.
func (s *PostgresStore) DeleteEvent(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("deleting event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountEvents returns the total number of stored events.
func (s *PostgresStore) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	err := row.Scan(
		&event.ID, &event.Profiles, &event.Timezone, &event.StartDate,
		&event.EndDate, &event.CreatedAt, &event.UpdatedAt, &event.ChangeLog,
	)
	if err != nil {
		return nil, err
	}
	// Instants are stored and compared in UTC.
	event.StartDate = event.StartDate.UTC()
	event.EndDate = event.EndDate.UTC()
	event.CreatedAt = event.CreatedAt.UTC()
	event.UpdatedAt = event.UpdatedAt.UTC()
	if event.ChangeLog == nil {
		event.ChangeLog = []domain.ChangeEntry{}
	}
	return &event, nil
}

// convertBound turns a wall-clock string into a UTC instant, reporting
// failures as field-level validation errors.
func convertBound(field, value, zone string) (time.Time, error) {
	t, err := timezone.ToUTC(value, zone)
	if err != nil {
		if errors.Is(err, timezone.ErrInvalidTimezone) {
			return time.Time{}, &domain.ValidationError{
				Field:   "timezone",
				Message: zone + " is not a valid timezone, use IANA timezone names like 'UTC', 'Asia/Kolkata', 'America/New_York'",
			}
		}
		return time.Time{}, &domain.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid date-time", value),
		}
	}
	return t, nil
}
