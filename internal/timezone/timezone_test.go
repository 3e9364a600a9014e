package timezone

import (
	"errors"
	"testing"
	"time"
)

func TestToUTC_KolkataOffset(t *testing.T) {
	got, err := ToUTC("2024-06-01T09:00", "Asia/Kolkata")
	if err != nil {
		t.Fatalf("ToUTC failed: %v", err)
	}

	want := time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestToUTC_AcceptsSecondsAndSpaceSeparator(t *testing.T) {
	cases := []string{
		"2024-06-01T09:00",
		"2024-06-01T09:00:00",
		"2024-06-01 09:00",
		"2024-06-01 09:00:00",
	}

	want := time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC)
	for _, input := range cases {
		got, err := ToUTC(input, "Asia/Kolkata")
		if err != nil {
			t.Errorf("ToUTC(%q) failed: %v", input, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ToUTC(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestToUTC_InvalidZone(t *testing.T) {
	_, err := ToUTC("2024-06-01T09:00", "Mars/Phobos")
	if !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("expected ErrInvalidTimezone, got %v", err)
	}
}

func TestToUTC_InvalidTimestamp(t *testing.T) {
	_, err := ToUTC("not-a-date", "UTC")
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	// toZoned(toUTC(s, z), z) must render back to the same wall-clock
	// time for any valid input.
	cases := []struct {
		local string
		zone  string
	}{
		{"2024-06-01T09:00:00", "Asia/Kolkata"},
		{"2024-01-15T23:30:00", "America/New_York"},
		{"2024-12-31T00:00:00", "Pacific/Auckland"},
		{"2024-03-10T12:00:00", "UTC"},
	}

	for _, tc := range cases {
		instant, err := ToUTC(tc.local, tc.zone)
		if err != nil {
			t.Fatalf("ToUTC(%q, %q) failed: %v", tc.local, tc.zone, err)
		}

		rendered, err := Format(instant, tc.zone)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}

		again, err := ToUTC(rendered, tc.zone)
		if err != nil {
			t.Fatalf("ToUTC round-trip parse of %q failed: %v", rendered, err)
		}
		if !again.Equal(instant) {
			t.Errorf("round trip of %q in %q: got %v, want %v", tc.local, tc.zone, again, instant)
		}

		if rendered[:19] != tc.local {
			t.Errorf("wall-clock mismatch: rendered %q, want prefix %q", rendered, tc.local)
		}
	}
}

func TestFormat_UTCRendering(t *testing.T) {
	instant := time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC)

	got, err := Format(instant, "UTC")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "2024-06-01T03:30:00+00:00" {
		t.Errorf("got %q", got)
	}

	got, err = Format(instant, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "2024-06-01T09:00:00+05:30" {
		t.Errorf("got %q", got)
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"UTC", "Asia/Kolkata", "America/New_York", "Europe/London"}
	for _, zone := range valid {
		if !IsValid(zone) {
			t.Errorf("IsValid(%q) = false, want true", zone)
		}
	}

	invalid := []string{"", "Mars/Phobos", "not a zone", "Asia/Fake_City"}
	for _, zone := range invalid {
		if IsValid(zone) {
			t.Errorf("IsValid(%q) = true, want false", zone)
		}
	}
}
