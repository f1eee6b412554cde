package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Day
		wantErr bool
	}{
		{name: "plain", input: "2024-03-01", want: "2024-03-01"},
		{name: "trimmed", input: "  2024-03-01 ", want: "2024-03-01"},
		{name: "leap day", input: "2024-02-29", want: "2024-02-29"},
		{name: "empty", input: "", wantErr: true},
		{name: "not a date", input: "tomorrow", wantErr: true},
		{name: "day out of range", input: "2023-02-29", wantErr: true},
		{name: "with time", input: "2024-03-01T10:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDay) {
					t.Fatalf("expected ErrInvalidDay, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDayArithmetic(t *testing.T) {
	if got := Day("2024-03-01").Yesterday(); got != "2024-02-29" {
		t.Fatalf("expected leap-year yesterday 2024-02-29, got %s", got)
	}
	if got := Day("2024-01-01").Yesterday(); got != "2023-12-31" {
		t.Fatalf("expected year rollover, got %s", got)
	}
	if got := Day("2024-01-31").AddDays(1); got != "2024-02-01" {
		t.Fatalf("expected month rollover, got %s", got)
	}
	if got := Day("").Yesterday(); !got.IsZero() {
		t.Fatalf("expected zero day to stay zero, got %s", got)
	}
	if !Day("2024-01-05").Before("2024-01-06") {
		t.Fatal("expected 2024-01-05 before 2024-01-06")
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC)

	if got := Today(now, nil); got != "2024-01-05" {
		t.Fatalf("expected UTC day 2024-01-05, got %s", got)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	if got := Today(now, tokyo); got != "2024-01-06" {
		t.Fatalf("expected JST day 2024-01-06, got %s", got)
	}
}

func TestPtrRoundTrip(t *testing.T) {
	if Day("").Ptr() != nil {
		t.Fatal("expected nil pointer for zero day")
	}
	ptr := Day("2024-01-05").Ptr()
	if ptr == nil || *ptr != "2024-01-05" {
		t.Fatalf("unexpected pointer value %v", ptr)
	}
	if got := FromPtr(ptr); got != "2024-01-05" {
		t.Fatalf("expected round trip, got %s", got)
	}
	if got := FromPtr(nil); !got.IsZero() {
		t.Fatalf("expected zero day from nil, got %s", got)
	}
}
