package recurrence

import (
	"testing"
	"time"
)

func TestExpandSingleEventInsideWindow(t *testing.T) {
	start := time.Date(2025, time.June, 4, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	got, err := Expand("", start, end, from, to)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 1 || !got[0].Start.Equal(start) || !got[0].End.Equal(end) {
		t.Fatalf("unexpected intervals: %v", got)
	}
}

func TestExpandSingleEventOutsideWindow(t *testing.T) {
	start := time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	got, err := Expand("", start, end, from, from.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no intervals, got %v", got)
	}
}

func TestExpandWeeklyRule(t *testing.T) {
	// Weekly standup starting Wednesday June 4.
	start := time.Date(2025, time.June, 4, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 21)

	got, err := Expand("FREQ=WEEKLY;BYDAY=WE", start, end, from, to)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}
	for i, iv := range got {
		want := start.AddDate(0, 0, 7*i)
		if !iv.Start.Equal(want) {
			t.Fatalf("occurrence %d starts %v, want %v", i, iv.Start, want)
		}
		if iv.End.Sub(iv.Start) != 30*time.Minute {
			t.Fatalf("occurrence %d lost its duration", i)
		}
	}
}

func TestExpandRejectsMalformedRule(t *testing.T) {
	start := time.Date(2025, time.June, 4, 9, 0, 0, 0, time.UTC)
	if _, err := Expand("FREQ=SOMETIMES", start, start.Add(time.Hour), start, start.AddDate(0, 0, 7)); err == nil {
		t.Fatal("expected parse error")
	}
	if err := ValidateRule("FREQ=SOMETIMES"); err == nil {
		t.Fatal("expected parse error")
	}
	if err := ValidateRule(""); err != nil {
		t.Fatalf("empty rule should be valid, got %v", err)
	}
}
