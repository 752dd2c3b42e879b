package schedule

import (
	"testing"
	"time"

	"swimpool-service/internal/models"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()

	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}

	return tm
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical intervals", "2025-06-02T09:00:00Z", "2025-06-02T11:00:00Z", "2025-06-02T09:00:00Z", "2025-06-02T11:00:00Z", true},
		{"partial overlap", "2025-06-02T09:00:00Z", "2025-06-02T11:00:00Z", "2025-06-02T10:00:00Z", "2025-06-02T12:00:00Z", true},
		{"contained interval", "2025-06-02T09:00:00Z", "2025-06-02T12:00:00Z", "2025-06-02T10:00:00Z", "2025-06-02T11:00:00Z", true},
		{"touching endpoints do not conflict", "2025-06-02T09:00:00Z", "2025-06-02T11:00:00Z", "2025-06-02T11:00:00Z", "2025-06-02T13:00:00Z", false},
		{"one minute overlap", "2025-06-02T09:00:00Z", "2025-06-02T11:01:00Z", "2025-06-02T11:00:00Z", "2025-06-02T13:00:00Z", true},
		{"disjoint", "2025-06-02T09:00:00Z", "2025-06-02T10:00:00Z", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				mustParse(t, tt.aStart), mustParse(t, tt.aEnd),
				mustParse(t, tt.bStart), mustParse(t, tt.bEnd),
			)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	groups := []*models.Group{
		{ID: "g1", StartTime: mustParse(t, "2025-06-02T09:00:00Z"), EndTime: mustParse(t, "2025-06-02T11:00:00Z")},
		{ID: "g2", StartTime: mustParse(t, "2025-06-02T14:00:00Z"), EndTime: mustParse(t, "2025-06-02T16:00:00Z")},
	}

	t.Run("overlap with any group conflicts", func(t *testing.T) {
		if !HasConflict(groups, mustParse(t, "2025-06-02T10:00:00Z"), mustParse(t, "2025-06-02T12:00:00Z"), "") {
			t.Error("expected conflict with g1")
		}
	})

	t.Run("excluded group does not conflict", func(t *testing.T) {
		if HasConflict(groups, mustParse(t, "2025-06-02T10:00:00Z"), mustParse(t, "2025-06-02T12:00:00Z"), "g1") {
			t.Error("expected no conflict when g1 is excluded")
		}
	})

	t.Run("back to back sessions do not conflict", func(t *testing.T) {
		if HasConflict(groups, mustParse(t, "2025-06-02T11:00:00Z"), mustParse(t, "2025-06-02T14:00:00Z"), "") {
			t.Error("expected no conflict for interval touching both neighbors")
		}
	})
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"wednesday maps to monday, clock kept", "2025-06-04T10:30:00Z", "2025-06-02T10:30:00Z"},
		{"monday maps to itself", "2025-06-02T08:00:00Z", "2025-06-02T08:00:00Z"},
		{"sunday maps to previous monday", "2025-06-08T23:00:00Z", "2025-06-02T23:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(mustParse(t, tt.in))
			if !got.Equal(mustParse(t, tt.want)) {
				t.Errorf("WeekStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyLoad(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  LoadStatus
	}{
		{"below min is underloaded", 19, LoadUnderloaded},
		{"at min is normal", 20, LoadNormal},
		{"inside band is normal", 39, LoadNormal},
		{"at max is normal", 40, LoadNormal},
		{"above max is overloaded", 41, LoadOverloaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLoad(tt.hours, 20, 40)
			if got != tt.want {
				t.Errorf("ClassifyLoad(%v) = %v, want %v", tt.hours, got, tt.want)
			}
			if got.OutsideBand() != (tt.want != LoadNormal) {
				t.Errorf("OutsideBand() mismatch for %v", got)
			}
		})
	}
}

func TestMatchesPreference(t *testing.T) {
	prefs := []*models.InstructorPreference{
		{DayOfWeek: models.Monday, StartTime: "08:00:00", EndTime: "12:00:00"},
	}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"contained in window", "2025-06-02T09:00:00Z", "2025-06-02T11:00:00Z", true},
		{"exact window matches", "2025-06-02T08:00:00Z", "2025-06-02T12:00:00Z", true},
		{"starts before window", "2025-06-02T07:00:00Z", "2025-06-02T09:00:00Z", false},
		{"ends after window", "2025-06-02T11:00:00Z", "2025-06-02T13:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchesPreference(prefs, mustParse(t, tt.start), mustParse(t, tt.end))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MatchesPreference() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("no preferences never matches", func(t *testing.T) {
		got, err := MatchesPreference(nil, mustParse(t, "2025-06-02T09:00:00Z"), mustParse(t, "2025-06-02T10:00:00Z"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got {
			t.Error("expected no match with zero declared preferences")
		}
	})

	t.Run("any of several windows may match", func(t *testing.T) {
		multi := append(prefs, &models.InstructorPreference{
			DayOfWeek: models.Monday, StartTime: "16:00:00", EndTime: "20:00:00",
		})
		got, err := MatchesPreference(multi, mustParse(t, "2025-06-02T17:00:00Z"), mustParse(t, "2025-06-02T19:00:00Z"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got {
			t.Error("expected match against the second window")
		}
	})

	t.Run("unparseable window is an error, not a non-match", func(t *testing.T) {
		bad := []*models.InstructorPreference{
			{ID: "p1", DayOfWeek: models.Monday, StartTime: "0000-01-01T08:00:00Z", EndTime: "0000-01-01T12:00:00Z"},
		}
		_, err := MatchesPreference(bad, mustParse(t, "2025-06-02T09:00:00Z"), mustParse(t, "2025-06-02T11:00:00Z"))
		if err == nil {
			t.Fatal("expected an error for a window that is not a time of day")
		}
	})
}
