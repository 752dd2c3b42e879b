package schedule

import (
	"fmt"
	"time"

	"swimpool-service/internal/models"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any positive amount of time. Touching endpoints do
// not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict reports whether [start, end) overlaps any of the instructor's
// committed groups, other than the one identified by excludeGroupID.
// excludeGroupID may be empty.
func HasConflict(groups []*models.Group, start, end time.Time, excludeGroupID string) bool {
	for _, g := range groups {
		if excludeGroupID != "" && g.ID == excludeGroupID {
			continue
		}
		if Overlaps(g.StartTime, g.EndTime, start, end) {
			return true
		}
	}

	return false
}

// WeekStart returns the Monday of t's week. The clock component of t is kept
// as-is; hour totals are computed against this same instant plus seven days.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -daysSinceMonday)
}

// TotalHours sums the session durations of the given groups.
func TotalHours(groups []*models.Group) float64 {
	var total float64
	for _, g := range groups {
		total += g.DurationHours()
	}

	return total
}

func DayOfWeek(t time.Time) models.DayOfWeek {
	switch t.Weekday() {
	case time.Monday:
		return models.Monday
	case time.Tuesday:
		return models.Tuesday
	case time.Wednesday:
		return models.Wednesday
	case time.Thursday:
		return models.Thursday
	case time.Friday:
		return models.Friday
	case time.Saturday:
		return models.Saturday
	default:
		return models.Sunday
	}
}

type LoadStatus int

const (
	LoadNormal LoadStatus = iota
	LoadUnderloaded
	LoadOverloaded
)

func (s LoadStatus) String() string {
	switch s {
	case LoadUnderloaded:
		return "underloaded"
	case LoadOverloaded:
		return "overloaded"
	default:
		return "normal"
	}
}

// OutsideBand is the legacy single-boolean view of the load status: both
// under- and over-utilization read as "overloaded" at the boundary.
func (s LoadStatus) OutsideBand() bool {
	return s != LoadNormal
}

// ClassifyLoad places projected weekly hours against the [min, max] band.
func ClassifyLoad(hours, min, max float64) LoadStatus {
	switch {
	case hours > max:
		return LoadOverloaded
	case hours < min:
		return LoadUnderloaded
	default:
		return LoadNormal
	}
}

func parseClockTime(s string) (time.Time, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time of day %q: %w", s, err)
		}
	}

	return t, nil
}

// ParseClock parses a time of day in "15:04:05" or "15:04" form and returns
// seconds since midnight.
func ParseClock(s string) (int, error) {
	t, err := parseClockTime(s)
	if err != nil {
		return 0, err
	}

	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// NormalizeClock re-formats a time of day to the canonical "15:04:05" form
// used in storage.
func NormalizeClock(s string) (string, error) {
	t, err := parseClockTime(s)
	if err != nil {
		return "", err
	}

	return t.Format("15:04:05"), nil
}

func clockOf(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// MatchesPreference reports whether some preference window fully contains the
// candidate's time-of-day span. Bounds are inclusive on both ends. prefs must
// already be filtered to the candidate's weekday; an empty slice never
// matches. A window that fails to parse is an error, not a silent non-match.
func MatchesPreference(prefs []*models.InstructorPreference, start, end time.Time) (bool, error) {
	startClock := clockOf(start)
	endClock := clockOf(end)

	for _, pref := range prefs {
		prefStart, err := ParseClock(pref.StartTime)
		if err != nil {
			return false, fmt.Errorf("preference %s: %w", pref.ID, err)
		}
		prefEnd, err := ParseClock(pref.EndTime)
		if err != nil {
			return false, fmt.Errorf("preference %s: %w", pref.ID, err)
		}

		if prefStart <= startClock && prefEnd >= endClock {
			return true, nil
		}
	}

	return false, nil
}
