package models

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleVisitor    Role = "visitor"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleInstructor || r == RoleVisitor
}

func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

func ValidDayOfWeek(d DayOfWeek) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

type User struct {
	ID       string  `db:"id"`
	Email    string  `db:"email"`
	FullName string  `db:"full_name"`
	Role     Role    `db:"role"`
	Gender   *Gender `db:"gender"`
	IsActive bool    `db:"is_active"`
}

type Group struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Capacity     int       `db:"capacity"`
	MaxMale      int       `db:"max_male"`
	MaxFemale    int       `db:"max_female"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	InstructorID *string   `db:"instructor_id"`
}

// DurationHours is the session length in hours.
func (g *Group) DurationHours() float64 {
	return g.EndTime.Sub(g.StartTime).Hours()
}

// GroupDetails is a Group together with its active registration counts,
// partitioned by visitor gender.
type GroupDetails struct {
	Group
	CurrentParticipants       int
	CurrentMaleParticipants   int
	CurrentFemaleParticipants int
}

func (g *GroupDetails) IsFull() bool {
	return g.CurrentParticipants >= g.Capacity
}

func (g *GroupDetails) IsMaleFull() bool {
	return g.CurrentMaleParticipants >= g.MaxMale
}

func (g *GroupDetails) IsFemaleFull() bool {
	return g.CurrentFemaleParticipants >= g.MaxFemale
}

type Registration struct {
	ID        string `db:"id"`
	VisitorID string `db:"visitor_id"`
	GroupID   string `db:"group_id"`
	Attended  bool   `db:"attended"`
}

// InstructorSchedule is a committed block of work outside group assignments.
type InstructorSchedule struct {
	ID           string    `db:"id"`
	InstructorID string    `db:"instructor_id"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
}

// InstructorPreference is a preferred working window for one weekday.
// StartTime/EndTime are times of day in "15:04:05" form.
type InstructorPreference struct {
	ID           string    `db:"id"`
	InstructorID string    `db:"instructor_id"`
	DayOfWeek    DayOfWeek `db:"day_of_week"`
	StartTime    string    `db:"start_time"`
	EndTime      string    `db:"end_time"`
}
