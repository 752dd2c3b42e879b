package api

import "time"

// Groups

type GroupRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Capacity     int     `json:"capacity" validate:"required,min=1"`
	MaxMale      int     `json:"max_male" validate:"min=0"`
	MaxFemale    int     `json:"max_female" validate:"min=0"`
	StartTime    string  `json:"start_time" validate:"required"`
	EndTime      string  `json:"end_time" validate:"required"`
	InstructorID *string `json:"instructor_id,omitempty"`
}

type GroupResponse struct {
	ID                        string    `json:"id"`
	Name                      string    `json:"name"`
	Description               string    `json:"description,omitempty"`
	Capacity                  int       `json:"capacity"`
	MaxMale                   int       `json:"max_male"`
	MaxFemale                 int       `json:"max_female"`
	StartTime                 time.Time `json:"start_time"`
	EndTime                   time.Time `json:"end_time"`
	InstructorID              *string   `json:"instructor_id,omitempty"`
	DurationHours             float64   `json:"duration_hours"`
	CurrentParticipants       int       `json:"current_participants"`
	CurrentMaleParticipants   int       `json:"current_male_participants"`
	CurrentFemaleParticipants int       `json:"current_female_participants"`
	IsFull                    bool      `json:"is_full"`
	IsMaleFull                bool      `json:"is_male_full"`
	IsFemaleFull              bool      `json:"is_female_full"`
}

type GroupListItem struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Capacity            int       `json:"capacity"`
	CurrentParticipants int       `json:"current_participants"`
	InstructorID        *string   `json:"instructor_id,omitempty"`
	IsFull              bool      `json:"is_full"`
}

// Registrations

type RegistrationRequest struct {
	VisitorID string `json:"visitor_id" validate:"required"`
	GroupID   string `json:"group_id" validate:"required"`
}

type RegistrationResponse struct {
	ID        string `json:"id"`
	VisitorID string `json:"visitor_id"`
	GroupID   string `json:"group_id"`
	Attended  bool   `json:"attended"`
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" validate:"required"`
}

// Instructor schedule blocks

type ScheduleRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type ScheduleResponse struct {
	ID           string    `json:"id"`
	InstructorID string    `json:"instructor_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

// Instructor preferences

type PreferenceRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type PreferenceResponse struct {
	ID           string `json:"id"`
	InstructorID string `json:"instructor_id"`
	DayOfWeek    string `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// Availability listing

type InstructorAvailability struct {
	InstructorID          string  `json:"instructor_id"`
	FullName              string  `json:"full_name"`
	Email                 string  `json:"email"`
	CurrentHoursScheduled float64 `json:"current_hours_scheduled"`
	MinHoursRequired      float64 `json:"min_hours_required"`
	MaxHoursAllowed       float64 `json:"max_hours_allowed"`
	IsOverloaded          bool    `json:"is_overloaded"`
	MatchesPreferences    bool    `json:"matches_preferences"`
}

type HoursSummary struct {
	CurrentHours  float64   `json:"current_hours"`
	MinRequired   float64   `json:"min_required"`
	MaxAllowed    float64   `json:"max_allowed"`
	WeekStarting  time.Time `json:"week_starting"`
	WeekEnding    time.Time `json:"week_ending"`
	IsUnderloaded bool      `json:"is_underloaded"`
	IsOverloaded  bool      `json:"is_overloaded"`
}

// Users

type UserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
	Role     string `json:"role" validate:"required"`
	Gender   string `json:"gender,omitempty"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name,omitempty"`
	Role     string  `json:"role"`
	Gender   *string `json:"gender,omitempty"`
	IsActive bool    `json:"is_active"`
}
