package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"swimpool-service/api"
	"swimpool-service/internal/config"
	"swimpool-service/internal/lock"
	"swimpool-service/internal/models"
	"swimpool-service/internal/schedule"
	"swimpool-service/pkg/response"
)

const lockTTL = 10 * time.Second

// Sort orders accepted by the availability listing.
const (
	SortByHoursScheduled  = "hours_scheduled"
	SortByPreferenceMatch = "preference_match"
)

type Service struct {
	store    Store
	locker   lock.Locker
	workload config.Workload
	now      func() time.Time
}

func NewService(store Store, locker lock.Locker, workload config.Workload) *Service {
	return &Service{
		store:    store,
		locker:   locker,
		workload: workload,
		now:      time.Now,
	}
}

type Store interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)

	// Users
	CreateUser(ctx context.Context, user *models.User) (string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, role *models.Role, skip, limit int) ([]*models.User, error)
	ListActiveInstructors(ctx context.Context) ([]*models.User, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) (string, error)
	GetGroup(ctx context.Context, id string) (*models.GroupDetails, error)
	GetGroupForEnrollment(ctx context.Context, tx *sql.Tx, id string) (*models.GroupDetails, error)
	ListGroups(ctx context.Context, skip, limit int) ([]*models.GroupDetails, error)
	ListUpcomingGroups(ctx context.Context, now time.Time, skip, limit int) ([]*models.GroupDetails, error)
	ListAvailableGroups(ctx context.Context, visitorID string, gender models.Gender, now time.Time, skip, limit int) ([]*models.GroupDetails, error)
	ListInstructorGroupDetails(ctx context.Context, instructorID string, skip, limit int) ([]*models.GroupDetails, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id string) error
	SetGroupInstructor(ctx context.Context, groupID string, instructorID *string) error
	ListGroupsByInstructor(ctx context.Context, instructorID string) ([]*models.Group, error)
	ListGroupsByInstructorInWindow(ctx context.Context, instructorID string, from, to time.Time) ([]*models.Group, error)

	// Registrations
	GetRegistrationByVisitorAndGroup(ctx context.Context, visitorID, groupID string) (*models.Registration, error)
	CreateRegistration(ctx context.Context, tx *sql.Tx, reg *models.Registration) (string, error)
	GetRegistration(ctx context.Context, id string) (*models.Registration, error)
	ListVisitorRegistrations(ctx context.Context, visitorID string, skip, limit int) ([]*models.Registration, error)
	ListGroupRegistrations(ctx context.Context, groupID string, skip, limit int) ([]*models.Registration, error)
	DeleteRegistration(ctx context.Context, visitorID, groupID string) (bool, error)
	SetAttendance(ctx context.Context, registrationID string, attended bool) (*models.Registration, error)

	// Instructor schedules
	CreateSchedule(ctx context.Context, sched *models.InstructorSchedule) (string, error)
	ListSchedules(ctx context.Context, instructorID string, skip, limit int) ([]*models.InstructorSchedule, error)

	// Instructor preferences
	CreatePreference(ctx context.Context, pref *models.InstructorPreference) (string, error)
	ListPreferences(ctx context.Context, instructorID string) ([]*models.InstructorPreference, error)
	ListPreferencesForDay(ctx context.Context, instructorID string, day models.DayOfWeek) ([]*models.InstructorPreference, error)
	DeletePreference(ctx context.Context, id, instructorID string) error
	ClearPreferences(ctx context.Context, instructorID string) error
}

// Users

func (s *Service) CreateUser(ctx context.Context, req *api.UserRequest) (*api.UserResponse, error) {
	const op = "service.CreateUser"

	role := models.Role(req.Role)
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%s: invalid role %q: %w", op, req.Role, response.ErrValidation)
	}

	user := &models.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     role,
		IsActive: true,
	}

	if req.Gender != "" {
		gender := models.Gender(req.Gender)
		if !models.ValidGender(gender) {
			return nil, fmt.Errorf("%s: invalid gender %q: %w", op, req.Gender, response.ErrValidation)
		}
		user.Gender = &gender
	}

	id, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetUser(ctx, id)
}

func (s *Service) GetUser(ctx context.Context, id string) (*api.UserResponse, error) {
	const op = "service.GetUser"

	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return userToResponse(user), nil
}

func (s *Service) ListUsers(ctx context.Context, role *string, skip, limit int) ([]*api.UserResponse, error) {
	const op = "service.ListUsers"

	var roleFilter *models.Role
	if role != nil {
		r := models.Role(*role)
		if !models.ValidRole(r) {
			return nil, fmt.Errorf("%s: invalid role %q: %w", op, *role, response.ErrValidation)
		}
		roleFilter = &r
	}

	users, err := s.store.ListUsers(ctx, roleFilter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, userToResponse(user))
	}

	return result, nil
}

func userToResponse(user *models.User) *api.UserResponse {
	resp := &api.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	}
	if user.Gender != nil {
		g := string(*user.Gender)
		resp.Gender = &g
	}

	return resp
}

// Groups

func (s *Service) CreateGroup(ctx context.Context, req *api.GroupRequest) (*api.GroupResponse, error) {
	const op = "service.CreateGroup"

	group, err := s.groupFromRequest(op, req)
	if err != nil {
		return nil, err
	}

	if group.InstructorID != nil {
		if err := s.requireInstructor(ctx, op, *group.InstructorID); err != nil {
			return nil, err
		}
	}

	id, err := s.store.CreateGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetGroup(ctx, id)
}

func (s *Service) groupFromRequest(op string, req *api.GroupRequest) (*models.Group, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start_time: %w", op, response.ErrValidation)
	}

	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid end_time: %w", op, response.ErrValidation)
	}

	if !end.After(start) {
		return nil, fmt.Errorf("%s: end_time must be after start_time: %w", op, response.ErrValidation)
	}

	if req.Capacity < 1 {
		return nil, fmt.Errorf("%s: capacity must be at least 1: %w", op, response.ErrValidation)
	}

	if req.MaxMale < 0 || req.MaxFemale < 0 {
		return nil, fmt.Errorf("%s: gender limits must not be negative: %w", op, response.ErrValidation)
	}

	if req.MaxMale > 0 && req.MaxFemale > 0 && req.Capacity < req.MaxMale+req.MaxFemale {
		return nil, fmt.Errorf("%s: capacity must be at least the sum of gender limits: %w", op, response.ErrValidation)
	}

	return &models.Group{
		Name:         req.Name,
		Description:  req.Description,
		Capacity:     req.Capacity,
		MaxMale:      req.MaxMale,
		MaxFemale:    req.MaxFemale,
		StartTime:    start,
		EndTime:      end,
		InstructorID: req.InstructorID,
	}, nil
}

func (s *Service) requireInstructor(ctx context.Context, op, instructorID string) error {
	user, err := s.store.GetUser(ctx, instructorID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: invalid instructor: %w", op, response.ErrValidation)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if user.Role != models.RoleInstructor {
		return fmt.Errorf("%s: user %s is not an instructor: %w", op, instructorID, response.ErrValidation)
	}

	return nil
}

func (s *Service) GetGroup(ctx context.Context, id string) (*api.GroupResponse, error) {
	const op = "service.GetGroup"

	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groupToResponse(group), nil
}

func (s *Service) ListGroups(ctx context.Context, skip, limit int) ([]*api.GroupListItem, error) {
	const op = "service.ListGroups"

	groups, err := s.store.ListGroups(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groupsToListItems(groups), nil
}

func (s *Service) ListUpcomingGroups(ctx context.Context, skip, limit int) ([]*api.GroupListItem, error) {
	const op = "service.ListUpcomingGroups"

	groups, err := s.store.ListUpcomingGroups(ctx, s.now(), skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groupsToListItems(groups), nil
}

// ListAvailableGroups returns future groups the visitor can still join given
// their gender sub-pool.
func (s *Service) ListAvailableGroups(ctx context.Context, visitorID string, skip, limit int) ([]*api.GroupListItem, error) {
	const op = "service.ListAvailableGroups"

	visitor, err := s.store.GetUser(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if visitor.Gender == nil {
		return nil, fmt.Errorf("%s: visitor gender is required to check availability: %w", op, response.ErrValidation)
	}

	groups, err := s.store.ListAvailableGroups(ctx, visitorID, *visitor.Gender, s.now(), skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groupsToListItems(groups), nil
}

func (s *Service) UpdateGroup(ctx context.Context, id string, req *api.GroupRequest) (*api.GroupResponse, error) {
	const op = "service.UpdateGroup"

	existing, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	group, err := s.groupFromRequest(op, req)
	if err != nil {
		return nil, err
	}
	group.ID = existing.ID

	if group.InstructorID != nil {
		if err := s.requireInstructor(ctx, op, *group.InstructorID); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetGroup(ctx, id)
}

func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	const op = "service.DeleteGroup"

	if err := s.store.DeleteGroup(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func groupToResponse(g *models.GroupDetails) *api.GroupResponse {
	return &api.GroupResponse{
		ID:                        g.ID,
		Name:                      g.Name,
		Description:               g.Description,
		Capacity:                  g.Capacity,
		MaxMale:                   g.MaxMale,
		MaxFemale:                 g.MaxFemale,
		StartTime:                 g.StartTime,
		EndTime:                   g.EndTime,
		InstructorID:              g.InstructorID,
		DurationHours:             g.DurationHours(),
		CurrentParticipants:       g.CurrentParticipants,
		CurrentMaleParticipants:   g.CurrentMaleParticipants,
		CurrentFemaleParticipants: g.CurrentFemaleParticipants,
		IsFull:                    g.IsFull(),
		IsMaleFull:                g.IsMaleFull(),
		IsFemaleFull:              g.IsFemaleFull(),
	}
}

func groupsToListItems(groups []*models.GroupDetails) []*api.GroupListItem {
	result := make([]*api.GroupListItem, 0, len(groups))
	for _, g := range groups {
		result = append(result, &api.GroupListItem{
			ID:                  g.ID,
			Name:                g.Name,
			StartTime:           g.StartTime,
			EndTime:             g.EndTime,
			Capacity:            g.Capacity,
			CurrentParticipants: g.CurrentParticipants,
			InstructorID:        g.InstructorID,
			IsFull:              g.IsFull(),
		})
	}

	return result
}

// Availability engine

// AvailableInstructorsForGroup lists instructors that can take the group's
// time slot: active, no time conflict, and inside the weekly hours band after
// adding the group. The group itself is excluded from conflict checks since
// it may already be tentatively linked to a candidate.
func (s *Service) AvailableInstructorsForGroup(ctx context.Context, groupID string, skip, limit int, sortBy string) ([]*api.InstructorAvailability, error) {
	const op = "service.AvailableInstructorsForGroup"

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.availableInstructors(ctx, group.StartTime, group.EndTime, groupID, sortBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paginateAvailability(result, skip, limit), nil
}

func (s *Service) availableInstructors(ctx context.Context, start, end time.Time, excludeGroupID, sortBy string) ([]*api.InstructorAvailability, error) {
	instructors, err := s.store.ListActiveInstructors(ctx)
	if err != nil {
		return nil, err
	}

	weekStart := schedule.WeekStart(start)
	weekEnd := weekStart.AddDate(0, 0, 7)
	groupHours := end.Sub(start).Hours()
	day := schedule.DayOfWeek(start)

	result := make([]*api.InstructorAvailability, 0, len(instructors))

	for _, instructor := range instructors {
		weekGroups, err := s.store.ListGroupsByInstructorInWindow(ctx, instructor.ID, weekStart, weekEnd)
		if err != nil {
			return nil, err
		}
		currentHours := schedule.TotalHours(weekGroups)

		load := schedule.ClassifyLoad(currentHours+groupHours, s.workload.MinHoursPerWeek, s.workload.MaxHoursPerWeek)

		allGroups, err := s.store.ListGroupsByInstructor(ctx, instructor.ID)
		if err != nil {
			return nil, err
		}
		if schedule.HasConflict(allGroups, start, end, excludeGroupID) {
			continue
		}

		if load.OutsideBand() {
			continue
		}

		prefs, err := s.store.ListPreferencesForDay(ctx, instructor.ID, day)
		if err != nil {
			return nil, err
		}

		matches, err := schedule.MatchesPreference(prefs, start, end)
		if err != nil {
			return nil, err
		}

		result = append(result, &api.InstructorAvailability{
			InstructorID:          instructor.ID,
			FullName:              instructor.FullName,
			Email:                 instructor.Email,
			CurrentHoursScheduled: currentHours,
			MinHoursRequired:      s.workload.MinHoursPerWeek,
			MaxHoursAllowed:       s.workload.MaxHoursPerWeek,
			IsOverloaded:          load.OutsideBand(),
			MatchesPreferences:    matches,
		})
	}

	switch sortBy {
	case SortByHoursScheduled:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CurrentHoursScheduled < result[j].CurrentHoursScheduled
		})
	case SortByPreferenceMatch:
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].MatchesPreferences != result[j].MatchesPreferences {
				return result[i].MatchesPreferences
			}
			return result[i].CurrentHoursScheduled < result[j].CurrentHoursScheduled
		})
	}

	return result, nil
}

func paginateAvailability(items []*api.InstructorAvailability, skip, limit int) []*api.InstructorAvailability {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []*api.InstructorAvailability{}
	}

	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}

	return items[skip:end]
}

// Assignment

// AssignInstructor links an instructor to a group after re-deriving the
// eligible set for the group's exact window. Concurrent assignments touching
// the same instructor serialize on the lock.
func (s *Service) AssignInstructor(ctx context.Context, groupID, instructorID string) (*api.GroupResponse, error) {
	const op = "service.AssignInstructor"

	lockKey := fmt.Sprintf("instructor:%s", instructorID)

	locked, err := s.locker.Lock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	if err := s.requireInstructor(ctx, op, instructorID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eligible, err := s.availableInstructors(ctx, group.StartTime, group.EndTime, groupID, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	found := false
	for _, candidate := range eligible {
		if candidate.InstructorID == instructorID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInstructorUnavailable)
	}

	if err := s.store.SetGroupInstructor(ctx, groupID, &instructorID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetGroup(ctx, groupID)
}

func (s *Service) UnassignInstructor(ctx context.Context, groupID string) (*api.GroupResponse, error) {
	const op = "service.UnassignInstructor"

	if err := s.store.SetGroupInstructor(ctx, groupID, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetGroup(ctx, groupID)
}

// Registrations

// CreateRegistration enrolls a visitor into a group. Calling it again for the
// same visitor and group returns the existing registration unchanged. The
// capacity check-then-insert runs under a per-group lock and a transaction
// holding a row lock on the group.
func (s *Service) CreateRegistration(ctx context.Context, req *api.RegistrationRequest) (*api.RegistrationResponse, error) {
	const op = "service.CreateRegistration"

	lockKey := fmt.Sprintf("group:%s", req.GroupID)

	locked, err := s.locker.Lock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	existing, err := s.store.GetRegistrationByVisitorAndGroup(ctx, req.VisitorID, req.GroupID)
	if err == nil {
		return registrationToResponse(existing), nil
	}
	if !errors.Is(err, response.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	group, err := s.store.GetGroupForEnrollment(ctx, tx, req.GroupID)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if group.IsFull() {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%s: %w", op, response.ErrCapacityExceeded)
	}

	visitor, err := s.store.GetUser(ctx, req.VisitorID)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if visitor.Gender != nil {
		switch *visitor.Gender {
		case models.GenderMale:
			if group.IsMaleFull() {
				_ = tx.Rollback()
				return nil, fmt.Errorf("%s: %w", op, response.ErrGenderCapacityExceeded)
			}
		case models.GenderFemale:
			if group.IsFemaleFull() {
				_ = tx.Rollback()
				return nil, fmt.Errorf("%s: %w", op, response.ErrGenderCapacityExceeded)
			}
		}
	}

	reg := &models.Registration{
		VisitorID: req.VisitorID,
		GroupID:   req.GroupID,
		Attended:  false,
	}

	id, err := s.store.CreateRegistration(ctx, tx, reg)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	created, err := s.store.GetRegistration(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return registrationToResponse(created), nil
}

// CancelRegistration removes the visitor's registration for a group. Returns
// whether one was removed; canceling an absent registration is not an error
// here.
func (s *Service) CancelRegistration(ctx context.Context, visitorID, groupID string) (bool, error) {
	const op = "service.CancelRegistration"

	removed, err := s.store.DeleteRegistration(ctx, visitorID, groupID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return removed, nil
}

func (s *Service) UpdateAttendance(ctx context.Context, registrationID string, attended bool) (*api.RegistrationResponse, error) {
	const op = "service.UpdateAttendance"

	reg, err := s.store.SetAttendance(ctx, registrationID, attended)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return registrationToResponse(reg), nil
}

func (s *Service) ListVisitorRegistrations(ctx context.Context, visitorID string, skip, limit int) ([]*api.RegistrationResponse, error) {
	const op = "service.ListVisitorRegistrations"

	regs, err := s.store.ListVisitorRegistrations(ctx, visitorID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return registrationsToResponses(regs), nil
}

func (s *Service) ListGroupRegistrations(ctx context.Context, groupID string, skip, limit int) ([]*api.RegistrationResponse, error) {
	const op = "service.ListGroupRegistrations"

	regs, err := s.store.ListGroupRegistrations(ctx, groupID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return registrationsToResponses(regs), nil
}

func registrationToResponse(reg *models.Registration) *api.RegistrationResponse {
	return &api.RegistrationResponse{
		ID:        reg.ID,
		VisitorID: reg.VisitorID,
		GroupID:   reg.GroupID,
		Attended:  reg.Attended,
	}
}

func registrationsToResponses(regs []*models.Registration) []*api.RegistrationResponse {
	result := make([]*api.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		result = append(result, registrationToResponse(reg))
	}

	return result
}

// Instructor schedule & hours

func (s *Service) CreateSchedule(ctx context.Context, instructorID string, req *api.ScheduleRequest) (*api.ScheduleResponse, error) {
	const op = "service.CreateSchedule"

	if err := s.requireInstructor(ctx, op, instructorID); err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start_time: %w", op, response.ErrValidation)
	}

	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid end_time: %w", op, response.ErrValidation)
	}

	if !end.After(start) {
		return nil, fmt.Errorf("%s: end_time must be after start_time: %w", op, response.ErrValidation)
	}

	sched := &models.InstructorSchedule{
		InstructorID: instructorID,
		StartTime:    start,
		EndTime:      end,
	}

	id, err := s.store.CreateSchedule(ctx, sched)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sched.ID = id

	return scheduleToResponse(sched), nil
}

func (s *Service) ListSchedules(ctx context.Context, instructorID string, skip, limit int) ([]*api.ScheduleResponse, error) {
	const op = "service.ListSchedules"

	scheds, err := s.store.ListSchedules(ctx, instructorID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.ScheduleResponse, 0, len(scheds))
	for _, sched := range scheds {
		result = append(result, scheduleToResponse(sched))
	}

	return result, nil
}

func scheduleToResponse(sched *models.InstructorSchedule) *api.ScheduleResponse {
	return &api.ScheduleResponse{
		ID:           sched.ID,
		InstructorID: sched.InstructorID,
		StartTime:    sched.StartTime,
		EndTime:      sched.EndTime,
	}
}

func (s *Service) ListInstructorGroups(ctx context.Context, instructorID string, skip, limit int) ([]*api.GroupListItem, error) {
	const op = "service.ListInstructorGroups"

	groups, err := s.store.ListInstructorGroupDetails(ctx, instructorID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groupsToListItems(groups), nil
}

// InstructorHours summarizes an instructor's committed hours for the week
// starting at weekStart. When weekStart is nil, the Monday of the current
// week is used.
func (s *Service) InstructorHours(ctx context.Context, instructorID string, weekStart *time.Time) (*api.HoursSummary, error) {
	const op = "service.InstructorHours"

	if err := s.requireInstructor(ctx, op, instructorID); err != nil {
		return nil, err
	}

	start := schedule.WeekStart(s.now())
	if weekStart != nil {
		start = *weekStart
	}
	end := start.AddDate(0, 0, 7)

	groups, err := s.store.ListGroupsByInstructorInWindow(ctx, instructorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hours := schedule.TotalHours(groups)

	return &api.HoursSummary{
		CurrentHours:  hours,
		MinRequired:   s.workload.MinHoursPerWeek,
		MaxAllowed:    s.workload.MaxHoursPerWeek,
		WeekStarting:  start,
		WeekEnding:    start.AddDate(0, 0, 6),
		IsUnderloaded: hours < s.workload.MinHoursPerWeek,
		IsOverloaded:  hours > s.workload.MaxHoursPerWeek,
	}, nil
}

// Instructor preferences

func (s *Service) CreatePreference(ctx context.Context, instructorID string, req *api.PreferenceRequest) (*api.PreferenceResponse, error) {
	const op = "service.CreatePreference"

	if err := s.requireInstructor(ctx, op, instructorID); err != nil {
		return nil, err
	}

	day := models.DayOfWeek(req.DayOfWeek)
	if !models.ValidDayOfWeek(day) {
		return nil, fmt.Errorf("%s: invalid day_of_week %q: %w", op, req.DayOfWeek, response.ErrValidation)
	}

	start, err := schedule.NormalizeClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start_time: %w", op, response.ErrValidation)
	}

	end, err := schedule.NormalizeClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid end_time: %w", op, response.ErrValidation)
	}

	if end <= start {
		return nil, fmt.Errorf("%s: end_time must be after start_time: %w", op, response.ErrValidation)
	}

	pref := &models.InstructorPreference{
		InstructorID: instructorID,
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
	}

	id, err := s.store.CreatePreference(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pref.ID = id

	return preferenceToResponse(pref), nil
}

func (s *Service) ListPreferences(ctx context.Context, instructorID string) ([]*api.PreferenceResponse, error) {
	const op = "service.ListPreferences"

	prefs, err := s.store.ListPreferences(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.PreferenceResponse, 0, len(prefs))
	for _, pref := range prefs {
		result = append(result, preferenceToResponse(pref))
	}

	return result, nil
}

func (s *Service) DeletePreference(ctx context.Context, id, instructorID string) error {
	const op = "service.DeletePreference"

	if err := s.store.DeletePreference(ctx, id, instructorID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) ClearPreferences(ctx context.Context, instructorID string) error {
	const op = "service.ClearPreferences"

	if err := s.store.ClearPreferences(ctx, instructorID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func preferenceToResponse(pref *models.InstructorPreference) *api.PreferenceResponse {
	return &api.PreferenceResponse{
		ID:           pref.ID,
		InstructorID: pref.InstructorID,
		DayOfWeek:    string(pref.DayOfWeek),
		StartTime:    pref.StartTime,
		EndTime:      pref.EndTime,
	}
}
