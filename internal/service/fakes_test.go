package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"time"

	"swimpool-service/internal/models"
	"swimpool-service/pkg/response"
)

// stubDriver gives the fake store real *sql.Tx values whose Commit and
// Rollback are no-ops, so the service's transaction handling runs unchanged.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func init() {
	sql.Register("servicetest", stubDriver{})
}

type fakeLocker struct {
	allow  bool
	locked []string
}

func (l *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (bool, error) {
	if !l.allow {
		return false, nil
	}
	l.locked = append(l.locked, key)
	return true, nil
}

func (l *fakeLocker) Unlock(context.Context, string) error { return nil }

// fakeStore is an in-memory Store implementation mirroring the Postgres
// storage semantics.
type fakeStore struct {
	db            *sql.DB
	users         map[string]*models.User
	groups        map[string]*models.Group
	registrations map[string]*models.Registration
	schedules     map[string]*models.InstructorSchedule
	preferences   map[string]*models.InstructorPreference
	nextID        int
}

func newFakeStore() *fakeStore {
	db, err := sql.Open("servicetest", "")
	if err != nil {
		panic(err)
	}

	return &fakeStore{
		db:            db,
		users:         map[string]*models.User{},
		groups:        map[string]*models.Group{},
		registrations: map[string]*models.Registration{},
		schedules:     map[string]*models.InstructorSchedule{},
		preferences:   map[string]*models.InstructorPreference{},
	}
}

func (f *fakeStore) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return f.db.BeginTx(ctx, nil)
}

// Users

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) (string, error) {
	id := f.newID("user")
	u := *user
	u.ID = id
	f.users[id] = &u
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) ListUsers(_ context.Context, role *models.Role, skip, limit int) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.users {
		if role != nil && user.Role != *role {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return sliceWindow(users, skip, limit), nil
}

func (f *fakeStore) ListActiveInstructors(_ context.Context) ([]*models.User, error) {
	var instructors []*models.User
	for _, user := range f.users {
		if user.Role == models.RoleInstructor && user.IsActive {
			instructors = append(instructors, user)
		}
	}
	sort.Slice(instructors, func(i, j int) bool { return instructors[i].Email < instructors[j].Email })
	return instructors, nil
}

// Groups

func (f *fakeStore) CreateGroup(_ context.Context, group *models.Group) (string, error) {
	id := f.newID("group")
	g := *group
	g.ID = id
	f.groups[id] = &g
	return id, nil
}

func (f *fakeStore) details(g *models.Group) *models.GroupDetails {
	d := &models.GroupDetails{Group: *g}
	for _, reg := range f.registrations {
		if reg.GroupID != g.ID {
			continue
		}
		d.CurrentParticipants++
		if visitor, ok := f.users[reg.VisitorID]; ok && visitor.Gender != nil {
			switch *visitor.Gender {
			case models.GenderMale:
				d.CurrentMaleParticipants++
			case models.GenderFemale:
				d.CurrentFemaleParticipants++
			}
		}
	}
	return d
}

func (f *fakeStore) GetGroup(_ context.Context, id string) (*models.GroupDetails, error) {
	group, ok := f.groups[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return f.details(group), nil
}

func (f *fakeStore) GetGroupForEnrollment(ctx context.Context, _ *sql.Tx, id string) (*models.GroupDetails, error) {
	return f.GetGroup(ctx, id)
}

func (f *fakeStore) sortedGroups() []*models.Group {
	var groups []*models.Group
	for _, g := range f.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].StartTime.Before(groups[j].StartTime) })
	return groups
}

func (f *fakeStore) ListGroups(_ context.Context, skip, limit int) ([]*models.GroupDetails, error) {
	var result []*models.GroupDetails
	for _, g := range f.sortedGroups() {
		result = append(result, f.details(g))
	}
	return sliceWindow(result, skip, limit), nil
}

func (f *fakeStore) ListUpcomingGroups(_ context.Context, now time.Time, skip, limit int) ([]*models.GroupDetails, error) {
	var result []*models.GroupDetails
	for _, g := range f.sortedGroups() {
		if g.StartTime.After(now) {
			result = append(result, f.details(g))
		}
	}
	return sliceWindow(result, skip, limit), nil
}

func (f *fakeStore) ListAvailableGroups(_ context.Context, visitorID string, gender models.Gender, now time.Time, skip, limit int) ([]*models.GroupDetails, error) {
	var result []*models.GroupDetails
	for _, g := range f.sortedGroups() {
		if !g.StartTime.After(now) {
			continue
		}
		if f.registrationFor(visitorID, g.ID) != nil {
			continue
		}
		d := f.details(g)
		if d.IsFull() {
			continue
		}
		if gender == models.GenderMale && d.IsMaleFull() {
			continue
		}
		if gender == models.GenderFemale && d.IsFemaleFull() {
			continue
		}
		result = append(result, d)
	}
	return sliceWindow(result, skip, limit), nil
}

func (f *fakeStore) ListInstructorGroupDetails(_ context.Context, instructorID string, skip, limit int) ([]*models.GroupDetails, error) {
	var result []*models.GroupDetails
	for _, g := range f.sortedGroups() {
		if g.InstructorID != nil && *g.InstructorID == instructorID {
			result = append(result, f.details(g))
		}
	}
	return sliceWindow(result, skip, limit), nil
}

func (f *fakeStore) UpdateGroup(_ context.Context, group *models.Group) error {
	if _, ok := f.groups[group.ID]; !ok {
		return response.ErrNotFound
	}
	g := *group
	f.groups[group.ID] = &g
	return nil
}

func (f *fakeStore) DeleteGroup(_ context.Context, id string) error {
	if _, ok := f.groups[id]; !ok {
		return response.ErrNotFound
	}
	delete(f.groups, id)
	for regID, reg := range f.registrations {
		if reg.GroupID == id {
			delete(f.registrations, regID)
		}
	}
	return nil
}

func (f *fakeStore) SetGroupInstructor(_ context.Context, groupID string, instructorID *string) error {
	group, ok := f.groups[groupID]
	if !ok {
		return response.ErrNotFound
	}
	group.InstructorID = instructorID
	return nil
}

func (f *fakeStore) ListGroupsByInstructor(_ context.Context, instructorID string) ([]*models.Group, error) {
	var result []*models.Group
	for _, g := range f.sortedGroups() {
		if g.InstructorID != nil && *g.InstructorID == instructorID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (f *fakeStore) ListGroupsByInstructorInWindow(_ context.Context, instructorID string, from, to time.Time) ([]*models.Group, error) {
	var result []*models.Group
	for _, g := range f.sortedGroups() {
		if g.InstructorID == nil || *g.InstructorID != instructorID {
			continue
		}
		if !g.StartTime.Before(from) && !g.EndTime.After(to) {
			result = append(result, g)
		}
	}
	return result, nil
}

// Registrations

func (f *fakeStore) registrationFor(visitorID, groupID string) *models.Registration {
	for _, reg := range f.registrations {
		if reg.VisitorID == visitorID && reg.GroupID == groupID {
			return reg
		}
	}
	return nil
}

func (f *fakeStore) GetRegistrationByVisitorAndGroup(_ context.Context, visitorID, groupID string) (*models.Registration, error) {
	if reg := f.registrationFor(visitorID, groupID); reg != nil {
		return reg, nil
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) CreateRegistration(_ context.Context, _ *sql.Tx, reg *models.Registration) (string, error) {
	if f.registrationFor(reg.VisitorID, reg.GroupID) != nil {
		return "", response.ErrConflict
	}
	id := f.newID("reg")
	r := *reg
	r.ID = id
	f.registrations[id] = &r
	return id, nil
}

func (f *fakeStore) GetRegistration(_ context.Context, id string) (*models.Registration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return reg, nil
}

func (f *fakeStore) ListVisitorRegistrations(_ context.Context, visitorID string, skip, limit int) ([]*models.Registration, error) {
	var result []*models.Registration
	for _, reg := range f.registrations {
		if reg.VisitorID == visitorID {
			result = append(result, reg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return sliceWindow(result, skip, limit), nil
}

func (f *fakeStore) ListGroupRegistrations(_ context.Context, groupID string, skip, limit int) ([]*models.Registration, error) {
	var result []*models.Registration
	for _, reg := range f.registrations {
		if reg.GroupID == groupID {
			result = append(result, reg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return sliceWindow(result, skip, limit), nil
}

func (f *fakeStore) DeleteRegistration(_ context.Context, visitorID, groupID string) (bool, error) {
	for id, reg := range f.registrations {
		if reg.VisitorID == visitorID && reg.GroupID == groupID {
			delete(f.registrations, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) SetAttendance(_ context.Context, registrationID string, attended bool) (*models.Registration, error) {
	reg, ok := f.registrations[registrationID]
	if !ok {
		return nil, response.ErrNotFound
	}
	reg.Attended = attended
	return reg, nil
}

// Schedules

func (f *fakeStore) CreateSchedule(_ context.Context, sched *models.InstructorSchedule) (string, error) {
	id := f.newID("sched")
	sc := *sched
	sc.ID = id
	f.schedules[id] = &sc
	return id, nil
}

func (f *fakeStore) ListSchedules(_ context.Context, instructorID string, skip, limit int) ([]*models.InstructorSchedule, error) {
	var result []*models.InstructorSchedule
	for _, sched := range f.schedules {
		if sched.InstructorID == instructorID {
			result = append(result, sched)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return sliceWindow(result, skip, limit), nil
}

// Preferences

func (f *fakeStore) CreatePreference(_ context.Context, pref *models.InstructorPreference) (string, error) {
	id := f.newID("pref")
	p := *pref
	p.ID = id
	f.preferences[id] = &p
	return id, nil
}

func (f *fakeStore) ListPreferences(_ context.Context, instructorID string) ([]*models.InstructorPreference, error) {
	var result []*models.InstructorPreference
	for _, pref := range f.preferences {
		if pref.InstructorID == instructorID {
			result = append(result, pref)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) ListPreferencesForDay(_ context.Context, instructorID string, day models.DayOfWeek) ([]*models.InstructorPreference, error) {
	var result []*models.InstructorPreference
	for _, pref := range f.preferences {
		if pref.InstructorID == instructorID && pref.DayOfWeek == day {
			result = append(result, pref)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) DeletePreference(_ context.Context, id, instructorID string) error {
	pref, ok := f.preferences[id]
	if !ok || pref.InstructorID != instructorID {
		return response.ErrNotFound
	}
	delete(f.preferences, id)
	return nil
}

func (f *fakeStore) ClearPreferences(_ context.Context, instructorID string) error {
	for id, pref := range f.preferences {
		if pref.InstructorID == instructorID {
			delete(f.preferences, id)
		}
	}
	return nil
}

func sliceWindow[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}
