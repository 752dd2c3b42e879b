package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"swimpool-service/internal/models"
	"swimpool-service/pkg/response"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{db: db}

	if err := s.init(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) init(ctx context.Context) error {
	const op = "storage.postgres.init"

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			gender TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			capacity INTEGER NOT NULL,
			max_male INTEGER NOT NULL,
			max_female INTEGER NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			instructor_id TEXT REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS registrations (
			id TEXT PRIMARY KEY,
			visitor_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			attended BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (visitor_id, group_id)
		)`,
		`CREATE TABLE IF NOT EXISTS instructor_schedules (
			id TEXT PRIMARY KEY,
			instructor_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS instructor_preferences (
			id TEXT PRIMARY KEY,
			instructor_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			day_of_week TEXT NOT NULL,
			start_time TIME NOT NULL,
			end_time TIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_groups_instructor ON groups(instructor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_group ON registrations(group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_prefs_instructor_day ON instructor_preferences(instructor_id, day_of_week)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// #### users ####

func (s *Storage) CreateUser(ctx context.Context, user *models.User) (string, error) {
	const op = "storage.postgres.CreateUser"

	id := uuid.New().String()

	var gender sql.NullString
	if user.Gender != nil {
		gender = sql.NullString{String: string(*user.Gender), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, role, gender, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, user.Email, user.FullName, string(user.Role), gender, user.IsActive,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return "", fmt.Errorf("%s: %w", op, response.ErrConflict)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgres.GetUser"

	var user models.User
	var gender sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, full_name, role, gender, is_active FROM users WHERE id=$1`, id).
		Scan(&user.ID, &user.Email, &user.FullName, &user.Role, &gender, &user.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if gender.Valid {
		g := models.Gender(gender.String)
		user.Gender = &g
	}

	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context, role *models.Role, skip, limit int) ([]*models.User, error) {
	const op = "storage.postgres.ListUsers"

	query := `SELECT id, email, full_name, role, gender, is_active FROM users`
	args := []any{}
	if role != nil {
		query += ` WHERE role=$1`
		args = append(args, string(*role))
	}
	query += fmt.Sprintf(` ORDER BY email OFFSET %d LIMIT %d`, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		var gender sql.NullString

		err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.Role, &gender, &user.IsActive)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if gender.Valid {
			g := models.Gender(gender.String)
			user.Gender = &g
		}

		users = append(users, &user)
	}

	return users, rows.Err()
}

func (s *Storage) ListActiveInstructors(ctx context.Context) ([]*models.User, error) {
	const op = "storage.postgres.ListActiveInstructors"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, full_name, role, gender, is_active
		FROM users
		WHERE role=$1 AND is_active=TRUE
		ORDER BY email`, string(models.RoleInstructor))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var instructors []*models.User
	for rows.Next() {
		var user models.User
		var gender sql.NullString

		err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.Role, &gender, &user.IsActive)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if gender.Valid {
			g := models.Gender(gender.String)
			user.Gender = &g
		}

		instructors = append(instructors, &user)
	}

	return instructors, rows.Err()
}

// #### groups ####

const groupDetailsQuery = `
	SELECT g.id, g.name, g.description, g.capacity, g.max_male, g.max_female,
		g.start_time, g.end_time, g.instructor_id,
		COUNT(r.id),
		COUNT(r.id) FILTER (WHERE u.gender = 'male'),
		COUNT(r.id) FILTER (WHERE u.gender = 'female')
	FROM groups g
	LEFT JOIN registrations r ON r.group_id = g.id
	LEFT JOIN users u ON u.id = r.visitor_id`

func scanGroupDetails(scanner interface{ Scan(...any) error }) (*models.GroupDetails, error) {
	var g models.GroupDetails
	var instructorID sql.NullString

	err := scanner.Scan(
		&g.ID, &g.Name, &g.Description, &g.Capacity, &g.MaxMale, &g.MaxFemale,
		&g.StartTime, &g.EndTime, &instructorID,
		&g.CurrentParticipants, &g.CurrentMaleParticipants, &g.CurrentFemaleParticipants,
	)
	if err != nil {
		return nil, err
	}

	if instructorID.Valid {
		g.InstructorID = &instructorID.String
	}

	return &g, nil
}

func (s *Storage) CreateGroup(ctx context.Context, group *models.Group) (string, error) {
	const op = "storage.postgres.CreateGroup"

	id := uuid.New().String()

	var instructorID sql.NullString
	if group.InstructorID != nil {
		instructorID = sql.NullString{String: *group.InstructorID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO groups
		(id, name, description, capacity, max_male, max_female, start_time, end_time, instructor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, group.Name, group.Description, group.Capacity, group.MaxMale, group.MaxFemale,
		group.StartTime, group.EndTime, instructorID,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetGroup(ctx context.Context, id string) (*models.GroupDetails, error) {
	const op = "storage.postgres.GetGroup"

	row := s.db.QueryRowContext(ctx, groupDetailsQuery+` WHERE g.id=$1 GROUP BY g.id`, id)

	group, err := scanGroupDetails(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return group, nil
}

// GetGroupForEnrollment locks the group row for the lifetime of tx so
// concurrent enrollments against the same group serialize on the capacity
// check, then reads the registration counts under that lock.
func (s *Storage) GetGroupForEnrollment(ctx context.Context, tx *sql.Tx, id string) (*models.GroupDetails, error) {
	const op = "storage.postgres.GetGroupForEnrollment"

	var g models.GroupDetails
	var instructorID sql.NullString

	err := tx.QueryRowContext(ctx,
		`SELECT id, name, description, capacity, max_male, max_female, start_time, end_time, instructor_id
		FROM groups WHERE id=$1
		FOR UPDATE`, id).
		Scan(&g.ID, &g.Name, &g.Description, &g.Capacity, &g.MaxMale, &g.MaxFemale,
			&g.StartTime, &g.EndTime, &instructorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if instructorID.Valid {
		g.InstructorID = &instructorID.String
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE u.gender = 'male'),
			COUNT(*) FILTER (WHERE u.gender = 'female')
		FROM registrations r
		JOIN users u ON u.id = r.visitor_id
		WHERE r.group_id=$1`, id).
		Scan(&g.CurrentParticipants, &g.CurrentMaleParticipants, &g.CurrentFemaleParticipants)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &g, nil
}

func (s *Storage) ListGroups(ctx context.Context, skip, limit int) ([]*models.GroupDetails, error) {
	const op = "storage.postgres.ListGroups"

	query := groupDetailsQuery + fmt.Sprintf(` GROUP BY g.id ORDER BY g.start_time OFFSET %d LIMIT %d`, skip, limit)

	return s.listGroupDetails(ctx, op, query)
}

func (s *Storage) ListUpcomingGroups(ctx context.Context, now time.Time, skip, limit int) ([]*models.GroupDetails, error) {
	const op = "storage.postgres.ListUpcomingGroups"

	query := groupDetailsQuery + fmt.Sprintf(
		` WHERE g.start_time > $1 GROUP BY g.id ORDER BY g.start_time OFFSET %d LIMIT %d`, skip, limit)

	return s.listGroupDetails(ctx, op, query, now)
}

// ListAvailableGroups returns future groups the visitor has not joined that
// still have room, both overall and for the visitor's gender sub-pool.
// Visitors of gender "other" are bounded only by total capacity.
func (s *Storage) ListAvailableGroups(ctx context.Context, visitorID string, gender models.Gender, now time.Time, skip, limit int) ([]*models.GroupDetails, error) {
	const op = "storage.postgres.ListAvailableGroups"

	having := `HAVING COUNT(r.id) < g.capacity`
	switch gender {
	case models.GenderMale:
		having += ` AND COUNT(r.id) FILTER (WHERE u.gender = 'male') < g.max_male`
	case models.GenderFemale:
		having += ` AND COUNT(r.id) FILTER (WHERE u.gender = 'female') < g.max_female`
	}

	query := groupDetailsQuery + fmt.Sprintf(`
		WHERE g.start_time > $1
		AND g.id NOT IN (SELECT group_id FROM registrations WHERE visitor_id = $2)
		GROUP BY g.id
		%s
		ORDER BY g.start_time OFFSET %d LIMIT %d`, having, skip, limit)

	return s.listGroupDetails(ctx, op, query, now, visitorID)
}

func (s *Storage) ListInstructorGroupDetails(ctx context.Context, instructorID string, skip, limit int) ([]*models.GroupDetails, error) {
	const op = "storage.postgres.ListInstructorGroupDetails"

	query := groupDetailsQuery + fmt.Sprintf(
		` WHERE g.instructor_id = $1 GROUP BY g.id ORDER BY g.start_time OFFSET %d LIMIT %d`, skip, limit)

	return s.listGroupDetails(ctx, op, query, instructorID)
}

func (s *Storage) listGroupDetails(ctx context.Context, op, query string, args ...any) ([]*models.GroupDetails, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var groups []*models.GroupDetails
	for rows.Next() {
		group, err := scanGroupDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		groups = append(groups, group)
	}

	return groups, rows.Err()
}

func (s *Storage) UpdateGroup(ctx context.Context, group *models.Group) error {
	const op = "storage.postgres.UpdateGroup"

	var instructorID sql.NullString
	if group.InstructorID != nil {
		instructorID = sql.NullString{String: *group.InstructorID, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE groups
		SET name=$1, description=$2, capacity=$3, max_male=$4, max_female=$5,
			start_time=$6, end_time=$7, instructor_id=$8
		WHERE id=$9`,
		group.Name, group.Description, group.Capacity, group.MaxMale, group.MaxFemale,
		group.StartTime, group.EndTime, instructorID, group.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeleteGroup(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteGroup"

	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) SetGroupInstructor(ctx context.Context, groupID string, instructorID *string) error {
	const op = "storage.postgres.SetGroupInstructor"

	var val sql.NullString
	if instructorID != nil {
		val = sql.NullString{String: *instructorID, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE groups SET instructor_id=$1 WHERE id=$2`, val, groupID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) ListGroupsByInstructor(ctx context.Context, instructorID string) ([]*models.Group, error) {
	const op = "storage.postgres.ListGroupsByInstructor"

	return s.listGroups(ctx, op,
		`SELECT id, name, description, capacity, max_male, max_female, start_time, end_time, instructor_id
		FROM groups WHERE instructor_id=$1
		ORDER BY start_time`, instructorID)
}

// ListGroupsByInstructorInWindow returns the instructor's groups fully
// contained in [from, to]. A session spanning a window boundary is excluded.
func (s *Storage) ListGroupsByInstructorInWindow(ctx context.Context, instructorID string, from, to time.Time) ([]*models.Group, error) {
	const op = "storage.postgres.ListGroupsByInstructorInWindow"

	return s.listGroups(ctx, op,
		`SELECT id, name, description, capacity, max_male, max_female, start_time, end_time, instructor_id
		FROM groups
		WHERE instructor_id=$1 AND start_time >= $2 AND end_time <= $3
		ORDER BY start_time`, instructorID, from, to)
}

func (s *Storage) listGroups(ctx context.Context, op, query string, args ...any) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var g models.Group
		var instructorID sql.NullString

		err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Capacity, &g.MaxMale, &g.MaxFemale,
			&g.StartTime, &g.EndTime, &instructorID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if instructorID.Valid {
			g.InstructorID = &instructorID.String
		}

		groups = append(groups, &g)
	}

	return groups, rows.Err()
}

// #### registrations ####

func (s *Storage) GetRegistrationByVisitorAndGroup(ctx context.Context, visitorID, groupID string) (*models.Registration, error) {
	const op = "storage.postgres.GetRegistrationByVisitorAndGroup"

	var reg models.Registration

	err := s.db.QueryRowContext(ctx,
		`SELECT id, visitor_id, group_id, attended
		FROM registrations WHERE visitor_id=$1 AND group_id=$2`, visitorID, groupID).
		Scan(&reg.ID, &reg.VisitorID, &reg.GroupID, &reg.Attended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &reg, nil
}

func (s *Storage) CreateRegistration(ctx context.Context, tx *sql.Tx, reg *models.Registration) (string, error) {
	const op = "storage.postgres.CreateRegistration"

	id := uuid.New().String()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (id, visitor_id, group_id, attended)
		VALUES ($1, $2, $3, $4)`,
		id, reg.VisitorID, reg.GroupID, reg.Attended,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return "", fmt.Errorf("%s: %w", op, response.ErrConflict)
		}
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetRegistration(ctx context.Context, id string) (*models.Registration, error) {
	const op = "storage.postgres.GetRegistration"

	var reg models.Registration

	err := s.db.QueryRowContext(ctx,
		`SELECT id, visitor_id, group_id, attended FROM registrations WHERE id=$1`, id).
		Scan(&reg.ID, &reg.VisitorID, &reg.GroupID, &reg.Attended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &reg, nil
}

func (s *Storage) ListVisitorRegistrations(ctx context.Context, visitorID string, skip, limit int) ([]*models.Registration, error) {
	const op = "storage.postgres.ListVisitorRegistrations"

	return s.listRegistrations(ctx, op,
		fmt.Sprintf(`SELECT id, visitor_id, group_id, attended
		FROM registrations WHERE visitor_id=$1 OFFSET %d LIMIT %d`, skip, limit), visitorID)
}

func (s *Storage) ListGroupRegistrations(ctx context.Context, groupID string, skip, limit int) ([]*models.Registration, error) {
	const op = "storage.postgres.ListGroupRegistrations"

	return s.listRegistrations(ctx, op,
		fmt.Sprintf(`SELECT id, visitor_id, group_id, attended
		FROM registrations WHERE group_id=$1 OFFSET %d LIMIT %d`, skip, limit), groupID)
}

func (s *Storage) listRegistrations(ctx context.Context, op, query string, args ...any) ([]*models.Registration, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		var reg models.Registration

		err := rows.Scan(&reg.ID, &reg.VisitorID, &reg.GroupID, &reg.Attended)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		regs = append(regs, &reg)
	}

	return regs, rows.Err()
}

func (s *Storage) DeleteRegistration(ctx context.Context, visitorID, groupID string) (bool, error) {
	const op = "storage.postgres.DeleteRegistration"

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM registrations WHERE visitor_id=$1 AND group_id=$2`, visitorID, groupID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

func (s *Storage) SetAttendance(ctx context.Context, registrationID string, attended bool) (*models.Registration, error) {
	const op = "storage.postgres.SetAttendance"

	var reg models.Registration

	err := s.db.QueryRowContext(ctx,
		`UPDATE registrations SET attended=$1 WHERE id=$2
		RETURNING id, visitor_id, group_id, attended`, attended, registrationID).
		Scan(&reg.ID, &reg.VisitorID, &reg.GroupID, &reg.Attended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &reg, nil
}

// #### instructor schedules ####

func (s *Storage) CreateSchedule(ctx context.Context, sched *models.InstructorSchedule) (string, error) {
	const op = "storage.postgres.CreateSchedule"

	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO instructor_schedules (id, instructor_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)`,
		id, sched.InstructorID, sched.StartTime, sched.EndTime,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListSchedules(ctx context.Context, instructorID string, skip, limit int) ([]*models.InstructorSchedule, error) {
	const op = "storage.postgres.ListSchedules"

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, instructor_id, start_time, end_time
		FROM instructor_schedules WHERE instructor_id=$1
		ORDER BY start_time OFFSET %d LIMIT %d`, skip, limit), instructorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var scheds []*models.InstructorSchedule
	for rows.Next() {
		var sched models.InstructorSchedule

		err := rows.Scan(&sched.ID, &sched.InstructorID, &sched.StartTime, &sched.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		scheds = append(scheds, &sched)
	}

	return scheds, rows.Err()
}

// #### instructor preferences ####

func (s *Storage) CreatePreference(ctx context.Context, pref *models.InstructorPreference) (string, error) {
	const op = "storage.postgres.CreatePreference"

	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO instructor_preferences (id, instructor_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)`,
		id, pref.InstructorID, string(pref.DayOfWeek), pref.StartTime, pref.EndTime,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListPreferences(ctx context.Context, instructorID string) ([]*models.InstructorPreference, error) {
	const op = "storage.postgres.ListPreferences"

	return s.listPreferences(ctx, op,
		`SELECT id, instructor_id, day_of_week, start_time, end_time
		FROM instructor_preferences WHERE instructor_id=$1
		ORDER BY day_of_week, start_time`, instructorID)
}

func (s *Storage) ListPreferencesForDay(ctx context.Context, instructorID string, day models.DayOfWeek) ([]*models.InstructorPreference, error) {
	const op = "storage.postgres.ListPreferencesForDay"

	return s.listPreferences(ctx, op,
		`SELECT id, instructor_id, day_of_week, start_time, end_time
		FROM instructor_preferences WHERE instructor_id=$1 AND day_of_week=$2
		ORDER BY start_time`, instructorID, string(day))
}

func (s *Storage) listPreferences(ctx context.Context, op, query string, args ...any) ([]*models.InstructorPreference, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var prefs []*models.InstructorPreference
	for rows.Next() {
		var pref models.InstructorPreference
		// TIME columns come back from the driver as time.Time values; the
		// model carries them as "15:04:05" strings.
		var start, end time.Time

		err := rows.Scan(&pref.ID, &pref.InstructorID, &pref.DayOfWeek, &start, &end)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		pref.StartTime = start.Format("15:04:05")
		pref.EndTime = end.Format("15:04:05")

		prefs = append(prefs, &pref)
	}

	return prefs, rows.Err()
}

func (s *Storage) DeletePreference(ctx context.Context, id, instructorID string) error {
	const op = "storage.postgres.DeletePreference"

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM instructor_preferences WHERE id=$1 AND instructor_id=$2`, id, instructorID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) ClearPreferences(ctx context.Context, instructorID string) error {
	const op = "storage.postgres.ClearPreferences"

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM instructor_preferences WHERE instructor_id=$1`, instructorID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
