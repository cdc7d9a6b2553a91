package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, user_type,
	is_active, bio, location, skills, experience_years, hourly_rate,
	availability, profile_image_url, created_at`

// CreateUser inserts a new account and returns it with the assigned ID.
// A duplicate email returns an error mentioning the conflict.
func (s *Store) CreateUser(u User) (User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.IsActive = true
	res, err := s.db.Exec(`
		INSERT INTO users (email, password_hash, first_name, last_name, phone, user_type,
			is_active, bio, location, skills, experience_years, hourly_rate,
			availability, profile_image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.UserType,
		boolToInt(u.IsActive), u.Bio, u.Location, encodeList(u.Skills),
		u.ExperienceYears, u.HourlyRate, u.Availability, u.ProfileImageURL,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return User{}, fmt.Errorf("user with email %s already exists", u.Email)
		}
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	u.ID = id
	return u, nil
}

// GetUser returns the user with the given ID.
func (s *Store) GetUser(id int64) (User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail returns the user registered under email.
func (s *Store) GetUserByEmail(email string) (User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// ListUsersByType returns active users of the given role.
func (s *Store) ListUsersByType(userType string) ([]User, error) {
	rows, err := s.db.Query(
		`SELECT `+userColumns+` FROM users WHERE user_type = ? AND is_active = 1 ORDER BY id`,
		userType,
	)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

// ListUsersByLocationAndType returns active users of the given role whose
// location contains loc, case-insensitively.
func (s *Store) ListUsersByLocationAndType(loc, userType string) ([]User, error) {
	rows, err := s.db.Query(
		`SELECT `+userColumns+` FROM users
		 WHERE user_type = ? AND is_active = 1 AND lower(location) LIKE ?
		 ORDER BY id`,
		userType, "%"+strings.ToLower(loc)+"%",
	)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

// UpdateUserProfile overwrites the mutable profile fields of an account.
func (s *Store) UpdateUserProfile(id int64, u User) (User, error) {
	res, err := s.db.Exec(`
		UPDATE users SET first_name = ?, last_name = ?, phone = ?, bio = ?,
			location = ?, skills = ?, experience_years = ?, hourly_rate = ?,
			availability = ?, profile_image_url = ?
		WHERE id = ?`,
		u.FirstName, u.LastName, u.Phone, u.Bio, u.Location, encodeList(u.Skills),
		u.ExperienceYears, u.HourlyRate, u.Availability, u.ProfileImageURL, id,
	)
	if err != nil {
		return User{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if n == 0 {
		return User{}, ErrNotFound
	}
	return s.GetUser(id)
}

// DeactivateUser soft-deletes an account; the row stays for audit and any
// tasks it owns keep their farmer reference.
func (s *Store) DeactivateUser(id int64) error {
	res, err := s.db.Exec(`UPDATE users SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var skills, createdAt string
	var active int
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.UserType, &active, &u.Bio, &u.Location, &skills,
		&u.ExperienceYears, &u.HourlyRate, &u.Availability, &u.ProfileImageURL, &createdAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.IsActive = active != 0
	u.Skills = decodeList(skills)
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return User{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return u, nil
}

func scanUsers(rows *sql.Rows) ([]User, error) {
	defer rows.Close()
	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
