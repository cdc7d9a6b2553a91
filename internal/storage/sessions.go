package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSession persists an issued bearer token.
func (s *Store) CreateSession(sess Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		sess.Token, sess.UserID,
		sess.CreatedAt.UTC().Format(time.RFC3339),
		sess.ExpiresAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetSession looks a token up. Expired sessions are deleted on read and
// reported as ErrNotFound, so the caller sees exactly one failure mode.
func (s *Store) GetSession(token string) (Session, error) {
	var sess Session
	var createdAt, expiresAt string
	err := s.db.QueryRow(`
		SELECT token, user_id, created_at, expires_at
		FROM sessions WHERE token = ?`, token,
	).Scan(&sess.Token, &sess.UserID, &createdAt, &expiresAt)
	if err == sql.ErrNoRows {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	if sess.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Session{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if sess.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt); err != nil {
		return Session{}, fmt.Errorf("parsing expires_at: %w", err)
	}

	if time.Now().UTC().After(sess.ExpiresAt) {
		s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// DeleteSession revokes a token (logout).
func (s *Store) DeleteSession(token string) error {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
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

// DeleteUserSessions revokes every token a user holds, used when an
// account is deactivated.
func (s *Store) DeleteUserSessions(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}
