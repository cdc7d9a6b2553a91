package storage

import (
	"fmt"
	"time"
)

// CreateNotification inserts an unread notification for a user.
func (s *Store) CreateNotification(userID int64, message string) (Notification, error) {
	n := Notification{UserID: userID, Message: message, CreatedAt: time.Now().UTC()}
	res, err := s.db.Exec(`
		INSERT INTO notifications (user_id, message, read, created_at)
		VALUES (?, ?, 0, ?)`,
		n.UserID, n.Message, n.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Notification{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Notification{}, err
	}
	n.ID = id
	return n, nil
}

// ListNotifications returns a user's notifications, newest first.
func (s *Store) ListNotifications(userID int64) ([]Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, message, read, created_at
		FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Notification
	for rows.Next() {
		var n Notification
		var read int
		var createdAt string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &read, &createdAt); err != nil {
			return nil, err
		}
		n.Read = read != 0
		if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// MarkNotificationRead flags a notification as read. The user ID guards
// against marking someone else's notification.
func (s *Store) MarkNotificationRead(id, userID int64) error {
	res, err := s.db.Exec(`UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`, id, userID)
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

// DeleteNotification removes a notification owned by userID.
func (s *Store) DeleteNotification(id, userID int64) error {
	res, err := s.db.Exec(`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
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
