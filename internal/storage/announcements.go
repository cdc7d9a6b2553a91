package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateAnnouncement inserts a feed entry and returns it with its ID.
func (s *Store) CreateAnnouncement(a Announcement) (Announcement, error) {
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}
	if a.Category == "" {
		a.Category = CategoryGeneral
	}
	res, err := s.db.Exec(`
		INSERT INTO announcements (title, body, category, location, source, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Title, a.Body, a.Category, a.Location, a.Source, a.Date.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return Announcement{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Announcement{}, err
	}
	a.ID = id
	return a, nil
}

// ListAnnouncements returns the feed, newest first.
func (s *Store) ListAnnouncements() ([]Announcement, error) {
	rows, err := s.db.Query(`
		SELECT id, title, body, category, location, source, date
		FROM announcements ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Announcement
	for rows.Next() {
		var a Announcement
		var date string
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Category, &a.Location, &a.Source, &date); err != nil {
			return nil, err
		}
		if a.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// GetAnnouncement returns one feed entry.
func (s *Store) GetAnnouncement(id int64) (Announcement, error) {
	var a Announcement
	var date string
	err := s.db.QueryRow(`
		SELECT id, title, body, category, location, source, date
		FROM announcements WHERE id = ?`, id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.Category, &a.Location, &a.Source, &date)
	if err == sql.ErrNoRows {
		return Announcement{}, ErrNotFound
	}
	if err != nil {
		return Announcement{}, err
	}
	if a.Date, err = time.Parse(time.RFC3339, date); err != nil {
		return Announcement{}, fmt.Errorf("parsing date: %w", err)
	}
	return a, nil
}
