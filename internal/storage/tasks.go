package storage

import (
	"database/sql"
	"fmt"
	"time"
)

const taskColumns = `id, farmer_id, title, description, task_type, location,
	start_date, end_date, estimated_hours, hourly_rate, total_budget,
	status, required_skills, max_labourers, created_at, updated_at`

// CreateTask inserts a new task and returns it with the assigned ID.
func (s *Store) CreateTask(t Task) (Task, error) {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = TaskOpen
	}
	if t.MaxLabourers <= 0 {
		t.MaxLabourers = 1
	}

	var endDate any
	if t.EndDate != nil {
		endDate = t.EndDate.UTC().Format(time.RFC3339)
	}
	res, err := s.db.Exec(`
		INSERT INTO tasks (farmer_id, title, description, task_type, location,
			start_date, end_date, estimated_hours, hourly_rate, total_budget,
			status, required_skills, max_labourers, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.FarmerID, t.Title, t.Description, t.TaskType, t.Location,
		t.StartDate.UTC().Format(time.RFC3339), endDate,
		t.EstimatedHours, t.HourlyRate, t.TotalBudget,
		t.Status, encodeList(t.RequiredSkills), t.MaxLabourers,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Task{}, err
	}
	t.ID = id
	return t, nil
}

// GetTask returns the task with the given ID.
func (s *Store) GetTask(id int64) (Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// ListTasks returns all tasks, newest first.
func (s *Store) ListTasks() ([]Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// ListTasksByFarmer returns the tasks posted by one farmer, newest first.
func (s *Store) ListTasksByFarmer(farmerID int64) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskColumns+` FROM tasks WHERE farmer_id = ? ORDER BY created_at DESC, id DESC`,
		farmerID,
	)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// UpdateTask overwrites the mutable fields of a task.
func (s *Store) UpdateTask(id int64, t Task) (Task, error) {
	var endDate any
	if t.EndDate != nil {
		endDate = t.EndDate.UTC().Format(time.RFC3339)
	}
	res, err := s.db.Exec(`
		UPDATE tasks SET title = ?, description = ?, task_type = ?, location = ?,
			start_date = ?, end_date = ?, estimated_hours = ?, hourly_rate = ?,
			total_budget = ?, status = ?, required_skills = ?, max_labourers = ?,
			updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.TaskType, t.Location,
		t.StartDate.UTC().Format(time.RFC3339), endDate,
		t.EstimatedHours, t.HourlyRate, t.TotalBudget,
		t.Status, encodeList(t.RequiredSkills), t.MaxLabourers,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return Task{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Task{}, err
	}
	if n == 0 {
		return Task{}, ErrNotFound
	}
	return s.GetTask(id)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(id int64) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
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

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var skills, startDate, createdAt, updatedAt string
	var endDate sql.NullString
	err := row.Scan(&t.ID, &t.FarmerID, &t.Title, &t.Description, &t.TaskType,
		&t.Location, &startDate, &endDate, &t.EstimatedHours, &t.HourlyRate,
		&t.TotalBudget, &t.Status, &skills, &t.MaxLabourers, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	t.RequiredSkills = decodeList(skills)
	if t.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
		return Task{}, fmt.Errorf("parsing start_date: %w", err)
	}
	if endDate.Valid {
		end, err := time.Parse(time.RFC3339, endDate.String)
		if err != nil {
			return Task{}, fmt.Errorf("parsing end_date: %w", err)
		}
		t.EndDate = &end
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Task{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return Task{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, nil
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	defer rows.Close()
	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
