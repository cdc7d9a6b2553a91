package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/agriconnect/agriconnect/internal/catalog"
	"github.com/agriconnect/agriconnect/internal/storage"
)

// recordFromTask flattens a task for the shared filter engine.
func recordFromTask(t storage.Task) catalog.Record {
	return catalog.Record{
		ID:          t.ID,
		Kind:        catalog.KindTask,
		Name:        t.Title,
		Description: t.Description,
		Location:    t.Location,
		Tags:        t.RequiredSkills,
		Category:    t.TaskType,
		Attrs: map[catalog.Field]float64{
			catalog.FieldRate:  t.HourlyRate,
			catalog.FieldHours: t.EstimatedHours,
		},
		Payload: t,
	}
}

// filterFromQuery maps directory page inputs onto the engine's filter.
func filterFromQuery(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Query:       q.Get("q"),
		Location:    q.Get("location"),
		Tag:         q.Get("skill"),
		Category:    categoryParam(q.Get("type"), q.Get("availability"), q.Get("category")),
		MinRate:     q.Get("minRate"),
		MaxRate:     q.Get("maxRate"),
		MaxDistance: q.Get("maxDistance"),
		MinRating:   q.Get("minRating"),
		MinHours:    q.Get("minHours"),
	}
}

// categoryParam folds the per-page category spellings (task type,
// availability status, announcement category) into the single engine
// dimension. Pages only ever send one of them.
func categoryParam(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// resultRow is the wire shape of one filtered record: the engine fields
// (with grid-mode truncation applied) plus the original entry.
type resultRow struct {
	ID          int64    `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Detail      any      `json:"detail,omitempty"`
}

type resultsResponse struct {
	View    string      `json:"view"`
	Count   int         `json:"count"`
	Results []resultRow `json:"results"`
}

func viewResponse(records []catalog.Record, mode catalog.ViewMode) resultsResponse {
	view := catalog.Project(records, mode)
	rows := make([]resultRow, 0, len(view.Rows))
	for _, rec := range view.Rows {
		rows = append(rows, resultRow{
			ID:          rec.ID,
			Kind:        string(rec.Kind),
			Name:        rec.Name,
			Description: rec.Description,
			Location:    rec.Location,
			Tags:        rec.Tags,
			Category:    rec.Category,
			Detail:      rec.Payload,
		})
	}
	return resultsResponse{View: string(view.Mode), Count: view.Count, Results: rows}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.deps.Store.ListTasks()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to list tasks: %v", err)
		return
	}

	records := make([]catalog.Record, 0, len(tasks))
	status := strings.ToUpper(r.URL.Query().Get("status"))
	for _, t := range tasks {
		if status != "" && t.Status != status {
			continue
		}
		records = append(records, recordFromTask(t))
	}

	filtered := filterFromQuery(r).Apply(records)
	mode := catalog.ParseViewMode(r.URL.Query().Get("view"))
	writeJSON(w, http.StatusOK, viewResponse(filtered, mode))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid task id")
		return
	}

	task, err := s.deps.Store.GetTask(id)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get task: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleListTasksByFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, err := strconv.ParseInt(chi.URLParam(r, "farmerId"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid farmer id")
		return
	}

	tasks, err := s.deps.Store.ListTasksByFarmer(farmerID)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to list tasks: %v", err)
		return
	}
	if tasks == nil {
		tasks = []storage.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var task storage.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}

	if task.Title == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
		return
	}
	if task.Location == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "location is required")
		return
	}
	task.FarmerID = requestUserID(r)

	created, err := s.deps.Store.CreateTask(task)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to create task: %v", err)
		return
	}

	s.notifyMatchingLabourers(created)

	writeJSON(w, http.StatusCreated, created)
}

// notifyMatchingLabourers fans a new-task notification out to active
// labourers whose skills or location line up with the posting. Failures
// only log; the task is already created.
func (s *Server) notifyMatchingLabourers(task storage.Task) {
	workers, err := s.deps.Store.ListUsersByType(storage.RoleLabour)
	if err != nil {
		s.logger.Warn("notification fan-out skipped", "task_id", task.ID, "error", err)
		return
	}

	msg := fmt.Sprintf("New task in %s: %s", task.Location, task.Title)
	for _, worker := range workers {
		if !taskMatchesWorker(task, worker) {
			continue
		}
		if _, err := s.deps.Store.CreateNotification(worker.ID, msg); err != nil {
			s.logger.Warn("failed to notify labourer", "user_id", worker.ID, "task_id", task.ID, "error", err)
		}
	}
}

func taskMatchesWorker(task storage.Task, worker storage.User) bool {
	for _, want := range task.RequiredSkills {
		for _, have := range worker.Skills {
			if strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(want)) {
				return true
			}
		}
	}
	if task.Location != "" && worker.Location != "" {
		a := strings.ToLower(task.Location)
		b := strings.ToLower(worker.Location)
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return true
		}
	}
	return false
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid task id")
		return
	}

	existing, err := s.deps.Store.GetTask(id)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get task: %v", err)
		return
	}
	if existing.FarmerID != requestUserID(r) {
		httpError(w, http.StatusForbidden, "authorization_error", "only the posting farmer can edit a task")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var task storage.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}
	if task.Status != "" && !validTaskStatus(task.Status) {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid task status %q", task.Status)
		return
	}
	task.FarmerID = existing.FarmerID

	updated, err := s.deps.Store.UpdateTask(id, task)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to update task: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func validTaskStatus(status string) bool {
	switch status {
	case storage.TaskOpen, storage.TaskInProgress, storage.TaskCompleted, storage.TaskCancelled:
		return true
	}
	return false
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid task id")
		return
	}

	existing, err := s.deps.Store.GetTask(id)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get task: %v", err)
		return
	}
	if existing.FarmerID != requestUserID(r) {
		httpError(w, http.StatusForbidden, "authorization_error", "only the posting farmer can delete a task")
		return
	}

	if err := s.deps.Store.DeleteTask(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "task not found")
			return
		}
		httpError(w, http.StatusInternalServerError, "api_error", "failed to delete task: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
