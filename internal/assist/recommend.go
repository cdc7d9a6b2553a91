package assist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agriconnect/agriconnect/internal/storage"
)

const defaultTopK = 5

// Recommendation is a scored match for a user, either an open task for a
// labourer or an available worker for a farmer.
type Recommendation struct {
	Kind   string  `json:"kind"`
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// directory is the slice of the store the recommender reads.
type directory interface {
	GetUser(id int64) (storage.User, error)
	ListTasks() ([]storage.Task, error)
	ListUsersByType(userType string) ([]storage.User, error)
}

// Recommender scores marketplace entries against a user's profile.
type Recommender struct {
	dir directory
}

// NewRecommender creates a Recommender over the given store.
func NewRecommender(dir directory) *Recommender {
	return &Recommender{dir: dir}
}

// Recommend returns the top matches for the user: open tasks for labourers,
// available workers for farmers.
func (r *Recommender) Recommend(ctx context.Context, userID int64) ([]Recommendation, error) {
	user, err := r.dir.GetUser(userID)
	if err != nil {
		return nil, err
	}

	switch user.UserType {
	case storage.RoleLabour:
		return r.tasksFor(user)
	case storage.RoleFarmer:
		return r.workersFor(user)
	default:
		return []Recommendation{}, nil
	}
}

func (r *Recommender) tasksFor(user storage.User) ([]Recommendation, error) {
	tasks, err := r.dir.ListTasks()
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	for _, task := range tasks {
		if task.Status != storage.TaskOpen {
			continue
		}
		score, reason := matchScore(user.Skills, user.Location, task.RequiredSkills, task.Location)
		if score == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Kind:   "task",
			ID:     task.ID,
			Title:  task.Title,
			Score:  score,
			Reason: reason,
		})
	}
	return topK(recs, defaultTopK), nil
}

func (r *Recommender) workersFor(farmer storage.User) ([]Recommendation, error) {
	tasks, err := r.dir.ListTasks()
	if err != nil {
		return nil, err
	}

	// The farmer's open tasks define what skills are in demand.
	var wanted []string
	location := farmer.Location
	for _, task := range tasks {
		if task.FarmerID != farmer.ID || task.Status != storage.TaskOpen {
			continue
		}
		wanted = append(wanted, task.RequiredSkills...)
		if task.Location != "" {
			location = task.Location
		}
	}

	workers, err := r.dir.ListUsersByType(storage.RoleLabour)
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	for _, w := range workers {
		if strings.EqualFold(w.Availability, "UNAVAILABLE") {
			continue
		}
		score, reason := matchScore(w.Skills, w.Location, wanted, location)
		if score == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Kind:   "labourer",
			ID:     w.ID,
			Title:  strings.TrimSpace(w.FirstName + " " + w.LastName),
			Score:  score,
			Reason: reason,
		})
	}
	return topK(recs, defaultTopK), nil
}

// matchScore weighs skill overlap against location proximity. Location is a
// case-insensitive substring match in either direction, the same rule the
// search filters use.
func matchScore(haveSkills []string, haveLoc string, wantSkills []string, wantLoc string) (float64, string) {
	var score float64
	var reasons []string

	if len(wantSkills) > 0 {
		matched := 0
		for _, want := range wantSkills {
			for _, have := range haveSkills {
				if strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(want)) {
					matched++
					break
				}
			}
		}
		if matched > 0 {
			score += 0.6 * float64(matched) / float64(len(wantSkills))
			reasons = append(reasons, fmt.Sprintf("%d matching skill(s)", matched))
		}
	}

	if haveLoc != "" && wantLoc != "" {
		a := strings.ToLower(haveLoc)
		b := strings.ToLower(wantLoc)
		if strings.Contains(a, b) || strings.Contains(b, a) {
			score += 0.4
			reasons = append(reasons, "same area")
		}
	}

	return score, strings.Join(reasons, ", ")
}

func topK(recs []Recommendation, k int) []Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > k {
		recs = recs[:k]
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	return recs
}
