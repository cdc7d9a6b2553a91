package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// User roles.
const (
	RoleFarmer = "FARMER"
	RoleLabour = "LABOUR"
	RoleAdmin  = "ADMIN"
)

// Task lifecycle states.
const (
	TaskOpen       = "OPEN"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
	TaskCancelled  = "CANCELLED"
)

// Announcement categories.
const (
	CategoryGovt    = "GOVT"
	CategoryMarket  = "MARKET"
	CategoryWeather = "WEATHER"
	CategoryGeneral = "GENERAL"
)

// User is a registered account. PasswordHash never leaves the process; the
// JSON shape is what the API returns.
type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Phone           string    `json:"phone,omitempty"`
	UserType        string    `json:"userType"`
	IsActive        bool      `json:"isActive"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	ExperienceYears int       `json:"experienceYears,omitempty"`
	HourlyRate      float64   `json:"hourlyRate,omitempty"`
	Availability    string    `json:"availabilityStatus,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Task is a posted unit of farm work.
type Task struct {
	ID             int64      `json:"id"`
	FarmerID       int64      `json:"farmerId"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	TaskType       string     `json:"taskType"`
	Location       string     `json:"location"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	HourlyRate     float64    `json:"hourlyRate,omitempty"`
	TotalBudget    float64    `json:"totalBudget,omitempty"`
	Status         string     `json:"status"`
	RequiredSkills []string   `json:"requiredSkills,omitempty"`
	MaxLabourers   int        `json:"maxLabourers"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Announcement is one entry in the announcement feed.
type Announcement struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Category string    `json:"category"`
	Location string    `json:"location,omitempty"`
	Source   string    `json:"source,omitempty"` // seed, api, ingest
	Date     time.Time `json:"date"`
}

// Notification is a per-user message, e.g. a matching task was posted.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is an issued bearer token. A request carrying an expired or
// unknown token gets 401 and the client clears its stored session.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Job is a queued background unit of work (announcement ingest).
type Job struct {
	ID          string
	Type        string
	PayloadJSON string
	Status      string // "pending", "running", "completed", "failed"
	Attempts    int
	MaxAttempts int
	RunAfter    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastError   string
}
