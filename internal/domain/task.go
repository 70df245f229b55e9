package domain

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Task belongs to exactly one user; every read/update/delete is scoped by
// (ID, UserID). Optional fields are pointers so absence survives round-trips.
type Task struct {
	ID          string
	Code        *string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Category    string
	AssignedTo  string
	// EstimatedHours is bounded 0.5–1000 when set.
	EstimatedHours *float64
	Deadline       *time.Time
	// Tags is a comma-separated list of alphanumeric words.
	Tags               string
	NotifyOnCompletion bool

	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
