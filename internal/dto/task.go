package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bdfdm25/task-manager/internal/domain"
)

// Deadline parses deadline from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC.
type Deadline struct{ t *time.Time }

func (d *Deadline) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("deadline: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d Deadline) Ptr() *time.Time { return d.t }

type CreateTaskRequest struct {
	TaskCode           *string  `json:"taskCode" binding:"omitempty,min=4,taskcode"`
	Title              string   `json:"title" binding:"required,min=3,max=100"`
	Description        string   `json:"description" binding:"max=500"`
	Status             string   `json:"status" binding:"required,oneof=open in_progress done"`
	Priority           string   `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Category           string   `json:"category" binding:"max=50"`
	AssignedTo         string   `json:"assignedTo" binding:"omitempty,email"`
	EstimatedHours     *float64 `json:"estimatedHours" binding:"omitempty,min=0.5,max=1000"`
	Deadline           Deadline `json:"deadline"`
	Tags               string   `json:"tags" binding:"omitempty,tagscsv"`
	NotifyOnCompletion bool     `json:"notifyOnCompletion"`
}

// UpdateTaskRequest is a partial update: nil means "leave unchanged".
// A status-only body is the minimal case.
type UpdateTaskRequest struct {
	TaskCode           *string   `json:"taskCode" binding:"omitempty,min=4,taskcode"`
	Title              *string   `json:"title" binding:"omitempty,min=3,max=100"`
	Description        *string   `json:"description" binding:"omitempty,max=500"`
	Status             *string   `json:"status" binding:"omitempty,oneof=open in_progress done"`
	Priority           *string   `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Category           *string   `json:"category" binding:"omitempty,max=50"`
	AssignedTo         *string   `json:"assignedTo" binding:"omitempty,email"`
	EstimatedHours     *float64  `json:"estimatedHours" binding:"omitempty,min=0.5,max=1000"`
	Deadline           *Deadline `json:"deadline"`
	NotifyOnCompletion *bool     `json:"notifyOnCompletion"`
	Tags               *string   `json:"tags" binding:"omitempty,tagscsv"`
}

// TaskFilter holds the optional list query parameters.
type TaskFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=open in_progress done"`
	Search string `form:"search"`
}

type TaskResponse struct {
	ID                 string     `json:"id"`
	TaskCode           *string    `json:"taskCode,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	Category           string     `json:"category,omitempty"`
	AssignedTo         string     `json:"assignedTo,omitempty"`
	EstimatedHours     *float64   `json:"estimatedHours,omitempty"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	Tags               string     `json:"tags,omitempty"`
	NotifyOnCompletion bool       `json:"notifyOnCompletion"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// TaskToResponse maps the domain entity to the wire shape. The owner is
// never serialized.
func TaskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:                 t.ID,
		TaskCode:           t.Code,
		Title:              t.Title,
		Description:        t.Description,
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		Category:           t.Category,
		AssignedTo:         t.AssignedTo,
		EstimatedHours:     t.EstimatedHours,
		Deadline:           t.Deadline,
		Tags:               t.Tags,
		NotifyOnCompletion: t.NotifyOnCompletion,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// TasksToResponses maps a list, returning an empty slice rather than nil so
// the JSON body is always an array.
func TasksToResponses(list []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(list))
	for i := range list {
		out[i] = TaskToResponse(list[i])
	}
	return out
}
