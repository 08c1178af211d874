package task

import (
	"encoding/json"
	"time"

	pgdb "github.com/sprintsync/sprintsync-api/internal/storage/pg/sqlc"
)

// Status represents where a task is in its lifecycle.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a unit of work owned by a single user.
type Task struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	TotalMinutes int       `json:"totalMinutes"`
	Status       Status    `json:"status"`
	UserID       int64     `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func taskFromDB(t pgdb.Task) *Task {
	return &Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		TotalMinutes: int(t.TotalMinutes),
		Status:       Status(t.Status),
		UserID:       t.UserID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// CreateTaskRequest represents the request to create a new task.
type CreateTaskRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	TotalMinutes *int    `json:"totalMinutes"`
}

// UpdateTaskRequest is a partial update; nil fields are left unchanged.
// Description distinguishes an absent key from an explicit null, which clears it.
type UpdateTaskRequest struct {
	Title        *string        `json:"title"`
	Description  OptionalString `json:"description"`
	TotalMinutes *int           `json:"totalMinutes"`
}

// OptionalString records whether a JSON key was present at all.
type OptionalString struct {
	Set   bool
	Value *string
}

// SetString returns an OptionalString holding v. A nil v means null.
func SetString(v *string) OptionalString {
	return OptionalString{Set: true, Value: v}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	if string(data) == "null" {
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// UpdateStatusRequest represents the body of PATCH /tasks/:id/status.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// TaskResponse wraps a single task with an optional message.
type TaskResponse struct {
	Message string `json:"message,omitempty"`
	Task    *Task  `json:"task"`
}

// ListTasksResponse represents the response when listing tasks.
type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
	Count int     `json:"count"`
}

// DeleteTaskResponse represents the response when deleting a task.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}
