package entity

import "time"

type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task belongs to one project for its whole life.
// Completion is expressed by Status alone.
type Task struct {
	ID          string       `json:"_id"`
	ProjectID   string       `json:"projectId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	AssignedTo  string       `json:"assignedTo,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func NewTask(projectID, title string) *Task {
	return &Task{
		ProjectID: projectID,
		Title:     title,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
	}
}

type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	StartDate   **time.Time
	EndDate     **time.Time
	AssignedTo  *string
}

func (tp TaskPatch) Apply(t *Task) {
	if tp.Title != nil {
		t.Title = *tp.Title
	}
	if tp.Description != nil {
		t.Description = *tp.Description
	}
	if tp.Status != nil {
		t.Status = *tp.Status
	}
	if tp.Priority != nil {
		t.Priority = *tp.Priority
	}
	if tp.StartDate != nil {
		t.StartDate = *tp.StartDate
	}
	if tp.EndDate != nil {
		t.EndDate = *tp.EndDate
	}
	if tp.AssignedTo != nil {
		t.AssignedTo = *tp.AssignedTo
	}
}
