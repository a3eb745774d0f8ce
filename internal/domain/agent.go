package domain

import "time"

// AgentTask is a request for the AI backend to write an article about a game.
type AgentTask struct {
	ID           string
	GameID       string
	ArticleType  ArticleType
	TargetLength int
	Priority     Priority
	Status       TaskStatus
	ArticleID    *string
	Error        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type ArticleType string

const (
	ArticleTypeGameRecap ArticleType = "game_recap"
	ArticleTypePreview   ArticleType = "preview"
)

func (t ArticleType) IsValid() bool {
	return t == ArticleTypeGameRecap || t == ArticleTypePreview
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusQueued    TaskStatus = "queued"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusQueued, TaskStatusRunning, TaskStatusCompleted, TaskStatusFailed:
		return true
	}
	return false
}

// TaskStatusUpdate is a progress report from the AI backend for a task.
type TaskStatusUpdate struct {
	TaskID    string
	Status    TaskStatus
	ArticleID *string
	Error     string
}
