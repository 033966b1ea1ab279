package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusTodo       TaskStatus = "TO_DO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// ParseTaskStatus normalizes and validates a status string.
// Input is case-insensitive; unknown values are an error.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusTodo:
		return StatusTodo, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown task status: %q", s)
}

// ParseTaskPriority normalizes and validates a priority string
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityUrgent:
		return PriorityUrgent, nil
	}
	return "", fmt.Errorf("unknown task priority: %q", s)
}

// Task represents a task in the system. Soft-deleted tasks keep their row
// (still fetchable by id) but are excluded from active listings.
type Task struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"not null"`
	Description string           `json:"description"`
	Status      TaskStatus       `json:"status" gorm:"not null;default:'PENDING'"`
	Priority    TaskPriority     `json:"priority" gorm:"not null;default:'MEDIUM'"`
	StartDate   string           `json:"startDate" gorm:"column:start_date"`
	DueDate     string           `json:"dueDate" gorm:"column:due_date"`
	Deleted     bool             `json:"deleted" gorm:"not null;default:false;index"`
	DeletedAt   *time.Time       `json:"deletedAt" gorm:"column:deleted_at"`
	CategoryID  *uint            `json:"categoryId" gorm:"column:category_id"`
	Category    *Category        `json:"-" gorm:"foreignKey:CategoryID"`
	CreatedByID *uint            `json:"createdById" gorm:"column:created_by_id"`
	CreatedBy   *User            `json:"-" gorm:"foreignKey:CreatedByID"`
	Assignments []TaskAssignment `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Tags        []Tag            `json:"-" gorm:"many2many:task_tags"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// TaskAssignment joins a task to an assigned user. Assignment sets are
// replaced wholesale on task update, never diffed.
type TaskAssignment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TaskID     uint      `json:"taskId" gorm:"column:task_id;not null;index"`
	UserID     uint      `json:"userId" gorm:"column:user_id;not null"`
	User       *User     `json:"-" gorm:"foreignKey:UserID"`
	AssignedAt time.Time `json:"assignedAt" gorm:"column:assigned_at;autoCreateTime"`
}

// TableName specifies the table name for TaskAssignment Model
func (TaskAssignment) TableName() string {
	return "task_assignments"
}

// TaskAttachment records a file attached to a task. The entity is part of
// the schema but no endpoint serves attachments yet.
type TaskAttachment struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TaskID       uint      `json:"taskId" gorm:"column:task_id;not null;index"`
	FileName     string    `json:"fileName" gorm:"column:file_name;not null"`
	FilePath     string    `json:"filePath" gorm:"column:file_path;not null"`
	FileSize     int64     `json:"fileSize" gorm:"column:file_size"`
	MimeType     string    `json:"mimeType" gorm:"column:mime_type"`
	UploadedByID *uint     `json:"uploadedById" gorm:"column:uploaded_by_id"`
	UploadedAt   time.Time `json:"uploadedAt" gorm:"column:uploaded_at;autoCreateTime"`
}

// TableName specifies the table name for TaskAttachment Model
func (TaskAttachment) TableName() string {
	return "task_attachments"
}
