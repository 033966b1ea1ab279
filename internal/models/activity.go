package models

import (
	"strings"
	"time"
)

// ActionType classifies an activity log entry
type ActionType string

const (
	ActionCreated       ActionType = "CREATED"
	ActionUpdated       ActionType = "UPDATED"
	ActionStatusChanged ActionType = "STATUS_CHANGED"
	ActionDeleted       ActionType = "DELETED"
	ActionRestored      ActionType = "RESTORED"
)

// ParseActionType normalizes an action type string. Unlike the other enum
// parsers, unknown values fall back to UPDATED instead of erroring.
func ParseActionType(s string) ActionType {
	switch ActionType(strings.ToUpper(strings.TrimSpace(s))) {
	case ActionCreated:
		return ActionCreated
	case ActionStatusChanged:
		return ActionStatusChanged
	case ActionDeleted:
		return ActionDeleted
	case ActionRestored:
		return ActionRestored
	default:
		return ActionUpdated
	}
}

// ActivityLog is one append-only audit row. Task and user references are
// both optional; rows are never updated or deleted.
type ActivityLog struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	TaskID      *uint      `json:"taskId" gorm:"column:task_id;index"`
	Task        *Task      `json:"-" gorm:"foreignKey:TaskID"`
	UserID      *uint      `json:"userId" gorm:"column:user_id"`
	User        *User      `json:"-" gorm:"foreignKey:UserID"`
	ActionType  ActionType `json:"actionType" gorm:"column:action_type;not null"`
	OldValue    string     `json:"oldValue" gorm:"column:old_value"`
	NewValue    string     `json:"newValue" gorm:"column:new_value"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TableName specifies the table name for ActivityLog Model
func (ActivityLog) TableName() string {
	return "activity_logs"
}
