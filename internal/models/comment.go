package models

import "time"

// Comment is a free-text note on a task. ParentCommentID carries a
// single-level threading reference that the schema does not enforce.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TaskID          *uint     `json:"taskId" gorm:"column:task_id;index"`
	Task            *Task     `json:"-" gorm:"foreignKey:TaskID"`
	UserID          *uint     `json:"userId" gorm:"column:user_id"`
	User            *User     `json:"-" gorm:"foreignKey:UserID"`
	ParentCommentID *uint     `json:"parentCommentId" gorm:"column:parent_comment_id"`
	Text            string    `json:"text" gorm:"not null;type:text"`
	Category        string    `json:"category" gorm:"size:50"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TableName specifies the table name for Comment Model
func (Comment) TableName() string {
	return "comments"
}
