package services

import (
	"errors"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/models"

	"gorm.io/gorm"
)

// CreateCommentInput is the comment creation payload
type CreateCommentInput struct {
	TaskID          uint   `json:"taskId" binding:"required"`
	UserID          uint   `json:"userId" binding:"required"`
	ParentCommentID *uint  `json:"parentCommentId"`
	Text            string `json:"text" binding:"required"`
	Category        string `json:"category"`
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// GetCommentsByTaskID returns a task's comments oldest first
func (s *CommentService) GetCommentsByTaskID(taskID uint) ([]dto.CommentView, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at asc, id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	views := make([]dto.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, dto.FromComment(&comments[i]))
	}
	return views, nil
}

// CreateComment saves the comment and, only when both the task and the user
// resolved, appends an activity row describing it. A comment with dangling
// references is still saved; it just leaves no audit trail.
func (s *CommentService) CreateComment(in CreateCommentInput) (*dto.CommentView, error) {
	comment := models.Comment{
		ParentCommentID: in.ParentCommentID,
		Text:            in.Text,
		Category:        in.Category,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, in.TaskID).Error; err == nil {
			comment.TaskID = &task.ID
			comment.Task = &task
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var user models.User
		if err := tx.First(&user, in.UserID).Error; err == nil {
			comment.UserID = &user.ID
			comment.User = &user
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		if comment.TaskID == nil || comment.UserID == nil {
			return nil
		}

		newValue := comment.Category
		if newValue == "" {
			newValue = "Commented"
		}
		entry := models.ActivityLog{
			TaskID:      comment.TaskID,
			UserID:      comment.UserID,
			ActionType:  models.ActionUpdated,
			NewValue:    newValue,
			Description: "Commented on " + task.Title,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	view := dto.FromComment(&comment)
	return &view, nil
}
