package services

import (
	"errors"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/models"

	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// GetRecentActivities returns the newest limit rows
func (s *ActivityService) GetRecentActivities(limit int) ([]dto.ActivityView, error) {
	var entries []models.ActivityLog
	err := s.db.Preload("Task").Preload("User").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return toActivityViews(entries), nil
}

// GetActivitiesByTaskID returns one task's audit trail, newest first
func (s *ActivityService) GetActivitiesByTaskID(taskID uint) ([]dto.ActivityView, error) {
	var entries []models.ActivityLog
	err := s.db.Preload("Task").Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return toActivityViews(entries), nil
}

// RecordActivity appends one audit row. Task and user ids that resolve to
// nothing leave the reference empty; an unrecognized action type downgrades
// to UPDATED instead of failing.
func (s *ActivityService) RecordActivity(taskID, userID uint, actionType, oldValue, newValue, description string) (*dto.ActivityView, error) {
	entry := models.ActivityLog{
		ActionType:  models.ParseActionType(actionType),
		OldValue:    oldValue,
		NewValue:    newValue,
		Description: description,
	}

	var task models.Task
	if err := s.db.First(&task, taskID).Error; err == nil {
		entry.TaskID = &task.ID
		entry.Task = &task
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err == nil {
		entry.UserID = &user.ID
		entry.User = &user
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	view := dto.FromActivity(&entry)
	return &view, nil
}

func toActivityViews(entries []models.ActivityLog) []dto.ActivityView {
	views := make([]dto.ActivityView, 0, len(entries))
	for i := range entries {
		views = append(views, dto.FromActivity(&entries[i]))
	}
	return views
}
