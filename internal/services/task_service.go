package services

import (
	"errors"
	"time"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/models"

	"gorm.io/gorm"
)

// CreateTaskInput is the task creation payload. Category, creator and
// assignee ids that resolve to nothing are silently skipped.
type CreateTaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	CategoryID  *uint  `json:"categoryId"`
	CreatedByID *uint  `json:"createdById"`
	AssigneeIDs []uint `json:"assigneeIds"`
}

// UpdateTaskInput carries partial-update fields; nil leaves the stored value
// untouched. A non-nil AssigneeIDs replaces the whole assignment set, an
// empty list included. UserID names the user performing the update for the
// activity log.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	StartDate   *string `json:"startDate"`
	DueDate     *string `json:"dueDate"`
	CategoryID  *uint   `json:"categoryId"`
	AssigneeIDs *[]uint `json:"assigneeIds"`
	UserID      *uint   `json:"userId"`
}

// TaskService maintains task records and appends one activity log row as a
// side effect of every mutation. Each mutation runs as a single transaction.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// withTaskAssociations preloads everything the response shapes need
func withTaskAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Assignments.User").
		Preload("Tags").
		Preload("Category").
		Preload("CreatedBy")
}

// GetActiveTasks returns all non-deleted tasks in summary shape
func (s *TaskService) GetActiveTasks() ([]dto.TaskSummary, error) {
	return s.listTasks(s.db.Where("deleted = ?", false))
}

// GetDeletedTasks returns the trash: soft-deleted tasks only
func (s *TaskService) GetDeletedTasks() ([]dto.TaskSummary, error) {
	return s.listTasks(s.db.Where("deleted = ?", true))
}

// GetTasksByStatus returns non-deleted tasks with the given status. The
// input is case-insensitive; an unknown value is an error.
func (s *TaskService) GetTasksByStatus(status string) ([]dto.TaskSummary, error) {
	parsed, err := models.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}
	return s.listTasks(s.db.Where("deleted = ? AND status = ?", false, parsed))
}

func (s *TaskService) listTasks(query *gorm.DB) ([]dto.TaskSummary, error) {
	var tasks []models.Task
	if err := withTaskAssociations(query).Find(&tasks).Error; err != nil {
		return nil, err
	}

	summaries := make([]dto.TaskSummary, 0, len(tasks))
	for i := range tasks {
		summaries = append(summaries, dto.FromTaskSummary(&tasks[i]))
	}
	return summaries, nil
}

// GetTaskByID returns the full detail for any task, soft-deleted included
func (s *TaskService) GetTaskByID(id uint) (*dto.TaskDetail, error) {
	var task models.Task
	if err := withTaskAssociations(s.db).First(&task, id).Error; err != nil {
		return nil, err
	}
	detail := dto.FromTaskDetail(&task)
	return &detail, nil
}

// CreateTask persists a new task, attaches the requested assignees and
// appends a CREATED activity row under the creator (when one resolved).
func (s *TaskService) CreateTask(in CreateTaskInput) (*dto.TaskDetail, error) {
	status := models.StatusPending
	if in.Status != "" {
		var err error
		if status, err = models.ParseTaskStatus(in.Status); err != nil {
			return nil, err
		}
	}

	priority := models.PriorityMedium
	if in.Priority != "" {
		var err error
		if priority, err = models.ParseTaskPriority(in.Priority); err != nil {
			return nil, err
		}
	}

	task := models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		Deleted:     false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, *in.CategoryID).Error; err == nil {
				task.CategoryID = &category.ID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var creator *models.User
		if in.CreatedByID != nil {
			var user models.User
			if err := tx.First(&user, *in.CreatedByID).Error; err == nil {
				creator = &user
				task.CreatedByID = &user.ID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		for _, userID := range in.AssigneeIDs {
			var user models.User
			if err := tx.First(&user, userID).Error; err != nil {
				// unknown assignee ids are skipped, not an error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			assignment := models.TaskAssignment{TaskID: task.ID, UserID: user.ID}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}

		if creator != nil {
			entry := models.ActivityLog{
				TaskID:      &task.ID,
				UserID:      &creator.ID,
				ActionType:  models.ActionCreated,
				NewValue:    string(task.Status),
				Description: "Started on " + task.Title,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTaskByID(task.ID)
}

// UpdateTask applies only the supplied fields, replaces the assignment set
// when one was supplied, and appends exactly one activity row:
// STATUS_CHANGED when the status actually changed, UPDATED otherwise. The
// acting user resolves request userId, then creator, then first assignee;
// with nobody found, no row is written.
func (s *TaskService) UpdateTask(id uint, in UpdateTaskInput) (*dto.TaskDetail, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}

	oldStatus := task.Status

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		status, err := models.ParseTaskStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if in.Priority != nil {
		priority, err := models.ParseTaskPriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = priority
	}
	if in.StartDate != nil {
		task.StartDate = *in.StartDate
	}
	if in.DueDate != nil {
		task.DueDate = *in.DueDate
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, *in.CategoryID).Error; err == nil {
				task.CategoryID = &category.ID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if in.AssigneeIDs != nil {
			// Wholesale replacement: clear, then re-insert valid ids
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			for _, userID := range *in.AssigneeIDs {
				var user models.User
				if err := tx.First(&user, userID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return err
				}
				assignment := models.TaskAssignment{TaskID: task.ID, UserID: user.ID}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		actingUserID, err := s.resolveActingUser(tx, &task, in.UserID)
		if err != nil {
			return err
		}
		if actingUserID == nil {
			return nil
		}

		entry := models.ActivityLog{
			TaskID: &task.ID,
			UserID: actingUserID,
		}
		if in.Status != nil && task.Status != oldStatus {
			entry.ActionType = models.ActionStatusChanged
			entry.OldValue = string(oldStatus)
			entry.NewValue = string(task.Status)
			entry.Description = "updated status to " + task.Title
		} else {
			entry.ActionType = models.ActionUpdated
			entry.Description = "updated " + task.Title
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetTaskByID(task.ID)
}

// SoftDeleteTask hides the task behind its deleted flag and records a
// DELETED activity row (creator, else first assignee)
func (s *TaskService) SoftDeleteTask(id uint) error {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		task.Deleted = true
		task.DeletedAt = &now
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		return s.recordLifecycleActivity(tx, &task, models.ActionDeleted, "deleted "+task.Title)
	})
}

// RestoreTask clears the deleted flag and timestamp and records a RESTORED
// activity row
func (s *TaskService) RestoreTask(id uint) (*dto.TaskDetail, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		task.Deleted = false
		task.DeletedAt = nil
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		return s.recordLifecycleActivity(tx, &task, models.ActionRestored, "restored "+task.Title)
	})
	if err != nil {
		return nil, err
	}

	return s.GetTaskByID(task.ID)
}

// resolveActingUser picks the user an update's activity row is attributed
// to: explicit request user, then the task's creator, then the first
// remaining assignee. Returns nil when nobody resolved.
func (s *TaskService) resolveActingUser(tx *gorm.DB, task *models.Task, requestUserID *uint) (*uint, error) {
	if requestUserID != nil {
		var user models.User
		if err := tx.First(&user, *requestUserID).Error; err == nil {
			return &user.ID, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if task.CreatedByID != nil {
		return task.CreatedByID, nil
	}

	return firstAssigneeID(tx, task.ID)
}

// recordLifecycleActivity appends a delete/restore row. Unlike updates there
// is no request-supplied user; only creator then first assignee are tried.
func (s *TaskService) recordLifecycleActivity(tx *gorm.DB, task *models.Task, action models.ActionType, description string) error {
	userID := task.CreatedByID
	if userID == nil {
		var err error
		if userID, err = firstAssigneeID(tx, task.ID); err != nil {
			return err
		}
	}
	if userID == nil {
		return nil
	}

	entry := models.ActivityLog{
		TaskID:      &task.ID,
		UserID:      userID,
		ActionType:  action,
		Description: description,
	}
	return tx.Create(&entry).Error
}

func firstAssigneeID(tx *gorm.DB, taskID uint) (*uint, error) {
	var assignment models.TaskAssignment
	err := tx.Where("task_id = ?", taskID).Order("id").First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment.UserID, nil
}
