// Package dto holds the response shapes returned over the API boundary and
// the pure conversions from stored entities to them. Converters expect the
// entity's associations to already be loaded and are nil-safe on every
// optional reference.
package dto

import (
	"time"

	"task-tracker-api/internal/models"
)

// TaskSummary is the list shape for task collections (board, trash, by-status)
type TaskSummary struct {
	TaskID            uint      `json:"taskId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	StartDate         string    `json:"startDate"`
	DueDate           string    `json:"dueDate"`
	CategoryName      *string   `json:"categoryName"`
	CreatedByUsername *string   `json:"createdByUsername"`
	AssigneeCount     int       `json:"assigneeCount"`
	AssigneeIDs       []uint    `json:"assigneeIds"`
	AssigneeNames     []string  `json:"assigneeNames"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TaskDetail is the single-task shape
type TaskDetail struct {
	TaskID            uint      `json:"taskId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	StartDate         string    `json:"startDate"`
	DueDate           string    `json:"dueDate"`
	CategoryName      *string   `json:"categoryName"`
	CreatedByUsername *string   `json:"createdByUsername"`
	AssignedUsers     []string  `json:"assignedUsers"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// UserProfile is the public user shape; never carries the password hash
type UserProfile struct {
	UserID      uint      `json:"userId"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	AvatarColor string    `json:"avatarColor"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommentView is the comment shape
type CommentView struct {
	CommentID       uint      `json:"commentId"`
	TaskID          *uint     `json:"taskId"`
	UserID          *uint     `json:"userId"`
	Username        *string   `json:"username"`
	UserFullName    *string   `json:"userFullName"`
	ParentCommentID *uint     `json:"parentCommentId"`
	Text            string    `json:"text"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ActivityView is the activity log shape
type ActivityView struct {
	ActivityID   uint      `json:"activityId"`
	TaskID       *uint     `json:"taskId"`
	TaskTitle    *string   `json:"taskTitle"`
	UserID       *uint     `json:"userId"`
	UserFullName *string   `json:"userFullName"`
	ActionType   string    `json:"actionType"`
	OldValue     string    `json:"oldValue"`
	NewValue     string    `json:"newValue"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginResult is the successful-login shape. Token is an empty placeholder;
// no credential artifact is issued.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// FromTaskSummary maps a task (with assignments/users/tags/category/creator
// loaded) to its list shape
func FromTaskSummary(t *models.Task) TaskSummary {
	assigneeIDs := make([]uint, 0, len(t.Assignments))
	assigneeNames := make([]string, 0, len(t.Assignments))
	for _, a := range t.Assignments {
		assigneeIDs = append(assigneeIDs, a.UserID)
		if a.User != nil {
			assigneeNames = append(assigneeNames, a.User.FullName)
		}
	}

	return TaskSummary{
		TaskID:            t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		Priority:          string(t.Priority),
		StartDate:         t.StartDate,
		DueDate:           t.DueDate,
		CategoryName:      categoryName(t),
		CreatedByUsername: creatorUsername(t),
		AssigneeCount:     len(assigneeIDs),
		AssigneeIDs:       assigneeIDs,
		AssigneeNames:     assigneeNames,
		Tags:              tagNames(t),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// FromTaskDetail maps a task to its full shape
func FromTaskDetail(t *models.Task) TaskDetail {
	assigned := make([]string, 0, len(t.Assignments))
	for _, a := range t.Assignments {
		if a.User != nil {
			assigned = append(assigned, a.User.FullName)
		}
	}

	return TaskDetail{
		TaskID:            t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		Priority:          string(t.Priority),
		StartDate:         t.StartDate,
		DueDate:           t.DueDate,
		CategoryName:      categoryName(t),
		CreatedByUsername: creatorUsername(t),
		AssignedUsers:     assigned,
		Tags:              tagNames(t),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// FromUser maps a user to its public shape
func FromUser(u *models.User) UserProfile {
	return UserProfile{
		UserID:      u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		AvatarColor: u.AvatarColor,
		CreatedAt:   u.CreatedAt,
	}
}

// FromComment maps a comment (with its user loaded) to its view shape
func FromComment(c *models.Comment) CommentView {
	view := CommentView{
		CommentID:       c.ID,
		TaskID:          c.TaskID,
		UserID:          c.UserID,
		ParentCommentID: c.ParentCommentID,
		Text:            c.Text,
		Category:        c.Category,
		CreatedAt:       c.CreatedAt,
	}
	if c.User != nil {
		view.Username = &c.User.Username
		view.UserFullName = &c.User.FullName
	}
	return view
}

// FromActivity maps an activity row (with task/user loaded) to its view shape
func FromActivity(a *models.ActivityLog) ActivityView {
	view := ActivityView{
		ActivityID:  a.ID,
		TaskID:      a.TaskID,
		UserID:      a.UserID,
		ActionType:  string(a.ActionType),
		OldValue:    a.OldValue,
		NewValue:    a.NewValue,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
	if a.Task != nil {
		view.TaskTitle = &a.Task.Title
	}
	if a.User != nil {
		view.UserFullName = &a.User.FullName
	}
	return view
}

func categoryName(t *models.Task) *string {
	if t.Category == nil {
		return nil
	}
	return &t.Category.Name
}

func creatorUsername(t *models.Task) *string {
	if t.CreatedBy == nil {
		return nil
	}
	return &t.CreatedBy.Username
}

func tagNames(t *models.Task) []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return names
}
