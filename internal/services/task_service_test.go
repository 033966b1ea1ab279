package services

import (
	"testing"

	"task-tracker-api/internal/models"
	"task-tracker-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

func taskActivities(t *testing.T, db *gorm.DB, taskID uint) []models.ActivityLog {
	t.Helper()
	var entries []models.ActivityLog
	require.NoError(t, db.Where("task_id = ?", taskID).Order("id").Find(&entries).Error)
	return entries
}

func TestCreateTask_LogsCreatedUnderCreator(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)

	svc := NewTaskService(db)
	detail, err := svc.CreateTask(CreateTaskInput{
		Title:       "Draft spec",
		Status:      "PENDING",
		Priority:    "MEDIUM",
		CreatedByID: &creator.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, detail.TaskID)
	require.Equal(t, "Draft spec", detail.Title)
	require.Equal(t, "PENDING", detail.Status)
	require.Equal(t, "MEDIUM", detail.Priority)
	require.Empty(t, detail.AssignedUsers)
	require.Equal(t, "alice", *detail.CreatedByUsername)

	entries := taskActivities(t, db, detail.TaskID)
	require.Len(t, entries, 1)
	require.Equal(t, models.ActionCreated, entries[0].ActionType)
	require.Equal(t, "PENDING", entries[0].NewValue)
	require.Equal(t, "Started on Draft spec", entries[0].Description)
	require.Equal(t, creator.ID, *entries[0].UserID)
}

func TestCreateTask_NoCreatorNoActivity(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	svc := NewTaskService(db)
	detail, err := svc.CreateTask(CreateTaskInput{Title: "Orphan"})
	require.NoError(t, err)
	require.Equal(t, "PENDING", detail.Status) // defaults applied
	require.Equal(t, "MEDIUM", detail.Priority)
	require.Empty(t, taskActivities(t, db, detail.TaskID))
}

func TestCreateTask_SkipsUnknownAssigneesAndCategory(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)
	bob := seedUser(t, db, "bob", "x", models.UserActive)

	svc := NewTaskService(db)
	detail, err := svc.CreateTask(CreateTaskInput{
		Title:       "Team task",
		CreatedByID: &creator.ID,
		CategoryID:  uintPtr(999), // does not exist; silently skipped
		AssigneeIDs: []uint{bob.ID, 999},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Test bob"}, detail.AssignedUsers)
	require.Nil(t, detail.CategoryName)

	var count int64
	require.NoError(t, db.Model(&models.TaskAssignment{}).Where("task_id = ?", detail.TaskID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateTask_UnknownStatusFails(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	svc := NewTaskService(db)
	_, err = svc.CreateTask(CreateTaskInput{Title: "Bad", Status: "ARCHIVED"})
	require.Error(t, err)

	_, err = svc.CreateTask(CreateTaskInput{Title: "Bad", Priority: "CRITICAL"})
	require.Error(t, err)
}

func TestUpdateTask_NonStatusChangeLogsUpdated(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)

	svc := NewTaskService(db)
	detail, err := svc.CreateTask(CreateTaskInput{Title: "Draft", CreatedByID: &creator.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(detail.TaskID, UpdateTaskInput{Title: strPtr("Draft v2")})
	require.NoError(t, err)
	require.Equal(t, "Draft v2", updated.Title)
	require.Equal(t, "PENDING", updated.Status) // untouched

	entries := taskActivities(t, db, detail.TaskID)
	require.Len(t, entries, 2) // CREATED + exactly one UPDATED
	require.Equal(t, models.ActionUpdated, entries[1].ActionType)
	require.Equal(t, "updated Draft v2", entries[1].Description)
}

func TestUpdateTask_StatusChangeLogsOldAndNew(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)

	svc := NewTaskService(db)
	detail, err := svc.CreateTask(CreateTaskInput{Title: "Draft", Status: "PENDING", CreatedByID: &creator.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(detail.TaskID, UpdateTaskInput{Status: strPtr("done")})
	require.NoError(t, err)
	require.Equal(t, "DONE", updated.Status)

	entries := taskActivities(t, db, detail.TaskID)
	require.Len(t, entries, 2)
	change := entries[1]
	require.Equal(t, models.ActionStatusChanged, change.ActionType)
	require.Equal(t, "PENDING", change.OldValue)
	require.Equal(t, "DONE", change.NewValue)
	require.Equal(t, "updated status to Draft", change.Description)
}

func TestUpdateTask_SameStatusLogsUpdated(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)

	svc := NewTaskService(db)
	detail, err := svc.CreateTask(CreateTaskInput{Title: "Draft", Status: "PENDING", CreatedByID: &creator.ID})
	require.NoError(t, err)

	_, err = svc.UpdateTask(detail.TaskID, UpdateTaskInput{Status: strPtr("PENDING")})
	require.NoError(t, err)

	entries := taskActivities(t, db, detail.TaskID)
	require.Len(t, entries, 2)
	require.Equal(t, models.ActionUpdated, entries[1].ActionType)
}

func TestUpdateTask_ActingUserFallbackOrder(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)
	editor := seedUser(t, db, "bob", "x", models.UserActive)
	assignee := seedUser(t, db, "carol", "x", models.UserActive)

	svc := NewTaskService(db)

	// explicit request user wins over the creator
	withCreator, err := svc.CreateTask(CreateTaskInput{Title: "A", CreatedByID: &creator.ID})
	require.NoError(t, err)
	_, err = svc.UpdateTask(withCreator.TaskID, UpdateTaskInput{Title: strPtr("A2"), UserID: &editor.ID})
	require.NoError(t, err)
	entries := taskActivities(t, db, withCreator.TaskID)
	require.Equal(t, editor.ID, *entries[len(entries)-1].UserID)

	// no creator: falls back to the first assignee
	withAssignee, err := svc.CreateTask(CreateTaskInput{Title: "B", AssigneeIDs: []uint{assignee.ID}})
	require.NoError(t, err)
	_, err = svc.UpdateTask(withAssignee.TaskID, UpdateTaskInput{Title: strPtr("B2")})
	require.NoError(t, err)
	entries = taskActivities(t, db, withAssignee.TaskID)
	require.Len(t, entries, 1) // create logged nothing without a creator
	require.Equal(t, assignee.ID, *entries[0].UserID)

	// nobody resolvable: mutation succeeds, no row written
	orphan, err := svc.CreateTask(CreateTaskInput{Title: "C"})
	require.NoError(t, err)
	_, err = svc.UpdateTask(orphan.TaskID, UpdateTaskInput{Title: strPtr("C2")})
	require.NoError(t, err)
	require.Empty(t, taskActivities(t, db, orphan.TaskID))
}

func TestUpdateTask_ReplacesAssignmentsWholesale(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)
	bob := seedUser(t, db, "bob", "x", models.UserActive)
	carol := seedUser(t, db, "carol", "x", models.UserActive)

	svc := NewTaskService(db)
	detail, err := svc.CreateTask(CreateTaskInput{
		Title:       "Shared",
		CreatedByID: &creator.ID,
		AssigneeIDs: []uint{bob.ID},
	})
	require.NoError(t, err)

	newSet := []uint{carol.ID}
	updated, err := svc.UpdateTask(detail.TaskID, UpdateTaskInput{AssigneeIDs: &newSet})
	require.NoError(t, err)
	require.Equal(t, []string{"Test carol"}, updated.AssignedUsers)

	// an explicit empty list clears the set
	empty := []uint{}
	updated, err = svc.UpdateTask(detail.TaskID, UpdateTaskInput{AssigneeIDs: &empty})
	require.NoError(t, err)
	require.Empty(t, updated.AssignedUsers)

	// absent field leaves assignments alone
	set := []uint{bob.ID, carol.ID}
	_, err = svc.UpdateTask(detail.TaskID, UpdateTaskInput{AssigneeIDs: &set})
	require.NoError(t, err)
	updated, err = svc.UpdateTask(detail.TaskID, UpdateTaskInput{Title: strPtr("Shared v2")})
	require.NoError(t, err)
	require.Len(t, updated.AssignedUsers, 2)
}

func TestUpdateTask_NotFound(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	svc := NewTaskService(db)
	_, err = svc.UpdateTask(12345, UpdateTaskInput{Title: strPtr("ghost")})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)

	svc := NewTaskService(db)
	kept, err := svc.CreateTask(CreateTaskInput{Title: "Keep", CreatedByID: &creator.ID})
	require.NoError(t, err)
	doomed, err := svc.CreateTask(CreateTaskInput{Title: "Trash me", CreatedByID: &creator.ID})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDeleteTask(doomed.TaskID))

	// active and trash listings are disjoint and together cover all tasks
	active, err := svc.GetActiveTasks()
	require.NoError(t, err)
	trash, err := svc.GetDeletedTasks()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Len(t, trash, 1)
	require.Equal(t, kept.TaskID, active[0].TaskID)
	require.Equal(t, doomed.TaskID, trash[0].TaskID)

	// detail stays reachable while trashed
	detail, err := svc.GetTaskByID(doomed.TaskID)
	require.NoError(t, err)
	require.Equal(t, "Trash me", detail.Title)

	var stored models.Task
	require.NoError(t, db.First(&stored, doomed.TaskID).Error)
	require.True(t, stored.Deleted)
	require.NotNil(t, stored.DeletedAt)

	restored, err := svc.RestoreTask(doomed.TaskID)
	require.NoError(t, err)
	require.Equal(t, doomed.TaskID, restored.TaskID)

	// read into a fresh struct: a NULL column leaves an existing scan
	// destination untouched, which would mask the cleared timestamp
	var afterRestore models.Task
	require.NoError(t, db.First(&afterRestore, doomed.TaskID).Error)
	require.False(t, afterRestore.Deleted)
	require.Nil(t, afterRestore.DeletedAt)

	active, err = svc.GetActiveTasks()
	require.NoError(t, err)
	require.Len(t, active, 2)

	entries := taskActivities(t, db, doomed.TaskID)
	require.Len(t, entries, 3) // CREATED, DELETED, RESTORED
	require.Equal(t, models.ActionDeleted, entries[1].ActionType)
	require.Equal(t, "deleted Trash me", entries[1].Description)
	require.Equal(t, models.ActionRestored, entries[2].ActionType)
	require.Equal(t, "restored Trash me", entries[2].Description)
}

func TestSoftDeleteTask_NotFound(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	svc := NewTaskService(db)
	require.ErrorIs(t, svc.SoftDeleteTask(999), gorm.ErrRecordNotFound)
}

func TestGetTasksByStatus(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)

	svc := NewTaskService(db)
	pending, err := svc.CreateTask(CreateTaskInput{Title: "P", Status: "PENDING", CreatedByID: &creator.ID})
	require.NoError(t, err)
	_, err = svc.CreateTask(CreateTaskInput{Title: "D", Status: "DONE", CreatedByID: &creator.ID})
	require.NoError(t, err)
	hidden, err := svc.CreateTask(CreateTaskInput{Title: "Hidden", Status: "PENDING", CreatedByID: &creator.ID})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteTask(hidden.TaskID))

	// input is case-insensitive, soft-deleted rows are excluded
	tasks, err := svc.GetTasksByStatus("pending")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, pending.TaskID, tasks[0].TaskID)

	_, err = svc.GetTasksByStatus("ARCHIVED")
	require.Error(t, err)
}

func TestTaskLookupFailuresAbort(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	creator := seedUser(t, db, "alice", "x", models.UserActive)

	svc := NewTaskService(db)
	existing, err := svc.CreateTask(CreateTaskInput{Title: "Keep", Status: "PENDING", CreatedByID: &creator.ID})
	require.NoError(t, err)

	// a missing table is a storage failure, not a missing row: the
	// transaction must fail instead of silently dropping the reference
	require.NoError(t, db.Migrator().DropTable(&models.Category{}))

	_, err = svc.CreateTask(CreateTaskInput{Title: "Broken", Status: "PENDING", CategoryID: uintPtr(1), CreatedByID: &creator.ID})
	require.Error(t, err)
	require.NotErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = svc.UpdateTask(existing.TaskID, UpdateTaskInput{CategoryID: uintPtr(1)})
	require.Error(t, err)
	require.NotErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, db.Migrator().DropTable(&models.User{}))
	_, err = svc.CreateTask(CreateTaskInput{Title: "Broken", Status: "PENDING", AssigneeIDs: []uint{creator.ID}})
	require.Error(t, err)
	require.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}
