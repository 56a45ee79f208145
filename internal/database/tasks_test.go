package database

import (
	"context"
	"testing"
	"time"

	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/stretchr/testify/require"
)

func createTestTask(t *testing.T, userID int64, title, status, priority string) int64 {
	task, err := testStore.CreateTask(context.Background(), CreateTaskParams{
		UserID:          userID,
		Title:           title,
		Status:          status,
		Priority:        priority,
		BackgroundColor: "#FFFFFF",
	})
	require.NoError(t, err)
	require.NotNil(t, task)
	return task.ID
}

func TestCreateTask(t *testing.T) {
	userID := createTestUser(t, "task_create_user")
	dueDate := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)

	task, err := testStore.CreateTask(context.Background(), CreateTaskParams{
		UserID:          userID,
		Title:           "Water the plants",
		Description:     strPtr("balcony first"),
		Status:          models.TaskStatusPending,
		Priority:        models.TaskPriorityHigh,
		DueDate:         &dueDate,
		BackgroundColor: "#FDE68A",
	})
	require.NoError(t, err)
	require.NotNil(t, task)
	require.NotZero(t, task.ID)
	require.Equal(t, "Water the plants", task.Title)
	require.Equal(t, models.TaskStatusPending, task.Status)
	require.Equal(t, models.TaskPriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	require.True(t, task.DueDate.Equal(dueDate))
	require.Nil(t, task.CompletedAt)
}

func TestGetTaskByIDOwnership(t *testing.T) {
	ownerID := createTestUser(t, "task_owner")
	strangerID := createTestUser(t, "task_stranger")
	taskID := createTestTask(t, ownerID, "Private task", models.TaskStatusPending, models.TaskPriorityMedium)

	task, err := testStore.GetTaskByID(context.Background(), taskID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, task)

	task, err = testStore.GetTaskByID(context.Background(), taskID, strangerID)
	require.NoError(t, err)
	require.Nil(t, task)
}

func TestListTasksFilters(t *testing.T) {
	userID := createTestUser(t, "task_list_user")

	createTestTask(t, userID, "Task A", models.TaskStatusPending, models.TaskPriorityLow)
	createTestTask(t, userID, "Task B", models.TaskStatusInProgress, models.TaskPriorityHigh)
	createTestTask(t, userID, "Task C", models.TaskStatusCompleted, models.TaskPriorityHigh)

	tasks, err := testStore.ListTasks(context.Background(), ListTasksParams{UserID: userID})
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	tasks, err = testStore.ListTasks(context.Background(), ListTasksParams{
		UserID: userID,
		Status: strPtr(models.TaskStatusInProgress),
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Task B", tasks[0].Title)

	tasks, err = testStore.ListTasks(context.Background(), ListTasksParams{
		UserID:   userID,
		Priority: strPtr(models.TaskPriorityHigh),
	})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	tasks, err = testStore.ListTasks(context.Background(), ListTasksParams{
		UserID:   userID,
		Status:   strPtr(models.TaskStatusCompleted),
		Priority: strPtr(models.TaskPriorityLow),
	})
	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Len(t, tasks, 0)
}

func TestUpdateTaskCompletedAt(t *testing.T) {
	userID := createTestUser(t, "task_complete_user")
	taskID := createTestTask(t, userID, "Finish report", models.TaskStatusPending, models.TaskPriorityMedium)

	task, err := testStore.GetTaskByID(context.Background(), taskID, userID)
	require.NoError(t, err)

	completedAt := time.Now().UTC()
	updated, err := testStore.UpdateTask(context.Background(), UpdateTaskParams{
		ID:              task.ID,
		UserID:          userID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          models.TaskStatusCompleted,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		CompletedAt:     &completedAt,
		BackgroundColor: task.BackgroundColor,
		IsPinned:        task.IsPinned,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, models.TaskStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	reopened, err := testStore.UpdateTask(context.Background(), UpdateTaskParams{
		ID:              task.ID,
		UserID:          userID,
		Title:           task.Title,
		Status:          models.TaskStatusPending,
		Priority:        task.Priority,
		CompletedAt:     nil,
		BackgroundColor: task.BackgroundColor,
	})
	require.NoError(t, err)
	require.NotNil(t, reopened)
	require.Equal(t, models.TaskStatusPending, reopened.Status)
	require.Nil(t, reopened.CompletedAt)
}

func TestDeleteTask(t *testing.T) {
	userID := createTestUser(t, "task_delete_user")
	taskID := createTestTask(t, userID, "Disposable task", models.TaskStatusPending, models.TaskPriorityLow)

	deleted, err := testStore.DeleteTask(context.Background(), taskID, userID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = testStore.DeleteTask(context.Background(), taskID, userID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestGetTaskStats(t *testing.T) {
	userID := createTestUser(t, "task_stats_user")

	createTestTask(t, userID, "S1", models.TaskStatusPending, models.TaskPriorityLow)
	createTestTask(t, userID, "S2", models.TaskStatusPending, models.TaskPriorityMedium)
	createTestTask(t, userID, "S3", models.TaskStatusInProgress, models.TaskPriorityHigh)
	createTestTask(t, userID, "S4", models.TaskStatusCompleted, models.TaskPriorityHigh)

	stats, err := testStore.GetTaskStats(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.Equal(t, int64(4), stats.Total)
	require.Equal(t, int64(2), stats.Pending)
	require.Equal(t, int64(1), stats.InProgress)
	require.Equal(t, int64(1), stats.Completed)
	require.Equal(t, int64(1), stats.Low)
	require.Equal(t, int64(1), stats.Medium)
	require.Equal(t, int64(2), stats.High)

	emptyID := createTestUser(t, "task_stats_empty")
	stats, err = testStore.GetTaskStats(context.Background(), emptyID)
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.Total)
}
