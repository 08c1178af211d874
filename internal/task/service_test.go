package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sprintsync/sprintsync-api/internal/logger"
	pgdb "github.com/sprintsync/sprintsync-api/internal/storage/pg/sqlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskColumns = []string{"id", "title", "description", "total_minutes", "status", "user_id", "created_at", "updated_at"}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(pgdb.New(db), logger.Discard()), mock
}

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows(taskColumns)
}

func addTask(rows *sqlmock.Rows, id int64, title string, status Status, userID int64) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, title, nil, 0, string(status), userID, now, now)
}

func TestCreateTask(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("name: CreateTask").
		WithArgs("Write docs", nil, int64(0), int64(7)).
		WillReturnRows(addTask(taskRows(), 1, "Write docs", StatusTodo, 7))

	task, err := svc.CreateTask(context.Background(), 7, CreateTaskRequest{Title: "  Write docs "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, 0, task.TotalMinutes)
	assert.Nil(t, task.Description)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTaskValidation(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.CreateTask(context.Background(), 7, CreateTaskRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	negative := -5
	_, err = svc.CreateTask(context.Background(), 7, CreateTaskRequest{Title: "x", TotalMinutes: &negative})
	assert.ErrorIs(t, err, ErrInvalidTotalMinutes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasks(t *testing.T) {
	svc, mock := newTestService(t)

	rows := addTask(taskRows(), 2, "Newer", StatusDone, 7)
	rows = addTask(rows, 1, "Older", StatusTodo, 7)
	mock.ExpectQuery("name: ListTasksByUser :many").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	tasks, err := svc.ListTasks(context.Background(), 7, "")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Newer", tasks[0].Title)

	mock.ExpectQuery("name: ListTasksByUserAndStatus").
		WithArgs(int64(7), "DONE").
		WillReturnRows(addTask(taskRows(), 2, "Newer", StatusDone, 7))

	tasks, err = svc.ListTasks(context.Background(), 7, StatusDone)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	_, err = svc.ListTasks(context.Background(), 7, "ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasksEmpty(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("name: ListTasksByUser :many").WillReturnRows(taskRows())

	tasks, err := svc.ListTasks(context.Background(), 7, "")
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestGetTaskScopedToOwner(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("name: GetTaskForUser").
		WithArgs(int64(1), int64(8)).
		WillReturnRows(taskRows())

	_, err := svc.GetTask(context.Background(), 8, 1)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTask(t *testing.T) {
	svc, mock := newTestService(t)

	minutes := 45
	mock.ExpectQuery("name: UpdateTask :one").
		WithArgs(nil, false, nil, int64(45), int64(1), int64(7)).
		WillReturnRows(addTask(taskRows(), 1, "Write docs", StatusTodo, 7))

	_, err := svc.UpdateTask(context.Background(), 7, 1, UpdateTaskRequest{TotalMinutes: &minutes})
	require.NoError(t, err)

	empty := " "
	_, err = svc.UpdateTask(context.Background(), 7, 1, UpdateTaskRequest{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)

	mock.ExpectQuery("name: UpdateTask :one").WillReturnRows(taskRows())
	_, err = svc.UpdateTask(context.Background(), 7, 99, UpdateTaskRequest{})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskDescription(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("name: UpdateTask :one").
		WithArgs(nil, true, nil, nil, int64(1), int64(7)).
		WillReturnRows(addTask(taskRows(), 1, "Write docs", StatusTodo, 7))

	task, err := svc.UpdateTask(context.Background(), 7, 1, UpdateTaskRequest{Description: SetString(nil)})
	require.NoError(t, err)
	assert.Nil(t, task.Description)

	notes := "Cover the API"
	mock.ExpectQuery("name: UpdateTask :one").
		WithArgs(nil, true, "Cover the API", nil, int64(1), int64(7)).
		WillReturnRows(addTask(taskRows(), 1, "Write docs", StatusTodo, 7))

	_, err = svc.UpdateTask(context.Background(), 7, 1, UpdateTaskRequest{Description: SetString(&notes)})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskRequestDescription(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		set   bool
		value *string
	}{
		{"absent", `{"title":"A"}`, false, nil},
		{"null", `{"description":null}`, true, nil},
		{"value", `{"description":"notes"}`, true, ptr("notes")},
		{"empty", `{"description":""}`, true, ptr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.set, req.Description.Set)
			assert.Equal(t, tt.value, req.Description.Value)
		})
	}

	var req UpdateTaskRequest
	assert.Error(t, json.Unmarshal([]byte(`{"description":42}`), &req))
}

func ptr(s string) *string { return &s }

func TestUpdateStatus(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("name: UpdateTaskStatus").
		WithArgs("IN_PROGRESS", int64(1), int64(7)).
		WillReturnRows(addTask(taskRows(), 1, "Write docs", StatusInProgress, 7))

	task, err := svc.UpdateStatus(context.Background(), 7, 1, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, task.Status)

	_, err = svc.UpdateStatus(context.Background(), 7, 1, "todo")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTask(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("name: DeleteTaskForUser").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.DeleteTask(context.Background(), 7, 1))

	mock.ExpectExec("name: DeleteTaskForUser").
		WithArgs(int64(2), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, svc.DeleteTask(context.Background(), 7, 2), ErrTaskNotFound)

	mock.ExpectExec("name: DeleteTaskForUser").
		WillReturnError(errors.New("connection reset"))
	err := svc.DeleteTask(context.Background(), 7, 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTaskNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
