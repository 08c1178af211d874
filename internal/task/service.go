package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/sprintsync/sprintsync-api/internal/logger"
	pgdb "github.com/sprintsync/sprintsync-api/internal/storage/pg/sqlc"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidTotalMinutes = errors.New("total minutes must be a non-negative integer")
)

// Service handles task persistence scoped to the owning user.
type Service struct {
	queries pgdb.Querier
	logger  *logger.Logger
}

// NewService creates a new task service.
func NewService(queries pgdb.Querier, logger *logger.Logger) *Service {
	return &Service{
		queries: queries,
		logger:  logger,
	}
}

// CreateTask creates a TODO task for userID.
func (s *Service) CreateTask(ctx context.Context, userID int64, req CreateTaskRequest) (*Task, error) {
	log := s.logger.WithContext(ctx).WithComponent("task-service")

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	var minutes int32
	if req.TotalMinutes != nil {
		m, err := toMinutes(*req.TotalMinutes)
		if err != nil {
			return nil, err
		}
		minutes = m
	}

	dbTask, err := s.queries.CreateTask(ctx, pgdb.CreateTaskParams{
		Title:        title,
		Description:  req.Description,
		TotalMinutes: minutes,
		UserID:       userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.Int64("task_id", dbTask.ID),
		slog.Int64("user_id", userID))

	return taskFromDB(dbTask), nil
}

// ListTasks returns the user's tasks, newest first. An empty status lists all.
func (s *Service) ListTasks(ctx context.Context, userID int64, status Status) ([]*Task, error) {
	var (
		rows []pgdb.Task
		err  error
	)

	if status == "" {
		rows, err = s.queries.ListTasksByUser(ctx, userID)
	} else {
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		rows, err = s.queries.ListTasksByUserAndStatus(ctx, pgdb.ListTasksByUserAndStatusParams{
			UserID: userID,
			Status: string(status),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, taskFromDB(row))
	}
	return tasks, nil
}

// GetTask returns a single task owned by userID.
func (s *Service) GetTask(ctx context.Context, userID, taskID int64) (*Task, error) {
	dbTask, err := s.queries.GetTaskForUser(ctx, pgdb.GetTaskForUserParams{
		ID:     taskID,
		UserID: userID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return taskFromDB(dbTask), nil
}

// UpdateTask applies a partial update to a task owned by userID.
func (s *Service) UpdateTask(ctx context.Context, userID, taskID int64, req UpdateTaskRequest) (*Task, error) {
	log := s.logger.WithContext(ctx).WithComponent("task-service")

	params := pgdb.UpdateTaskParams{
		DescriptionSet: req.Description.Set,
		Description:    req.Description.Value,
		ID:             taskID,
		UserID:         userID,
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		params.Title = &title
	}

	if req.TotalMinutes != nil {
		m, err := toMinutes(*req.TotalMinutes)
		if err != nil {
			return nil, err
		}
		params.TotalMinutes = &m
	}

	dbTask, err := s.queries.UpdateTask(ctx, params)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))

	return taskFromDB(dbTask), nil
}

// UpdateStatus moves a task owned by userID to status.
func (s *Service) UpdateStatus(ctx context.Context, userID, taskID int64, status Status) (*Task, error) {
	log := s.logger.WithContext(ctx).WithComponent("task-service")

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	dbTask, err := s.queries.UpdateTaskStatus(ctx, pgdb.UpdateTaskStatusParams{
		Status: string(status),
		ID:     taskID,
		UserID: userID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	log.Info("task status updated",
		slog.Int64("task_id", taskID),
		slog.String("status", string(status)),
		slog.Int64("user_id", userID))

	return taskFromDB(dbTask), nil
}

// DeleteTask removes a task owned by userID.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID int64) error {
	log := s.logger.WithContext(ctx).WithComponent("task-service")

	rows, err := s.queries.DeleteTaskForUser(ctx, pgdb.DeleteTaskForUserParams{
		ID:     taskID,
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}

	log.Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))

	return nil
}

func toMinutes(v int) (int32, error) {
	if v < 0 || v > math.MaxInt32 {
		return 0, ErrInvalidTotalMinutes
	}
	return int32(v), nil
}
