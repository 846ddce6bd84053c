package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskInput represents data submitted for a task.
type TaskInput struct {
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
}

// StatusFilter narrows a task listing by the completed flag.
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterCompleted  StatusFilter = "completed"
	FilterIncomplete StatusFilter = "incomplete"
)

// ParseStatusFilter maps a query-string value to a filter. Anything it does
// not recognize means the full listing.
func ParseStatusFilter(raw string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case FilterCompleted:
		return FilterCompleted
	case FilterIncomplete:
		return FilterIncomplete
	default:
		return FilterAll
	}
}

// Completed returns the flag value to filter on, or nil for no filtering.
func (f StatusFilter) Completed() *bool {
	switch f {
	case FilterCompleted:
		v := true
		return &v
	case FilterIncomplete:
		v := false
		return &v
	default:
		return nil
	}
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	task := model.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Completed:   input.Completed,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter StatusFilter) ([]model.Task, error) {
	return s.taskRepo.List(ctx, filter.Completed())
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.findTask(ctx, taskID)
}

// UpdateTask mutates an existing task in place with the submitted fields.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	task.Completed = input.Completed
	task.DueDate = input.DueDate

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleComplete flips the completion flag unconditionally.
func (s *TaskService) ToggleComplete(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task completely.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	if _, err := s.findTask(ctx, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}

func (s *TaskService) findTask(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}
