package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/bdfdm25/task-manager/internal/domain"
	"github.com/bdfdm25/task-manager/internal/repo"
	"github.com/bdfdm25/task-manager/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound covers both an absent task and a task owned by another
	// user; the two cases must be indistinguishable to the caller.
	ErrNotFound        = errors.New("task not found")
	ErrCodeTaken       = errors.New("task code already in use")
	ErrInvalidDeadline = errors.New("deadline is in the past")
)

// TaskService performs ownership-scoped task CRUD. Identity always comes from
// the authenticated caller, never from client input.
type TaskService struct {
	repo repo.TaskRepo
	log  logrus.FieldLogger
	now  func() time.Time
}

// NewTaskService returns a new TaskService.
func NewTaskService(r repo.TaskRepo, log logrus.FieldLogger) *TaskService {
	return &TaskService{repo: r, log: log, now: time.Now}
}

func (s *TaskService) Create(ctx context.Context, userID string, t dom.Task) (dom.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Deadline != nil && t.Deadline.Before(s.now()) {
		return dom.Task{}, ErrInvalidDeadline
	}
	if t.Priority == "" {
		t.Priority = dom.PriorityMedium
	}
	t.UserID = userID

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Task{}, ErrCodeTaken
		}
		s.log.WithError(err).Error("create task")
		return dom.Task{}, err
	}
	return created, nil
}

func (s *TaskService) List(ctx context.Context, userID, status, search string) ([]dom.Task, error) {
	list, err := s.repo.List(ctx, userID, status, strings.TrimSpace(search))
	if err != nil {
		s.log.WithError(err).Error("list tasks")
		return nil, err
	}
	return list, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		s.log.WithError(err).Error("get task")
		return dom.Task{}, err
	}
	return t, nil
}

// Update applies only the fields present in the patch; everything else keeps
// its prior value. A status-only patch is the minimal case.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch repo.TaskPatch) (dom.Task, error) {
	if patch.Deadline != nil && patch.Deadline.Before(s.now()) {
		return dom.Task{}, ErrInvalidDeadline
	}
	t, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.Task{}, ErrCodeTaken
		}
		s.log.WithError(err).Error("update task")
		return dom.Task{}, err
	}
	return t, nil
}

// Delete removes the caller's task. Zero affected rows means the task does
// not exist for this user and is reported as such, never swallowed.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		s.log.WithError(err).Error("delete task")
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CodeExists reports whether the caller already has a task with this code.
// It backs the client's debounced advisory check; the unique index remains
// the final authority inside Create.
func (s *TaskService) CodeExists(ctx context.Context, userID, code string) (bool, error) {
	exists, err := s.repo.CodeExists(ctx, userID, code)
	if err != nil {
		s.log.WithError(err).Error("check task code")
		return false, err
	}
	return exists, nil
}
