package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	dom "github.com/bdfdm25/task-manager/internal/domain"
	"github.com/bdfdm25/task-manager/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeTaskRepo struct {
	tasks map[string]dom.Task
	seq   int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]dom.Task{}}
}

func (f *fakeTaskRepo) codeTaken(userID string, code *string, excludeID string) bool {
	if code == nil {
		return false
	}
	for id, t := range f.tasks {
		if id != excludeID && t.UserID == userID && t.Code != nil && *t.Code == *code {
			return true
		}
	}
	return false
}

func (f *fakeTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	if f.codeTaken(t.UserID, t.Code, "") {
		return dom.Task{}, &pgconn.PgError{Code: "23505", ConstraintName: "tasks_user_code_key"}
	}
	f.seq++
	t.ID = fmt.Sprintf("t-%d", f.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, userID, status, search string) ([]dom.Task, error) {
	var out []dom.Task
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		if status != "" && string(t.Status) != status {
			continue
		}
		if search != "" {
			q := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(t.Title), q) &&
				!strings.Contains(strings.ToLower(t.Description), q) {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, userID, id string, patch repo.TaskPatch) (dom.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	if patch.Code != nil && f.codeTaken(userID, patch.Code, id) {
		return dom.Task{}, &pgconn.PgError{Code: "23505", ConstraintName: "tasks_user_code_key"}
	}
	if patch.Code != nil {
		t.Code = patch.Code
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = dom.Status(*patch.Status)
	}
	if patch.Priority != nil {
		t.Priority = dom.Priority(*patch.Priority)
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.AssignedTo != nil {
		t.AssignedTo = *patch.AssignedTo
	}
	if patch.EstimatedHours != nil {
		t.EstimatedHours = patch.EstimatedHours
	}
	if patch.Deadline != nil {
		t.Deadline = patch.Deadline
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	if patch.NotifyOnCompletion != nil {
		t.NotifyOnCompletion = *patch.NotifyOnCompletion
	}
	t.UpdatedAt = time.Now()
	f.tasks[id] = t
	return t, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	delete(f.tasks, id)
	return 1, nil
}

func (f *fakeTaskRepo) CodeExists(ctx context.Context, userID, code string) (bool, error) {
	return f.codeTaken(userID, &code, ""), nil
}

func newTaskService(r repo.TaskRepo) *TaskService {
	return NewTaskService(r, testLogger())
}

func strptr(s string) *string { return &s }

func TestCreateDefaultsAndOwnership(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())

	created, err := svc.Create(context.Background(), "user-a", dom.Task{
		Title:  "  Buy milk ",
		Status: dom.StatusOpen,
		// Owner in the input must be ignored.
		UserID: "user-b",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UserID != "user-a" {
		t.Errorf("UserID = %q, want user-a", created.UserID)
	}
	if created.Priority != dom.PriorityMedium {
		t.Errorf("Priority = %q, want medium default", created.Priority)
	}
	if created.Title != "Buy milk" {
		t.Errorf("Title = %q, want trimmed", created.Title)
	}
	if created.ID == "" {
		t.Error("ID not generated")
	}
}

func TestCreateRejectsPastDeadline(t *testing.T) {
	store := newFakeTaskRepo()
	svc := newTaskService(store)
	past := time.Now().Add(-time.Hour)

	_, err := svc.Create(context.Background(), "user-a", dom.Task{
		Title: "Late", Status: dom.StatusOpen, Deadline: &past,
	})
	if !errors.Is(err, ErrInvalidDeadline) {
		t.Fatalf("Create = %v, want ErrInvalidDeadline", err)
	}
	if len(store.tasks) != 0 {
		t.Error("task persisted despite invalid deadline")
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-a", dom.Task{Title: "One", Status: dom.StatusOpen, Code: strptr("TASK-001")}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(ctx, "user-a", dom.Task{Title: "Two", Status: dom.StatusOpen, Code: strptr("TASK-001")}); !errors.Is(err, ErrCodeTaken) {
		t.Errorf("duplicate code = %v, want ErrCodeTaken", err)
	}
	// Codes are unique per user, not globally.
	if _, err := svc.Create(ctx, "user-b", dom.Task{Title: "Three", Status: dom.StatusOpen, Code: strptr("TASK-001")}); err != nil {
		t.Errorf("same code for other user = %v, want nil", err)
	}
}

func TestGetScopedToOwner(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", dom.Task{Title: "Buy milk", Status: dom.StatusOpen})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.GetByID(ctx, "alice", created.ID); err != nil {
		t.Errorf("owner GetByID: %v", err)
	}
	// A foreign task must look exactly like a missing one.
	if _, err := svc.GetByID(ctx, "bob", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign GetByID = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetByID(ctx, "alice", "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent GetByID = %v, want ErrNotFound", err)
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	hours := 3.5
	created, err := svc.Create(ctx, "alice", dom.Task{
		Title:          "Buy milk",
		Description:    "2 liters",
		Status:         dom.StatusOpen,
		Priority:       dom.PriorityHigh,
		EstimatedHours: &hours,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := string(dom.StatusDone)
	updated, err := svc.Update(ctx, "alice", created.ID, repo.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != dom.StatusDone {
		t.Errorf("Status = %q, want done", updated.Status)
	}
	if updated.Title != "Buy milk" || updated.Description != "2 liters" {
		t.Errorf("unchanged fields were overwritten: %+v", updated)
	}
	if updated.Priority != dom.PriorityHigh {
		t.Errorf("Priority = %q, want high", updated.Priority)
	}
	if updated.EstimatedHours == nil || *updated.EstimatedHours != 3.5 {
		t.Errorf("EstimatedHours = %v, want 3.5", updated.EstimatedHours)
	}
}

func TestUpdateScopedToOwner(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", dom.Task{Title: "Buy milk", Status: dom.StatusOpen})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	status := string(dom.StatusDone)
	if _, err := svc.Update(ctx, "bob", created.ID, repo.TaskPatch{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign Update = %v, want ErrNotFound", err)
	}
}

func TestUpdateRejectsPastDeadline(t *testing.T) {
	store := newFakeTaskRepo()
	svc := newTaskService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", dom.Task{Title: "Buy milk", Status: dom.StatusOpen})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	if _, err := svc.Update(ctx, "alice", created.ID, repo.TaskPatch{Deadline: &past}); !errors.Is(err, ErrInvalidDeadline) {
		t.Errorf("Update = %v, want ErrInvalidDeadline", err)
	}
	if got := store.tasks[created.ID]; got.Deadline != nil {
		t.Error("deadline persisted despite being in the past")
	}
}

func TestDeletePropagatesNotFound(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", dom.Task{Title: "Buy milk", Status: dom.StatusOpen})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "bob", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign Delete = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
	// Zero affected rows on the second attempt must not be swallowed.
	if err := svc.Delete(ctx, "alice", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("repeat Delete = %v, want ErrNotFound", err)
	}
}

func TestListFilters(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	mustCreate := func(userID string, task dom.Task) {
		t.Helper()
		if _, err := svc.Create(ctx, userID, task); err != nil {
			t.Fatalf("Create %q: %v", task.Title, err)
		}
	}
	mustCreate("alice", dom.Task{Title: "Buy milk", Description: "from the corner shop", Status: dom.StatusOpen})
	mustCreate("alice", dom.Task{Title: "Ship release", Description: "cut 1.0", Status: dom.StatusDone})
	mustCreate("alice", dom.Task{Title: "Write FOO docs", Status: dom.StatusDone})
	mustCreate("bob", dom.Task{Title: "Buy milk too", Status: dom.StatusOpen})

	all, err := svc.List(ctx, "alice", "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered list = %d tasks, want 3 (ownership scoping)", len(all))
	}

	done, err := svc.List(ctx, "alice", "done", "")
	if err != nil {
		t.Fatalf("List done: %v", err)
	}
	if len(done) != 2 {
		t.Errorf("status=done = %d tasks, want 2", len(done))
	}
	for _, task := range done {
		if task.Status != dom.StatusDone {
			t.Errorf("status filter leaked %q", task.Status)
		}
	}

	found, err := svc.List(ctx, "alice", "", "foo")
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Write FOO docs" {
		t.Errorf("search=foo = %+v, want the FOO docs task", found)
	}

	both, err := svc.List(ctx, "alice", "done", "milk")
	if err != nil {
		t.Fatalf("List combined: %v", err)
	}
	if len(both) != 0 {
		t.Errorf("combined filters = %d tasks, want 0", len(both))
	}
}

func TestCodeExists(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", dom.Task{Title: "One", Status: dom.StatusOpen, Code: strptr("TASK-001")}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := svc.CodeExists(ctx, "alice", "TASK-001")
	if err != nil || !exists {
		t.Errorf("CodeExists own code = (%v, %v), want (true, nil)", exists, err)
	}
	exists, err = svc.CodeExists(ctx, "alice", "TASK-999")
	if err != nil || exists {
		t.Errorf("CodeExists unused code = (%v, %v), want (false, nil)", exists, err)
	}
	// The probe is scoped to the caller's own tasks.
	exists, err = svc.CodeExists(ctx, "bob", "TASK-001")
	if err != nil || exists {
		t.Errorf("CodeExists foreign code = (%v, %v), want (false, nil)", exists, err)
	}
}
