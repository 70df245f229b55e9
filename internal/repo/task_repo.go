package repo

import (
	"context"
	"fmt"
	"time"

	dom "github.com/bdfdm25/task-manager/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskPatch is a partial update: nil fields are left unchanged.
type TaskPatch struct {
	Code               *string
	Title              *string
	Description        *string
	Status             *string
	Priority           *string
	Category           *string
	AssignedTo         *string
	EstimatedHours     *float64
	Deadline           *time.Time
	Tags               *string
	NotifyOnCompletion *bool
}

// TaskRepo provides task persistence. Every lookup and mutation is scoped by
// (user, id): a task owned by someone else behaves exactly like a missing row.
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, userID, id string) (dom.Task, error)
	List(ctx context.Context, userID, status, search string) ([]dom.Task, error)
	Update(ctx context.Context, userID, id string, patch TaskPatch) (dom.Task, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
	CodeExists(ctx context.Context, userID, code string) (bool, error)
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

const taskColumns = `id, code, title, description, status, priority, category,
	assigned_to, estimated_hours, deadline, tags, notify_on_completion,
	user_id, created_at, updated_at`

func scanTask(row pgx.Row) (dom.Task, error) {
	var t dom.Task
	var status, priority string
	err := row.Scan(
		&t.ID, &t.Code, &t.Title, &t.Description, &status, &priority, &t.Category,
		&t.AssignedTo, &t.EstimatedHours, &t.Deadline, &t.Tags, &t.NotifyOnCompletion,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return dom.Task{}, err
	}
	t.Status = dom.Status(status)
	t.Priority = dom.Priority(priority)
	return t, nil
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (id, code, title, description, status, priority, category,
			assigned_to, estimated_hours, deadline, tags, notify_on_completion, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + taskColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(), t.Code, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.Category, t.AssignedTo, t.EstimatedHours, t.Deadline, t.Tags,
		t.NotifyOnCompletion, t.UserID,
	)
	return scanTask(row)
}

func (r *PGTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	return scanTask(r.db.QueryRow(ctx, query, id, userID))
}

func (r *PGTaskRepo) List(ctx context.Context, userID, status, search string) ([]dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update merges the patch in a single statement so two concurrent partial
// updates cannot overwrite each other's fields. Returns pgx.ErrNoRows when the
// row does not exist for this user.
func (r *PGTaskRepo) Update(ctx context.Context, userID, id string, patch TaskPatch) (dom.Task, error) {
	query := `
		UPDATE tasks SET
			code = COALESCE($3, code),
			title = COALESCE($4, title),
			description = COALESCE($5, description),
			status = COALESCE($6, status),
			priority = COALESCE($7, priority),
			category = COALESCE($8, category),
			assigned_to = COALESCE($9, assigned_to),
			estimated_hours = COALESCE($10, estimated_hours),
			deadline = COALESCE($11, deadline),
			tags = COALESCE($12, tags),
			notify_on_completion = COALESCE($13, notify_on_completion),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	row := r.db.QueryRow(ctx, query, id, userID,
		patch.Code, patch.Title, patch.Description, patch.Status, patch.Priority,
		patch.Category, patch.AssignedTo, patch.EstimatedHours, patch.Deadline,
		patch.Tags, patch.NotifyOnCompletion,
	)
	return scanTask(row)
}

// Delete removes the row and reports the number of affected rows; the caller
// decides whether zero means not found.
func (r *PGTaskRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGTaskRepo) CodeExists(ctx context.Context, userID, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE user_id = $1 AND code = $2)`,
		userID, code,
	).Scan(&exists)
	return exists, err
}
