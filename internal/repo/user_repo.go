package repo

import (
	"context"

	dom "github.com/bdfdm25/task-manager/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	Create(ctx context.Context, fullName, email, passwordHash string) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByEmail returns the user by email. Emails are matched as stored
// (case-sensitive).
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// Create inserts a new user and returns it. Duplicate emails surface as the
// store's unique-constraint violation; there is no pre-check.
func (r *PGUserRepo) Create(ctx context.Context, fullName, email, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (id, full_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, full_name, email, password_hash, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, uuid.NewString(), fullName, email, passwordHash).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	return u, err
}
