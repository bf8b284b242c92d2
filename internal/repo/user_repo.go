package repo

import (
	"context"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo owns persistence for user accounts.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByUID(ctx context.Context, uid string) (dom.User, error)
	// Search matches username, email or display name, case-insensitively.
	Search(ctx context.Context, q string, limit int) ([]dom.User, error)
}

const userColumns = `uid, username, email, display_name, password_hash, created_at`

type PGUserRepo struct {
	db *pgxpool.Pool
}

func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (username, email, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, u.Username, u.Email, u.DisplayName, u.PasswordHash))
}

func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *PGUserRepo) GetByUID(ctx context.Context, uid string) (dom.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	return scanUser(r.db.QueryRow(ctx, query, uid))
}

func (r *PGUserRepo) Search(ctx context.Context, q string, limit int) ([]dom.User, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username ILIKE $1 OR email ILIKE $1 OR display_name ILIKE $1
		ORDER BY username ASC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row rowScanner) (dom.User, error) {
	var u dom.User
	err := row.Scan(&u.UID, &u.Username, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
