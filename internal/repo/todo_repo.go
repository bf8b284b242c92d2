package repo

import (
	"context"
	"fmt"
	"strings"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo owns the store's query and write vocabulary for todos. Absence on
// point lookups is signalled with pgx.ErrNoRows; the caller decides whether
// absence is an error. Infra faults propagate unchanged, never retried here.
type TodoRepo interface {
	// ListVisibleTo returns the de-duplicated union of todos owned by uid and
	// todos where uid is an assignee. Result order is unspecified.
	ListVisibleTo(ctx context.Context, uid string) ([]dom.Todo, error)
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id string) (dom.Todo, error)
	// GetMany returns the todos that exist among ids; missing ids are simply
	// absent from the result.
	GetMany(ctx context.Context, ids []string) ([]dom.Todo, error)
	// Update applies a merge patch: only non-nil patch fields are written,
	// plus a refreshed updated_at. Returns the re-hydrated row.
	Update(ctx context.Context, id string, patch dom.TodoPatch) (dom.Todo, error)
	Delete(ctx context.Context, id string) error
	// CommitReorder sets position = index for every id in orderedIds within a
	// single transaction. All-or-nothing: on failure no position is written.
	CommitReorder(ctx context.Context, orderedIds []string) error
}

const todoColumns = `id, title, description, status, priority, created_by_uid, owner_uid, assignee_uids, position, created_at, updated_at`

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTodo decodes one stored row. Nullable columns (rows written before the
// schema gained position/priority/created_by_uid) come back as nil and are
// defaulted by WithDefaults.
func scanTodo(row rowScanner) (dom.Todo, error) {
	var t dom.Todo
	var status string
	var priority, createdBy *string
	var position *int64
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &status, &priority, &createdBy,
		&t.OwnerUid, &t.AssigneeUids, &position, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return dom.Todo{}, err
	}
	t.Status = dom.Status(status)
	if priority != nil {
		t.Priority = dom.Priority(*priority)
	}
	if createdBy != nil {
		t.CreatedByUid = *createdBy
	}
	t = t.WithDefaults()
	// A stored position overrides the legacy default even when it is 0,
	// which is a legitimate value after a reorder.
	if position != nil {
		t.Position = *position
	}
	return t, nil
}

func (r *PGTodoRepo) ListVisibleTo(ctx context.Context, uid string) ([]dom.Todo, error) {
	// Two independent queries (owner equality, assignee membership) merged by
	// id, so a todo where the owner also assigned themselves appears once.
	owned, err := r.queryTodos(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE owner_uid = $1`, uid)
	if err != nil {
		return nil, err
	}
	assigned, err := r.queryTodos(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE $1 = ANY(assignee_uids)`, uid)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(owned)+len(assigned))
	merged := make([]dom.Todo, 0, len(owned)+len(assigned))
	for _, t := range append(owned, assigned...) {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}
	return merged, nil
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	// Creation position is a coarse clock-millis value so new items sort
	// after everything existing without a storage-wide renumber.
	query := `
		INSERT INTO todos (title, description, status, priority, created_by_uid, owner_uid, assignee_uids, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, (EXTRACT(EPOCH FROM clock_timestamp()) * 1000)::BIGINT)
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		t.CreatedByUid, t.OwnerUid, t.AssigneeUids,
	))
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id string) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) GetMany(ctx context.Context, ids []string) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ANY($1)`
	return r.queryTodos(ctx, query, ids)
}

func (r *PGTodoRepo) Update(ctx context.Context, id string, patch dom.TodoPatch) (dom.Todo, error) {
	set, setArgs := buildUpdateSet(patch)
	query := `UPDATE todos SET updated_at = NOW()` + set + ` WHERE id = $1 RETURNING ` + todoColumns
	args := append([]any{id}, setArgs...)
	return scanTodo(r.db.QueryRow(ctx, query, args...))
}

// buildUpdateSet renders the SET fragments for the non-nil patch fields.
// Placeholders start at $2; $1 is reserved for the id.
func buildUpdateSet(patch dom.TodoPatch) (string, []any) {
	var b strings.Builder
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		fmt.Fprintf(&b, ", %s = $%d", col, len(args)+1)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Priority != nil {
		add("priority", string(*patch.Priority))
	}
	if patch.AssigneeUids != nil {
		add("assignee_uids", patch.AssigneeUids)
	}
	return b.String(), args
}

func (r *PGTodoRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGTodoRepo) CommitReorder(ctx context.Context, orderedIds []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("reorder begin: %w", err)
	}
	defer tx.Rollback(ctx)

	b := &pgx.Batch{}
	for i, id := range orderedIds {
		b.Queue(`UPDATE todos SET position = $2, updated_at = NOW() WHERE id = $1`, id, int64(i))
	}
	br := tx.SendBatch(ctx, b)
	for range orderedIds {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("reorder batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("reorder batch close: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *PGTodoRepo) queryTodos(ctx context.Context, query string, args ...any) ([]dom.Todo, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
