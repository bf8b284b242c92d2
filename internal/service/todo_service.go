package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zulven/arkivia-collab-todo/internal/cache"
	dom "github.com/zulven/arkivia-collab-todo/internal/domain"
	"github.com/zulven/arkivia-collab-todo/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// TodoService orchestrates repository calls under the authorization rules.
// It is stateless between requests; all state lives in the store.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

// CreateTodoInput carries the normalized-on-entry fields for Create.
type CreateTodoInput struct {
	Title        string
	Description  *string
	Priority     dom.Priority // empty means default (medium)
	AssigneeUids []string
}

// List returns uid's visible todos sorted by (position, createdAt, id)
// ascending. The owner-also-assignee case yields the todo exactly once.
func (s *TodoService) List(ctx context.Context, uid string) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.listFromRepo(ctx, uid)
	}
	v, err, _ := s.sf.Do("list:"+uid, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, uid); err == nil && list != nil {
			return list, nil
		}
		list, err := s.listFromRepo(ctx, uid)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, uid, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

func (s *TodoService) listFromRepo(ctx context.Context, uid string) ([]dom.Todo, error) {
	list, err := s.repo.ListVisibleTo(ctx, uid)
	if err != nil {
		return nil, storeErr("list todos", err)
	}
	if list == nil {
		list = []dom.Todo{}
	}
	dom.SortTodos(list)
	return list, nil
}

// Create makes uid the creator and owner of a new active todo. Inputs are
// normalized: title and description trimmed, assignees deduplicated, priority
// defaulted to medium.
func (s *TodoService) Create(ctx context.Context, uid string, in CreateTodoInput) (dom.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return dom.Todo{}, fmt.Errorf("%w: title is required", dom.ErrValidation)
	}
	var desc *string
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		desc = &d
	}
	priority := in.Priority
	if priority == "" {
		priority = dom.PriorityMedium
	}
	if !priority.Valid() {
		return dom.Todo{}, fmt.Errorf("%w: invalid priority %q", dom.ErrValidation, priority)
	}

	t, err := s.repo.Create(ctx, dom.Todo{
		Title:        title,
		Description:  desc,
		Status:       dom.StatusActive,
		Priority:     priority,
		CreatedByUid: uid,
		OwnerUid:     uid,
		AssigneeUids: dom.NormalizeAssignees(in.AssigneeUids),
	})
	if err != nil {
		return dom.Todo{}, storeErr("create todo", err)
	}
	s.invalidate(ctx, visibilityUids(t))
	return t, nil
}

// Update applies a merge patch: only fields present in patch are touched.
// Any member of the todo's visibility set may mutate fields.
func (s *TodoService) Update(ctx context.Context, uid, id string, patch dom.TodoPatch) (dom.Todo, error) {
	if patch.Empty() {
		return dom.Todo{}, fmt.Errorf("%w: empty patch", dom.ErrValidation)
	}
	if err := normalizePatch(&patch); err != nil {
		return dom.Todo{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, dom.ErrNotFound
		}
		return dom.Todo{}, storeErr("load todo", err)
	}
	if !existing.VisibleTo(uid) {
		return dom.Todo{}, dom.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, dom.ErrNotFound
		}
		return dom.Todo{}, storeErr("update todo", err)
	}
	s.invalidate(ctx, union(visibilityUids(existing), visibilityUids(updated)))
	return updated, nil
}

// Delete permanently removes a todo. Only the owner may delete; assignees
// may not, even though they can mutate fields.
func (s *TodoService) Delete(ctx context.Context, uid, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.ErrNotFound
		}
		return storeErr("load todo", err)
	}
	if !existing.OwnedBy(uid) {
		return dom.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.ErrNotFound
		}
		return storeErr("delete todo", err)
	}
	s.invalidate(ctx, visibilityUids(existing))
	return nil
}

// Reorder atomically assigns dense positions 0..N-1 in the order given.
// All-or-nothing: any unknown id fails the whole batch with NotFound and any
// todo outside uid's visibility set fails it with Forbidden; in both cases no
// position changes. Todos not listed keep their prior positions (independent
// visible subsets reorder last-write-wins).
func (s *TodoService) Reorder(ctx context.Context, uid string, orderedIds []string) error {
	ids := make([]string, 0, len(orderedIds))
	seen := make(map[string]struct{}, len(orderedIds))
	for _, id := range orderedIds {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate id %q in orderedIds", dom.ErrValidation, id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: orderedIds is required", dom.ErrValidation)
	}

	loaded, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return storeErr("load todos", err)
	}
	if len(loaded) != len(ids) {
		// At least one id does not resolve; the id set is inconsistent with
		// storage, so no partial reorder is attempted.
		return dom.ErrNotFound
	}
	for _, t := range loaded {
		if !t.VisibleTo(uid) {
			return dom.ErrForbidden
		}
	}

	if err := s.repo.CommitReorder(ctx, ids); err != nil {
		return storeErr("commit reorder", err)
	}

	affected := make([]string, 0, len(loaded))
	for _, t := range loaded {
		affected = union(affected, visibilityUids(t))
	}
	s.invalidate(ctx, affected)
	return nil
}

func normalizePatch(patch *dom.TodoPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be empty", dom.ErrValidation)
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		patch.Description = &d
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", dom.ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", dom.ErrValidation, *patch.Priority)
	}
	if patch.AssigneeUids != nil {
		patch.AssigneeUids = dom.NormalizeAssignees(patch.AssigneeUids)
	}
	return nil
}

func visibilityUids(t dom.Todo) []string {
	return union([]string{t.OwnerUid}, t.AssigneeUids)
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range append(a, b...) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *TodoService) invalidate(ctx context.Context, uids []string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, uids...)
	}
}

// storeErr classifies an unexpected repository failure as an infrastructure
// fault. The original error text stays out of the taxonomy chain surfaced to
// transport.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", dom.ErrStoreUnavailable, op, err)
}
