package domain

import (
	"sort"
	"strings"
	"time"
)

// Status of a todo.
type Status string

const (
	StatusActive Status = "active"
	StatusDone   Status = "done"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusDone
}

// Priority of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Todo is the aggregate root. It does not depend on Gin, Postgres or Redis.
//
// ID is assigned by the store at creation and immutable. OwnerUid never
// changes after creation (creator == owner at creation time; there is no
// transfer-of-ownership operation). AssigneeUids is stored as an ordered
// sequence but carries set semantics: no duplicates.
type Todo struct {
	ID           string
	Title        string
	Description  *string
	Status       Status
	Priority     Priority
	CreatedByUid string
	OwnerUid     string
	AssigneeUids []string
	Position     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VisibleTo reports whether uid belongs to the todo's visibility set
// (owner or assignee). Visibility grants read and field-mutation authority.
func (t Todo) VisibleTo(uid string) bool {
	if t.OwnerUid == uid {
		return true
	}
	for _, a := range t.AssigneeUids {
		if a == uid {
			return true
		}
	}
	return false
}

// OwnedBy reports whether uid may delete the todo. Only the owner may.
func (t Todo) OwnedBy(uid string) bool {
	return t.OwnerUid == uid
}

// WithDefaults fills fields that may be absent on rows written before the
// schema gained them: position (created-at clock millis), priority (medium)
// and createdByUid (owner). Stored rows always carry timestamps; everything
// else is decoded here so callers never see a partially-populated todo.
func (t Todo) WithDefaults() Todo {
	if t.Position == 0 {
		t.Position = t.CreatedAt.UnixMilli()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.CreatedByUid == "" {
		t.CreatedByUid = t.OwnerUid
	}
	if t.AssigneeUids == nil {
		t.AssigneeUids = []string{}
	}
	return t
}

// TodoPatch is a merge patch: nil fields are left untouched by an update.
// A non-nil AssigneeUids replaces the whole set (empty slice clears it).
type TodoPatch struct {
	Title        *string
	Description  *string
	Status       *Status
	Priority     *Priority
	AssigneeUids []string
}

// Empty reports whether the patch touches no field.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssigneeUids == nil
}

// NormalizeAssignees trims each uid, drops empty entries and removes
// duplicates while preserving first-seen order. Never returns nil.
func NormalizeAssignees(uids []string) []string {
	out := make([]string, 0, len(uids))
	seen := make(map[string]struct{}, len(uids))
	for _, u := range uids {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// SortTodos orders todos for display: position ascending, ties broken by
// createdAt then id, so the order is total and deterministic even when two
// legacy rows defaulted to the same position.
func SortTodos(list []Todo) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
