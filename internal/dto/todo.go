package dto

import (
	"time"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"
)

// CreateTodoRequest is the JSON body for POST /todos.
type CreateTodoRequest struct {
	Title        string   `json:"title" binding:"required,min=1,max=200"`
	Description  *string  `json:"description" binding:"omitempty,max=2000"`
	Priority     *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeUids []string `json:"assigneeUids" binding:"omitempty,dive,max=128"`
}

// UpdateTodoRequest is the JSON body for PATCH /todos/:id. It is a merge
// patch: absent fields are left untouched. AssigneeUids distinguishes absent
// (nil, untouched) from present-empty (clears the set).
type UpdateTodoRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string  `json:"description" binding:"omitempty,max=2000"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active done"`
	Priority     *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeUids []string `json:"assigneeUids" binding:"omitempty,dive,max=128"`
}

// ReorderRequest is the JSON body for PATCH /todos/reorder. OrderedIds is the
// caller's full visible list in the desired order.
type ReorderRequest struct {
	OrderedIds []string `json:"orderedIds" binding:"required,min=1,dive,required"`
}

// TodoResponse is the wire representation of a todo. Every field is always
// present; description is null when absent and timestamps are ISO-8601 strings.
type TodoResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	CreatedByUid string   `json:"createdByUid"`
	OwnerUid     string   `json:"ownerUid"`
	AssigneeUids []string `json:"assigneeUids"`
	Position     int64    `json:"position"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

type TodoEnvelope struct {
	Todo TodoResponse `json:"todo"`
}

type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewTodoResponse encodes a domain todo for the wire.
func NewTodoResponse(t dom.Todo) TodoResponse {
	assignees := t.AssigneeUids
	if assignees == nil {
		assignees = []string{}
	}
	return TodoResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		CreatedByUid: t.CreatedByUid,
		OwnerUid:     t.OwnerUid,
		AssigneeUids: assignees,
		Position:     t.Position,
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// NewTodoResponses encodes a list; never null on the wire.
func NewTodoResponses(list []dom.Todo) []TodoResponse {
	out := make([]TodoResponse, len(list))
	for i := range list {
		out[i] = NewTodoResponse(list[i])
	}
	return out
}
