package dto

import (
	"encoding/json"
	"testing"
	"time"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTodoRequest_AbsentVsEmptyAssignees(t *testing.T) {
	var absent UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &absent))
	assert.Nil(t, absent.AssigneeUids, "absent field stays nil")

	var empty UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeUids":[]}`), &empty))
	require.NotNil(t, empty.AssigneeUids, "present-empty field is a non-nil slice")
	assert.Len(t, empty.AssigneeUids, 0)
}

func TestNewTodoResponse_Wire(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	todo := dom.Todo{
		ID:           "t1",
		Title:        "ship it",
		Status:       dom.StatusActive,
		Priority:     dom.PriorityHigh,
		CreatedByUid: "u1",
		OwnerUid:     "u1",
		Position:     7,
		CreatedAt:    created,
		UpdatedAt:    created.Add(time.Minute),
	}

	raw, err := json.Marshal(NewTodoResponse(todo))
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))

	assert.Contains(t, wire, "description")
	assert.Nil(t, wire["description"], "absent description encodes as null")
	assert.Equal(t, []any{}, wire["assigneeUids"], "nil assignees encode as []")
	assert.Equal(t, "2025-06-01T12:00:00.123456789Z", wire["createdAt"])
	assert.Equal(t, "active", wire["status"])
	assert.Equal(t, "high", wire["priority"])
	assert.Equal(t, float64(7), wire["position"])
}

func TestNewTodoResponses_NeverNull(t *testing.T) {
	raw, err := json.Marshal(ListTodosResponse{Todos: NewTodoResponses(nil)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"todos":[]}`, string(raw))
}

func TestNewTodoResponse_NormalizesZone(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	todo := dom.Todo{CreatedAt: time.Date(2025, 6, 1, 17, 0, 0, 0, loc)}

	resp := NewTodoResponse(todo)
	assert.Equal(t, "2025-06-01T12:00:00Z", resp.CreatedAt)
}
