package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoVisibleTo(t *testing.T) {
	todo := Todo{OwnerUid: "u1", AssigneeUids: []string{"u2", "u3"}}

	assert.True(t, todo.VisibleTo("u1"), "owner is visible")
	assert.True(t, todo.VisibleTo("u2"), "assignee is visible")
	assert.True(t, todo.VisibleTo("u3"), "assignee is visible")
	assert.False(t, todo.VisibleTo("u4"), "stranger is not visible")
	assert.False(t, todo.VisibleTo(""), "empty uid is not visible")
}

func TestTodoOwnedBy(t *testing.T) {
	todo := Todo{OwnerUid: "u1", AssigneeUids: []string{"u2"}}

	assert.True(t, todo.OwnedBy("u1"))
	assert.False(t, todo.OwnedBy("u2"), "assignee may mutate but not delete")
	assert.False(t, todo.OwnedBy("u3"))
}

func TestTodoWithDefaults(t *testing.T) {
	createdAt := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)

	t.Run("legacy row gets defaults", func(t *testing.T) {
		legacy := Todo{
			ID:        "a",
			Title:     "old record",
			Status:    StatusActive,
			OwnerUid:  "u1",
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		got := legacy.WithDefaults()

		assert.Equal(t, createdAt.UnixMilli(), got.Position, "position defaults to createdAt millis")
		assert.Equal(t, PriorityMedium, got.Priority)
		assert.Equal(t, "u1", got.CreatedByUid, "creator defaults to owner")
		require.NotNil(t, got.AssigneeUids)
		assert.Empty(t, got.AssigneeUids)
	})

	t.Run("populated row is untouched", func(t *testing.T) {
		full := Todo{
			ID:           "b",
			Title:        "new record",
			Status:       StatusDone,
			Priority:     PriorityHigh,
			CreatedByUid: "u2",
			OwnerUid:     "u1",
			AssigneeUids: []string{"u2"},
			Position:     7,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}
		got := full.WithDefaults()

		assert.Equal(t, int64(7), got.Position)
		assert.Equal(t, PriorityHigh, got.Priority)
		assert.Equal(t, "u2", got.CreatedByUid)
	})
}

func TestNormalizeAssignees(t *testing.T) {
	assert.Equal(t, []string{"u2"}, NormalizeAssignees([]string{"u2", "u2"}), "duplicates dropped")
	assert.Equal(t, []string{"u1", "u2"}, NormalizeAssignees([]string{" u1 ", "", "u2", "u1"}))
	assert.Equal(t, []string{}, NormalizeAssignees(nil), "never nil")
	assert.Equal(t, []string{}, NormalizeAssignees([]string{"  ", ""}))
}

func TestSortTodos(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("position ascending", func(t *testing.T) {
		list := []Todo{
			{ID: "c", Position: 2},
			{ID: "a", Position: 0},
			{ID: "b", Position: 1},
		}
		SortTodos(list)
		assert.Equal(t, []string{"a", "b", "c"}, ids(list))
	})

	t.Run("ties broken by createdAt then id", func(t *testing.T) {
		// Two legacy rows defaulted to the same position must still order
		// deterministically.
		list := []Todo{
			{ID: "z", Position: 5, CreatedAt: base.Add(time.Hour)},
			{ID: "y", Position: 5, CreatedAt: base},
			{ID: "x", Position: 5, CreatedAt: base},
		}
		SortTodos(list)
		assert.Equal(t, []string{"x", "y", "z"}, ids(list))
	})
}

func ids(list []Todo) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}
