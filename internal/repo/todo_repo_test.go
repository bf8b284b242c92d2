package repo

import (
	"testing"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildUpdateSet(t *testing.T) {
	t.Run("empty patch yields no fragments", func(t *testing.T) {
		set, args := buildUpdateSet(dom.TodoPatch{})
		assert.Empty(t, set)
		assert.Empty(t, args)
	})

	t.Run("single field starts at $2", func(t *testing.T) {
		title := "renamed"
		set, args := buildUpdateSet(dom.TodoPatch{Title: &title})
		assert.Equal(t, ", title = $2", set)
		assert.Equal(t, []any{"renamed"}, args)
	})

	t.Run("placeholders follow field order", func(t *testing.T) {
		title := "t"
		desc := "d"
		status := dom.StatusDone
		priority := dom.PriorityLow
		set, args := buildUpdateSet(dom.TodoPatch{
			Title:        &title,
			Description:  &desc,
			Status:       &status,
			Priority:     &priority,
			AssigneeUids: []string{"u2"},
		})
		assert.Equal(t, ", title = $2, description = $3, status = $4, priority = $5, assignee_uids = $6", set)
		assert.Equal(t, []any{"t", "d", "done", "low", []string{"u2"}}, args)
	})

	t.Run("present-empty assignees clears the set", func(t *testing.T) {
		set, args := buildUpdateSet(dom.TodoPatch{AssigneeUids: []string{}})
		assert.Equal(t, ", assignee_uids = $2", set)
		assert.Equal(t, []any{[]string{}}, args)
	})
}
