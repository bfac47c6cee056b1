package audit

import (
	"testing"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendHeadFirst(t *testing.T) {
	l := NewLog(nil)
	first := entryBy(uuid.New(), model.RoleStaff)
	second := entryBy(uuid.New(), model.RoleStaff)

	l.Append(first)
	l.Append(second)

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestLog_MarkRevoked_OneWay(t *testing.T) {
	e := entryBy(uuid.New(), model.RoleStaff)
	l := NewLog([]*model.MutationLogEntry{e})

	require.NoError(t, l.MarkRevoked(e.ID))
	assert.True(t, e.Revoked)

	err := l.MarkRevoked(e.ID)
	assert.ErrorIs(t, err, apperr.ErrAlreadyRevoked)
	assert.True(t, e.Revoked)
}

func TestLog_MarkRevoked_NotFound(t *testing.T) {
	l := NewLog(nil)
	assert.ErrorIs(t, l.MarkRevoked(uuid.New()), apperr.ErrNotFound)
}

func TestLog_Find(t *testing.T) {
	e := entryBy(uuid.New(), model.RoleStaff)
	l := NewLog([]*model.MutationLogEntry{e})

	got, err := l.Find(e.ID)
	require.NoError(t, err)
	assert.Same(t, e, got)

	_, err = l.Find(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
