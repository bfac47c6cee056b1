package audit

import (
	"testing"

	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func entryBy(operatorID uuid.UUID, role model.RoleCode) *model.MutationLogEntry {
	e := &model.MutationLogEntry{
		Kind:         model.ActionOutbound,
		OperatorID:   operatorID,
		OperatorRole: role,
	}
	e.ID = uuid.New()
	return e
}

func TestCanRevoke_TierA_AnyEntry(t *testing.T) {
	actor := model.Actor{ID: uuid.New(), Role: model.RoleStaff, LogPermission: model.LogPermissionA}

	assert.True(t, CanRevoke(entryBy(uuid.New(), model.RoleRoot), actor))
	assert.True(t, CanRevoke(entryBy(uuid.New(), model.RoleGuest), actor))
	assert.True(t, CanRevoke(entryBy(actor.ID, model.RoleStaff), actor))
}

func TestCanRevoke_TierB_RequiresStrictOutranking(t *testing.T) {
	actor := model.Actor{ID: uuid.New(), Role: model.RoleBoss, LogPermission: model.LogPermissionB}

	assert.True(t, CanRevoke(entryBy(uuid.New(), model.RoleFrontDesk), actor))
	assert.True(t, CanRevoke(entryBy(uuid.New(), model.RoleStaff), actor))
	// Equal rank is not strictly lower authority.
	assert.False(t, CanRevoke(entryBy(uuid.New(), model.RoleBoss), actor))
	assert.False(t, CanRevoke(entryBy(uuid.New(), model.RoleRoot), actor))
}

func TestCanRevoke_TierB_SharedBottomRank(t *testing.T) {
	// STAFF and GUEST share the bottom rank, so neither outranks the other.
	staff := model.Actor{ID: uuid.New(), Role: model.RoleStaff, LogPermission: model.LogPermissionB}
	assert.False(t, CanRevoke(entryBy(uuid.New(), model.RoleGuest), staff))
}

func TestCanRevoke_TiersCAndD_SelfOnly(t *testing.T) {
	for _, tier := range []model.LogPermission{model.LogPermissionC, model.LogPermissionD} {
		actor := model.Actor{ID: uuid.New(), Role: model.RoleBoss, LogPermission: tier}

		assert.True(t, CanRevoke(entryBy(actor.ID, model.RoleBoss), actor), "tier %s", tier)
		// Outranking does not help below tier B.
		assert.False(t, CanRevoke(entryBy(uuid.New(), model.RoleGuest), actor), "tier %s", tier)
	}
}

func TestCanRevoke_Defaults(t *testing.T) {
	// ROOT without an explicit tier defaults to A.
	root := model.Actor{ID: uuid.New(), Role: model.RoleRoot}
	assert.True(t, CanRevoke(entryBy(uuid.New(), model.RoleBoss), root))

	// Anyone else without an explicit tier defaults to D (self only).
	staff := model.Actor{ID: uuid.New(), Role: model.RoleStaff}
	assert.True(t, CanRevoke(entryBy(staff.ID, model.RoleStaff), staff))
	assert.False(t, CanRevoke(entryBy(uuid.New(), model.RoleGuest), staff))
}

func TestCanRevoke_Pure(t *testing.T) {
	entry := entryBy(uuid.New(), model.RoleStaff)
	actor := model.Actor{ID: uuid.New(), Role: model.RoleBoss, LogPermission: model.LogPermissionB}

	first := CanRevoke(entry, actor)
	second := CanRevoke(entry, actor)
	assert.Equal(t, first, second)
	assert.False(t, entry.Revoked)
}
