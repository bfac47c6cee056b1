package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCode_Rank(t *testing.T) {
	assert.Equal(t, 1, RoleRoot.Rank())
	assert.Equal(t, 2, RoleBoss.Rank())
	assert.Equal(t, RoleStaff.Rank(), RoleGuest.Rank())
	// Unknown codes rank below every known role.
	assert.Greater(t, RoleCode("INTERN").Rank(), RoleGuest.Rank())
}

func TestRoleCode_Outranks(t *testing.T) {
	assert.True(t, RoleRoot.Outranks(RoleBoss))
	assert.True(t, RoleBoss.Outranks(RoleStaff))
	assert.False(t, RoleStaff.Outranks(RoleBoss))
	// Equal ranks never outrank each other.
	assert.False(t, RoleStaff.Outranks(RoleGuest))
	assert.False(t, RoleGuest.Outranks(RoleStaff))
	assert.False(t, RoleRoot.Outranks(RoleRoot))
	// Every known role outranks an unknown one.
	assert.True(t, RoleGuest.Outranks(RoleCode("INTERN")))
}

func TestEffectiveLogPermission(t *testing.T) {
	// Explicit tiers win regardless of role.
	assert.Equal(t, LogPermissionB, EffectiveLogPermission(LogPermissionB, RoleRoot))
	assert.Equal(t, LogPermissionA, EffectiveLogPermission(LogPermissionA, RoleGuest))

	// Empty or garbage falls back to the role default.
	assert.Equal(t, LogPermissionA, EffectiveLogPermission("", RoleRoot))
	assert.Equal(t, LogPermissionD, EffectiveLogPermission("", RoleStaff))
	assert.Equal(t, LogPermissionD, EffectiveLogPermission("Z", RoleBoss))
}
