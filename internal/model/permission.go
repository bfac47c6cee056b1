package model

// LogPermission is the mutation-log revocation tier a user carries,
// independent of their role.
type LogPermission string

const (
	// LogPermissionA may revoke any pending entry regardless of actor.
	LogPermissionA LogPermission = "A"
	// LogPermissionB may revoke entries whose recorded actor is strictly
	// outranked by the requester.
	LogPermissionB LogPermission = "B"
	// LogPermissionC and LogPermissionD may only revoke their own entries.
	LogPermissionC LogPermission = "C"
	LogPermissionD LogPermission = "D"
)

// DefaultLogPermission returns the tier assumed when a user carries no
// explicit one: A for ROOT, D for everyone else.
func DefaultLogPermission(role RoleCode) LogPermission {
	if role == RoleRoot {
		return LogPermissionA
	}
	return LogPermissionD
}

// EffectiveLogPermission resolves an explicit tier, falling back to the
// role's default when empty.
func EffectiveLogPermission(tier LogPermission, role RoleCode) LogPermission {
	switch tier {
	case LogPermissionA, LogPermissionB, LogPermissionC, LogPermissionD:
		return tier
	}
	return DefaultLogPermission(role)
}
