package audit

import "go-pharmacy-stock/internal/model"

// CanRevoke evaluates whether the actor may revoke the entry. Pure
// function, no side effects; the revoked flag itself is checked by the
// engine, not here.
//
// Tier A revokes anything; tier B requires the requester's role to
// strictly outrank the entry's recorded role; tiers C and D only allow
// revoking the actor's own entries.
func CanRevoke(entry *model.MutationLogEntry, actor model.Actor) bool {
	switch model.EffectiveLogPermission(actor.LogPermission, actor.Role) {
	case model.LogPermissionA:
		return true
	case model.LogPermissionB:
		return actor.Role.Outranks(entry.OperatorRole)
	case model.LogPermissionC, model.LogPermissionD:
		return entry.OperatorID == actor.ID
	}
	return false
}
