package model

import "github.com/google/uuid"

type ActionKind string

const (
	ActionInbound  ActionKind = "INBOUND"
	ActionOutbound ActionKind = "OUTBOUND"
	ActionAdjust   ActionKind = "ADJUST"
	ActionDelete   ActionKind = "DELETE"
	ActionImport   ActionKind = "IMPORT"
)

// MutationLogEntry records one state-changing inventory operation.
// Entries are immutable once created except for the one-way Revoked flag,
// which only the rollback engine flips. Entries are never deleted.
type MutationLogEntry struct {
	BaseModel
	Kind        ActionKind `gorm:"type:varchar(16);not null;index" json:"kind" validate:"required,oneof=INBOUND OUTBOUND ADJUST DELETE IMPORT"`
	StoreID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"store_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	BatchID     *uuid.UUID `gorm:"type:uuid" json:"batch_id,omitempty"`
	Description string     `json:"description"`

	// Operator identity, denormalized so the entry stays readable after
	// the user record changes.
	OperatorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"operator_id"`
	OperatorName string    `gorm:"type:varchar(255)" json:"operator_name"`
	OperatorRole RoleCode  `gorm:"type:varchar(50)" json:"operator_role"`

	Revoked  bool     `gorm:"not null;default:false" json:"revoked"`
	Snapshot Snapshot `gorm:"type:jsonb;serializer:json" json:"snapshot"`
}

// Actor is the identity a revoke request runs as, as supplied by the
// identity provider (JWT claims in this backend).
type Actor struct {
	ID            uuid.UUID     `json:"id"`
	Username      string        `json:"username"`
	Role          RoleCode      `json:"role"`
	LogPermission LogPermission `json:"log_permission"`
}
