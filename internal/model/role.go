package model

// RoleCode identifies a position in the fixed role hierarchy.
type RoleCode string

const (
	RoleRoot             RoleCode = "ROOT"
	RoleBoss             RoleCode = "BOSS"
	RoleFrontDesk        RoleCode = "FRONT_DESK"
	RolePurchaseManager  RoleCode = "PURCHASE_MANAGER"
	RoleWarehouseManager RoleCode = "WAREHOUSE_MANAGER"
	RoleSalesManager     RoleCode = "SALES_MANAGER"
	RoleStaff            RoleCode = "STAFF"
	RoleGuest            RoleCode = "GUEST"
)

// Smaller rank means higher authority. STAFF and GUEST share the bottom
// rank, so neither strictly outranks the other.
var roleRanks = map[RoleCode]int{
	RoleRoot:             1,
	RoleBoss:             2,
	RoleFrontDesk:        3,
	RolePurchaseManager:  4,
	RoleWarehouseManager: 5,
	RoleSalesManager:     6,
	RoleStaff:            7,
	RoleGuest:            7,
}

const unknownRank = 99

// Rank returns the role's numeric authority rank. Unknown codes rank
// below every known role.
func (r RoleCode) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return unknownRank
}

// Outranks reports whether r has strictly higher authority than other.
func (r RoleCode) Outranks(other RoleCode) bool {
	return r.Rank() < other.Rank()
}

// Role is the seeded lookup table behind RoleCode, used by the role
// settings screens.
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        RoleCode    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Rank        int         `gorm:"not null" json:"rank"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// DefaultRoles defines the default roles in the system.
var DefaultRoles = []Role{
	{Code: RoleRoot, Name: "Root", Rank: 1, Description: "Full system access"},
	{Code: RoleBoss, Name: "Boss", Rank: 2, Description: "Owner-level access across all stores"},
	{Code: RoleFrontDesk, Name: "Front Desk", Rank: 3, Description: "Front desk operations"},
	{Code: RolePurchaseManager, Name: "Purchase Manager", Rank: 4, Description: "Inbound and supplier management"},
	{Code: RoleWarehouseManager, Name: "Warehouse Manager", Rank: 5, Description: "Stock keeping and adjustments"},
	{Code: RoleSalesManager, Name: "Sales Manager", Rank: 6, Description: "Outbound operations"},
	{Code: RoleStaff, Name: "Staff", Rank: 7, Description: "Day-to-day operations"},
	{Code: RoleGuest, Name: "Guest", Rank: 7, Description: "Read-only visitor"},
}
