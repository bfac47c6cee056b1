package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "stock:inbound"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Record Inbound"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "product:import", Name: "Import Products"},
	// Stock operations
	{Code: "stock:inbound", Name: "Record Inbound"},
	{Code: "stock:outbound", Name: "Record Outbound"},
	{Code: "stock:adjust", Name: "Adjust Stock"},
	// Mutation log
	{Code: "log:view", Name: "View Mutation Log"},
	{Code: "log:revoke", Name: "Revoke Mutation"},
	// Store management
	{Code: "store:view", Name: "View Store"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}
