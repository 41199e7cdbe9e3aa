package domain

// OperatorRole is the platform-wide administrative tier. It is entirely
// separate from ProfileRole even though the value sets overlap.
type OperatorRole string

const (
	OperatorRoleAdmin OperatorRole = "admin"
	OperatorRoleUser  OperatorRole = "user"
	OperatorRoleGuest OperatorRole = "guest"
)

// AssignRoleRequest assigns a platform role to a target caller.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user guest"`
}

// RoleResponse reports the caller's platform role.
type RoleResponse struct {
	Role    OperatorRole `json:"role"`
	IsAdmin bool         `json:"is_admin"`
}
