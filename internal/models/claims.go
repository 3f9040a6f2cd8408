package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	PermissionRatesRead  = "rates:read"
	PermissionRatesWrite = "rates:write"
	PermissionHistory    = "history:read"
)

const RoleAdmin = "admin"

type AdminClaims struct {
	jwt.RegisteredClaims
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *AdminClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionRatesRead,
			PermissionRatesWrite,
			PermissionHistory,
		}
	default:
		return []string{}
	}
}
