package entity

// Roles válidos del sistema. Un usuario puede tener varios a la vez.
const (
	RoleUser      = "user"
	RoleSubAdmin  = "sub_admin"
	RoleAdmin     = "admin"
	RoleSuperUser = "super_user"
)

// RoleSet conjunto de roles de un usuario. La autorización es por
// intersección (any-match), nunca por comparación de un rol único.
type RoleSet []string

// Has indica si el conjunto contiene el rol dado.
func (rs RoleSet) Has(role string) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// HasAny indica si el conjunto interseca con alguno de los roles requeridos.
func (rs RoleSet) HasAny(required ...string) bool {
	for _, req := range required {
		if rs.Has(req) {
			return true
		}
	}
	return false
}

// IsPrivileged indica si el conjunto incluye admin o super_user.
func (rs RoleSet) IsPrivileged() bool {
	return rs.HasAny(RoleAdmin, RoleSuperUser)
}

// IsValidRole valida que el rol pertenezca al conjunto cerrado de roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleSubAdmin, RoleAdmin, RoleSuperUser:
		return true
	}
	return false
}
