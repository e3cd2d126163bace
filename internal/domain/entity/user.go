package entity

import "time"

// User representa un usuario del sistema (tomador, sub_admin, admin o super_user).
// CompanyID es opcional: usuarios anteriores a la multi-tenancy no tienen empresa.
type User struct {
	ID               string
	Name             string
	Document         string // documento de identidad, único
	Email            string // único
	PasswordHash     string // bcrypt hash, nunca se serializa hacia afuera
	Address          string
	City             string
	Phone            string
	BusinessActivity string
	LegalRep         string
	BirthDate        *time.Time
	Active           bool
	Roles            RoleSet
	CompanyID        *string
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
