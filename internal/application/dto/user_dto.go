package dto

import "time"

// RegisterRequest entrada para registro de usuario. El campo Roles solo se
// respeta cuando el creador autenticado tiene privilegios; el registro
// público siempre queda como ["user"].
type RegisterRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=200"`
	Document         string   `json:"document" validate:"required,min=1,max=30"`
	Email            string   `json:"email" validate:"required,email"`
	Password         string   `json:"password" validate:"required,min=8"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Phone            string   `json:"phone"`
	BusinessActivity string   `json:"business_activity"`
	LegalRep         string   `json:"legal_rep"`
	BirthDate        string   `json:"birth_date"` // formato 2006-01-02
	Roles            []string `json:"roles" validate:"omitempty,dive,oneof=user sub_admin admin super_user"`
	CompanyID        string   `json:"company_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
// Password solo se respeta en el camino de auto-actualización.
type UpdateUserRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Password         *string `json:"password" validate:"omitempty,min=8"`
	Address          *string `json:"address"`
	City             *string `json:"city"`
	Phone            *string `json:"phone"`
	BusinessActivity *string `json:"business_activity"`
	LegalRep         *string `json:"legal_rep"`
}

// UpdateRolesRequest entrada para reemplazar los roles de un usuario (solo super_user).
type UpdateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=user sub_admin admin super_user"`
}

// UserResponse salida de un usuario (nunca incluye el hash de password).
type UserResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Document         string     `json:"document"`
	Email            string     `json:"email"`
	Address          string     `json:"address,omitempty"`
	City             string     `json:"city,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	BusinessActivity string     `json:"business_activity,omitempty"`
	LegalRep         string     `json:"legal_rep,omitempty"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	Active           bool       `json:"active"`
	Roles            []string   `json:"roles"`
	CompanyID        *string    `json:"company_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
