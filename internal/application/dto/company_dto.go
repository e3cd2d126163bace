package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (solo super_user).
type CreateCompanyRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	NIT            string `json:"nit" validate:"required,min=1,max=20"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	LogoURL        *string `json:"logo_url"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NIT            string    `json:"nit"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	LogoURL        string    `json:"logo_url,omitempty"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompanyListResponse lista de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
