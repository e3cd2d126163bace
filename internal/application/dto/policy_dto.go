package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePolicyRequest entrada para crear una póliza. No existe campo de fin
// de vigencia: el sistema lo calcula siempre como inicio + 1 año.
type CreatePolicyRequest struct {
	PolicyNumber    string          `json:"policy_number" validate:"required,min=1,max=50"`
	UserID          string          `json:"user_id" validate:"required,uuid"`
	PolicyType      string          `json:"policy_type" validate:"required"`
	RiskType        string          `json:"risk_type"`
	InsurerName     string          `json:"insurer_name"`
	AssistancePhone string          `json:"assistance_phone"`
	InsuredValue    decimal.Decimal `json:"insured_value"`
	StartDate       string          `json:"start_date" validate:"required"` // formato 2006-01-02

	Vehicle *VehicleRequest `json:"vehicle,omitempty"`
}

// VehicleRequest subgrupo vehicular opcional.
type VehicleRequest struct {
	Plate                string          `json:"plate"`
	FasecoldaCode        string          `json:"fasecolda_code"`
	Model                string          `json:"model"`
	EngineNumber         string          `json:"engine_number"`
	ChassisNumber        string          `json:"chassis_number"`
	ServiceType          string          `json:"service_type"`
	VehicleType          string          `json:"vehicle_type"`
	Capacity             string          `json:"capacity"`
	DepartmentCity       string          `json:"department_city"`
	CommercialValue      decimal.Decimal `json:"commercial_value"`
	AccessoriesValue     decimal.Decimal `json:"accessories_value"`
	TotalCommercialValue decimal.Decimal `json:"total_commercial_value"`
	Beneficiary          string          `json:"beneficiary"`
}

// UpdatePolicyRequest entrada para actualizar una póliza. EndDate es el único
// camino por el que un cliente puede tocar el fin de vigencia; editar
// StartDate nunca lo recalcula.
type UpdatePolicyRequest struct {
	UserID          *string          `json:"user_id" validate:"omitempty,uuid"`
	PolicyType      *string          `json:"policy_type"`
	RiskType        *string          `json:"risk_type"`
	InsurerName     *string          `json:"insurer_name"`
	AssistancePhone *string          `json:"assistance_phone"`
	InsuredValue    *decimal.Decimal `json:"insured_value"`
	StartDate       *string          `json:"start_date"`
	EndDate         *string          `json:"end_date"`

	Vehicle *VehicleRequest `json:"vehicle,omitempty"`
}

// ListPoliciesRequest filtros de listado.
type ListPoliciesRequest struct {
	UserID       string `query:"user_id"`
	PolicyNumber string `query:"policy_number"`
	Plate        string `query:"plate"`
	CompanyID    string `query:"company_id"`
	Limit        int    `query:"limit"`
	Skip         int    `query:"skip"`
}

// VehicleResponse subgrupo vehicular en respuestas.
type VehicleResponse struct {
	Plate                string          `json:"plate,omitempty"`
	FasecoldaCode        string          `json:"fasecolda_code,omitempty"`
	Model                string          `json:"model,omitempty"`
	EngineNumber         string          `json:"engine_number,omitempty"`
	ChassisNumber        string          `json:"chassis_number,omitempty"`
	ServiceType          string          `json:"service_type,omitempty"`
	VehicleType          string          `json:"vehicle_type,omitempty"`
	Capacity             string          `json:"capacity,omitempty"`
	DepartmentCity       string          `json:"department_city,omitempty"`
	CommercialValue      decimal.Decimal `json:"commercial_value"`
	AccessoriesValue     decimal.Decimal `json:"accessories_value"`
	TotalCommercialValue decimal.Decimal `json:"total_commercial_value"`
	Beneficiary          string          `json:"beneficiary,omitempty"`
}

// PolicyResponse salida de una póliza.
type PolicyResponse struct {
	ID              string           `json:"id"`
	PolicyNumber    string           `json:"policy_number"`
	UserID          string           `json:"user_id"`
	CompanyID       *string          `json:"company_id,omitempty"`
	PolicyType      string           `json:"policy_type"`
	RiskType        string           `json:"risk_type,omitempty"`
	InsurerName     string           `json:"insurer_name,omitempty"`
	AssistancePhone string           `json:"assistance_phone,omitempty"`
	InsuredValue    decimal.Decimal  `json:"insured_value"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
	Notified        bool             `json:"notified"`
	CreatedByID     *string          `json:"created_by_id,omitempty"`
	CreatedByRole   *string          `json:"created_by_role,omitempty"`
	Vehicle         *VehicleResponse `json:"vehicle,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PolicyListResponse lista de pólizas.
type PolicyListResponse struct {
	Items []PolicyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ExpiryScanResponse resultado de una corrida manual del scan de vencimientos.
type ExpiryScanResponse struct {
	Scanned  int `json:"scanned"`
	Notified int `json:"notified"`
}
