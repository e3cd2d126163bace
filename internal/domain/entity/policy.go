package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de póliza que llevan el subgrupo de campos vehiculares.
const (
	PolicyTypeVehicle = "vehiculo"
	PolicyTypeSOAT    = "soat"
)

// Policy representa una póliza de seguro, la entidad central del sistema.
//
// Invariantes:
//   - EndDate = StartDate + 1 año, calculada por el sistema al crear; nunca
//     se acepta del cliente en la creación.
//   - Notified arranca en false y pasa a true una sola vez por vigencia.
//   - CreatedByID/CreatedByRole son inmutables una vez asignados y sostienen
//     la restricción "un sub_admin solo toca lo que creó".
type Policy struct {
	ID              string
	PolicyNumber    string // único
	OwnerUserID     string // el tomador
	CompanyID       *string
	PolicyType      string
	RiskType        string
	InsurerName     string
	AssistancePhone string
	InsuredValue    decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
	Notified        bool
	CreatedByID     *string
	CreatedByRole   *string

	Vehicle *VehicleDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleDetails subgrupo opcional, presente solo cuando PolicyType es un
// producto vehicular.
type VehicleDetails struct {
	Plate                string
	FasecoldaCode        string
	Model                string
	EngineNumber         string
	ChassisNumber        string
	ServiceType          string
	VehicleType          string
	Capacity             string // tonelaje / cilindraje / pasajeros
	DepartmentCity       string
	CommercialValue      decimal.Decimal
	AccessoriesValue     decimal.Decimal
	TotalCommercialValue decimal.Decimal
	Beneficiary          string
}

// HasVehicle indica si la póliza lleva el subgrupo vehicular.
func (p *Policy) HasVehicle() bool {
	return p.Vehicle != nil
}

// TermEnd calcula el fin de vigencia para un inicio dado: exactamente un año.
func TermEnd(start time.Time) time.Time {
	return start.AddDate(1, 0, 0)
}

// DaysUntilExpiry días restantes hasta el fin de vigencia (techo a días enteros).
func (p *Policy) DaysUntilExpiry(now time.Time) int {
	d := p.EndDate.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
