package repository

import (
	"time"

	"github.com/jhoicas/Polizas-api/internal/domain/entity"
)

// PolicyFilter filtros de listado de pólizas. PolicyNumber y Plate se
// comparan por substring case-insensitive (ILIKE).
type PolicyFilter struct {
	OwnerUserID  string
	PolicyNumber string
	Plate        string
	CompanyID    *string // nil = sin filtro de empresa
	CreatedByID  string  // forzado para sub_admin: solo lo que él creó
	Limit        int
	Offset       int
}

// PolicyRepository define el puerto de persistencia para Policy (DIP).
type PolicyRepository interface {
	// Create devuelve domain.ErrPolicyNumberExists si el número ya existe.
	Create(policy *entity.Policy) error
	GetByID(id string) (*entity.Policy, error)
	List(filter PolicyFilter) ([]*entity.Policy, error)
	ListByOwner(ownerUserID string, companyID *string) ([]*entity.Policy, error)
	Update(policy *entity.Policy) error
	Delete(id string) error
	// FindExpiring selecciona pólizas con fin de vigencia dentro de [from, to]
	// y Notified=false. Es el único guard de concurrencia del scan.
	FindExpiring(from, to time.Time) ([]*entity.Policy, error)
	MarkNotified(id string) error
}
