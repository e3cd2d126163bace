package repository

import "github.com/jhoicas/Polizas-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// No hay borrado físico: la baja es Update con Active=false.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(includeInactive bool, limit, offset int) ([]*entity.Company, error)
}
