package repository

import "github.com/jhoicas/Polizas-api/internal/domain/entity"

// UserFilter filtros de búsqueda de usuarios (substring, case-insensitive).
type UserFilter struct {
	Name      string
	Email     string
	Document  string
	CompanyID *string // nil = sin filtro de empresa (solo super_user)
	Limit     int
	Offset    int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByResetToken(token string) (*entity.User, error)
	Update(user *entity.User) error
	List(filter UserFilter) ([]*entity.User, error)
	Search(term string, companyID *string) ([]*entity.User, error)
	Delete(id string) error
	// FirstActiveAdminByCompany devuelve el primer admin activo de la empresa,
	// o nil si no hay ninguno (paso (a) de la cadena de notificación).
	FirstActiveAdminByCompany(companyID string) (*entity.User, error)
}
