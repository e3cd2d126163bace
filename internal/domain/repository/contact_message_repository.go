package repository

import "github.com/jhoicas/Polizas-api/internal/domain/entity"

// ContactMessageRepository define el puerto de persistencia para ContactMessage (DIP).
type ContactMessageRepository interface {
	Create(msg *entity.ContactMessage) error
	GetByID(id string) (*entity.ContactMessage, error)
	// List lista mensajes, opcionalmente acotados a una empresa, más recientes primero.
	List(companyID *string) ([]*entity.ContactMessage, error)
	ListByUser(userID string) ([]*entity.ContactMessage, error)
	Update(msg *entity.ContactMessage) error
	Delete(id string) error
}
