package entity

import "time"

// ContactMessage mensaje del formulario de contacto. Puede venir de un
// visitante anónimo (UserID nil) o de un usuario autenticado.
// Read y Responded solo avanzan: no hay "des-leer" ni "des-responder".
type ContactMessage struct {
	ID            string
	SenderName    string
	SenderEmail   string
	Subject       string
	Body          string
	UserID        *string
	CompanyID     *string
	Read          bool
	Responded     bool
	Response      *string
	RespondedByID *string
	RespondedAt   *time.Time
	CreatedAt     time.Time
}
