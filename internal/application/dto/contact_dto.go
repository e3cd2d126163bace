package dto

import "time"

// CreateContactMessageRequest entrada del formulario de contacto. UserID es
// opcional: los visitantes anónimos también pueden escribir.
type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"required,min=1"`
	UserID  string `json:"user_id" validate:"omitempty,uuid"`
}

// RespondMessageRequest respuesta de un admin a un mensaje.
type RespondMessageRequest struct {
	Response string `json:"response" validate:"required,min=1"`
}

// ContactMessageResponse salida de un mensaje de contacto.
type ContactMessageResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	UserID        *string    `json:"user_id,omitempty"`
	CompanyID     *string    `json:"company_id,omitempty"`
	Read          bool       `json:"read"`
	Responded     bool       `json:"responded"`
	Response      *string    `json:"response,omitempty"`
	RespondedByID *string    `json:"responded_by_id,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
