package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
)

var _ repository.ContactMessageRepository = (*ContactMessageRepo)(nil)

const contactColumns = `id, sender_name, sender_email, subject, body, user_id, company_id,
		read, responded, response, responded_by_id, responded_at, created_at`

// ContactMessageRepo implementación del puerto ContactMessageRepository sobre PostgreSQL.
type ContactMessageRepo struct {
	pool *pgxpool.Pool
}

// NewContactMessageRepository construye el adaptador de persistencia para mensajes de contacto.
func NewContactMessageRepository(pool *pgxpool.Pool) *ContactMessageRepo {
	return &ContactMessageRepo{pool: pool}
}

// Create persiste un nuevo mensaje.
func (r *ContactMessageRepo) Create(msg *entity.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(context.Background(), query,
		msg.ID, msg.SenderName, msg.SenderEmail, msg.Subject, msg.Body,
		msg.UserID, msg.CompanyID, msg.Read, msg.Responded,
		msg.Response, msg.RespondedByID, msg.RespondedAt, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// GetByID obtiene un mensaje por ID.
func (r *ContactMessageRepo) GetByID(id string) (*entity.ContactMessage, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id)
	m, err := scanContactMessage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return m, nil
}

// List lista mensajes, opcionalmente acotados a una empresa, más recientes primero.
func (r *ContactMessageRepo) List(companyID *string) ([]*entity.ContactMessage, error) {
	query := `
		SELECT ` + contactColumns + ` FROM contact_messages
		WHERE ($1::text IS NULL OR company_id = $1)
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()
	return collectContactMessages(rows)
}

// ListByUser lista los mensajes enviados por un usuario.
func (r *ContactMessageRepo) ListByUser(userID string) ([]*entity.ContactMessage, error) {
	query := `
		SELECT ` + contactColumns + ` FROM contact_messages
		WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list contact messages by user: %w", err)
	}
	defer rows.Close()
	return collectContactMessages(rows)
}

// Update actualiza los campos mutables de un mensaje (leído/respuesta).
func (r *ContactMessageRepo) Update(msg *entity.ContactMessage) error {
	query := `
		UPDATE contact_messages SET read = $2, responded = $3, response = $4,
			responded_by_id = $5, responded_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		msg.ID, msg.Read, msg.Responded, msg.Response, msg.RespondedByID, msg.RespondedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}
	return nil
}

// Delete elimina un mensaje por ID.
func (r *ContactMessageRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	return nil
}

func scanContactMessage(row pgx.Row) (*entity.ContactMessage, error) {
	var m entity.ContactMessage
	err := row.Scan(
		&m.ID, &m.SenderName, &m.SenderEmail, &m.Subject, &m.Body,
		&m.UserID, &m.CompanyID, &m.Read, &m.Responded,
		&m.Response, &m.RespondedByID, &m.RespondedAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectContactMessages(rows pgx.Rows) ([]*entity.ContactMessage, error) {
	var list []*entity.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
