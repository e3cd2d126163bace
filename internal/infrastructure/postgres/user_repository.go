package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, document, email, password_hash, address, city, phone,
		business_activity, legal_rep, birth_date, active, roles, company_id,
		reset_token, reset_token_expiry, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario. Distingue el choque de email del de
// documento por el nombre del constraint.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Name, user.Document, user.Email, user.PasswordHash,
		user.Address, user.City, user.Phone, user.BusinessActivity, user.LegalRep,
		user.BirthDate, user.Active, []string(user.Roles), user.CompanyID,
		user.ResetToken, user.ResetTokenExpiry, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(constraintName(err), "document") {
				return domain.ErrDocumentExists
			}
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

// GetByResetToken obtiene un usuario por su token de restablecimiento vigente.
func (r *UserRepo) GetByResetToken(token string) (*entity.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE reset_token = $1 LIMIT 1`, token)
}

func (r *UserRepo) findOne(query string, args ...any) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), query, args...)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, document = $3, email = $4, password_hash = $5,
			address = $6, city = $7, phone = $8, business_activity = $9, legal_rep = $10,
			birth_date = $11, active = $12, roles = $13, company_id = $14,
			reset_token = $15, reset_token_expiry = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Name, user.Document, user.Email, user.PasswordHash,
		user.Address, user.City, user.Phone, user.BusinessActivity, user.LegalRep,
		user.BirthDate, user.Active, []string(user.Roles), user.CompanyID,
		user.ResetToken, user.ResetTokenExpiry, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(constraintName(err), "document") {
				return domain.ErrDocumentExists
			}
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios aplicando los filtros indicados, con paginación.
func (r *UserRepo) List(filter repository.UserFilter) ([]*entity.User, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + userColumns + ` FROM users WHERE 1=1`)
	args := []any{}
	n := 0
	add := func(clause string, v any) {
		n++
		args = append(args, v)
		sb.WriteString(fmt.Sprintf(clause, n))
	}
	if filter.Name != "" {
		add(" AND name ILIKE $%d", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		add(" AND email ILIKE $%d", "%"+filter.Email+"%")
	}
	if filter.Document != "" {
		add(" AND document ILIKE $%d", "%"+filter.Document+"%")
	}
	if filter.CompanyID != nil {
		add(" AND company_id = $%d", *filter.CompanyID)
	}
	sb.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		add(" LIMIT $%d", filter.Limit)
	}
	if filter.Offset > 0 {
		add(" OFFSET $%d", filter.Offset)
	}

	rows, err := r.pool.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Search busca usuarios cuyo nombre, email o documento contenga el término.
func (r *UserRepo) Search(term string, companyID *string) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE (name ILIKE $1 OR email ILIKE $1 OR document ILIKE $1)
			AND ($2::text IS NULL OR company_id = $2)
		ORDER BY name ASC LIMIT 50`
	rows, err := r.pool.Query(context.Background(), query, "%"+term+"%", companyID)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// FirstActiveAdminByCompany devuelve el primer admin activo de la empresa, o nil.
func (r *UserRepo) FirstActiveAdminByCompany(companyID string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE company_id = $1 AND active = true AND 'admin' = ANY(roles)
		ORDER BY created_at ASC LIMIT 1`
	return r.findOne(query, companyID)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var roles []string
	err := row.Scan(
		&u.ID, &u.Name, &u.Document, &u.Email, &u.PasswordHash,
		&u.Address, &u.City, &u.Phone, &u.BusinessActivity, &u.LegalRep,
		&u.BirthDate, &u.Active, &roles, &u.CompanyID,
		&u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Roles = entity.RoleSet(roles)
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
