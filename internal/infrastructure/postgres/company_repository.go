package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, nit, address, phone, email, logo_url,
		primary_color, secondary_color, active, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.NIT, company.Address, company.Phone,
		company.Email, company.LogoURL, company.PrimaryColor, company.SecondaryColor,
		company.Active, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.findOne(`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByNIT obtiene una empresa por NIT.
func (r *CompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	return r.findOne(`SELECT `+companyColumns+` FROM companies WHERE nit = $1 LIMIT 1`, nit)
}

func (r *CompanyRepo) findOne(query string, args ...any) (*entity.Company, error) {
	var c entity.Company
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.Name, &c.NIT, &c.Address, &c.Phone, &c.Email, &c.LogoURL,
		&c.PrimaryColor, &c.SecondaryColor, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza una empresa.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, nit = $3, address = $4, phone = $5, email = $6,
			logo_url = $7, primary_color = $8, secondary_color = $9, active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.NIT, company.Address, company.Phone,
		company.Email, company.LogoURL, company.PrimaryColor, company.SecondaryColor,
		company.Active, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List lista empresas con paginación. includeInactive=false filtra las dadas de baja.
func (r *CompanyRepo) List(includeInactive bool, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + ` FROM companies
		WHERE ($1 OR active = true)
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, includeInactive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.NIT, &c.Address, &c.Phone, &c.Email, &c.LogoURL,
			&c.PrimaryColor, &c.SecondaryColor, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
