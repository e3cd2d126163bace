package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
)

var _ repository.PolicyRepository = (*PolicyRepo)(nil)

const policyColumns = `id, policy_number, owner_user_id, company_id, policy_type, risk_type,
		insurer_name, assistance_phone, insured_value, start_date, end_date, notified,
		created_by_id, created_by_role,
		vehicle_plate, vehicle_fasecolda_code, vehicle_model, vehicle_engine_number,
		vehicle_chassis_number, vehicle_service_type, vehicle_type, vehicle_capacity,
		vehicle_department_city, vehicle_commercial_value, vehicle_accessories_value,
		vehicle_total_commercial_value, vehicle_beneficiary,
		created_at, updated_at`

// PolicyRepo implementación del puerto PolicyRepository sobre PostgreSQL.
// El subgrupo vehicular vive en columnas anulables de la misma tabla: una
// póliza no vehicular las deja todas en NULL.
type PolicyRepo struct {
	pool *pgxpool.Pool
}

// NewPolicyRepository construye el adaptador de persistencia para pólizas.
func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepo {
	return &PolicyRepo{pool: pool}
}

// Create persiste una nueva póliza. Devuelve domain.ErrPolicyNumberExists si
// el número de póliza ya existe.
func (r *PolicyRepo) Create(policy *entity.Policy) error {
	query := `
		INSERT INTO policies (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)`
	_, err := r.pool.Exec(context.Background(), query, policyArgs(policy)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPolicyNumberExists
		}
		return fmt.Errorf("insert policy: %w", err)
	}
	return nil
}

// GetByID obtiene una póliza por ID.
func (r *PolicyRepo) GetByID(id string) (*entity.Policy, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+policyColumns+` FROM policies WHERE id = $1`, id)
	p, err := scanPolicy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get policy by id: %w", err)
	}
	return p, nil
}

// List lista pólizas aplicando los filtros indicados, más recientes primero.
func (r *PolicyRepo) List(filter repository.PolicyFilter) ([]*entity.Policy, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + policyColumns + ` FROM policies WHERE 1=1`)
	args := []any{}
	n := 0
	add := func(clause string, v any) {
		n++
		args = append(args, v)
		sb.WriteString(fmt.Sprintf(clause, n))
	}
	if filter.OwnerUserID != "" {
		add(" AND owner_user_id = $%d", filter.OwnerUserID)
	}
	if filter.PolicyNumber != "" {
		add(" AND policy_number ILIKE $%d", "%"+filter.PolicyNumber+"%")
	}
	if filter.Plate != "" {
		add(" AND vehicle_plate ILIKE $%d", "%"+filter.Plate+"%")
	}
	if filter.CompanyID != nil {
		add(" AND company_id = $%d", *filter.CompanyID)
	}
	if filter.CreatedByID != "" {
		add(" AND created_by_id = $%d", filter.CreatedByID)
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
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()
	return collectPolicies(rows)
}

// ListByOwner lista las pólizas de un tomador, opcionalmente acotadas a una empresa.
func (r *PolicyRepo) ListByOwner(ownerUserID string, companyID *string) ([]*entity.Policy, error) {
	query := `
		SELECT ` + policyColumns + ` FROM policies
		WHERE owner_user_id = $1 AND ($2::text IS NULL OR company_id = $2)
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, ownerUserID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list policies by owner: %w", err)
	}
	defer rows.Close()
	return collectPolicies(rows)
}

// Update actualiza una póliza.
func (r *PolicyRepo) Update(policy *entity.Policy) error {
	query := `
		UPDATE policies SET policy_number = $2, owner_user_id = $3, company_id = $4,
			policy_type = $5, risk_type = $6, insurer_name = $7, assistance_phone = $8,
			insured_value = $9, start_date = $10, end_date = $11, notified = $12,
			created_by_id = $13, created_by_role = $14,
			vehicle_plate = $15, vehicle_fasecolda_code = $16, vehicle_model = $17,
			vehicle_engine_number = $18, vehicle_chassis_number = $19, vehicle_service_type = $20,
			vehicle_type = $21, vehicle_capacity = $22, vehicle_department_city = $23,
			vehicle_commercial_value = $24, vehicle_accessories_value = $25,
			vehicle_total_commercial_value = $26, vehicle_beneficiary = $27,
			updated_at = $28
		WHERE id = $1`
	args := policyArgs(policy)
	// policyArgs termina en (created_at, updated_at); el UPDATE no toca created_at.
	args = append(args[:len(args)-2], policy.UpdatedAt)
	_, err := r.pool.Exec(context.Background(), query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPolicyNumberExists
		}
		return fmt.Errorf("update policy: %w", err)
	}
	return nil
}

// Delete elimina una póliza por ID.
func (r *PolicyRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	return nil
}

// FindExpiring selecciona pólizas con fin de vigencia dentro de [from, to] y
// aún no notificadas. El flag notified es el guard de idempotencia del scan.
func (r *PolicyRepo) FindExpiring(from, to time.Time) ([]*entity.Policy, error) {
	query := `
		SELECT ` + policyColumns + ` FROM policies
		WHERE notified = false AND end_date >= $1 AND end_date <= $2
		ORDER BY end_date ASC`
	rows, err := r.pool.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("find expiring policies: %w", err)
	}
	defer rows.Close()
	return collectPolicies(rows)
}

// MarkNotified marca la póliza como notificada.
func (r *PolicyRepo) MarkNotified(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE policies SET notified = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark policy notified: %w", err)
	}
	return nil
}

// policyArgs aplana la entidad al orden de policyColumns.
func policyArgs(p *entity.Policy) []any {
	var (
		plate, fasecolda, model, engine, chassis, serviceType *string
		vehicleType, capacity, departmentCity, beneficiary    *string
		commercialValue, accessoriesValue, totalValue         *decimal.Decimal
	)
	if v := p.Vehicle; v != nil {
		plate, fasecolda, model = &v.Plate, &v.FasecoldaCode, &v.Model
		engine, chassis, serviceType = &v.EngineNumber, &v.ChassisNumber, &v.ServiceType
		vehicleType, capacity = &v.VehicleType, &v.Capacity
		departmentCity, beneficiary = &v.DepartmentCity, &v.Beneficiary
		commercialValue = &v.CommercialValue
		accessoriesValue = &v.AccessoriesValue
		totalValue = &v.TotalCommercialValue
	}
	return []any{
		p.ID, p.PolicyNumber, p.OwnerUserID, p.CompanyID, p.PolicyType, p.RiskType,
		p.InsurerName, p.AssistancePhone, p.InsuredValue, p.StartDate, p.EndDate, p.Notified,
		p.CreatedByID, p.CreatedByRole,
		plate, fasecolda, model, engine, chassis, serviceType, vehicleType, capacity,
		departmentCity, commercialValue, accessoriesValue, totalValue, beneficiary,
		p.CreatedAt, p.UpdatedAt,
	}
}

func scanPolicy(row pgx.Row) (*entity.Policy, error) {
	var p entity.Policy
	var (
		plate, fasecolda, model, engine, chassis, serviceType *string
		vehicleType, capacity, departmentCity, beneficiary    *string
		commercialValue, accessoriesValue, totalValue         *decimal.Decimal
	)
	err := row.Scan(
		&p.ID, &p.PolicyNumber, &p.OwnerUserID, &p.CompanyID, &p.PolicyType, &p.RiskType,
		&p.InsurerName, &p.AssistancePhone, &p.InsuredValue, &p.StartDate, &p.EndDate, &p.Notified,
		&p.CreatedByID, &p.CreatedByRole,
		&plate, &fasecolda, &model, &engine, &chassis, &serviceType, &vehicleType, &capacity,
		&departmentCity, &commercialValue, &accessoriesValue, &totalValue, &beneficiary,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if plate != nil || fasecolda != nil || chassis != nil {
		v := &entity.VehicleDetails{}
		setStr := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		setStr(&v.Plate, plate)
		setStr(&v.FasecoldaCode, fasecolda)
		setStr(&v.Model, model)
		setStr(&v.EngineNumber, engine)
		setStr(&v.ChassisNumber, chassis)
		setStr(&v.ServiceType, serviceType)
		setStr(&v.VehicleType, vehicleType)
		setStr(&v.Capacity, capacity)
		setStr(&v.DepartmentCity, departmentCity)
		setStr(&v.Beneficiary, beneficiary)
		if commercialValue != nil {
			v.CommercialValue = *commercialValue
		}
		if accessoriesValue != nil {
			v.AccessoriesValue = *accessoriesValue
		}
		if totalValue != nil {
			v.TotalCommercialValue = *totalValue
		}
		p.Vehicle = v
	}
	return &p, nil
}

func collectPolicies(rows pgx.Rows) ([]*entity.Policy, error) {
	var list []*entity.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
