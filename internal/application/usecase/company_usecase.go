package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
)

// CompanyUseCase reglas de negocio para empresas. Las mutaciones están
// restringidas a super_user en la capa HTTP.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa. Devuelve domain.ErrDuplicate si el NIT ya existe.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, err := uc.repo.GetByNIT(in.NIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	primary := in.PrimaryColor
	if primary == "" {
		primary = entity.DefaultPrimaryColor
	}
	secondary := in.SecondaryColor
	if secondary == "" {
		secondary = entity.DefaultSecondaryColor
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           in.Name,
		NIT:            in.NIT,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		LogoURL:        in.LogoURL,
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas ordenadas por nombre. Por defecto solo las activas.
func (uc *CompanyUseCase) List(includeInactive bool, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza una empresa (campos opcionales).
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.LogoURL != nil {
		company.LogoURL = *in.LogoURL
	}
	if in.PrimaryColor != nil {
		company.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		company.SecondaryColor = *in.SecondaryColor
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// ToggleStatus activa/desactiva una empresa. La baja nunca es física.
func (uc *CompanyUseCase) ToggleStatus(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	company.Active = !company.Active
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		NIT:            c.NIT,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		LogoURL:        c.LogoURL,
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
