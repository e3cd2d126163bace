package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Polizas-api/internal/application/authz"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// PolicyPDFGenerator puerto para la carátula PDF de una póliza.
type PolicyPDFGenerator interface {
	GeneratePolicyPDF(policy *entity.Policy, owner *entity.User, company *entity.Company) ([]byte, error)
}

// PolicyUseCase aplica las reglas del ciclo de vida de pólizas: vigencia de
// un año calculada por el sistema, resolución de empresa, sello del creador y
// la restricción de sub_admin sobre lo que no creó.
type PolicyUseCase struct {
	policyRepo  repository.PolicyRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	pdf         PolicyPDFGenerator
}

// NewPolicyUseCase construye el caso de uso con los puertos de persistencia.
func NewPolicyUseCase(policyRepo repository.PolicyRepository, userRepo repository.UserRepository, companyRepo repository.CompanyRepository, pdf PolicyPDFGenerator) *PolicyUseCase {
	return &PolicyUseCase{policyRepo: policyRepo, userRepo: userRepo, companyRepo: companyRepo, pdf: pdf}
}

// Create crea una póliza. El fin de vigencia es siempre inicio + 1 año, sin
// importar lo que traiga el request; la empresa se resuelve desde el actor y
// si no, desde el tomador; que ninguno tenga empresa es un estado legal.
func (uc *PolicyUseCase) Create(in dto.CreatePolicyRequest, actor authz.Actor) (*dto.PolicyResponse, error) {
	owner, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	companyID := authz.EffectiveCompanyForCreation(actor, owner.CompanyID)

	now := time.Now()
	policy := &entity.Policy{
		ID:              uuid.New().String(),
		PolicyNumber:    in.PolicyNumber,
		OwnerUserID:     owner.ID,
		CompanyID:       companyID,
		PolicyType:      in.PolicyType,
		RiskType:        in.RiskType,
		InsurerName:     in.InsurerName,
		AssistancePhone: in.AssistancePhone,
		InsuredValue:    in.InsuredValue,
		StartDate:       start,
		EndDate:         entity.TermEnd(start),
		Notified:        false,
		Vehicle:         vehicleFromRequest(in.Vehicle),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Sello del creador: inmutable después de esto.
	if actor.ID != "" && len(actor.Roles) > 0 {
		role := primaryRole(actor.Roles)
		policy.CreatedByID = &actor.ID
		policy.CreatedByRole = &role
	}

	if err := uc.policyRepo.Create(policy); err != nil {
		return nil, err
	}
	return toPolicyResponse(policy), nil
}

// List lista pólizas con filtros, aplicando el scoping de empresa y el
// candado de sub_admin: un sub_admin sin rol admin/super_user solo ve lo que
// él creó, sin importar qué otros filtros pida.
func (uc *PolicyUseCase) List(in dto.ListPoliciesRequest, actor authz.Actor) (*dto.PolicyListResponse, error) {
	var requested *string
	if in.CompanyID != "" {
		requested = &in.CompanyID
	}

	limit := in.Limit
	if limit <= 0 {
		limit = 100
	}

	filter := repository.PolicyFilter{
		OwnerUserID:  in.UserID,
		PolicyNumber: in.PolicyNumber,
		Plate:        in.Plate,
		CompanyID:    authz.EffectiveCompanyFilter(actor, requested),
		Limit:        limit,
		Offset:       in.Skip,
	}
	if actor.IsSubAdminOnly() {
		filter.CreatedByID = actor.ID
	}

	list, err := uc.policyRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PolicyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPolicyResponse(p))
	}
	return &dto.PolicyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ListByOwner lista las pólizas de un tomador. Un usuario raso solo puede
// consultar las suyas; un sub_admin sin privilegios solo ve, dentro de las
// del tomador, las que él mismo creó.
func (uc *PolicyUseCase) ListByOwner(ownerUserID string, actor authz.Actor) ([]dto.PolicyResponse, error) {
	if !actor.HasAnyRole(entity.RoleSubAdmin, entity.RoleAdmin, entity.RoleSuperUser) && actor.ID != ownerUserID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.policyRepo.ListByOwner(ownerUserID, authz.EffectiveCompanyFilter(actor, nil))
	if err != nil {
		return nil, err
	}
	items := make([]dto.PolicyResponse, 0, len(list))
	for _, p := range list {
		if actor.IsSubAdminOnly() {
			if p.CreatedByID == nil || *p.CreatedByID != actor.ID {
				continue
			}
		}
		items = append(items, *toPolicyResponse(p))
	}
	return items, nil
}

// GetByID obtiene una póliza. Para un sub_admin sin privilegios la lectura
// falla con ErrForbidden si él no la creó.
func (uc *PolicyUseCase) GetByID(id string, actor authz.Actor) (*dto.PolicyResponse, error) {
	policy, err := uc.loadAuthorized(id, actor)
	if err != nil {
		return nil, err
	}
	return toPolicyResponse(policy), nil
}

// Update actualiza una póliza. Las fechas no se recalculan: editar el inicio
// de vigencia no mueve el fin; el fin solo cambia si viene explícito.
func (uc *PolicyUseCase) Update(id string, in dto.UpdatePolicyRequest, actor authz.Actor) (*dto.PolicyResponse, error) {
	policy, err := uc.loadAuthorized(id, actor)
	if err != nil {
		return nil, err
	}

	if in.UserID != nil && *in.UserID != policy.OwnerUserID {
		newOwner, err := uc.userRepo.GetByID(*in.UserID)
		if err != nil {
			return nil, err
		}
		if newOwner == nil {
			return nil, domain.ErrUserNotFound
		}
		policy.OwnerUserID = newOwner.ID
	}
	if in.PolicyType != nil {
		policy.PolicyType = *in.PolicyType
	}
	if in.RiskType != nil {
		policy.RiskType = *in.RiskType
	}
	if in.InsurerName != nil {
		policy.InsurerName = *in.InsurerName
	}
	if in.AssistancePhone != nil {
		policy.AssistancePhone = *in.AssistancePhone
	}
	if in.InsuredValue != nil {
		policy.InsuredValue = *in.InsuredValue
	}
	if in.StartDate != nil {
		start, err := time.Parse(dateLayout, *in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		policy.StartDate = start
	}
	if in.EndDate != nil {
		end, err := time.Parse(dateLayout, *in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		policy.EndDate = end
	}
	if in.Vehicle != nil {
		policy.Vehicle = vehicleFromRequest(in.Vehicle)
	}
	policy.UpdatedAt = time.Now()

	if err := uc.policyRepo.Update(policy); err != nil {
		return nil, err
	}
	return toPolicyResponse(policy), nil
}

// Delete elimina físicamente una póliza, con el mismo chequeo de creador.
func (uc *PolicyUseCase) Delete(id string, actor authz.Actor) error {
	if _, err := uc.loadAuthorized(id, actor); err != nil {
		return err
	}
	return uc.policyRepo.Delete(id)
}

// GeneratePDF arma la carátula PDF de la póliza.
func (uc *PolicyUseCase) GeneratePDF(id string, actor authz.Actor) ([]byte, error) {
	policy, err := uc.loadAuthorized(id, actor)
	if err != nil {
		return nil, err
	}
	owner, err := uc.userRepo.GetByID(policy.OwnerUserID)
	if err != nil {
		return nil, err
	}
	var company *entity.Company
	if policy.CompanyID != nil {
		company, err = uc.companyRepo.GetByID(*policy.CompanyID)
		if err != nil {
			return nil, err
		}
	}
	return uc.pdf.GeneratePolicyPDF(policy, owner, company)
}

// loadAuthorized carga la póliza y aplica la restricción de creador para
// sub_admin sin privilegios.
func (uc *PolicyUseCase) loadAuthorized(id string, actor authz.Actor) (*entity.Policy, error) {
	policy, err := uc.policyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, domain.ErrPolicyNotFound
	}
	if actor.IsSubAdminOnly() {
		if policy.CreatedByID == nil || *policy.CreatedByID != actor.ID {
			return nil, domain.ErrForbidden
		}
	}
	return policy, nil
}

// primaryRole elige el rol representativo a sellar como created_by_role.
func primaryRole(roles entity.RoleSet) string {
	for _, r := range []string{entity.RoleSuperUser, entity.RoleAdmin, entity.RoleSubAdmin, entity.RoleUser} {
		if roles.Has(r) {
			return r
		}
	}
	return entity.RoleUser
}

func vehicleFromRequest(in *dto.VehicleRequest) *entity.VehicleDetails {
	if in == nil {
		return nil
	}
	return &entity.VehicleDetails{
		Plate:                in.Plate,
		FasecoldaCode:        in.FasecoldaCode,
		Model:                in.Model,
		EngineNumber:         in.EngineNumber,
		ChassisNumber:        in.ChassisNumber,
		ServiceType:          in.ServiceType,
		VehicleType:          in.VehicleType,
		Capacity:             in.Capacity,
		DepartmentCity:       in.DepartmentCity,
		CommercialValue:      in.CommercialValue,
		AccessoriesValue:     in.AccessoriesValue,
		TotalCommercialValue: in.TotalCommercialValue,
		Beneficiary:          in.Beneficiary,
	}
}

func toPolicyResponse(p *entity.Policy) *dto.PolicyResponse {
	if p == nil {
		return nil
	}
	out := &dto.PolicyResponse{
		ID:              p.ID,
		PolicyNumber:    p.PolicyNumber,
		UserID:          p.OwnerUserID,
		CompanyID:       p.CompanyID,
		PolicyType:      p.PolicyType,
		RiskType:        p.RiskType,
		InsurerName:     p.InsurerName,
		AssistancePhone: p.AssistancePhone,
		InsuredValue:    p.InsuredValue,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Notified:        p.Notified,
		CreatedByID:     p.CreatedByID,
		CreatedByRole:   p.CreatedByRole,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Vehicle != nil {
		out.Vehicle = &dto.VehicleResponse{
			Plate:                p.Vehicle.Plate,
			FasecoldaCode:        p.Vehicle.FasecoldaCode,
			Model:                p.Vehicle.Model,
			EngineNumber:         p.Vehicle.EngineNumber,
			ChassisNumber:        p.Vehicle.ChassisNumber,
			ServiceType:          p.Vehicle.ServiceType,
			VehicleType:          p.Vehicle.VehicleType,
			Capacity:             p.Vehicle.Capacity,
			DepartmentCity:       p.Vehicle.DepartmentCity,
			CommercialValue:      p.Vehicle.CommercialValue,
			AccessoriesValue:     p.Vehicle.AccessoriesValue,
			TotalCommercialValue: p.Vehicle.TotalCommercialValue,
			Beneficiary:          p.Vehicle.Beneficiary,
		}
	}
	return out
}
