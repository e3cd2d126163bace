package usecase

import (
	"time"

	"github.com/jhoicas/Polizas-api/internal/application/auth"
	"github.com/jhoicas/Polizas-api/internal/application/authz"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase consultas y mutaciones administrativas sobre usuarios.
// El registro y el login viven en application/auth.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con filtros, aplicando el scoping de empresa del actor:
// un admin solo ve su empresa; un super_user ve todo salvo que acote.
func (uc *UserUseCase) List(name, email, document, requestedCompanyID string, page dto.PageRequest, actor authz.Actor) (*dto.UserListResponse, error) {
	page.Normalize()
	var requested *string
	if requestedCompanyID != "" {
		requested = &requestedCompanyID
	}
	filter := repository.UserFilter{
		Name:      name,
		Email:     email,
		Document:  document,
		CompanyID: authz.EffectiveCompanyFilter(actor, requested),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Search busca usuarios por nombre, email o documento (substring).
func (uc *UserUseCase) Search(term string, actor authz.Actor) ([]dto.UserResponse, error) {
	if term == "" {
		return []dto.UserResponse{}, nil
	}
	list, err := uc.repo.Search(term, authz.EffectiveCompanyFilter(actor, nil))
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return items, nil
}

// Update actualiza un usuario. Solo hay dos caminos válidos:
//   - auto-actualización (el actor es el propio usuario): puede cambiar su
//     contraseña;
//   - camino administrativo (admin/super_user): puede editar a terceros de su
//     empresa, pero la contraseña se ignora, y un admin no puede tocar
//     cuentas admin o super_user ni cuentas de otra empresa.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest, actor authz.Actor) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	self := actor.ID == id
	if !self {
		if !actor.IsPrivileged() {
			return nil, domain.ErrForbidden
		}
		if !actor.HasAnyRole(entity.RoleSuperUser) {
			if user.Roles.HasAny(entity.RoleAdmin, entity.RoleSuperUser) {
				return nil, domain.ErrForbidden
			}
			if user.CompanyID == nil || actor.CompanyID == nil || *user.CompanyID != *actor.CompanyID {
				return nil, domain.ErrForbidden
			}
		}
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.City != nil {
		user.City = *in.City
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.BusinessActivity != nil {
		user.BusinessActivity = *in.BusinessActivity
	}
	if in.LegalRep != nil {
		user.LegalRep = *in.LegalRep
	}
	if self && in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}
