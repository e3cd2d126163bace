package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Polizas-api/internal/application/authz"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
	"github.com/jhoicas/Polizas-api/pkg/jwt"
	"github.com/jhoicas/Polizas-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

const resetTokenTTL = time.Hour

// AuthUseCase casos de uso de autenticación y gestión de usuarios: registro,
// login, activación, roles y restablecimiento de contraseña.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	jwtCfg      JWTConfig
	email       notify.EmailSender
	frontendURL string
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, email notify.EmailSender, frontendURL string, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, email: email, frontendURL: frontendURL, log: log}
}

// RegisterUser crea un usuario. actor es nil para el registro público.
//
// Reglas de roles:
//   - registro público: siempre {user}, sin importar lo que pida el payload;
//   - creador admin: puede crear usuarios rasos, pero los roles privilegiados
//     exigen que el creador sea super_user;
//   - el usuario nuevo hereda la empresa del creador si este tiene una.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest, actor *authz.Actor) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	roles := entity.RoleSet{entity.RoleUser}
	var companyID *string
	if actor != nil && actor.IsPrivileged() {
		companyID = actor.CompanyID
		if len(in.Roles) > 0 {
			requested := entity.RoleSet(in.Roles)
			for _, r := range requested {
				if !entity.IsValidRole(r) {
					return nil, domain.ErrInvalidInput
				}
			}
			privileged := requested.HasAny(entity.RoleAdmin, entity.RoleSuperUser, entity.RoleSubAdmin)
			if privileged && !actor.HasAnyRole(entity.RoleSuperUser) {
				return nil, domain.ErrForbidden
			}
			roles = requested
		}
	} else if len(in.Roles) > 0 {
		// Registro público pidiendo roles elevados: degradar en silencio a user.
		uc.log.Warn().Str("email", in.Email).Strs("roles", in.Roles).Msg("registro público con roles elevados, degradado a user")
	}
	if in.CompanyID != "" && actor != nil && actor.HasAnyRole(entity.RoleSuperUser) {
		companyID = &in.CompanyID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var birthDate *time.Time
	if in.BirthDate != "" {
		t, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		birthDate = &t
	}

	now := time.Now()
	user := &entity.User{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Document:         in.Document,
		Email:            in.Email,
		PasswordHash:     string(hash),
		Address:          in.Address,
		City:             in.City,
		Phone:            in.Phone,
		BusinessActivity: in.BusinessActivity,
		LegalRep:         in.LegalRep,
		BirthDate:        birthDate,
		Active:           true,
		Roles:            roles,
		CompanyID:        companyID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, user.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToggleUserStatus activa/desactiva un usuario (reversible).
// Un admin no puede tocar a otro admin ni a un super_user; solo super_user.
func (uc *AuthUseCase) ToggleUserStatus(targetID string, actor authz.Actor) (*dto.UserResponse, error) {
	target, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if target.Roles.HasAny(entity.RoleAdmin, entity.RoleSuperUser) && !actor.HasAnyRole(entity.RoleSuperUser) {
		return nil, domain.ErrForbidden
	}
	target.Active = !target.Active
	target.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(target); err != nil {
		return nil, err
	}
	return ToUserResponse(target), nil
}

// UpdateUserRoles reemplaza el conjunto de roles de un usuario (solo super_user,
// garantizado por el middleware; aquí solo se valida el conjunto).
func (uc *AuthUseCase) UpdateUserRoles(targetID string, roles []string) (*dto.UserResponse, error) {
	if len(roles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, r := range roles {
		if !entity.IsValidRole(r) {
			return nil, domain.ErrInvalidInput
		}
	}
	target, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	target.Roles = entity.RoleSet(roles)
	target.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(target); err != nil {
		return nil, err
	}
	return ToUserResponse(target), nil
}

// RequestPasswordReset genera un token de un solo uso con vigencia de una hora
// y lo envía por correo. La respuesta es genérica exista o no el email, para
// no revelar qué cuentas están registradas.
func (uc *AuthUseCase) RequestPasswordReset(email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token := uuid.New().String()
	expiry := time.Now().Add(resetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", uc.frontendURL, token)
	body := fmt.Sprintf("Hola %s,\n\nPara restablecer tu contraseña entra a:\n%s\n\nEl enlace vence en una hora. Si no lo pediste, ignora este correo.", user.Name, link)
	if err := uc.email.Send(user.Email, "Restablecer contraseña", body); err != nil {
		uc.log.Error().Err(err).Str("to", user.Email).Msg("enviar correo de restablecimiento")
	}
	return nil
}

// ValidateResetToken verifica que el token exista y no haya expirado.
func (uc *AuthUseCase) ValidateResetToken(token string) error {
	user, err := uc.userRepo.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user == nil || user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return domain.ErrResetTokenInvalid
	}
	return nil
}

// ResetPasswordWithToken cambia la contraseña y consume el token.
func (uc *AuthUseCase) ResetPasswordWithToken(token, newPassword string) error {
	user, err := uc.userRepo.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user == nil || user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return domain.ErrResetTokenInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ToUserResponse mapea la entidad al DTO de salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Document:         u.Document,
		Email:            u.Email,
		Address:          u.Address,
		City:             u.City,
		Phone:            u.Phone,
		BusinessActivity: u.BusinessActivity,
		LegalRep:         u.LegalRep,
		BirthDate:        u.BirthDate,
		Active:           u.Active,
		Roles:            u.Roles,
		CompanyID:        u.CompanyID,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
