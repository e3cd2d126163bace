package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Polizas-api/internal/application/auth"
	"github.com/jhoicas/Polizas-api/internal/application/authz"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
	"github.com/jhoicas/Polizas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users []*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(u *entity.User) error { f.users = append(f.users, u); return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByResetToken(token string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(*entity.User) error                          { return nil }
func (f *fakeUserRepo) List(repository.UserFilter) ([]*entity.User, error) { return f.users, nil }
func (f *fakeUserRepo) Search(string, *string) ([]*entity.User, error)     { return nil, nil }
func (f *fakeUserRepo) Delete(string) error                                { return nil }
func (f *fakeUserRepo) FirstActiveAdminByCompany(string) (*entity.User, error) {
	return nil, nil
}

type recorderEmailSender struct {
	sent []string // destinatarios, en orden
	body string
}

func (r *recorderEmailSender) Send(to, _, body string) error {
	r.sent = append(r.sent, to)
	r.body = body
	return nil
}

func newUseCase(repo *fakeUserRepo, email *recorderEmailSender) *auth.AuthUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	cfg := auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "polizas-api-test"}
	return auth.NewAuthUseCase(repo, cfg, email, "https://app.example.com", log)
}

func strPtr(s string) *string { return &s }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

// Registro público: siempre queda como user, aunque el payload pida admin.
func TestRegisterUser_PublicoDegradaRolesElevados(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo, &recorderEmailSender{})

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Name:     "Carlos Pérez",
		Document: "123456",
		Email:    "carlos@mail.com",
		Password: "secreta-123",
		Roles:    []string{"admin", "super_user"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{entity.RoleUser}, []string(out.Roles),
		"el registro público nunca respeta roles del payload")
	assert.True(t, out.Active)
	assert.Nil(t, out.CompanyID)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{
		{ID: "u-1", Email: "carlos@mail.com"},
	}}
	uc := newUseCase(repo, &recorderEmailSender{})

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "Otro", Document: "999", Email: "carlos@mail.com", Password: "secreta-123",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Un admin puede crear usuarios rasos y el nuevo hereda su empresa.
func TestRegisterUser_AdminCreaUsuarioHeredaEmpresa(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo, &recorderEmailSender{})
	actor := authz.Actor{
		ID:        "adm-1",
		Roles:     entity.RoleSet{entity.RoleAdmin},
		CompanyID: strPtr("emp-1"),
	}

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "Cliente", Document: "111", Email: "cliente@mail.com", Password: "secreta-123",
	}, &actor)
	require.NoError(t, err)

	require.NotNil(t, out.CompanyID)
	assert.Equal(t, "emp-1", *out.CompanyID)
	assert.Equal(t, []string{entity.RoleUser}, []string(out.Roles))
}

// Un admin no puede otorgar roles privilegiados; eso exige super_user.
func TestRegisterUser_AdminNoPuedeCrearSubAdmin(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo, &recorderEmailSender{})
	actor := authz.Actor{ID: "adm-1", Roles: entity.RoleSet{entity.RoleAdmin}}

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "Nuevo", Document: "222", Email: "nuevo@mail.com", Password: "secreta-123",
		Roles: []string{"sub_admin"},
	}, &actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterUser_SuperUserOtorgaRolesYEmpresa(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo, &recorderEmailSender{})
	actor := authz.Actor{ID: "su-1", Roles: entity.RoleSet{entity.RoleSuperUser}}

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "Admin Nuevo", Document: "333", Email: "admin@mail.com", Password: "secreta-123",
		Roles:     []string{"admin", "sub_admin"},
		CompanyID: "emp-2",
	}, &actor)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"admin", "sub_admin"}, []string(out.Roles))
	require.NotNil(t, out.CompanyID)
	assert.Equal(t, "emp-2", *out.CompanyID)
}

func TestRegisterUser_RolDesconocidoEsInvalido(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo, &recorderEmailSender{})
	actor := authz.Actor{ID: "su-1", Roles: entity.RoleSet{entity.RoleSuperUser}}

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "X", Document: "444", Email: "x@mail.com", Password: "secreta-123",
		Roles: []string{"root"},
	}, &actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{
		ID: "u-1", Name: "Carlos", Email: "carlos@mail.com",
		PasswordHash: hashOf(t, "secreta-123"),
		Active:       true,
		Roles:        entity.RoleSet{"user", "sub_admin"},
		CompanyID:    strPtr("emp-1"),
	}}}
	uc := newUseCase(repo, &recorderEmailSender{})

	out, err := uc.Login(dto.LoginRequest{Email: "carlos@mail.com", Password: "secreta-123"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "u-1", out.User.ID)
	assert.ElementsMatch(t, []string{"user", "sub_admin"}, []string(out.User.Roles))
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{}, &recorderEmailSender{})
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@mail.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{
		ID: "u-1", Email: "carlos@mail.com", PasswordHash: hashOf(t, "secreta-123"), Active: true,
	}}}
	uc := newUseCase(repo, &recorderEmailSender{})

	_, err := uc.Login(dto.LoginRequest{Email: "carlos@mail.com", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Un usuario desactivado no puede iniciar sesión aunque la contraseña sea buena.
func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{
		ID: "u-1", Email: "carlos@mail.com", PasswordHash: hashOf(t, "secreta-123"), Active: false,
	}}}
	uc := newUseCase(repo, &recorderEmailSender{})

	_, err := uc.Login(dto.LoginRequest{Email: "carlos@mail.com", Password: "secreta-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ToggleUserStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestToggleUserStatus_AdminDesactivaUsuarioRaso(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{
		{ID: "u-1", Email: "carlos@mail.com", Active: true, Roles: entity.RoleSet{"user"}},
	}}
	uc := newUseCase(repo, &recorderEmailSender{})
	actor := authz.Actor{ID: "adm-1", Roles: entity.RoleSet{entity.RoleAdmin}}

	out, err := uc.ToggleUserStatus("u-1", actor)
	require.NoError(t, err)
	assert.False(t, out.Active)

	// El toggle es reversible: una segunda llamada lo reactiva.
	out, err = uc.ToggleUserStatus("u-1", actor)
	require.NoError(t, err)
	assert.True(t, out.Active)
}

// Un admin no puede tocar a otro admin ni a un super_user.
func TestToggleUserStatus_AdminNoTocaOtroAdmin(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{
		{ID: "adm-2", Active: true, Roles: entity.RoleSet{"admin"}},
		{ID: "su-1", Active: true, Roles: entity.RoleSet{"super_user"}},
	}}
	uc := newUseCase(repo, &recorderEmailSender{})
	actor := authz.Actor{ID: "adm-1", Roles: entity.RoleSet{entity.RoleAdmin}}

	_, err := uc.ToggleUserStatus("adm-2", actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ToggleUserStatus("su-1", actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestToggleUserStatus_SuperUserTocaAdmin(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{
		{ID: "adm-2", Active: true, Roles: entity.RoleSet{"admin"}},
	}}
	uc := newUseCase(repo, &recorderEmailSender{})
	actor := authz.Actor{ID: "su-1", Roles: entity.RoleSet{entity.RoleSuperUser}}

	out, err := uc.ToggleUserStatus("adm-2", actor)
	require.NoError(t, err)
	assert.False(t, out.Active)
}

func TestToggleUserStatus_ObjetivoInexistente(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{}, &recorderEmailSender{})
	actor := authz.Actor{ID: "su-1", Roles: entity.RoleSet{entity.RoleSuperUser}}

	_, err := uc.ToggleUserStatus("no-existe", actor)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateUserRoles
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateUserRoles_ReemplazaElConjunto(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{
		{ID: "u-1", Roles: entity.RoleSet{"user"}},
	}}
	uc := newUseCase(repo, &recorderEmailSender{})

	out, err := uc.UpdateUserRoles("u-1", []string{"user", "sub_admin"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user", "sub_admin"}, []string(out.Roles))
}

func TestUpdateUserRoles_ConjuntoVacioEsInvalido(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{}, &recorderEmailSender{})
	_, err := uc.UpdateUserRoles("u-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateUserRoles_RolInvalido(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{}, &recorderEmailSender{})
	_, err := uc.UpdateUserRoles("u-1", []string{"dios"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests flujo de restablecimiento de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestPasswordReset_FlujoCompleto(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{
		ID: "u-1", Name: "Carlos", Email: "carlos@mail.com",
		PasswordHash: hashOf(t, "vieja-123456"), Active: true,
	}}}
	email := &recorderEmailSender{}
	uc := newUseCase(repo, email)

	// 1. Solicitar: genera token y envía el correo con el enlace.
	require.NoError(t, uc.RequestPasswordReset("carlos@mail.com"))
	require.Equal(t, []string{"carlos@mail.com"}, email.sent)
	require.NotNil(t, repo.users[0].ResetToken)
	token := *repo.users[0].ResetToken
	assert.Contains(t, email.body, token, "el correo debe llevar el token en el enlace")

	// 2. Validar: el token recién emitido es válido.
	require.NoError(t, uc.ValidateResetToken(token))

	// 3. Consumir: cambia la contraseña y anula el token.
	require.NoError(t, uc.ResetPasswordWithToken(token, "nueva-123456"))
	assert.Nil(t, repo.users[0].ResetToken, "el token es de un solo uso")
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.users[0].PasswordHash), []byte("nueva-123456")))

	// 4. Reusar el token consumido falla.
	assert.ErrorIs(t, uc.ResetPasswordWithToken(token, "otra-123456"), domain.ErrResetTokenInvalid)
}

// La respuesta es genérica exista o no el email: no revela cuentas.
func TestPasswordReset_EmailInexistenteNoFallaNiEnvia(t *testing.T) {
	email := &recorderEmailSender{}
	uc := newUseCase(&fakeUserRepo{}, email)

	assert.NoError(t, uc.RequestPasswordReset("nadie@mail.com"))
	assert.Empty(t, email.sent)
}

func TestPasswordReset_TokenExpirado(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	repo := &fakeUserRepo{users: []*entity.User{{
		ID: "u-1", Email: "carlos@mail.com",
		ResetToken:       strPtr("token-viejo"),
		ResetTokenExpiry: &expired,
	}}}
	uc := newUseCase(repo, &recorderEmailSender{})

	assert.ErrorIs(t, uc.ValidateResetToken("token-viejo"), domain.ErrResetTokenInvalid)
	assert.ErrorIs(t, uc.ResetPasswordWithToken("token-viejo", "nueva-123456"), domain.ErrResetTokenInvalid)
}

func TestPasswordReset_TokenDesconocido(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{}, &recorderEmailSender{})
	assert.ErrorIs(t, uc.ValidateResetToken("inventado"), domain.ErrResetTokenInvalid)
}
