package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Polizas-api/internal/application/authz"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/application/usecase"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
)

func newUserFixture(users ...*entity.User) (*usecase.UserUseCase, *fakeUserRepo) {
	repo := &fakeUserRepo{users: users}
	return usecase.NewUserUseCase(repo), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario sin privilegios no puede editar la cuenta de otro.
func TestUserUpdate_UsuarioNoEditaCuentaAjena(t *testing.T) {
	uc, repo := newUserFixture(
		&entity.User{ID: "victima-1", Name: "Marta", Roles: entity.RoleSet{"user"}, CompanyID: strPtr("emp-1")},
	)
	atacante := authz.Actor{ID: "u-2", Roles: entity.RoleSet{entity.RoleUser}, CompanyID: strPtr("emp-1")}

	_, err := uc.Update("victima-1", dto.UpdateUserRequest{Name: strPtr("otro nombre")}, atacante)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Marta", repo.users[0].Name, "la cuenta ajena queda intacta")
}

// La auto-actualización funciona y es el único camino que cambia la contraseña.
func TestUserUpdate_AutoActualizacionConPassword(t *testing.T) {
	uc, repo := newUserFixture(
		&entity.User{ID: "u-1", Name: "Carlos", Roles: entity.RoleSet{"user"}, CompanyID: strPtr("emp-1")},
	)
	actor := authz.Actor{ID: "u-1", Roles: entity.RoleSet{entity.RoleUser}, CompanyID: strPtr("emp-1")}

	out, err := uc.Update("u-1", dto.UpdateUserRequest{
		Name:     strPtr("Carlos Pérez"),
		Password: strPtr("nueva-clave"),
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Pérez", out.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.users[0].PasswordHash), []byte("nueva-clave")))
}

// Un admin edita usuarios de su empresa, pero la contraseña se ignora por ese camino.
func TestUserUpdate_AdminEditaSuEmpresaSinPassword(t *testing.T) {
	uc, repo := newUserFixture(
		&entity.User{ID: "u-1", Name: "Carlos", Roles: entity.RoleSet{"user"},
			CompanyID: strPtr("emp-1"), PasswordHash: "hash-original"},
	)

	out, err := uc.Update("u-1", dto.UpdateUserRequest{
		Name:     strPtr("Carlos R."),
		Password: strPtr("intento-de-clave"),
	}, staffActor)
	require.NoError(t, err)
	assert.Equal(t, "Carlos R.", out.Name)
	assert.Equal(t, "hash-original", repo.users[0].PasswordHash)
}

// El alcance del admin termina en su empresa y en las cuentas no privilegiadas.
func TestUserUpdate_LimitesDelAdmin(t *testing.T) {
	uc, _ := newUserFixture(
		&entity.User{ID: "ajeno-1", Roles: entity.RoleSet{"user"}, CompanyID: strPtr("emp-2")},
		&entity.User{ID: "adm-2", Roles: entity.RoleSet{"admin"}, CompanyID: strPtr("emp-1")},
		&entity.User{ID: "su-1", Roles: entity.RoleSet{"super_user"}},
		&entity.User{ID: "suelto-1", Roles: entity.RoleSet{"user"}},
	)
	in := dto.UpdateUserRequest{Name: strPtr("x")}

	for _, id := range []string{"ajeno-1", "adm-2", "su-1", "suelto-1"} {
		_, err := uc.Update(id, in, staffActor)
		assert.ErrorIs(t, err, domain.ErrForbidden, "admin bloqueado sobre %s", id)
	}
}

// El super_user edita cualquier cuenta, incluidas las de otros admins.
func TestUserUpdate_SuperUserSinRestricciones(t *testing.T) {
	uc, _ := newUserFixture(
		&entity.User{ID: "adm-2", Name: "Ana", Roles: entity.RoleSet{"admin"}, CompanyID: strPtr("emp-2")},
	)
	superUser := authz.Actor{ID: "su-1", Roles: entity.RoleSet{entity.RoleSuperUser}}

	out, err := uc.Update("adm-2", dto.UpdateUserRequest{Name: strPtr("Ana María")}, superUser)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
}

func TestUserUpdate_Inexistente(t *testing.T) {
	uc, _ := newUserFixture()
	_, err := uc.Update("no-existe", dto.UpdateUserRequest{}, staffActor)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
