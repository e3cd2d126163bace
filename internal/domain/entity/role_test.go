package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Polizas-api/internal/domain/entity"
)

func TestRoleSet_Has(t *testing.T) {
	rs := entity.RoleSet{"user", "sub_admin"}
	assert.True(t, rs.Has(entity.RoleSubAdmin))
	assert.False(t, rs.Has(entity.RoleAdmin))
	assert.False(t, entity.RoleSet(nil).Has(entity.RoleUser))
}

func TestRoleSet_HasAny(t *testing.T) {
	rs := entity.RoleSet{"user", "sub_admin"}
	assert.True(t, rs.HasAny(entity.RoleAdmin, entity.RoleSubAdmin))
	assert.False(t, rs.HasAny(entity.RoleAdmin, entity.RoleSuperUser))
	assert.False(t, rs.HasAny(), "sin roles requeridos nunca hay intersección")
}

func TestRoleSet_IsPrivileged(t *testing.T) {
	assert.True(t, entity.RoleSet{"admin"}.IsPrivileged())
	assert.True(t, entity.RoleSet{"user", "super_user"}.IsPrivileged())
	assert.False(t, entity.RoleSet{"user", "sub_admin"}.IsPrivileged(),
		"sub_admin solo no es privilegiado")
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{"user", "sub_admin", "admin", "super_user"} {
		assert.True(t, entity.IsValidRole(r), r)
	}
	assert.False(t, entity.IsValidRole("root"))
	assert.False(t, entity.IsValidRole(""))
	assert.False(t, entity.IsValidRole("Admin"), "los roles distinguen mayúsculas")
}
