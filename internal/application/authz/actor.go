// Package authz modela el actor autenticado y las reglas de visibilidad por
// empresa. Es la única fuente de verdad del scoping multi-tenant: usuarios,
// pólizas y mensajes de contacto pasan todos por aquí en lugar de re-derivar
// el filtro por entidad.
package authz

import "github.com/jhoicas/Polizas-api/internal/domain/entity"

// Actor es el llamador autenticado de una operación. Se reconstruye por
// request a partir de los claims del JWT; no se persiste.
type Actor struct {
	ID        string
	Roles     entity.RoleSet
	CompanyID *string
}

// HasAnyRole true si los roles del actor intersecan con los requeridos.
func (a Actor) HasAnyRole(required ...string) bool {
	return a.Roles.HasAny(required...)
}

// IsPrivileged true si el actor tiene admin o super_user.
func (a Actor) IsPrivileged() bool {
	return a.Roles.IsPrivileged()
}

// IsSubAdminOnly true si el actor tiene sub_admin sin admin ni super_user:
// el caso que dispara la restricción "solo lo que yo creé".
func (a Actor) IsSubAdminOnly() bool {
	return a.Roles.Has(entity.RoleSubAdmin) && !a.IsPrivileged()
}

// EffectiveCompanyFilter calcula el filtro de empresa para listados.
//
//   - super_user sin filtro explícito → nil (ve todo);
//   - super_user con requestedCompanyID → ese id (acota su vista);
//   - admin / sub_admin / user → su propia empresa, ignorando lo solicitado.
func EffectiveCompanyFilter(actor Actor, requestedCompanyID *string) *string {
	if actor.HasAnyRole(entity.RoleSuperUser) {
		return requestedCompanyID
	}
	return actor.CompanyID
}

// EffectiveCompanyForCreation resuelve la empresa a asignar al crear un
// registro: la del actor si tiene, si no la del dueño, si no ninguna.
// Que ambas falten es un estado legal (registros previos a la multi-tenancy).
func EffectiveCompanyForCreation(actor Actor, fallbackOwnerCompanyID *string) *string {
	if actor.CompanyID != nil {
		return actor.CompanyID
	}
	return fallbackOwnerCompanyID
}
