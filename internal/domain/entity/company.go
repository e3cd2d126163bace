package entity

import "time"

// Colores corporativos por defecto para empresas nuevas.
const (
	DefaultPrimaryColor   = "#631025"
	DefaultSecondaryColor = "#4c55d3"
)

// Company representa una aseguradora/agencia, la frontera multi-tenant del
// sistema. Nunca se elimina físicamente mientras tenga registros asociados:
// la baja es Active=false.
type Company struct {
	ID             string
	Name           string
	NIT            string // NIT colombiano, único
	Address        string
	Phone          string
	Email          string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
