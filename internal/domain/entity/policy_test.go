package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Polizas-api/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TermEnd
// ──────────────────────────────────────────────────────────────────────────────

// La vigencia es exactamente un año calendario después del inicio.
func TestTermEnd_UnAnioDespues(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"fecha normal", date(2025, time.March, 15), date(2026, time.March, 15)},
		{"inicio de año", date(2025, time.January, 1), date(2026, time.January, 1)},
		{"fin de año", date(2025, time.December, 31), date(2026, time.December, 31)},
		// 29 de febrero en año bisiesto: AddDate normaliza al 1 de marzo.
		{"bisiesto", date(2024, time.February, 29), date(2025, time.March, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.TermEnd(tc.start))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DaysUntilExpiry
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysUntilExpiry_DiasExactos(t *testing.T) {
	p := &entity.Policy{EndDate: date(2025, time.June, 20)}
	assert.Equal(t, 10, p.DaysUntilExpiry(date(2025, time.June, 10)))
}

// Fracciones de día se redondean hacia arriba: si faltan 9 días y medio, el
// aviso dice 10.
func TestDaysUntilExpiry_RedondeaHaciaArriba(t *testing.T) {
	p := &entity.Policy{EndDate: date(2025, time.June, 20)}
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, p.DaysUntilExpiry(now))
}

func TestDaysUntilExpiry_VencidaEsNegativoOCero(t *testing.T) {
	p := &entity.Policy{EndDate: date(2025, time.June, 1)}
	assert.LessOrEqual(t, p.DaysUntilExpiry(date(2025, time.June, 5)), 0,
		"una póliza ya vencida no debe reportar días positivos")
}

func TestHasVehicle(t *testing.T) {
	p := &entity.Policy{}
	assert.False(t, p.HasVehicle())
	p.Vehicle = &entity.VehicleDetails{Plate: "ABC123"}
	assert.True(t, p.HasVehicle())
}
