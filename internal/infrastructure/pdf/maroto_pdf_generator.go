// Package pdf implementa la carátula PDF de una póliza: el resumen imprimible
// que el tomador recibe con su vigencia, valores asegurados y, si aplica, los
// datos del vehículo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Aseguradora/Agencia + NIT  │  N° Póliza + Tipo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOMADOR: Nombre + documento + contacto                     │
//	│  VIGENCIA: inicio — fin + días restantes                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VALORES: Valor asegurado / Aseguradora / Tel. asistencia   │
//	│  VEHÍCULO (opcional): placa, modelo, chasis, valores        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de renovación                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Polizas-api/internal/application/usecase"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
)

var _ usecase.PolicyPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 99, Green: 16, Blue: 37} // #631025
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.PolicyPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePolicyPDF genera la carátula y devuelve sus bytes. company puede
// ser nil: las pólizas sin empresa llevan cabecera genérica.
func (g *MarotoPDFGenerator) GeneratePolicyPDF(
	policy *entity.Policy,
	owner *entity.User,
	company *entity.Company,
) ([]byte, error) {
	companyName := "Póliza de Seguro"
	if company != nil {
		companyName = company.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Carátula de Póliza "+policy.PolicyNumber, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(policy, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tomadorRow(owner))
	m.AddRows(vigenciaRow(policy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(valoresRow(policy))

	if policy.Vehicle != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		for _, r := range vehicleRows(policy.Vehicle) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(policy))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y N° póliza + tipo (der).
func headerRow(policy *entity.Policy, company *entity.Company) core.Row {
	left := []core.Component{
		text.New("CARÁTULA DE PÓLIZA", props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	if company != nil {
		left = []core.Component{
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		}
	}
	return row.New(18).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New("PÓLIZA N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(policy.PolicyNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Tipo: "+nonEmpty(policy.PolicyType, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tomadorRow: datos del tomador.
func tomadorRow(owner *entity.User) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TOMADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(owner.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Documento: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(owner.Document, "—"),
				nonEmpty(owner.Email, "—"),
				nonEmpty(owner.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// vigenciaRow: vigencia y días restantes.
func vigenciaRow(policy *entity.Policy) core.Row {
	days := policy.DaysUntilExpiry(time.Now())
	estado := fmt.Sprintf("Vence en %d días", days)
	if days <= 0 {
		estado = "VENCIDA"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("VIGENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Desde: %s   |   Hasta: %s   |   %s",
				policy.StartDate.Format("02/01/2006"),
				policy.EndDate.Format("02/01/2006"),
				estado,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// valoresRow: valor asegurado, aseguradora y teléfono de asistencia.
func valoresRow(policy *entity.Policy) core.Row {
	return row.New(14).Add(
		col.New(4).Add(
			text.New("Valor asegurado", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("$"+formatMoney(policy.InsuredValue.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 7,
			}),
		),
		col.New(4).Add(
			text.New("Aseguradora", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(policy.InsurerName, "—"), props.Text{Size: 9, Top: 7}),
		),
		col.New(4).Add(
			text.New("Tel. asistencia", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(policy.AssistancePhone, "—"), props.Text{Size: 9, Top: 7}),
		),
	)
}

// vehicleRows: bloque opcional con los datos del vehículo asegurado.
func vehicleRows(v *entity.VehicleDetails) []core.Row {
	pair := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1,
			}),
			text.New(nonEmpty(value, "—"), props.Text{Size: 9, Top: 5}),
		)
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("VEHÍCULO ASEGURADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(11).Add(
			pair("Placa", v.Plate),
			pair("Cód. Fasecolda", v.FasecoldaCode),
			pair("Modelo", v.Model),
		),
		row.New(11).Add(
			pair("N° Motor", v.EngineNumber),
			pair("N° Chasis", v.ChassisNumber),
			pair("Tipo de servicio", v.ServiceType),
		),
		row.New(11).Add(
			pair("Clase de vehículo", v.VehicleType),
			pair("Capacidad", v.Capacity),
			pair("Ciudad/Departamento", v.DepartmentCity),
		),
		row.New(11).Add(
			pair("Valor comercial", "$"+formatMoney(v.CommercialValue.StringFixed(0))),
			pair("Valor accesorios", "$"+formatMoney(v.AccessoriesValue.StringFixed(0))),
			pair("Valor total", "$"+formatMoney(v.TotalCommercialValue.StringFixed(0))),
		),
		row.New(11).Add(
			pair("Beneficiario oneroso", v.Beneficiary),
			col.New(8),
		),
	}
}

// footerRow: leyenda de renovación.
func footerRow(policy *entity.Policy) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Esta póliza vence el %s. Comuníquese con su agencia antes del vencimiento "+
				"para gestionar la renovación y mantener la cobertura sin interrupciones.",
			policy.EndDate.Format("02/01/2006"),
		), props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
