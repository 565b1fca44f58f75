// Package pdf genera la constancia de práctica profesional en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Coordinación de prácticas  │  Folio + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TÍTULO: CONSTANCIA DE PRÁCTICA PROFESIONAL                  │
//	│  CUERPO: estudiante, matrícula, carrera, empresa, periodo    │
//	│  TABLA: Área | Proyecto | Asesor | Tutor | Calificación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Practicas-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CertificateGenerator implementa ports.CertificateGenerator usando Maroto v2.
type CertificateGenerator struct {
	institution string
}

var _ ports.CertificateGenerator = (*CertificateGenerator)(nil)

// NewCertificateGenerator construye el generador; institution aparece en el encabezado.
func NewCertificateGenerator(institution string) *CertificateGenerator {
	if institution == "" {
		institution = "Coordinación de Prácticas Profesionales"
	}
	return &CertificateGenerator{institution: institution}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *CertificateGenerator) Generate(d ports.CertificateData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Constancia de Práctica Profesional", true).
		WithAuthor(g.institution, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(8))
	m.AddRows(titleRow())
	m.AddRows(row.New(6))
	m.AddRows(bodyRows(d)...)
	m.AddRows(row.New(4))
	m.AddRows(detailRows(d)...)
	m.AddRows(row.New(8))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(d)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar constancia: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *CertificateGenerator) headerRow(d ports.CertificateData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.institution, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Folio: "+folio(d.InternshipID), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+longDate(d.IssuedAt), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func titleRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("CONSTANCIA DE PRÁCTICA PROFESIONAL", props.Text{
			Style: fontstyle.Bold, Size: 15, Align: align.Center, Color: colorPrimary,
		}),
	))
}

func bodyRows(d ports.CertificateData) []core.Row {
	var b strings.Builder
	fmt.Fprintf(&b, "Se hace constar que %s, con matrícula %s", d.StudentName, nonEmpty(d.Enrollment, "N/D"))
	if d.Major != "" {
		fmt.Fprintf(&b, ", estudiante de %s", d.Major)
	}
	fmt.Fprintf(&b, ", concluyó satisfactoriamente su práctica profesional en %s", nonEmpty(d.CompanyName, "la empresa asignada"))
	if d.StartDate != nil && d.EndDate != nil {
		fmt.Fprintf(&b, " durante el periodo del %s al %s", longDate(*d.StartDate), longDate(*d.EndDate))
	}
	b.WriteString(".")

	return []core.Row{
		row.New(24).Add(col.New(12).Add(
			text.New(b.String(), props.Text{Size: 11, Align: align.Left, Top: 1}),
		)),
	}
}

// detailRows: tabla de dos columnas etiqueta / valor.
func detailRows(d ports.CertificateData) []core.Row {
	grade := "N/D"
	if d.FinalGrade != nil {
		grade = d.FinalGrade.StringFixed(1)
	}
	items := [][2]string{
		{"Área", nonEmpty(d.Area, "N/D")},
		{"Proyecto", nonEmpty(d.Project, "N/D")},
		{"Docente asesor", nonEmpty(d.AdvisorName, "N/D")},
		{"Tutor empresarial", nonEmpty(d.TutorName, "N/D")},
		{"Calificación final", grade},
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(it[0]+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 3, Top: 1,
			})),
			col.New(8).Add(text.New(it[1], props.Text{Size: 9, Top: 1})),
		))
	}
	return rows
}

// footerRows: QR con la URL de verificación y leyenda.
func footerRows(d ports.CertificateData) []core.Row {
	legend := "Este documento se emitió electrónicamente por el sistema de gestión de prácticas."
	if d.VerifyURL == "" {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 7, Color: colorGray, Top: 2}),
		))}
	}
	return []core.Row{
		row.New(3),
		row.New(40).Add(
			col.New(3).Add(code.NewQr(d.VerifyURL, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Escanea el código QR para verificar la autenticidad de esta constancia.", props.Text{
					Size: 8, Top: 6, Left: 3, Color: colorGray,
				}),
				text.New(d.VerifyURL, props.Text{Size: 7, Top: 16, Left: 3, Color: colorPrimary}),
				text.New(legend, props.Text{Size: 7, Top: 26, Left: 3, Color: colorGray}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// longDate formatea "9 de marzo de 2026".
func longDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// folio primeros 8 caracteres del ID en mayúsculas.
func folio(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
