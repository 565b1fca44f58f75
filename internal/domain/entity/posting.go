package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PostingStatus estado de una vacante.
type PostingStatus string

const (
	PostingOpen      PostingStatus = "ABIERTA"
	PostingClosed    PostingStatus = "CERRADA"
	PostingPaused    PostingStatus = "PAUSADA"
	PostingCancelled PostingStatus = "CANCELADA"
)

// Modalidades de trabajo.
const (
	ModalityOnSite = "PRESENCIAL"
	ModalityRemote = "REMOTO"
	ModalityHybrid = "HIBRIDO"
)

// Mensajes de elegibilidad.
const (
	EligibilityOK          = "Cumple los requisitos"
	EligibilityUnavailable = "La vacante no está disponible"
	EligibilityMajor       = "Tu carrera no está en las solicitadas"
)

// Posting vacante de práctica publicada por una empresa.
type Posting struct {
	ID                  string
	CompanyID           string
	Title               string
	Description         string
	Requirements        string
	EligibleMajors      string // lista separada por comas
	MinSemester         int
	MinGPA              *decimal.Decimal
	Area                string
	Modality            string
	Location            string
	Schedule            string
	DurationMonths      int
	SlotsAvailable      int
	SlotsFilled         int
	StartDate           *time.Time
	ApplicationDeadline *time.Time
	Paid                bool
	StipendAmount       *decimal.Decimal
	Benefits            string
	Status              PostingStatus
	ClosedByCapacity    bool
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate valida los campos de la vacante.
func (p *Posting) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return domain.ValidationField("title", "El título es requerido.")
	}
	if p.CompanyID == "" {
		return domain.ValidationField("company_id", "La empresa es requerida.")
	}
	if p.MinSemester < 1 {
		return domain.ValidationField("min_semester", "El semestre mínimo debe ser al menos 1.")
	}
	if p.SlotsAvailable < 1 {
		return domain.ValidationField("slots_available", "Debe haber al menos una vacante disponible.")
	}
	if p.SlotsFilled < 0 || p.SlotsFilled > p.SlotsAvailable {
		return domain.ValidationField("slots_filled", "Las vacantes ocupadas no pueden superar las disponibles.")
	}
	if p.MinGPA != nil && (p.MinGPA.LessThan(MinGPA) || p.MinGPA.GreaterThan(MaxGPA)) {
		return domain.ValidationField("min_gpa", "El promedio mínimo debe estar entre 0 y 10.")
	}
	switch p.Modality {
	case "", ModalityOnSite, ModalityRemote, ModalityHybrid:
	default:
		return domain.ValidationField("modality", "Modalidad inválida.")
	}
	if p.StipendAmount != nil && p.StipendAmount.IsNegative() {
		return domain.ValidationField("stipend_amount", "El monto de apoyo no puede ser negativo.")
	}
	return nil
}

// RemainingSlots vacantes libres.
func (p *Posting) RemainingSlots() int {
	return p.SlotsAvailable - p.SlotsFilled
}

// IsAvailable abierta y con cupo.
func (p *Posting) IsAvailable() bool {
	return p.Status == PostingOpen && p.RemainingSlots() > 0
}

// FillOneSlot ocupa un lugar. Al llenarse la vacante pasa a CERRADA por capacidad.
func (p *Posting) FillOneSlot() error {
	if p.Status != PostingOpen {
		return domain.Validation("La vacante no está abierta.")
	}
	if p.SlotsFilled >= p.SlotsAvailable {
		return domain.Validation("No hay vacantes disponibles.")
	}
	p.SlotsFilled++
	if p.SlotsFilled == p.SlotsAvailable {
		p.Status = PostingClosed
		p.ClosedByCapacity = true
	}
	return nil
}

// ReleaseOneSlot libera un lugar; reabre si estaba cerrada por capacidad.
func (p *Posting) ReleaseOneSlot() error {
	if p.SlotsFilled == 0 {
		return domain.Validation("No hay vacantes ocupadas para liberar.")
	}
	p.SlotsFilled--
	if p.Status == PostingClosed && p.ClosedByCapacity && p.SlotsFilled < p.SlotsAvailable {
		p.Status = PostingOpen
		p.ClosedByCapacity = false
	}
	return nil
}

// Resize cambia el total de lugares. Si la vacante abierta queda llena pasa a
// CERRADA por capacidad; si estaba cerrada por capacidad y vuelve a haber cupo, se reabre.
func (p *Posting) Resize(slots int) error {
	if slots < 1 {
		return domain.ValidationField("slots_available", "Debe haber al menos una vacante disponible.")
	}
	if slots < p.SlotsFilled {
		return domain.ValidationField("slots_available", "Las vacantes ocupadas no pueden superar las disponibles.")
	}
	p.SlotsAvailable = slots
	switch {
	case p.Status == PostingOpen && p.SlotsFilled == p.SlotsAvailable:
		p.Status = PostingClosed
		p.ClosedByCapacity = true
	case p.Status == PostingClosed && p.ClosedByCapacity && p.RemainingSlots() > 0:
		p.Status = PostingOpen
		p.ClosedByCapacity = false
	}
	return nil
}

// Close cierre manual por coordinación.
func (p *Posting) Close() error {
	if p.Status == PostingCancelled {
		return domain.Validation("La vacante está cancelada.")
	}
	p.Status = PostingClosed
	p.ClosedByCapacity = false
	return nil
}

// Reopen reabre la vacante si quedan lugares.
func (p *Posting) Reopen() error {
	if p.Status == PostingCancelled {
		return domain.Validation("La vacante está cancelada.")
	}
	if p.RemainingSlots() <= 0 {
		return domain.Validation("No hay vacantes disponibles")
	}
	p.Status = PostingOpen
	p.ClosedByCapacity = false
	return nil
}

// Pause pausa una vacante abierta.
func (p *Posting) Pause() error {
	if p.Status != PostingOpen {
		return domain.Validation("Solo se pueden pausar vacantes abiertas.")
	}
	p.Status = PostingPaused
	return nil
}

// Cancel cancela la vacante.
func (p *Posting) Cancel() error {
	if p.Status == PostingCancelled {
		return domain.Validation("La vacante ya está cancelada.")
	}
	p.Status = PostingCancelled
	p.ClosedByCapacity = false
	return nil
}

// Eligibility resultado de verificar requisitos.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// CheckEligibility verifica si el estudiante puede postularse. Se detiene en el
// primer requisito no cumplido.
func (p *Posting) CheckEligibility(s *StudentProfile) Eligibility {
	if !p.IsAvailable() {
		return Eligibility{Reason: EligibilityUnavailable}
	}
	if s == nil {
		return Eligibility{Reason: "Solo estudiantes pueden postularse"}
	}
	if s.Semester < p.MinSemester {
		return Eligibility{Reason: fmt.Sprintf("Se requiere mínimo semestre %d", p.MinSemester)}
	}
	if p.MinGPA != nil && s.GPA.LessThan(*p.MinGPA) {
		return Eligibility{Reason: fmt.Sprintf("Se requiere promedio mínimo de %s", p.MinGPA.StringFixed(2))}
	}
	if majors := p.Majors(); len(majors) > 0 {
		student := foldText(s.Major)
		found := false
		for _, m := range majors {
			if foldText(m) == student {
				found = true
				break
			}
		}
		if !found {
			return Eligibility{Reason: EligibilityMajor}
		}
	}
	return Eligibility{Eligible: true, Reason: EligibilityOK}
}

// Majors lista de carreras solicitadas, sin vacíos.
func (p *Posting) Majors() []string {
	var out []string
	for _, m := range strings.Split(p.EligibleMajors, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// foldText normaliza para comparar sin mayúsculas ni acentos.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return cases.Fold().String(out)
}
