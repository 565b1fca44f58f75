package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func openPosting(available int) *entity.Posting {
	return &entity.Posting{
		ID:             "p1",
		CompanyID:      "c1",
		Title:          "Backend",
		MinSemester:    6,
		SlotsAvailable: available,
		Status:         entity.PostingOpen,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Capacidad
// ──────────────────────────────────────────────────────────────────────────────

func TestPosting_LlenarYLiberarCupos(t *testing.T) {
	p := openPosting(2)

	require.NoError(t, p.FillOneSlot())
	assert.Equal(t, entity.PostingOpen, p.Status)
	require.NoError(t, p.FillOneSlot())
	assert.Equal(t, 2, p.SlotsFilled)
	assert.Equal(t, entity.PostingClosed, p.Status, "al ocupar el último lugar la vacante se cierra")
	assert.True(t, p.ClosedByCapacity)

	require.NoError(t, p.ReleaseOneSlot())
	assert.Equal(t, 1, p.SlotsFilled)
	assert.Equal(t, entity.PostingOpen, p.Status, "al liberar un lugar se reabre")
	assert.False(t, p.ClosedByCapacity)
}

func TestPosting_FillFallaSinCupoOCerrada(t *testing.T) {
	p := openPosting(1)
	require.NoError(t, p.FillOneSlot())

	err := p.FillOneSlot()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, p.SlotsFilled, "filled nunca supera available")

	paused := openPosting(3)
	require.NoError(t, paused.Pause())
	assert.Error(t, paused.FillOneSlot())
}

func TestPosting_ReleaseSinOcupadosFalla(t *testing.T) {
	p := openPosting(2)
	assert.Error(t, p.ReleaseOneSlot())
}

func TestPosting_ReleaseNoReabreCierreManual(t *testing.T) {
	p := openPosting(3)
	require.NoError(t, p.FillOneSlot())
	require.NoError(t, p.Close())

	require.NoError(t, p.ReleaseOneSlot())
	assert.Equal(t, entity.PostingClosed, p.Status, "un cierre manual no se revierte al liberar")
}

func TestPosting_ReabrirRequiereCupo(t *testing.T) {
	p := openPosting(1)
	require.NoError(t, p.FillOneSlot())

	err := p.Reopen()
	require.Error(t, err)
	assert.Equal(t, "No hay vacantes disponibles", err.Error())

	require.NoError(t, p.ReleaseOneSlot())
	require.NoError(t, p.Close())
	require.NoError(t, p.Reopen())
	assert.Equal(t, entity.PostingOpen, p.Status)
}

func TestPosting_CanceladaNoSeReabre(t *testing.T) {
	p := openPosting(2)
	require.NoError(t, p.Cancel())
	assert.Error(t, p.Reopen())
	assert.Error(t, p.Cancel())
}

func TestPosting_ResizeCierraAlLlenarse(t *testing.T) {
	p := openPosting(3)
	require.NoError(t, p.FillOneSlot())
	require.NoError(t, p.FillOneSlot())

	require.NoError(t, p.Resize(2))
	assert.Equal(t, 2, p.SlotsAvailable)
	assert.Equal(t, entity.PostingClosed, p.Status, "ocupadas igual a disponibles cierra la vacante")
	assert.True(t, p.ClosedByCapacity)

	require.NoError(t, p.Resize(4))
	assert.Equal(t, entity.PostingOpen, p.Status, "al ampliar el cupo se reabre")
	assert.False(t, p.ClosedByCapacity)

	err := p.Resize(1)
	require.Error(t, err)
	assert.Equal(t, "slots_available", domain.FieldOf(err))
	assert.Equal(t, 4, p.SlotsAvailable)
}

func TestPosting_ResizeRespetaPausaYCierreManual(t *testing.T) {
	p := openPosting(2)
	require.NoError(t, p.FillOneSlot())
	require.NoError(t, p.Pause())
	require.NoError(t, p.Resize(1))
	assert.Equal(t, entity.PostingPaused, p.Status)

	require.NoError(t, p.Close())
	require.NoError(t, p.Resize(5))
	assert.Equal(t, entity.PostingClosed, p.Status, "un cierre manual no se reabre solo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Elegibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckEligibility(t *testing.T) {
	minGPA := decimal.RequireFromString("8.50")

	tests := []struct {
		name     string
		mutate   func(p *entity.Posting)
		student  entity.StudentProfile
		eligible bool
		reason   string
	}{
		{
			name:     "cumple todo",
			student:  entity.StudentProfile{Semester: 7, Major: "Ingeniería en Sistemas", GPA: decimal.RequireFromString("9.1")},
			eligible: true,
			reason:   entity.EligibilityOK,
		},
		{
			name:    "vacante cerrada",
			mutate:  func(p *entity.Posting) { p.Status = entity.PostingClosed },
			student: entity.StudentProfile{Semester: 7, Major: "Ingeniería en Sistemas", GPA: decimal.RequireFromString("9.1")},
			reason:  entity.EligibilityUnavailable,
		},
		{
			name:    "sin cupo",
			mutate:  func(p *entity.Posting) { p.SlotsFilled = p.SlotsAvailable },
			student: entity.StudentProfile{Semester: 7, Major: "Ingeniería en Sistemas"},
			reason:  entity.EligibilityUnavailable,
		},
		{
			name:    "semestre insuficiente",
			student: entity.StudentProfile{Semester: 5, Major: "Ingeniería en Sistemas", GPA: decimal.RequireFromString("9.1")},
			reason:  "Se requiere mínimo semestre 6",
		},
		{
			name:    "promedio insuficiente",
			student: entity.StudentProfile{Semester: 6, Major: "Ingeniería en Sistemas", GPA: decimal.RequireFromString("8.49")},
			reason:  "Se requiere promedio mínimo de 8.50",
		},
		{
			name:    "carrera no solicitada",
			student: entity.StudentProfile{Semester: 6, Major: "Contaduría", GPA: decimal.RequireFromString("9")},
			reason:  entity.EligibilityMajor,
		},
		{
			name:     "carrera sin acentos ni mayúsculas",
			student:  entity.StudentProfile{Semester: 6, Major: "  ingenieria en sistemas ", GPA: decimal.RequireFromString("9")},
			eligible: true,
			reason:   entity.EligibilityOK,
		},
		{
			name:     "sin promedio mínimo no se evalúa",
			mutate:   func(p *entity.Posting) { p.MinGPA = nil },
			student:  entity.StudentProfile{Semester: 6, Major: "Administración", GPA: decimal.Zero},
			eligible: true,
			reason:   entity.EligibilityOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := openPosting(2)
			p.MinGPA = &minGPA
			p.EligibleMajors = "Ingeniería en Sistemas, Administración"
			if tc.mutate != nil {
				tc.mutate(p)
			}
			student := tc.student
			got := p.CheckEligibility(&student)
			assert.Equal(t, tc.eligible, got.Eligible)
			assert.Equal(t, tc.reason, got.Reason)
		})
	}
}

func TestPosting_Validate(t *testing.T) {
	p := openPosting(0)
	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, "slots_available", domain.FieldOf(err))

	p = openPosting(1)
	p.Modality = "LUNAR"
	assert.Error(t, p.Validate())

	p.Modality = entity.ModalityHybrid
	assert.NoError(t, p.Validate())
}
