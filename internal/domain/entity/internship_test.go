package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func advisor(id string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleAdvisor, Profile: &entity.AdvisorProfile{Department: "Sistemas"}}
}

func tutor(id, companyID string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleTutor, Profile: &entity.TutorProfile{CompanyID: companyID}}
}

func assignment(load int) entity.Assignment {
	return entity.Assignment{
		Advisor:     advisor("adv1"),
		Tutor:       tutor("tut1", "c1"),
		Company:     &entity.Company{ID: "c1", Active: true},
		AssignedBy:  "coord1",
		AdvisorLoad: load,
		Capacity:    10,
	}
}

func TestInternship_AsignarExitoso(t *testing.T) {
	p := &entity.Internship{ID: "i1", StudentID: "s1", Status: entity.InternshipPending}
	require.NoError(t, p.Assign(assignment(0), now))

	assert.Equal(t, entity.InternshipAssigned, p.Status)
	assert.True(t, p.HasAdvisor("adv1"))
	assert.True(t, p.HasTutor("tut1"))
	require.NotNil(t, p.CompanyID)
	assert.Equal(t, "c1", *p.CompanyID)
	require.NotNil(t, p.AssignedAt)
	assert.Equal(t, now, *p.AssignedAt)
}

func TestInternship_CapacidadDelDocente(t *testing.T) {
	// El décimo estudiante entra (carga actual 9), el undécimo no (carga 10).
	p := &entity.Internship{ID: "i10", StudentID: "s10", Status: entity.InternshipPending}
	require.NoError(t, p.Assign(assignment(9), now))

	p = &entity.Internship{ID: "i11", StudentID: "s11", Status: entity.InternshipPending}
	err := p.Assign(assignment(10), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "El docente asesor ya tiene el máximo de 10 estudiantes asignados.", err.Error())
	assert.Equal(t, entity.InternshipPending, p.Status)
}

func TestInternship_EmpresaInactiva(t *testing.T) {
	a := assignment(0)
	a.Company.Active = false
	p := &entity.Internship{StudentID: "s1", Status: entity.InternshipPending}
	err := p.Assign(a, now)
	require.Error(t, err)
	assert.Equal(t, "La empresa debe estar activa.", err.Error())
}

func TestInternship_TutorDeOtraEmpresa(t *testing.T) {
	a := assignment(0)
	a.Tutor = tutor("tut2", "otra")
	p := &entity.Internship{StudentID: "s1", Status: entity.InternshipPending}
	err := p.Assign(a, now)
	require.Error(t, err)
	assert.Equal(t, "El tutor empresarial debe pertenecer a la empresa asignada.", err.Error())
}

func TestInternship_RolesInvalidos(t *testing.T) {
	a := assignment(0)
	a.Advisor = tutor("x", "c1")
	p := &entity.Internship{StudentID: "s1", Status: entity.InternshipPending}
	assert.Error(t, p.Assign(a, now))
}

func TestInternship_CicloDeVida(t *testing.T) {
	p := &entity.Internship{StudentID: "s1", Status: entity.InternshipPending}

	err := p.Start(now)
	require.Error(t, err)
	assert.Equal(t, "La práctica debe estar en estado ASIGNADA.", err.Error())

	err = p.Complete(nil, now)
	require.Error(t, err)
	assert.Equal(t, "La práctica debe estar en curso.", err.Error())

	require.NoError(t, p.Assign(assignment(0), now))
	require.NoError(t, p.Start(now))
	assert.Equal(t, entity.InternshipInProgress, p.Status)
	assert.True(t, p.IsActive())

	bad := decimal.NewFromInt(101)
	assert.Error(t, p.Complete(&bad, now))

	grade := decimal.RequireFromString("95.456")
	require.NoError(t, p.Complete(&grade, now))
	assert.Equal(t, entity.InternshipCompleted, p.Status)
	assert.Equal(t, "95.46", p.FinalGrade.StringFixed(2))

	require.NoError(t, p.CloseRecord("coord1", now))
	assert.True(t, p.Closed)
	assert.Error(t, p.CloseRecord("coord1", now))
}

func TestInternship_CancelarEsIncondicional(t *testing.T) {
	for _, st := range []entity.InternshipStatus{
		entity.InternshipPending, entity.InternshipAssigned, entity.InternshipInProgress, entity.InternshipCompleted,
	} {
		p := &entity.Internship{Status: st}
		p.Cancel(now)
		assert.Equal(t, entity.InternshipCancelled, p.Status)
	}
}

func TestInternship_FechasInvalidas(t *testing.T) {
	start := now
	end := now.Add(-time.Hour)
	p := &entity.Internship{StudentID: "s1", StartDate: &start, EndDate: &end}
	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, "end_date", domain.FieldOf(err))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, entity.Progress(0, 0))
	assert.Equal(t, 33, entity.Progress(3, 1))
	assert.Equal(t, 67, entity.Progress(3, 2))
	assert.Equal(t, 100, entity.Progress(4, 4))
}
