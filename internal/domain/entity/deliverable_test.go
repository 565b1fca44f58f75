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

func assignedInternship() *entity.Internship {
	adv, tut := "adv1", "tut1"
	return &entity.Internship{ID: "i1", StudentID: "s1", AdvisorID: &adv, TutorID: &tut, Status: entity.InternshipInProgress}
}

func TestNewDeliverable_EstudianteDebeSerElDeLaPractica(t *testing.T) {
	_, err := entity.NewDeliverable("d1", assignedInternship(), "otro", "Informe", "", now.Add(24*time.Hour), now)
	require.Error(t, err)
	assert.Equal(t, "student_id", domain.FieldOf(err))

	d, err := entity.NewDeliverable("d1", assignedInternship(), "s1", "Informe", "", now.Add(24*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliverablePending, d.Status)
}

func TestDeliverable_EvaluarPendienteFalla(t *testing.T) {
	d, err := entity.NewDeliverable("d1", assignedInternship(), "s1", "Informe", "", now.Add(24*time.Hour), now)
	require.NoError(t, err)

	err = d.Evaluate(assignedInternship(), entity.Evaluation{TutorID: "tut1", Grade: decimal.NewFromInt(90), Approved: true}, now)
	require.Error(t, err)
	assert.Equal(t, "Solo se pueden evaluar entregables enviados.", err.Error())
	assert.Nil(t, d.Grade)
}

func TestDeliverable_EnviarYEvaluar(t *testing.T) {
	d, err := entity.NewDeliverable("d1", assignedInternship(), "s1", "Informe", "", now.Add(24*time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, d.Submit("entregables/2026/03/10/x.pdf", now))
	assert.Equal(t, entity.DeliverableSubmitted, d.Status)

	// Un tutor distinto recibe 403.
	err = d.Evaluate(assignedInternship(), entity.Evaluation{TutorID: "tut2", Grade: decimal.NewFromInt(90)}, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Calificación fuera de rango.
	err = d.Evaluate(assignedInternship(), entity.Evaluation{TutorID: "tut1", Grade: decimal.NewFromInt(120)}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Rechazo: se puede volver a enviar.
	require.NoError(t, d.Evaluate(assignedInternship(), entity.Evaluation{TutorID: "tut1", Grade: decimal.NewFromInt(50), Feedback: "incompleto"}, now))
	assert.Equal(t, entity.DeliverableRejected, d.Status)
	assert.True(t, d.IsEvaluated())

	require.NoError(t, d.Submit("entregables/2026/03/11/y.pdf", now))
	require.NoError(t, d.Evaluate(assignedInternship(), entity.Evaluation{TutorID: "tut1", Grade: decimal.NewFromInt(95), Approved: true}, now))
	assert.Equal(t, entity.DeliverableApproved, d.Status)
	assert.Equal(t, "95", d.Grade.String())

	// Aprobado ya no se puede evaluar de nuevo ni reenviar.
	assert.Error(t, d.Evaluate(assignedInternship(), entity.Evaluation{TutorID: "tut1", Grade: decimal.NewFromInt(10)}, now))
	err = d.Submit("otro.pdf", now)
	require.Error(t, err)
	assert.Equal(t, "Solo se pueden enviar entregables pendientes o rechazados.", err.Error())
}

func TestDeliverable_Retrasado(t *testing.T) {
	d, err := entity.NewDeliverable("d1", assignedInternship(), "s1", "Informe", "", now, now.Add(-time.Hour))
	require.NoError(t, err)

	assert.False(t, d.IsOverdue(now.Add(-time.Minute)))
	assert.True(t, d.IsOverdue(now.Add(time.Minute)))

	require.NoError(t, d.Submit("x.pdf", now))
	assert.True(t, d.IsOverdue(now.Add(time.Minute)), "enviado sin evaluar sigue contando como retrasado")

	require.NoError(t, d.Evaluate(assignedInternship(), entity.Evaluation{TutorID: "tut1", Grade: decimal.NewFromInt(80), Approved: true}, now))
	assert.False(t, d.IsOverdue(now.Add(time.Minute)))
}
