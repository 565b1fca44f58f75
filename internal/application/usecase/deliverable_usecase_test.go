package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func TestDeliverable_EnviarYEvaluar(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	store := newMemStorage()
	uc := usecase.NewDeliverableUseCase(w.db.registry(), w.tx(), store)

	d, err := uc.Create(ctx, w.student, dto.CreateDeliverableRequest{
		InternshipID: p.ID, Title: "Reporte mensual", DueDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.DeliverablePending), d.Status)

	_, err = uc.Evaluate(ctx, w.tutor, d.ID, dto.EvaluateDeliverableRequest{Grade: decimal.NewFromInt(80)})
	assert.EqualError(t, err, "Solo se pueden evaluar entregables enviados.")

	d, err = uc.Submit(ctx, w.student, d.ID, "reporte.pdf", strings.NewReader("v1"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.DeliverableSubmitted), d.Status)
	assert.True(t, d.HasFile)
	require.NotNil(t, d.SubmittedAt)

	otherTutor := usecase.Actor{UserID: "tut-2", Role: entity.RoleTutor, CompanyID: "comp-1"}
	_, err = uc.Evaluate(ctx, otherTutor, d.ID, dto.EvaluateDeliverableRequest{Grade: decimal.NewFromInt(80)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden, "un tutor ajeno a la práctica no puede evaluar")
	assert.Equal(t, "Solo el tutor empresarial asignado puede evaluar.", err.Error())

	rejected := false
	d, err = uc.Evaluate(ctx, w.tutor, d.ID, dto.EvaluateDeliverableRequest{
		Grade: decimal.NewFromInt(60), Feedback: "Falta detalle", Approved: &rejected,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.DeliverableRejected), d.Status)

	// Un rechazado se reenvía y el archivo anterior se borra.
	_, err = uc.Submit(ctx, w.student, d.ID, "reporte-v2.pdf", strings.NewReader("v2"))
	require.NoError(t, err)
	assert.Len(t, store.files, 1)

	d, err = uc.Evaluate(ctx, w.tutor, d.ID, dto.EvaluateDeliverableRequest{Grade: decimal.NewFromInt(92)})
	require.NoError(t, err)
	assert.Equal(t, string(entity.DeliverableApproved), d.Status, "approved por defecto es true")
	assert.Equal(t, "92", d.Grade.String())

	rc, name, err := uc.OpenFile(ctx, w.advisor, d.ID)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "v2", string(body))
	assert.Equal(t, "reporte-v2.pdf", name)
}

func TestDeliverable_SoloElEstudianteDeLaPractica(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := usecase.NewDeliverableUseCase(w.db.registry(), w.tx(), newMemStorage())
	other := w.addStudent("est-2")

	_, err := uc.Create(ctx, other, dto.CreateDeliverableRequest{InternshipID: p.ID, Title: "x", DueDate: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, w.advisor, dto.CreateDeliverableRequest{InternshipID: p.ID, Title: "x", DueDate: time.Now()})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeliverable_ListaPorRol(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := usecase.NewDeliverableUseCase(w.db.registry(), w.tx(), newMemStorage())
	_, err := uc.Create(ctx, w.student, dto.CreateDeliverableRequest{InternshipID: p.ID, Title: "Plan", DueDate: time.Now().Add(-time.Hour)})
	require.NoError(t, err)

	list, err := uc.List(ctx, w.student, dto.DeliverableFilterRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].Overdue)

	other := w.addStudent("est-2")
	list, err = uc.List(ctx, other, dto.DeliverableFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// brokenInternships simula una caída de la base al leer prácticas.
type brokenInternships struct{ internshipRepo }

func (brokenInternships) GetByID(context.Context, string) (*entity.Internship, error) {
	return nil, errors.New("connection reset")
}

func TestDeliverable_ErrorDeBaseNoEsNoEncontrado(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	w.db.deliverables["ent-1"] = &entity.Deliverable{
		ID: "ent-1", InternshipID: p.ID, StudentID: w.student.UserID, Title: "Plan",
		Status: entity.DeliverablePending, DueDate: time.Now(),
	}
	repos := w.db.registry()
	repos.Internships = brokenInternships{internshipRepo{w.db}}
	uc := usecase.NewDeliverableUseCase(repos, w.tx(), newMemStorage())

	_, err := uc.GetByID(ctx, w.student, "ent-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "connection reset")

	_, err = uc.GetByID(ctx, w.addStudent("est-2"), "ent-1")
	assert.NotErrorIs(t, err, domain.ErrNotFound, "el error de infraestructura no se disfraza de 404")
}

func TestDeliverable_EvaluacionUnaSolaVez(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := usecase.NewDeliverableUseCase(w.db.registry(), w.tx(), newMemStorage())
	d, err := uc.Create(ctx, w.student, dto.CreateDeliverableRequest{InternshipID: p.ID, Title: "Reporte", DueDate: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = uc.Submit(ctx, w.student, d.ID, "r.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = uc.Evaluate(ctx, w.tutor, d.ID, dto.EvaluateDeliverableRequest{Grade: decimal.NewFromInt(90)})
	require.NoError(t, err)
	_, err = uc.Evaluate(ctx, w.tutor, d.ID, dto.EvaluateDeliverableRequest{Grade: decimal.NewFromInt(50)})
	assert.EqualError(t, err, "Solo se pueden evaluar entregables enviados.")
	assert.Equal(t, "90", w.db.deliverables[d.ID].Grade.String())

	_, err = uc.Submit(ctx, w.student, d.ID, "r2.pdf", strings.NewReader("y"))
	assert.EqualError(t, err, "Solo se pueden enviar entregables pendientes o rechazados.")
}
