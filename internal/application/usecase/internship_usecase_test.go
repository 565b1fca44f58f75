package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

type fakeCert struct{ last ports.CertificateData }

func (f *fakeCert) Generate(data ports.CertificateData) ([]byte, error) {
	f.last = data
	return []byte("%PDF-1.4"), nil
}

func newInternshipUC(w *world, pub usecase.JobPublisher, cert ports.CertificateGenerator, capacity int) *usecase.InternshipUseCase {
	return usecase.NewInternshipUseCase(w.db.registry(), w.tx(), pub, cert, usecase.InternshipConfig{
		MaxStudentsPerAdvisor: capacity,
		PublicURL:             "https://practicas.uni.mx/",
	})
}

func (w *world) assignReq() dto.AssignInternshipRequest {
	return dto.AssignInternshipRequest{AdvisorID: w.advisor.UserID, TutorID: w.tutor.UserID, CompanyID: w.companyID}
}

func TestInternship_AsignarYRespetarCapacidad(t *testing.T) {
	w := newWorld()
	pub := &recordingPublisher{}
	uc := newInternshipUC(w, pub, nil, 1)

	p1, err := uc.Create(ctx, w.coordinator, dto.CreateInternshipRequest{StudentID: w.student.UserID, PostingID: w.postingID})
	require.NoError(t, err)
	assert.Equal(t, string(entity.InternshipPending), p1.Status)

	got, err := uc.Assign(ctx, w.coordinator, p1.ID, w.assignReq())
	require.NoError(t, err)
	assert.Equal(t, string(entity.InternshipAssigned), got.Status)
	assert.Equal(t, 1, pub.count(jobs.NotifyOnAssignment))

	// Reasignar la misma práctica no cuenta contra la capacidad.
	_, err = uc.Assign(ctx, w.coordinator, p1.ID, w.assignReq())
	require.NoError(t, err)

	other := w.addStudent("est-2")
	p2, err := uc.Create(ctx, w.coordinator, dto.CreateInternshipRequest{StudentID: other.UserID})
	require.NoError(t, err)
	_, err = uc.Assign(ctx, w.coordinator, p2.ID, w.assignReq())
	require.Error(t, err)
	assert.Equal(t, "El docente asesor ya tiene el máximo de 1 estudiantes asignados.", err.Error())
	assert.Equal(t, "advisor_id", domain.FieldOf(err))
}

func TestInternship_UnaPracticaActivaPorEstudiante(t *testing.T) {
	w := newWorld()
	w.activeInternship("pr-activa")
	uc := newInternshipUC(w, nil, nil, 10)

	p, err := uc.Create(ctx, w.coordinator, dto.CreateInternshipRequest{StudentID: w.student.UserID})
	require.NoError(t, err)
	_, err = uc.Assign(ctx, w.coordinator, p.ID, w.assignReq())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInternship_TutorDeOtraEmpresa(t *testing.T) {
	w := newWorld()
	w.db.companies["comp-2"] = &entity.Company{ID: "comp-2", Name: "Otra", Active: true}
	uc := newInternshipUC(w, nil, nil, 10)

	p, err := uc.Create(ctx, w.coordinator, dto.CreateInternshipRequest{StudentID: w.student.UserID})
	require.NoError(t, err)
	req := w.assignReq()
	req.CompanyID = "comp-2"
	_, err = uc.Assign(ctx, w.coordinator, p.ID, req)
	require.Error(t, err)
	assert.Equal(t, "El tutor empresarial debe pertenecer a la empresa asignada.", err.Error())
}

func TestInternship_CicloDeVida(t *testing.T) {
	w := newWorld()
	uc := newInternshipUC(w, nil, nil, 10)
	p, err := uc.Create(ctx, w.coordinator, dto.CreateInternshipRequest{StudentID: w.student.UserID})
	require.NoError(t, err)

	_, err = uc.Start(ctx, w.coordinator, p.ID)
	assert.EqualError(t, err, "La práctica debe estar en estado ASIGNADA.")

	_, err = uc.Assign(ctx, w.coordinator, p.ID, w.assignReq())
	require.NoError(t, err)

	_, err = uc.Start(ctx, w.student, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el estudiante no inicia su práctica")

	got, err := uc.Start(ctx, w.advisor, p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.InternshipInProgress), got.Status)

	grade := decimal.NewFromInt(95)
	got, err = uc.Complete(ctx, w.advisor, p.ID, dto.CompleteInternshipRequest{FinalGrade: &grade})
	require.NoError(t, err)
	assert.Equal(t, string(entity.InternshipCompleted), got.Status)

	got, err = uc.CloseRecord(ctx, w.coordinator, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Closed)
}

func TestInternship_Visibilidad(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := newInternshipUC(w, nil, nil, 10)

	for _, a := range []usecase.Actor{w.coordinator, w.advisor, w.tutor, w.student} {
		_, err := uc.GetByID(ctx, a, p.ID)
		assert.NoError(t, err, a.Role)
	}
	stranger := usecase.Actor{UserID: "adv-9", Role: entity.RoleAdvisor}
	_, err := uc.GetByID(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, stranger, dto.InternshipFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestInternship_Progreso(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	g := decimal.NewFromInt(90)
	for i, st := range []entity.DeliverableStatus{entity.DeliverableApproved, entity.DeliverableSubmitted, entity.DeliverablePending} {
		d := &entity.Deliverable{ID: string(rune('a' + i)), InternshipID: p.ID, StudentID: p.StudentID, Status: st}
		if st == entity.DeliverableApproved {
			d.Grade = &g
			now := time.Now()
			d.EvaluatedAt = &now
		}
		w.db.deliverables[d.ID] = d
	}
	uc := newInternshipUC(w, nil, nil, 10)

	prog, err := uc.Progress(ctx, w.student, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, prog.Total)
	assert.Equal(t, 1, prog.Evaluated)
	assert.Equal(t, 33, prog.Percent)
}

func TestInternship_Constancia(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	cert := &fakeCert{}
	uc := newInternshipUC(w, nil, cert, 10)

	_, _, err := uc.Certificate(ctx, w.student, p.ID)
	assert.EqualError(t, err, "Solo las prácticas completadas tienen constancia.")

	grade := decimal.NewFromInt(98)
	_, err = uc.Complete(ctx, w.advisor, p.ID, dto.CompleteInternshipRequest{FinalGrade: &grade})
	require.NoError(t, err)

	pdf, name, err := uc.Certificate(ctx, w.student, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, "constancia-EST00000001.pdf", name)
	assert.Equal(t, "Acme", cert.last.CompanyName)
	assert.Equal(t, "Ingeniería en Sistemas", cert.last.Major)
	assert.Equal(t, "https://practicas.uni.mx/api/internships/pr-1/certificate", cert.last.VerifyURL)
}
