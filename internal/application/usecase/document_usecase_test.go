package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func TestDocument_SubirValidarYBorrar(t *testing.T) {
	w := newWorld()
	store := newMemStorage()
	uc := usecase.NewDocumentUseCase(w.db.registry(), store)

	d, err := uc.Upload(ctx, w.student, dto.UploadDocumentRequest{Type: entity.DocumentCV}, "cv.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)
	assert.Equal(t, w.student.UserID, d.OwnerID)
	assert.Len(t, d.Hash, 64)
	assert.Equal(t, int64(len("contenido")), d.Size)

	_, err = uc.SetValid(ctx, w.student, d.ID, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	d, err = uc.SetValid(ctx, w.coordinator, d.ID, true)
	require.NoError(t, err)
	assert.True(t, d.Valid)

	_, err = uc.GetByID(ctx, w.tutor, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin práctica el tutor no ve el documento")

	require.NoError(t, uc.Delete(ctx, w.student, d.ID))
	assert.Empty(t, store.files)
}

func TestDocument_DocenteSubeParaSuEstudiante(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	store := newMemStorage()
	uc := usecase.NewDocumentUseCase(w.db.registry(), store)

	_, err := uc.Upload(ctx, w.advisor, dto.UploadDocumentRequest{OwnerID: w.student.UserID, Type: entity.DocumentAgreement},
		"convenio.pdf", strings.NewReader("x"))
	assert.Equal(t, "internship_id", domain.FieldOf(err))

	d, err := uc.Upload(ctx, w.advisor, dto.UploadDocumentRequest{
		OwnerID: w.student.UserID, InternshipID: p.ID, Type: entity.DocumentAgreement,
	}, "convenio.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, w.tutor, d.ID)
	assert.NoError(t, err, "el tutor de la práctica ve sus documentos")

	list, err := uc.List(ctx, w.student, dto.DocumentFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	_, err = uc.List(ctx, w.tutor, dto.DocumentFilterRequest{})
	assert.Equal(t, "internship_id", domain.FieldOf(err))
}

func TestObservation_Permisos(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := usecase.NewObservationUseCase(w.db.registry())

	_, err := uc.Create(ctx, w.student, dto.CreateObservationRequest{InternshipID: p.ID, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	o, err := uc.Create(ctx, w.advisor, dto.CreateObservationRequest{InternshipID: p.ID, Text: "Buen avance"})
	require.NoError(t, err)

	list, err := uc.ListByInternship(ctx, w.student, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Buen avance", list[0].Text)

	err = uc.Delete(ctx, w.coordinator, o.ID)
	require.NoError(t, err)
}
