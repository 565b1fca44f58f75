package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func TestCompany_Verificar(t *testing.T) {
	w := newWorld()
	uc := usecase.NewCompanyUseCase(w.db.registry())

	_, err := uc.Verify(ctx, w.tutor, w.companyID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	c, err := uc.Verify(ctx, w.coordinator, w.companyID)
	require.NoError(t, err)
	assert.True(t, c.Verified)
	assert.True(t, w.db.companies[w.companyID].Verified)

	_, err = uc.Verify(ctx, w.coordinator, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompany_VacantesDeLaEmpresa(t *testing.T) {
	w := newWorld()
	w.addPosting("vac-2", entity.PostingPaused)
	w.db.companies["comp-2"] = &entity.Company{ID: "comp-2", Name: "Globex", TaxID: "GLO010101AB1", Active: true, CreatedAt: time.Now()}
	w.db.postings["vac-9"] = &entity.Posting{ID: "vac-9", CompanyID: "comp-2", Title: "QA", MinSemester: 1, SlotsAvailable: 1, Status: entity.PostingOpen}
	uc := usecase.NewCompanyUseCase(w.db.registry())

	list, err := uc.Postings(ctx, w.student, w.companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"vac-1"}, postingIDs(list.Items))

	list, err = uc.Postings(ctx, w.coordinator, w.companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"vac-1", "vac-2"}, postingIDs(list.Items))
	assert.Equal(t, 2, list.Page.Total)

	_, err = uc.Postings(ctx, w.coordinator, "no-existe", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompany_RFCDuplicadoYBorradoConVacantes(t *testing.T) {
	w := newWorld()
	uc := usecase.NewCompanyUseCase(w.db.registry())

	_, err := uc.Create(ctx, w.coordinator, dto.CreateCompanyRequest{Name: "Otra", TaxID: "acm010101ab1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el RFC se compara en mayúsculas")

	err = uc.Delete(ctx, w.coordinator, w.companyID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, w.db.companies, w.companyID)
}
