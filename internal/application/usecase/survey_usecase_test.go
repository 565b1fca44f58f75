package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func publishedSurvey(t *testing.T, w *world, uc *usecase.SurveyUseCase, audience entity.SurveyAudience, anonymous bool) *dto.SurveyResponse {
	t.Helper()
	s, err := uc.Create(ctx, w.coordinator, dto.CreateSurveyRequest{
		Title:     "Satisfacción con la práctica",
		Audience:  string(audience),
		Anonymous: anonymous,
		Questions: []dto.QuestionRequest{
			{Text: "¿Cómo calificas tu experiencia?", Type: string(entity.QuestionScale), Required: true},
			{Text: "¿Recomendarías la empresa?", Type: string(entity.QuestionYesNo), Required: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, s.Questions, 2)
	s, err = uc.Publish(ctx, w.coordinator, s.ID)
	require.NoError(t, err)
	return s
}

func answers(s *dto.SurveyResponse, scale int, yes bool) dto.RespondSurveyRequest {
	return dto.RespondSurveyRequest{Answers: []dto.AnswerRequest{
		{QuestionID: s.Questions[0].ID, Numeric: intp(scale)},
		{QuestionID: s.Questions[1].ID, Boolean: boolp(yes)},
	}}
}

func TestSurvey_AnonimaNoPermiteResponderDosVeces(t *testing.T) {
	w := newWorld()
	uc := usecase.NewSurveyUseCase(w.db.registry(), w.tx())
	s := publishedSurvey(t, w, uc, entity.AudienceStudents, true)

	pending, err := uc.Pending(ctx, w.student)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = uc.Respond(ctx, w.student, s.ID, answers(s, 5, true))
	require.NoError(t, err)
	require.Len(t, w.db.responses, 1)
	assert.Nil(t, w.db.responses[0].RespondentID, "en anónimas no se guarda el respondente")

	_, err = uc.Respond(ctx, w.student, s.ID, answers(s, 4, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	pending, err = uc.Pending(ctx, w.student)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSurvey_AudienciaYValidacion(t *testing.T) {
	w := newWorld()
	uc := usecase.NewSurveyUseCase(w.db.registry(), w.tx())
	s := publishedSurvey(t, w, uc, entity.AudienceStudents, false)

	_, err := uc.Respond(ctx, w.tutor, s.ID, answers(s, 5, true))
	assert.ErrorIs(t, err, domain.ErrNotFound, "un tutor no ve encuestas de estudiantes")

	_, err = uc.Respond(ctx, w.coordinator, s.ID, answers(s, 5, true))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := answers(s, 7, true)
	_, err = uc.Respond(ctx, w.student, s.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Las preguntas de una encuesta publicada no se editan.
	qs := []dto.QuestionRequest{{Text: "Nueva", Type: string(entity.QuestionShortText)}}
	_, err = uc.Update(ctx, w.coordinator, s.ID, dto.UpdateSurveyRequest{Questions: &qs})
	assert.EqualError(t, err, "Solo se pueden modificar las preguntas de una encuesta en borrador.")
}

func TestSurvey_Resultados(t *testing.T) {
	w := newWorld()
	s2 := w.addStudent("est-2")
	w.addStudent("est-3")
	uc := usecase.NewSurveyUseCase(w.db.registry(), w.tx())
	s := publishedSurvey(t, w, uc, entity.AudienceStudents, false)

	_, err := uc.Respond(ctx, w.student, s.ID, answers(s, 5, true))
	require.NoError(t, err)
	_, err = uc.Respond(ctx, s2, s.ID, answers(s, 4, false))
	require.NoError(t, err)

	res, err := uc.Results(ctx, w.coordinator, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalResponses)
	assert.Equal(t, 2, res.Respondents)
	assert.Equal(t, 3, res.TargetUsers)
	assert.Equal(t, 66.67, res.ResponseRate)
	require.Len(t, res.Questions, 2)
	require.NotNil(t, res.Questions[0].Average)
	assert.InDelta(t, 4.5, *res.Questions[0].Average, 0.001)
	require.NotNil(t, res.Questions[1].Yes)
	assert.Equal(t, 1, *res.Questions[1].Yes)
	assert.Equal(t, 1, *res.Questions[1].No)

	_, err = uc.Results(ctx, w.student, s.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSurvey_ListaSoloActivasParaQuienResponde(t *testing.T) {
	w := newWorld()
	uc := usecase.NewSurveyUseCase(w.db.registry(), w.tx())
	publishedSurvey(t, w, uc, entity.AudienceAll, false)
	_, err := uc.Create(ctx, w.coordinator, dto.CreateSurveyRequest{Title: "Borrador", Audience: string(entity.AudienceAll)})
	require.NoError(t, err)

	list, err := uc.List(ctx, w.tutor, dto.SurveyFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	list, err = uc.List(ctx, w.coordinator, dto.SurveyFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}
