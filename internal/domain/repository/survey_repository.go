package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// SurveyFilter filtros de encuestas.
type SurveyFilter struct {
	Status    entity.SurveyStatus
	Audiences []entity.SurveyAudience
	CreatedBy string
	Limit     int
	Offset    int
}

// SurveyRepository puerto de persistencia de encuestas con sus preguntas.
type SurveyRepository interface {
	// Create guarda también las preguntas.
	Create(ctx context.Context, s *entity.Survey) error
	GetByID(ctx context.Context, id string) (*entity.Survey, error)
	Update(ctx context.Context, s *entity.Survey) error
	// ReplaceQuestions borra las preguntas de la encuesta e inserta las nuevas.
	ReplaceQuestions(ctx context.Context, surveyID string, questions []entity.Question) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f SurveyFilter) ([]*entity.Survey, int, error)
	// ListPending encuestas activas para las audiencias que userID aún no responde.
	ListPending(ctx context.Context, userID string, audiences []entity.SurveyAudience) ([]*entity.Survey, error)
}

// SurveyResponseRepository puerto de persistencia de respuestas.
// Cada respuesta deja un recibo (encuesta, usuario) aun si la encuesta es anónima.
type SurveyResponseRepository interface {
	Create(ctx context.Context, r *entity.SurveyResponse, userID string) error
	HasResponded(ctx context.Context, surveyID, userID string) (bool, error)
	CountRespondents(ctx context.Context, surveyID string) (int, error)
	ListAnswers(ctx context.Context, surveyID string) ([]entity.Answer, error)
	CountResponses(ctx context.Context, surveyID string) (int, error)
}
