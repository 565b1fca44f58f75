package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var (
	_ repository.SurveyRepository         = (*SurveyRepo)(nil)
	_ repository.SurveyResponseRepository = (*SurveyResponseRepo)(nil)
)

// SurveyRepo encuestas y preguntas sobre PostgreSQL.
type SurveyRepo struct {
	db Querier
}

// NewSurveyRepository construye el repositorio de encuestas.
func NewSurveyRepository(db Querier) *SurveyRepo {
	return &SurveyRepo{db: db}
}

const surveyColumns = `
	s.id, s.title, s.description, s.audience, s.status, s.opens_at, s.closes_at, COALESCE(s.created_by::text, ''),
	s.anonymous, s.allow_multiple, s.created_at, s.updated_at`

func scanSurvey(row scanner, extra ...any) (*entity.Survey, error) {
	var s entity.Survey
	dest := []any{
		&s.ID, &s.Title, &s.Description, &s.Audience, &s.Status, &s.OpensAt, &s.ClosesAt, &s.CreatedBy,
		&s.Anonymous, &s.AllowMultiple, &s.CreatedAt, &s.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la encuesta y sus preguntas.
func (r *SurveyRepo) Create(ctx context.Context, s *entity.Survey) error {
	query := `
		INSERT INTO surveys (id, title, description, audience, status, opens_at, closes_at, created_by,
			anonymous, allow_multiple, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Title, s.Description, s.Audience, s.Status, s.OpensAt, s.ClosesAt, nullable(s.CreatedBy),
		s.Anonymous, s.AllowMultiple, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	return r.insertQuestions(ctx, s.ID, s.Questions)
}

func (r *SurveyRepo) insertQuestions(ctx context.Context, surveyID string, questions []entity.Question) error {
	for _, q := range questions {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO survey_questions (id, survey_id, text, type, sort_order, required, options)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			q.ID, surveyID, q.Text, q.Type, q.Order, q.Required, options)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ValidationField("questions", fmt.Sprintf("El orden %d está repetido.", q.Order))
			}
			return fmt.Errorf("insert question: %w", err)
		}
	}
	return nil
}

// ReplaceQuestions reemplaza las preguntas de la encuesta.
func (r *SurveyRepo) ReplaceQuestions(ctx context.Context, surveyID string, questions []entity.Question) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM survey_questions WHERE survey_id = $1`, surveyID); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	return r.insertQuestions(ctx, surveyID, questions)
}

// GetByID obtiene la encuesta con sus preguntas ordenadas.
func (r *SurveyRepo) GetByID(ctx context.Context, id string) (*entity.Survey, error) {
	s, err := scanSurvey(r.db.QueryRow(ctx, `SELECT `+surveyColumns+` FROM surveys s WHERE s.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, survey_id, text, type, sort_order, required, options
		FROM survey_questions WHERE survey_id = $1 ORDER BY sort_order`, id)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var q entity.Question
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Text, &q.Type, &q.Order, &q.Required, &q.Options); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		s.Questions = append(s.Questions, q)
	}
	return s, rows.Err()
}

// Update actualiza los datos de la encuesta (no las preguntas).
func (r *SurveyRepo) Update(ctx context.Context, s *entity.Survey) error {
	query := `
		UPDATE surveys SET title = $2, description = $3, audience = $4, status = $5, opens_at = $6, closes_at = $7,
			anonymous = $8, allow_multiple = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Title, s.Description, s.Audience, s.Status, s.OpensAt, s.ClosesAt, s.Anonymous, s.AllowMultiple,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update survey: %w", err)
	}
	return nil
}

// Delete elimina la encuesta con preguntas y respuestas.
func (r *SurveyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}
	return nil
}

// List lista encuestas sin preguntas.
func (r *SurveyRepo) List(ctx context.Context, f repository.SurveyFilter) ([]*entity.Survey, int, error) {
	var w where
	w.addIf(f.Status != "", "s.status = $%d", f.Status)
	w.addIf(f.CreatedBy != "", "s.created_by = $%d", f.CreatedBy)
	w.addIf(len(f.Audiences) > 0, "s.audience = ANY($%d::text[])", audienceNames(f.Audiences))
	query := `SELECT ` + surveyColumns + `, COUNT(*) OVER() FROM surveys s` + w.sql() +
		` ORDER BY s.created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Survey
		total int
	)
	for rows.Next() {
		s, err := scanSurvey(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan survey: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// ListPending encuestas activas y vigentes para las audiencias sin recibo del usuario.
func (r *SurveyRepo) ListPending(ctx context.Context, userID string, audiences []entity.SurveyAudience) ([]*entity.Survey, error) {
	if len(audiences) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+surveyColumns+` FROM surveys s
		WHERE s.status = 'ACTIVA' AND s.audience = ANY($1::text[])
		AND (s.closes_at IS NULL OR s.closes_at > NOW())
		AND NOT EXISTS (SELECT 1 FROM survey_receipts sr WHERE sr.survey_id = s.id AND sr.user_id = $2)
		ORDER BY s.created_at DESC`, audienceNames(audiences), userID)
	if err != nil {
		return nil, fmt.Errorf("list pending surveys: %w", err)
	}
	defer rows.Close()
	var list []*entity.Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func audienceNames(list []entity.SurveyAudience) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = string(a)
	}
	return out
}

// SurveyResponseRepo respuestas y recibos sobre PostgreSQL.
type SurveyResponseRepo struct {
	db Querier
}

// NewSurveyResponseRepository construye el repositorio de respuestas.
func NewSurveyResponseRepository(db Querier) *SurveyResponseRepo {
	return &SurveyResponseRepo{db: db}
}

// Create inserta la respuesta, sus respuestas por pregunta y el recibo del usuario.
func (r *SurveyResponseRepo) Create(ctx context.Context, resp *entity.SurveyResponse, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO survey_responses (id, survey_id, respondent_id, internship_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		resp.ID, resp.SurveyID, resp.RespondentID, resp.InternshipID, resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert survey response: %w", err)
	}
	for _, a := range resp.Answers {
		selected := a.Selected
		if selected == nil {
			selected = []string{}
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO survey_answers (id, response_id, question_id, text, numeric_value, boolean_value, selected)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, resp.ID, a.QuestionID, a.Text, a.Numeric, a.Boolean, selected)
		if err != nil {
			return fmt.Errorf("insert survey answer: %w", err)
		}
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO survey_receipts (survey_id, user_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (survey_id, user_id) DO NOTHING`, resp.SurveyID, userID, resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert survey receipt: %w", err)
	}
	return nil
}

// HasResponded indica si el usuario ya tiene recibo de la encuesta.
func (r *SurveyResponseRepo) HasResponded(ctx context.Context, surveyID, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM survey_receipts WHERE survey_id = $1 AND user_id = $2)`,
		surveyID, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("survey receipt exists: %w", err)
	}
	return ok, nil
}

// CountRespondents usuarios distintos que respondieron.
func (r *SurveyResponseRepo) CountRespondents(ctx context.Context, surveyID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM survey_receipts WHERE survey_id = $1`, surveyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count respondents: %w", err)
	}
	return n, nil
}

// CountResponses respuestas totales (mayor que respondientes si se permiten varias).
func (r *SurveyResponseRepo) CountResponses(ctx context.Context, surveyID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM survey_responses WHERE survey_id = $1`, surveyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return n, nil
}

// ListAnswers todas las respuestas por pregunta de la encuesta.
func (r *SurveyResponseRepo) ListAnswers(ctx context.Context, surveyID string) ([]entity.Answer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.response_id, a.question_id, a.text, a.numeric_value, a.boolean_value, a.selected
		FROM survey_answers a JOIN survey_responses r ON r.id = a.response_id
		WHERE r.survey_id = $1`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()
	var list []entity.Answer
	for rows.Next() {
		var a entity.Answer
		if err := rows.Scan(&a.ID, &a.ResponseID, &a.QuestionID, &a.Text, &a.Numeric, &a.Boolean, &a.Selected); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
