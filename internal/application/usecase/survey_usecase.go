package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// SurveyUseCase encuestas: diseño, publicación, respuestas y resultados.
type SurveyUseCase struct {
	repos repository.Registry
	tx    TxRunner
}

// NewSurveyUseCase construye el caso de uso.
func NewSurveyUseCase(repos repository.Registry, tx TxRunner) *SurveyUseCase {
	return &SurveyUseCase{repos: repos, tx: tx}
}

func toQuestions(surveyID string, in []dto.QuestionRequest) []entity.Question {
	out := make([]entity.Question, 0, len(in))
	for i, q := range in {
		order := q.Order
		if order == 0 {
			order = i + 1
		}
		out = append(out, entity.Question{
			ID:       newID(),
			SurveyID: surveyID,
			Text:     q.Text,
			Type:     entity.QuestionType(q.Type),
			Order:    order,
			Required: q.Required,
			Options:  q.Options,
		})
	}
	return out
}

// Create registra una encuesta en BORRADOR.
func (uc *SurveyUseCase) Create(ctx context.Context, actor Actor, in dto.CreateSurveyRequest) (*dto.SurveyResponse, error) {
	if err := actor.require(entity.CapManageSurveys, "Solo coordinación puede gestionar encuestas."); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Survey{
		ID:            newID(),
		Title:         in.Title,
		Description:   in.Description,
		Audience:      entity.SurveyAudience(in.Audience),
		Status:        entity.SurveyDraft,
		ClosesAt:      in.ClosesAt,
		CreatedBy:     actor.UserID,
		Anonymous:     in.Anonymous,
		AllowMultiple: in.AllowMultiple,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.Questions = toQuestions(s.ID, in.Questions)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repos.Surveys.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSurveyResponse(s, true), nil
}

// load coordinación ve todas; el resto solo activas o cerradas de sus audiencias.
func (uc *SurveyUseCase) load(ctx context.Context, actor Actor, id string) (*entity.Survey, error) {
	s, err := uc.repos.Surveys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("Encuesta no encontrada.")
	}
	if actor.Can(entity.CapManageSurveys) {
		return s, nil
	}
	if s.Status == entity.SurveyDraft || !slices.Contains(entity.AudiencesFor(actor.Role), s.Audience) {
		return nil, domain.NotFound("Encuesta no encontrada.")
	}
	return s, nil
}

// GetByID obtiene la encuesta con sus preguntas.
func (uc *SurveyUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.SurveyResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toSurveyResponse(s, true), nil
}

// List encuestas; quien responde solo ve las activas de sus audiencias.
func (uc *SurveyUseCase) List(ctx context.Context, actor Actor, in dto.SurveyFilterRequest) (*dto.SurveyListResponse, error) {
	in.DefaultPage()
	f := repository.SurveyFilter{Status: entity.SurveyStatus(in.Status), Limit: in.Limit, Offset: in.Offset}
	if !actor.Can(entity.CapManageSurveys) {
		f.Status = entity.SurveyActive
		f.Audiences = entity.AudiencesFor(actor.Role)
	}
	list, total, err := uc.repos.Surveys.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.SurveyListResponse{Items: toSurveyList(list), Page: page(in.Limit, in.Offset, total)}, nil
}

// Pending encuestas activas que el actor aún no responde.
func (uc *SurveyUseCase) Pending(ctx context.Context, actor Actor) ([]dto.SurveyResponse, error) {
	audiences := entity.AudiencesFor(actor.Role)
	if len(audiences) == 0 {
		return []dto.SurveyResponse{}, nil
	}
	list, err := uc.repos.Surveys.ListPending(ctx, actor.UserID, audiences)
	if err != nil {
		return nil, err
	}
	return toSurveyList(list), nil
}

// Update edita la encuesta; las preguntas solo cambian en BORRADOR.
func (uc *SurveyUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateSurveyRequest) (*dto.SurveyResponse, error) {
	if err := actor.require(entity.CapManageSurveys, "Solo coordinación puede gestionar encuestas."); err != nil {
		return nil, err
	}
	var out *entity.Survey
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		s, err := repos.Surveys.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("Encuesta no encontrada.")
		}
		setString(&s.Title, in.Title)
		setString(&s.Description, in.Description)
		if in.Audience != nil {
			s.Audience = entity.SurveyAudience(*in.Audience)
		}
		if in.ClosesAt != nil {
			s.ClosesAt = in.ClosesAt
		}
		if in.Anonymous != nil {
			s.Anonymous = *in.Anonymous
		}
		if in.AllowMultiple != nil {
			s.AllowMultiple = *in.AllowMultiple
		}
		if in.Questions != nil {
			if s.Status != entity.SurveyDraft {
				return domain.Validation("Solo se pueden modificar las preguntas de una encuesta en borrador.")
			}
			s.Questions = toQuestions(s.ID, *in.Questions)
		}
		if err := s.Validate(); err != nil {
			return err
		}
		s.UpdatedAt = time.Now()
		if err := repos.Surveys.Update(ctx, s); err != nil {
			return err
		}
		if in.Questions != nil {
			if err := repos.Surveys.ReplaceQuestions(ctx, s.ID, s.Questions); err != nil {
				return err
			}
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSurveyResponse(out, true), nil
}

// Delete elimina la encuesta con sus respuestas.
func (uc *SurveyUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.require(entity.CapManageSurveys, "Solo coordinación puede gestionar encuestas."); err != nil {
		return err
	}
	s, err := uc.repos.Surveys.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NotFound("Encuesta no encontrada.")
	}
	return uc.repos.Surveys.Delete(ctx, id)
}

// Publish BORRADOR → ACTIVA.
func (uc *SurveyUseCase) Publish(ctx context.Context, actor Actor, id string) (*dto.SurveyResponse, error) {
	return uc.transition(ctx, actor, id, (*entity.Survey).Publish)
}

// Close ACTIVA → CERRADA.
func (uc *SurveyUseCase) Close(ctx context.Context, actor Actor, id string) (*dto.SurveyResponse, error) {
	return uc.transition(ctx, actor, id, (*entity.Survey).Close)
}

func (uc *SurveyUseCase) transition(ctx context.Context, actor Actor, id string, fn func(*entity.Survey, time.Time) error) (*dto.SurveyResponse, error) {
	if err := actor.require(entity.CapManageSurveys, "Solo coordinación puede gestionar encuestas."); err != nil {
		return nil, err
	}
	s, err := uc.repos.Surveys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("Encuesta no encontrada.")
	}
	if err := fn(s, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repos.Surveys.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSurveyResponse(s, true), nil
}

// Respond registra las respuestas del actor. En encuestas anónimas no se guarda
// el respondente, pero el recibo (encuesta, usuario) impide responder dos veces.
func (uc *SurveyUseCase) Respond(ctx context.Context, actor Actor, id string, in dto.RespondSurveyRequest) (*dto.SurveySubmissionResponse, error) {
	if err := actor.require(entity.CapAnswerSurveys, "Tu rol no responde encuestas."); err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.SurveyResponse{ID: newID(), SurveyID: s.ID, CreatedAt: now}
	if !s.Anonymous {
		uid := actor.UserID
		r.RespondentID = &uid
	}
	if in.InternshipID != "" {
		p, err := loadInternship(ctx, uc.repos.Internships, actor, in.InternshipID)
		if err != nil {
			return nil, err
		}
		r.InternshipID = &p.ID
	}
	for _, a := range in.Answers {
		r.Answers = append(r.Answers, entity.Answer{
			ID:         newID(),
			ResponseID: r.ID,
			QuestionID: a.QuestionID,
			Text:       a.Text,
			Numeric:    a.Numeric,
			Boolean:    a.Boolean,
			Selected:   a.Selected,
		})
	}
	err = uc.tx.Run(ctx, func(repos repository.Registry) error {
		answered, err := repos.SurveyResponses.HasResponded(ctx, s.ID, actor.UserID)
		if err != nil {
			return err
		}
		if err := s.CanRespond(actor.Role, answered, now); err != nil {
			return err
		}
		if err := s.ValidateAnswers(r.Answers); err != nil {
			return err
		}
		return repos.SurveyResponses.Create(ctx, r, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.SurveySubmissionResponse{ResponseID: r.ID, SurveyID: s.ID, CreatedAt: now}, nil
}

// Results resumen por pregunta y tasa de respuesta sobre los usuarios
// activos de los roles destinatarios.
func (uc *SurveyUseCase) Results(ctx context.Context, actor Actor, id string) (*dto.SurveyResultsResponse, error) {
	if err := actor.require(entity.CapManageSurveys, "Solo coordinación puede ver resultados."); err != nil {
		return nil, err
	}
	s, err := uc.repos.Surveys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("Encuesta no encontrada.")
	}
	answers, err := uc.repos.SurveyResponses.ListAnswers(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	responses, err := uc.repos.SurveyResponses.CountResponses(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	respondents, err := uc.repos.SurveyResponses.CountRespondents(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	var roles []entity.Role
	for _, r := range s.Audience.Roles() {
		if r.Can(entity.CapAnswerSurveys) {
			roles = append(roles, r)
		}
	}
	target, err := uc.repos.Users.CountActiveByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}
	out := &dto.SurveyResultsResponse{
		SurveyID:       s.ID,
		Title:          s.Title,
		TotalResponses: responses,
		Respondents:    respondents,
		TargetUsers:    target,
		ResponseRate:   entity.ResponseRate(respondents, target),
	}
	for _, q := range entity.Summarize(s.Questions, answers) {
		res := dto.QuestionResultResponse{
			QuestionID:   q.QuestionID,
			Text:         q.Text,
			Type:         string(q.Type),
			Order:        q.Order,
			Total:        q.Total,
			Average:      q.Average,
			Distribution: q.Distribution,
			OptionCounts: q.OptionCounts,
			TextAnswers:  q.TextAnswers,
		}
		if q.Type == entity.QuestionYesNo {
			yes, no := q.Yes, q.No
			res.Yes, res.No = &yes, &no
		}
		out.Questions = append(out.Questions, res)
	}
	return out, nil
}

func toSurveyList(list []*entity.Survey) []dto.SurveyResponse {
	items := make([]dto.SurveyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSurveyResponse(s, false))
	}
	return items
}

func toSurveyResponse(s *entity.Survey, withQuestions bool) *dto.SurveyResponse {
	out := &dto.SurveyResponse{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		Audience:      string(s.Audience),
		Status:        string(s.Status),
		OpensAt:       s.OpensAt,
		ClosesAt:      s.ClosesAt,
		CreatedBy:     s.CreatedBy,
		Anonymous:     s.Anonymous,
		AllowMultiple: s.AllowMultiple,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if withQuestions {
		for _, q := range s.Questions {
			out.Questions = append(out.Questions, dto.QuestionResponse{
				ID:       q.ID,
				Text:     q.Text,
				Type:     string(q.Type),
				Order:    q.Order,
				Required: q.Required,
				Options:  q.Options,
			})
		}
	}
	return out
}
