package dto

import "time"

// QuestionRequest pregunta de una encuesta.
type QuestionRequest struct {
	Text     string   `json:"text" validate:"required"`
	Type     string   `json:"type" validate:"required,oneof=TEXTO_CORTO TEXTO_LARGO OPCION_MULTIPLE SELECCION_UNICA ESCALA SI_NO"`
	Order    int      `json:"order" validate:"min=0"`
	Required bool     `json:"required"`
	Options  []string `json:"options" validate:"omitempty,dive,required"`
}

// CreateSurveyRequest alta de una encuesta en borrador.
type CreateSurveyRequest struct {
	Title         string            `json:"title" validate:"required,max=200"`
	Description   string            `json:"description"`
	Audience      string            `json:"audience" validate:"required,oneof=ESTUDIANTES TUTORES DOCENTES TODOS"`
	ClosesAt      *time.Time        `json:"closes_at"`
	Anonymous     bool              `json:"anonymous"`
	AllowMultiple bool              `json:"allow_multiple"`
	Questions     []QuestionRequest `json:"questions" validate:"dive"`
}

// UpdateSurveyRequest edición de una encuesta. Las preguntas solo se reemplazan en borrador.
type UpdateSurveyRequest struct {
	Title         *string            `json:"title" validate:"omitempty,max=200"`
	Description   *string            `json:"description"`
	Audience      *string            `json:"audience" validate:"omitempty,oneof=ESTUDIANTES TUTORES DOCENTES TODOS"`
	ClosesAt      *time.Time         `json:"closes_at"`
	Anonymous     *bool              `json:"anonymous"`
	AllowMultiple *bool              `json:"allow_multiple"`
	Questions     *[]QuestionRequest `json:"questions" validate:"omitempty,dive"`
}

// AnswerRequest respuesta a una pregunta.
type AnswerRequest struct {
	QuestionID string   `json:"question_id" validate:"required,uuid"`
	Text       string   `json:"text"`
	Numeric    *int     `json:"numeric"`
	Boolean    *bool    `json:"boolean"`
	Selected   []string `json:"selected"`
}

// RespondSurveyRequest respuesta completa a una encuesta.
type RespondSurveyRequest struct {
	InternshipID string          `json:"internship_id" validate:"omitempty,uuid"`
	Answers      []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

// SurveyFilterRequest filtros de encuestas.
type SurveyFilterRequest struct {
	PageRequest
	Status string `query:"status"`
}

// QuestionResponse salida de una pregunta.
type QuestionResponse struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Order    int      `json:"order"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

// SurveyResponse salida de una encuesta.
type SurveyResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Audience      string             `json:"audience"`
	Status        string             `json:"status"`
	OpensAt       *time.Time         `json:"opens_at"`
	ClosesAt      *time.Time         `json:"closes_at"`
	CreatedBy     string             `json:"created_by"`
	Anonymous     bool               `json:"anonymous"`
	AllowMultiple bool               `json:"allow_multiple"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// SurveyListResponse lista paginada de encuestas.
type SurveyListResponse struct {
	Items []SurveyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// SurveySubmissionResponse acuse de una respuesta registrada.
type SurveySubmissionResponse struct {
	ResponseID string    `json:"response_id"`
	SurveyID   string    `json:"survey_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionResultResponse resumen por pregunta.
type QuestionResultResponse struct {
	QuestionID   string         `json:"question_id"`
	Text         string         `json:"text"`
	Type         string         `json:"type"`
	Order        int            `json:"order"`
	Total        int            `json:"total"`
	Average      *float64       `json:"average,omitempty"`
	Distribution map[int]int    `json:"distribution,omitempty"`
	OptionCounts map[string]int `json:"option_counts,omitempty"`
	Yes          *int           `json:"yes,omitempty"`
	No           *int           `json:"no,omitempty"`
	TextAnswers  []string       `json:"text_answers,omitempty"`
}

// SurveyResultsResponse resultados agregados de una encuesta.
type SurveyResultsResponse struct {
	SurveyID       string                   `json:"survey_id"`
	Title          string                   `json:"title"`
	TotalResponses int                      `json:"total_responses"`
	Respondents    int                      `json:"respondents"`
	TargetUsers    int                      `json:"target_users"`
	ResponseRate   float64                  `json:"response_rate"`
	Questions      []QuestionResultResponse `json:"questions"`
}
