package entity

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
)

// SurveyAudience destinatarios de una encuesta.
type SurveyAudience string

const (
	AudienceStudents SurveyAudience = "ESTUDIANTES"
	AudienceTutors   SurveyAudience = "TUTORES"
	AudienceAdvisors SurveyAudience = "DOCENTES"
	AudienceAll      SurveyAudience = "TODOS"
)

// Roles roles a los que va dirigida; TODOS incluye a todos los usuarios.
func (a SurveyAudience) Roles() []Role {
	switch a {
	case AudienceStudents:
		return []Role{RoleStudent}
	case AudienceTutors:
		return []Role{RoleTutor}
	case AudienceAdvisors:
		return []Role{RoleAdvisor}
	case AudienceAll:
		return Roles
	}
	return nil
}

// Includes indica si el rol puede responder la encuesta.
func (a SurveyAudience) Includes(r Role) bool {
	return r.Can(CapAnswerSurveys) && slices.Contains(a.Roles(), r)
}

// AudiencesFor audiencias visibles para un rol.
func AudiencesFor(r Role) []SurveyAudience {
	switch r {
	case RoleStudent:
		return []SurveyAudience{AudienceStudents, AudienceAll}
	case RoleTutor:
		return []SurveyAudience{AudienceTutors, AudienceAll}
	case RoleAdvisor:
		return []SurveyAudience{AudienceAdvisors, AudienceAll}
	}
	return nil
}

// SurveyStatus estado de la encuesta.
type SurveyStatus string

const (
	SurveyDraft  SurveyStatus = "BORRADOR"
	SurveyActive SurveyStatus = "ACTIVA"
	SurveyClosed SurveyStatus = "CERRADA"
)

// QuestionType tipo de pregunta.
type QuestionType string

const (
	QuestionShortText      QuestionType = "TEXTO_CORTO"
	QuestionLongText       QuestionType = "TEXTO_LARGO"
	QuestionMultipleChoice QuestionType = "OPCION_MULTIPLE"
	QuestionSingleChoice   QuestionType = "SELECCION_UNICA"
	QuestionScale          QuestionType = "ESCALA"
	QuestionYesNo          QuestionType = "SI_NO"
)

// Rango de las preguntas de escala.
const (
	ScaleMin = 1
	ScaleMax = 5
)

// Survey encuesta creada por coordinación.
type Survey struct {
	ID            string
	Title         string
	Description   string
	Audience      SurveyAudience
	Status        SurveyStatus
	OpensAt       *time.Time
	ClosesAt      *time.Time
	CreatedBy     string
	Anonymous     bool
	AllowMultiple bool
	Questions     []Question
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Question pregunta de una encuesta.
type Question struct {
	ID       string
	SurveyID string
	Text     string
	Type     QuestionType
	Order    int
	Required bool
	Options  []string
}

// SurveyResponse respuesta de un usuario (RespondentID nil si es anónima).
type SurveyResponse struct {
	ID           string
	SurveyID     string
	RespondentID *string
	InternshipID *string
	Answers      []Answer
	CreatedAt    time.Time
}

// Answer detalle de respuesta a una pregunta.
type Answer struct {
	ID         string
	ResponseID string
	QuestionID string
	Text       string
	Numeric    *int
	Boolean    *bool
	Selected   []string
}

func (q Question) usesOptions() bool {
	return q.Type == QuestionMultipleChoice || q.Type == QuestionSingleChoice
}

// Validate valida la encuesta y sus preguntas.
func (s *Survey) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return domain.ValidationField("title", "El título es requerido.")
	}
	if s.Audience.Roles() == nil {
		return domain.ValidationField("audience", "Destinatarios inválidos.")
	}
	if s.OpensAt != nil && s.ClosesAt != nil && s.ClosesAt.Before(*s.OpensAt) {
		return domain.ValidationField("closes_at", "La fecha de cierre debe ser posterior a la de inicio.")
	}
	orders := make(map[int]bool, len(s.Questions))
	for _, q := range s.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return domain.ValidationField("questions", "Todas las preguntas deben tener texto.")
		}
		switch q.Type {
		case QuestionShortText, QuestionLongText, QuestionScale, QuestionYesNo:
		case QuestionMultipleChoice, QuestionSingleChoice:
			if len(q.Options) < 2 {
				return domain.ValidationField("questions", fmt.Sprintf("La pregunta %d requiere al menos dos opciones.", q.Order))
			}
		default:
			return domain.ValidationField("questions", fmt.Sprintf("Tipo de pregunta inválido: %s.", q.Type))
		}
		if orders[q.Order] {
			return domain.ValidationField("questions", fmt.Sprintf("El orden %d está repetido.", q.Order))
		}
		orders[q.Order] = true
	}
	return nil
}

// Publish BORRADOR → ACTIVA.
func (s *Survey) Publish(now time.Time) error {
	if s.Status != SurveyDraft {
		return domain.Validation("Solo se pueden publicar encuestas en borrador.")
	}
	if len(s.Questions) == 0 {
		return domain.Validation("La encuesta debe tener al menos una pregunta.")
	}
	s.Status = SurveyActive
	s.OpensAt = &now
	s.UpdatedAt = now
	return nil
}

// Close ACTIVA → CERRADA.
func (s *Survey) Close(now time.Time) error {
	if s.Status != SurveyActive {
		return domain.Validation("Solo se pueden cerrar encuestas activas.")
	}
	s.Status = SurveyClosed
	s.ClosesAt = &now
	s.UpdatedAt = now
	return nil
}

// CanRespond verifica estado, rol y respuestas previas.
func (s *Survey) CanRespond(role Role, alreadyAnswered bool, now time.Time) error {
	if s.Status != SurveyActive {
		return domain.Validation("La encuesta no está activa.")
	}
	if s.ClosesAt != nil && now.After(*s.ClosesAt) {
		return domain.Validation("La encuesta ya cerró.")
	}
	if !s.Audience.Includes(role) {
		return domain.Forbidden("Esta encuesta no está dirigida a tu rol")
	}
	if alreadyAnswered && !s.AllowMultiple {
		return domain.Conflict("Ya respondiste esta encuesta.")
	}
	return nil
}

// ValidateAnswers comprueba que cada respuesta corresponda a una pregunta, que
// el valor sea del tipo esperado y que las preguntas requeridas estén respondidas.
func (s *Survey) ValidateAnswers(answers []Answer) error {
	byID := make(map[string]Question, len(s.Questions))
	for _, q := range s.Questions {
		byID[q.ID] = q
	}
	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return domain.ValidationField("answers", "Respuesta a una pregunta que no pertenece a la encuesta.")
		}
		if answered[a.QuestionID] {
			return domain.ValidationField("answers", fmt.Sprintf("La pregunta %d tiene más de una respuesta.", q.Order))
		}
		if err := validateAnswer(q, a); err != nil {
			return err
		}
		answered[a.QuestionID] = true
	}
	for _, q := range s.Questions {
		if q.Required && !answered[q.ID] {
			return domain.ValidationField("answers", fmt.Sprintf("La pregunta %d es requerida.", q.Order))
		}
	}
	return nil
}

func validateAnswer(q Question, a Answer) error {
	bad := func(msg string) error {
		return domain.ValidationField("answers", fmt.Sprintf("Pregunta %d: %s", q.Order, msg))
	}
	switch q.Type {
	case QuestionShortText, QuestionLongText:
		if strings.TrimSpace(a.Text) == "" {
			return bad("la respuesta de texto no puede estar vacía.")
		}
		if q.Type == QuestionShortText && len([]rune(a.Text)) > 255 {
			return bad("la respuesta corta admite hasta 255 caracteres.")
		}
	case QuestionScale:
		if a.Numeric == nil || *a.Numeric < ScaleMin || *a.Numeric > ScaleMax {
			return bad("la escala debe estar entre 1 y 5.")
		}
	case QuestionYesNo:
		if a.Boolean == nil {
			return bad("se requiere sí o no.")
		}
	case QuestionSingleChoice:
		if len(a.Selected) != 1 || !slices.Contains(q.Options, a.Selected[0]) {
			return bad("selecciona exactamente una opción válida.")
		}
	case QuestionMultipleChoice:
		if len(a.Selected) == 0 {
			return bad("selecciona al menos una opción.")
		}
		seen := make(map[string]bool, len(a.Selected))
		for _, opt := range a.Selected {
			if !slices.Contains(q.Options, opt) {
				return bad(fmt.Sprintf("opción inválida %q.", opt))
			}
			if seen[opt] {
				return bad(fmt.Sprintf("opción repetida %q.", opt))
			}
			seen[opt] = true
		}
	}
	return nil
}

// QuestionResult resumen de respuestas de una pregunta.
type QuestionResult struct {
	QuestionID   string
	Text         string
	Type         QuestionType
	Order        int
	Total        int
	Average      *float64
	Distribution map[int]int
	OptionCounts map[string]int
	Yes          int
	No           int
	TextAnswers  []string
}

// Summarize agrega las respuestas por pregunta: promedio y distribución para
// escalas, conteo por opción, conteo sí/no y lista de textos.
func Summarize(questions []Question, answers []Answer) []QuestionResult {
	byQuestion := make(map[string][]Answer)
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	sorted := slices.Clone(questions)
	slices.SortFunc(sorted, func(a, b Question) int { return a.Order - b.Order })

	results := make([]QuestionResult, 0, len(sorted))
	for _, q := range sorted {
		r := QuestionResult{QuestionID: q.ID, Text: q.Text, Type: q.Type, Order: q.Order}
		list := byQuestion[q.ID]
		r.Total = len(list)
		switch q.Type {
		case QuestionScale:
			r.Distribution = make(map[int]int, ScaleMax)
			for v := ScaleMin; v <= ScaleMax; v++ {
				r.Distribution[v] = 0
			}
			sum, n := 0, 0
			for _, a := range list {
				if a.Numeric != nil {
					r.Distribution[*a.Numeric]++
					sum += *a.Numeric
					n++
				}
			}
			if n > 0 {
				avg := math.Round(float64(sum)/float64(n)*100) / 100
				r.Average = &avg
			}
		case QuestionSingleChoice, QuestionMultipleChoice:
			r.OptionCounts = make(map[string]int, len(q.Options))
			for _, opt := range q.Options {
				r.OptionCounts[opt] = 0
			}
			for _, a := range list {
				for _, opt := range a.Selected {
					r.OptionCounts[opt]++
				}
			}
		case QuestionYesNo:
			for _, a := range list {
				if a.Boolean == nil {
					continue
				}
				if *a.Boolean {
					r.Yes++
				} else {
					r.No++
				}
			}
		default:
			for _, a := range list {
				r.TextAnswers = append(r.TextAnswers, a.Text)
			}
		}
		results = append(results, r)
	}
	return results
}

// ResponseRate porcentaje de usuarios objetivo que respondieron, con dos decimales.
func ResponseRate(respondents, target int) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(float64(respondents)/float64(target)*10000) / 100
}
