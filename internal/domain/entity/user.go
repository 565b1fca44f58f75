package entity

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/shopspring/decimal"
)

var phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// Límites del perfil de estudiante.
var (
	MinGPA = decimal.Zero
	MaxGPA = decimal.NewFromInt(10)
)

// RoleProfile atributos propios del rol. Solo existe el perfil del rol activo:
// un estudiante no tiene campos de docente ni de tutor.
type RoleProfile interface {
	ProfileRole() Role
}

// StudentProfile datos académicos del estudiante.
type StudentProfile struct {
	EnrollmentID string // matrícula
	Major        string
	Semester     int
	GPA          decimal.Decimal // promedio, escala 0-10 con dos decimales
}

// ProfileRole implementa RoleProfile.
func (*StudentProfile) ProfileRole() Role { return RoleStudent }

// AdvisorProfile datos del docente asesor.
type AdvisorProfile struct {
	Department string
	Specialty  string
}

// ProfileRole implementa RoleProfile.
func (*AdvisorProfile) ProfileRole() Role { return RoleAdvisor }

// TutorProfile datos del tutor empresarial.
type TutorProfile struct {
	CompanyID string
	Position  string
}

// ProfileRole implementa RoleProfile.
func (*TutorProfile) ProfileRole() Role { return RoleTutor }

// CoordinatorProfile la coordinadora no tiene atributos adicionales.
type CoordinatorProfile struct{}

// ProfileRole implementa RoleProfile.
func (*CoordinatorProfile) ProfileRole() Role { return RoleCoordinator }

// NewProfile devuelve un perfil vacío para el rol.
func NewProfile(r Role) RoleProfile {
	switch r {
	case RoleStudent:
		return &StudentProfile{Semester: 1}
	case RoleAdvisor:
		return &AdvisorProfile{}
	case RoleTutor:
		return &TutorProfile{}
	case RoleCoordinator:
		return &CoordinatorProfile{}
	}
	return nil
}

// User usuario de la plataforma.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Profile      RoleProfile
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre completo o el email si no hay nombre.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Student devuelve el perfil de estudiante si el usuario lo es.
func (u *User) Student() (*StudentProfile, bool) {
	p, ok := u.Profile.(*StudentProfile)
	return p, ok && p != nil
}

// Advisor devuelve el perfil de docente asesor.
func (u *User) Advisor() (*AdvisorProfile, bool) {
	p, ok := u.Profile.(*AdvisorProfile)
	return p, ok && p != nil
}

// Tutor devuelve el perfil de tutor empresarial.
func (u *User) Tutor() (*TutorProfile, bool) {
	p, ok := u.Profile.(*TutorProfile)
	return p, ok && p != nil
}

// CompanyID empresa del tutor; vacío para el resto de roles.
func (u *User) CompanyID() string {
	if t, ok := u.Tutor(); ok {
		return t.CompanyID
	}
	return ""
}

// Validate comprueba rol, teléfono y que el perfil corresponda al rol.
func (u *User) Validate() error {
	if !u.Role.Valid() {
		return domain.ValidationField("role", "Rol inválido.")
	}
	if strings.TrimSpace(u.Email) == "" {
		return domain.ValidationField("email", "El email es requerido.")
	}
	if u.Phone != "" && !phoneRegex.MatchString(u.Phone) {
		return domain.ValidationField("phone", "Formato: '+999999999'. Hasta 15 dígitos permitidos.")
	}
	if u.Profile == nil {
		u.Profile = NewProfile(u.Role)
	}
	if u.Profile.ProfileRole() != u.Role {
		return domain.ValidationField("role", "El perfil no corresponde al rol del usuario.")
	}
	if s, ok := u.Student(); ok {
		return s.Validate()
	}
	return nil
}

// Validate comprueba semestre y promedio.
func (s *StudentProfile) Validate() error {
	if s.Semester < 1 || s.Semester > 12 {
		return domain.ValidationField("semester", "El semestre debe estar entre 1 y 12.")
	}
	if s.GPA.LessThan(MinGPA) || s.GPA.GreaterThan(MaxGPA) {
		return domain.ValidationField("gpa", "El promedio debe estar entre 0 y 10.")
	}
	return nil
}

// EnsureEnrollmentID genera la matrícula EST######## si no existe.
func (s *StudentProfile) EnsureEnrollmentID() {
	if strings.TrimSpace(s.EnrollmentID) == "" {
		s.EnrollmentID = fmt.Sprintf("EST%08d", rand.IntN(100000000))
	}
}
