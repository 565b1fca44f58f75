package entity_test

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func TestUser_PerfilSegunRol(t *testing.T) {
	u := &entity.User{Email: "a@b.mx", Role: entity.RoleStudent}
	require.NoError(t, u.Validate(), "sin perfil se crea el vacío del rol")

	s, ok := u.Student()
	require.True(t, ok)
	assert.Equal(t, 1, s.Semester)
	_, ok = u.Advisor()
	assert.False(t, ok, "un estudiante no tiene perfil de docente")

	u = &entity.User{Email: "a@b.mx", Role: entity.RoleStudent, Profile: &entity.TutorProfile{CompanyID: "c1"}}
	err := u.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUser_TelefonoYPromedio(t *testing.T) {
	u := &entity.User{Email: "a@b.mx", Role: entity.RoleAdvisor, Phone: "12-34"}
	assert.Equal(t, "phone", domain.FieldOf(u.Validate()))

	u.Phone = "+5215512345678"
	assert.NoError(t, u.Validate())

	st := &entity.User{Email: "s@b.mx", Role: entity.RoleStudent, Profile: &entity.StudentProfile{Semester: 5, GPA: decimal.NewFromInt(11)}}
	assert.Equal(t, "gpa", domain.FieldOf(st.Validate()))
}

func TestStudentProfile_Matricula(t *testing.T) {
	p := &entity.StudentProfile{}
	p.EnsureEnrollmentID()
	assert.Regexp(t, regexp.MustCompile(`^EST\d{8}$`), p.EnrollmentID)

	p = &entity.StudentProfile{EnrollmentID: "A0001"}
	p.EnsureEnrollmentID()
	assert.Equal(t, "A0001", p.EnrollmentID)
}

func TestUser_CompanyIDSoloTutor(t *testing.T) {
	assert.Equal(t, "c1", tutor("t1", "c1").CompanyID())
	assert.Equal(t, "", advisor("a1").CompanyID())
}

func TestRole_Capacidades(t *testing.T) {
	assert.True(t, entity.RoleCoordinator.Can(entity.CapManageInternships))
	assert.False(t, entity.RoleStudent.Can(entity.CapManageInternships))
	assert.True(t, entity.RoleTutor.Can(entity.CapEvaluateDeliverables))
	assert.False(t, entity.RoleAdvisor.Can(entity.CapEvaluateDeliverables))
	assert.True(t, entity.RoleAdvisor.Can(entity.CapManageMeetings))
	assert.False(t, entity.Role("ADMIN").Valid())
}
