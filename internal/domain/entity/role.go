package entity

// Role rol de un usuario de la plataforma.
type Role string

// Roles válidos para User.
const (
	RoleStudent     Role = "ESTUDIANTE"
	RoleAdvisor     Role = "DOCENTE_ASESOR"
	RoleTutor       Role = "TUTOR_EMPRESARIAL"
	RoleCoordinator Role = "COORDINADORA_EMPRESARIAL"
)

// Roles lista todos los roles en orden de presentación.
var Roles = []Role{RoleStudent, RoleAdvisor, RoleTutor, RoleCoordinator}

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdvisor, RoleTutor, RoleCoordinator:
		return true
	}
	return false
}

// Label nombre legible del rol.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Estudiante"
	case RoleAdvisor:
		return "Docente Asesor"
	case RoleTutor:
		return "Tutor Empresarial"
	case RoleCoordinator:
		return "Coordinadora Empresarial"
	}
	return string(r)
}

// Capability acción que un rol puede ejecutar sobre un recurso.
type Capability string

const (
	CapManageUsers          Capability = "users:manage"
	CapManageCompanies      Capability = "companies:manage"
	CapManagePostings       Capability = "postings:manage"
	CapApply                Capability = "applications:create"
	CapSelectApplications   Capability = "applications:select"
	CapManageInternships    Capability = "internships:manage"
	CapCreateDeliverables   Capability = "deliverables:create"
	CapEvaluateDeliverables Capability = "deliverables:evaluate"
	CapManageMeetings       Capability = "meetings:manage"
	CapSendNotifications    Capability = "notifications:send"
	CapReceiveNotifications Capability = "notifications:receive"
	CapManageSurveys        Capability = "surveys:manage"
	CapAnswerSurveys        Capability = "surveys:answer"
	CapUploadDocuments      Capability = "documents:upload"
	CapValidateDocuments    Capability = "documents:validate"
	CapWriteObservations    Capability = "observations:write"
	CapViewAdvisees         Capability = "users:advisees"
	CapTutorDashboard       Capability = "users:tutor-dashboard"
)

var capabilities = map[Role]map[Capability]bool{
	RoleStudent: {
		CapApply:                true,
		CapCreateDeliverables:   true,
		CapReceiveNotifications: true,
		CapAnswerSurveys:        true,
		CapUploadDocuments:      true,
	},
	RoleAdvisor: {
		CapManageMeetings:    true,
		CapAnswerSurveys:     true,
		CapWriteObservations: true,
		CapViewAdvisees:      true,
		CapUploadDocuments:   true,
	},
	RoleTutor: {
		CapEvaluateDeliverables: true,
		CapSelectApplications:   true,
		CapAnswerSurveys:        true,
		CapTutorDashboard:       true,
	},
	RoleCoordinator: {
		CapManageUsers:        true,
		CapManageCompanies:    true,
		CapManagePostings:     true,
		CapSelectApplications: true,
		CapManageInternships:  true,
		CapSendNotifications:  true,
		CapManageSurveys:      true,
		CapUploadDocuments:    true,
		CapValidateDocuments:  true,
		CapWriteObservations:  true,
	},
}

// Can indica si el rol tiene la capacidad.
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}
