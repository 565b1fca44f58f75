package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

var ctx = context.Background()

// world datos base: una empresa activa con su tutor, un docente, un estudiante
// de 6º semestre en Sistemas y una vacante abierta con un lugar.
type world struct {
	db          *memDB
	coordinator usecase.Actor
	advisor     usecase.Actor
	tutor       usecase.Actor
	student     usecase.Actor
	companyID   string
	postingID   string
}

func newWorld() *world {
	db := newMemDB()
	now := time.Now()
	w := &world{
		db:          db,
		coordinator: usecase.Actor{UserID: "coord-1", Role: entity.RoleCoordinator},
		advisor:     usecase.Actor{UserID: "adv-1", Role: entity.RoleAdvisor},
		tutor:       usecase.Actor{UserID: "tut-1", Role: entity.RoleTutor, CompanyID: "comp-1"},
		student:     usecase.Actor{UserID: "est-1", Role: entity.RoleStudent},
		companyID:   "comp-1",
		postingID:   "vac-1",
	}
	addUser(db, "coord-1", entity.RoleCoordinator, nil)
	addUser(db, "adv-1", entity.RoleAdvisor, &entity.AdvisorProfile{Department: "Sistemas"})
	addUser(db, "tut-1", entity.RoleTutor, &entity.TutorProfile{CompanyID: "comp-1", Position: "Líder técnico"})
	addUser(db, "est-1", entity.RoleStudent, &entity.StudentProfile{
		EnrollmentID: "EST00000001", Major: "Ingeniería en Sistemas", Semester: 6, GPA: decimal.RequireFromString("8.7"),
	})
	db.companies["comp-1"] = &entity.Company{ID: "comp-1", Name: "Acme", TaxID: "ACM010101AB1", Active: true, CreatedAt: now}
	db.postings["vac-1"] = &entity.Posting{
		ID:             "vac-1",
		CompanyID:      "comp-1",
		Title:          "Backend Go",
		EligibleMajors: "Ingeniería en Sistemas",
		MinSemester:    5,
		Modality:       entity.ModalityRemote,
		SlotsAvailable: 1,
		Status:         entity.PostingOpen,
		CreatedAt:      now,
	}
	return w
}

func addUser(db *memDB, id string, role entity.Role, profile entity.RoleProfile) *entity.User {
	if profile == nil {
		profile = entity.NewProfile(role)
	}
	u := &entity.User{
		ID:        id,
		Email:     id + "@uni.mx",
		FirstName: "Nombre",
		LastName:  id,
		Role:      role,
		Profile:   profile,
		Active:    true,
		CreatedAt: time.Now(),
	}
	db.users[id] = u
	return u
}

// addStudent registra otro estudiante elegible.
func (w *world) addStudent(id string) usecase.Actor {
	addUser(w.db, id, entity.RoleStudent, &entity.StudentProfile{
		EnrollmentID: "EST-" + id, Major: "Ingeniería en Sistemas", Semester: 7, GPA: decimal.NewFromInt(9),
	})
	return usecase.Actor{UserID: id, Role: entity.RoleStudent}
}

// activeInternship práctica EN_CURSO del estudiante con el docente y tutor base.
func (w *world) activeInternship(id string) *entity.Internship {
	adv, tut, comp := w.advisor.UserID, w.tutor.UserID, w.companyID
	p := &entity.Internship{
		ID:        id,
		StudentID: w.student.UserID,
		AdvisorID: &adv,
		TutorID:   &tut,
		CompanyID: &comp,
		Area:      "Desarrollo",
		Status:    entity.InternshipInProgress,
		CreatedAt: time.Now(),
	}
	w.db.internships[id] = p
	return p
}

func (w *world) tx() usecase.TxRunner { return fakeTx{db: w.db} }
