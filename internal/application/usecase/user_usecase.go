package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	users        repository.UserRepository
	companies    repository.CompanyRepository
	internships  repository.InternshipRepository
	deliverables repository.DeliverableRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repos repository.Registry) *UserUseCase {
	return &UserUseCase{
		users:        repos.Users,
		companies:    repos.Companies,
		internships:  repos.Internships,
		deliverables: repos.Deliverables,
	}
}

// Create crea un usuario de cualquier rol (coordinación). Hashea el password con bcrypt
// y valida el perfil según el rol.
func (uc *UserUseCase) Create(ctx context.Context, actor Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := actor.require(entity.CapManageUsers, "Solo coordinación puede crear usuarios."); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	role := entity.Role(in.Role)
	user := &entity.User{
		ID:           newID(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         role,
		Profile:      profileFromRequest(role, in.ProfileRequest),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.prepare(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// prepare valida el usuario, genera la matrícula y verifica la empresa del tutor.
func (uc *UserUseCase) prepare(ctx context.Context, u *entity.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if s, ok := u.Student(); ok {
		s.EnsureEnrollmentID()
	}
	if t, ok := u.Tutor(); ok && t.CompanyID != "" {
		c, err := uc.companies.GetByID(ctx, t.CompanyID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ValidationField("company_id", "La empresa no existe.")
		}
	}
	return nil
}

func profileFromRequest(role entity.Role, p dto.ProfileRequest) entity.RoleProfile {
	switch role {
	case entity.RoleStudent:
		s := &entity.StudentProfile{EnrollmentID: p.EnrollmentID, Major: p.Major, Semester: p.Semester}
		if s.Semester == 0 {
			s.Semester = 1
		}
		if p.GPA != nil {
			s.GPA = *p.GPA
		}
		return s
	case entity.RoleAdvisor:
		return &entity.AdvisorProfile{Department: p.Department, Specialty: p.Specialty}
	case entity.RoleTutor:
		return &entity.TutorProfile{CompanyID: p.CompanyID, Position: p.Position}
	}
	return entity.NewProfile(role)
}

// GetByID coordinación ve a cualquiera; el resto a sí mismo y a los estudiantes
// de las prácticas donde participa.
func (uc *UserUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if ok, err := uc.canView(ctx, actor, u); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(u), nil
}

func (uc *UserUseCase) canView(ctx context.Context, actor Actor, u *entity.User) (bool, error) {
	if actor.Is(entity.RoleCoordinator) || actor.UserID == u.ID {
		return true, nil
	}
	if u.Role != entity.RoleStudent || (!actor.Is(entity.RoleAdvisor) && !actor.Is(entity.RoleTutor)) {
		return false, nil
	}
	f := repository.InternshipFilter{StudentID: u.ID, Limit: 1}
	actor.scopeInternships(&f)
	_, total, err := uc.internships.List(ctx, f)
	return total > 0, err
}

// Me perfil del usuario autenticado.
func (uc *UserUseCase) Me(ctx context.Context, actor Actor) (*dto.UserResponse, error) {
	return uc.GetByID(ctx, actor, actor.UserID)
}

// Update actualiza datos personales y de perfil. El rol no cambia.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.Can(entity.CapManageUsers) && actor.UserID != id {
		return nil, domain.Forbidden("No puedes modificar a otro usuario.")
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	switch p := u.Profile.(type) {
	case *entity.StudentProfile:
		if in.Major != nil {
			p.Major = *in.Major
		}
		// semestre y promedio solo los corrige coordinación
		if actor.Can(entity.CapManageUsers) {
			if in.Semester != nil {
				p.Semester = *in.Semester
			}
			if in.GPA != nil {
				p.GPA = *in.GPA
			}
		}
	case *entity.AdvisorProfile:
		if in.Department != nil {
			p.Department = *in.Department
		}
		if in.Specialty != nil {
			p.Specialty = *in.Specialty
		}
	case *entity.TutorProfile:
		if in.CompanyID != nil && actor.Can(entity.CapManageUsers) {
			p.CompanyID = *in.CompanyID
		}
		if in.Position != nil {
			p.Position = *in.Position
		}
	}
	if err := uc.prepare(ctx, u); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Delete elimina un usuario (coordinación). No permite borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.require(entity.CapManageUsers, "Solo coordinación puede eliminar usuarios."); err != nil {
		return err
	}
	if id == actor.UserID {
		return domain.Validation("No puedes eliminar tu propio usuario.")
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.Delete(ctx, id)
}

// SetActive activa o desactiva un estudiante.
func (uc *UserUseCase) SetActive(ctx context.Context, actor Actor, id string, active bool) (*dto.UserResponse, error) {
	if err := actor.require(entity.CapManageUsers, "Solo coordinación puede activar o desactivar usuarios."); err != nil {
		return nil, err
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.Role != entity.RoleStudent {
		return nil, domain.Validation("Solo se pueden activar o desactivar estudiantes.")
	}
	u.Active = active
	u.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// List lista usuarios con filtros (coordinación).
func (uc *UserUseCase) List(ctx context.Context, actor Actor, in dto.UserFilterRequest) (*dto.UserListResponse, error) {
	if err := actor.require(entity.CapManageUsers, "Solo coordinación puede listar usuarios."); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.users.List(ctx, repository.UserFilter{
		Role:   entity.Role(in.Role),
		Active: parseBool(in.Active),
		Search: in.Search,
		Major:  in.Major,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: page(in.Limit, in.Offset, total)}, nil
}

// MyStudents estudiantes con práctica activa asignada al docente asesor.
func (uc *UserUseCase) MyStudents(ctx context.Context, actor Actor) ([]dto.AdviseeResponse, error) {
	if err := actor.require(entity.CapViewAdvisees, "Solo docentes asesores."); err != nil {
		return nil, err
	}
	internships, _, err := uc.internships.List(ctx, repository.InternshipFilter{AdvisorID: actor.UserID, Limit: all})
	if err != nil {
		return nil, err
	}
	var active []*entity.Internship
	ids := make([]string, 0, len(internships))
	for _, p := range internships {
		if p.IsActive() {
			active = append(active, p)
			ids = append(ids, p.StudentID)
		}
	}
	students, err := uc.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.User, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	out := make([]dto.AdviseeResponse, 0, len(active))
	for _, p := range active {
		s, ok := byID[p.StudentID]
		if !ok {
			continue
		}
		total, evaluated, err := uc.deliverables.CountByInternship(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.AdviseeResponse{
			Student:      *ToUserResponse(s),
			InternshipID: p.ID,
			Status:       string(p.Status),
			Progress:     entity.Progress(total, evaluated),
		})
	}
	return out, nil
}

// TutorDashboard indicadores del tutor: prácticas activas, entregables por
// evaluar y promedio de calificaciones otorgadas.
func (uc *UserUseCase) TutorDashboard(ctx context.Context, actor Actor) (*dto.TutorDashboardResponse, error) {
	if err := actor.require(entity.CapTutorDashboard, "Solo tutores empresariales."); err != nil {
		return nil, err
	}
	internships, _, err := uc.internships.List(ctx, repository.InternshipFilter{TutorID: actor.UserID, Limit: all})
	if err != nil {
		return nil, err
	}
	out := &dto.TutorDashboardResponse{}
	for _, p := range internships {
		if p.IsActive() {
			out.ActiveInternships++
		}
	}
	deliverables, _, err := uc.deliverables.List(ctx, repository.DeliverableFilter{TutorID: actor.UserID, Limit: all})
	if err != nil {
		return nil, err
	}
	sum := decimal.Zero
	for _, d := range deliverables {
		if d.Status == entity.DeliverableSubmitted {
			out.PendingDeliverables++
		}
		if d.Grade != nil {
			out.EvaluatedDeliverables++
			sum = sum.Add(*d.Grade)
		}
	}
	if out.EvaluatedDeliverables > 0 {
		avg := sum.Div(decimal.NewFromInt(int64(out.EvaluatedDeliverables))).Round(2)
		out.AverageGrade = &avg
	}
	return out, nil
}

// ToUserResponse salida pública de un usuario con su perfil de rol.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Phone:     u.Phone,
		Role:      string(u.Role),
		RoleLabel: u.Role.Label(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	switch p := u.Profile.(type) {
	case *entity.StudentProfile:
		out.Student = &dto.StudentProfileResponse{EnrollmentID: p.EnrollmentID, Major: p.Major, Semester: p.Semester, GPA: p.GPA}
	case *entity.AdvisorProfile:
		out.Advisor = &dto.AdvisorProfileResponse{Department: p.Department, Specialty: p.Specialty}
	case *entity.TutorProfile:
		out.Tutor = &dto.TutorProfileResponse{CompanyID: p.CompanyID, Position: p.Position}
	}
	return out
}
