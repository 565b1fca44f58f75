package usecase_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// memDB guarda todo en memoria; cada repo falso es una vista sobre él.
type memDB struct {
	mu            sync.Mutex
	users         map[string]*entity.User
	companies     map[string]*entity.Company
	postings      map[string]*entity.Posting
	applications  map[string]*entity.Application
	internships   map[string]*entity.Internship
	deliverables  map[string]*entity.Deliverable
	meetings      map[string]*entity.Meeting
	notifications map[string]*entity.Notification
	bulks         map[string]*entity.BulkNotification
	surveys       map[string]*entity.Survey
	responses     []*entity.SurveyResponse
	receipts      map[string]bool
	documents     map[string]*entity.Document
	observations  map[string]*entity.Observation
}

func newMemDB() *memDB {
	return &memDB{
		users:         map[string]*entity.User{},
		companies:     map[string]*entity.Company{},
		postings:      map[string]*entity.Posting{},
		applications:  map[string]*entity.Application{},
		internships:   map[string]*entity.Internship{},
		deliverables:  map[string]*entity.Deliverable{},
		meetings:      map[string]*entity.Meeting{},
		notifications: map[string]*entity.Notification{},
		bulks:         map[string]*entity.BulkNotification{},
		surveys:       map[string]*entity.Survey{},
		receipts:      map[string]bool{},
		documents:     map[string]*entity.Document{},
		observations:  map[string]*entity.Observation{},
	}
}

func (db *memDB) registry() repository.Registry {
	return repository.Registry{
		Users:             userRepo{db},
		Companies:         companyRepo{db},
		Postings:          postingRepo{db},
		Applications:      applicationRepo{db},
		Internships:       internshipRepo{db},
		Deliverables:      deliverableRepo{db},
		Meetings:          meetingRepo{db},
		Notifications:     notificationRepo{db},
		BulkNotifications: bulkRepo{db},
		Surveys:           surveyRepo{db},
		SurveyResponses:   responseRepo{db},
		Documents:         documentRepo{db},
		Observations:      observationRepo{db},
	}
}

// fakeTx ejecuta fn sobre el mismo registro, sin rollback.
type fakeTx struct{ db *memDB }

func (t fakeTx) Run(_ context.Context, fn func(repository.Registry) error) error {
	return fn(t.db.registry())
}

// clone copia superficial para que los cambios no persistan sin Update.
func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func get[T any](db *memDB, m map[string]*T, id string) (*T, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return clone(m[id]), nil
}

func put[T any](db *memDB, m map[string]*T, id string, v *T) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	m[id] = clone(v)
	return nil
}

func del[T any](db *memDB, m map[string]*T, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(m, id)
	return nil
}

func filter[T any](db *memDB, m map[string]*T, keep func(*T) bool) []*T {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []*T
	for _, v := range m {
		if keep(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

type userRepo struct{ db *memDB }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	for _, other := range r.db.users {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	return put(r.db, r.db.users, u.ID, u)
}
func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return get(r.db, r.db.users, id)
}
func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	list := filter(r.db, r.db.users, func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
func (r userRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}
func (r userRepo) Update(_ context.Context, u *entity.User) error {
	return put(r.db, r.db.users, u.ID, u)
}
func (r userRepo) Delete(_ context.Context, id string) error { return del(r.db, r.db.users, id) }
func (r userRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	list := filter(r.db, r.db.users, func(u *entity.User) bool { return f.Role == "" || u.Role == f.Role })
	return list, len(list), nil
}
func (r userRepo) CountActiveByRoles(_ context.Context, roles []entity.Role) (int, error) {
	list := filter(r.db, r.db.users, func(u *entity.User) bool { return u.Active && slices.Contains(roles, u.Role) })
	return len(list), nil
}
func (r userRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	return filter(r.db, r.db.users, func(u *entity.User) bool { return slices.Contains(ids, u.ID) }), nil
}

type companyRepo struct{ db *memDB }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	return put(r.db, r.db.companies, c.ID, c)
}
func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return get(r.db, r.db.companies, id)
}
func (r companyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	list := filter(r.db, r.db.companies, func(c *entity.Company) bool { return c.TaxID == taxID })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	return put(r.db, r.db.companies, c.ID, c)
}
func (r companyRepo) List(_ context.Context, _ repository.CompanyFilter) ([]*entity.Company, int, error) {
	list := filter(r.db, r.db.companies, func(*entity.Company) bool { return true })
	return list, len(list), nil
}
func (r companyRepo) Delete(_ context.Context, id string) error { return del(r.db, r.db.companies, id) }
func (r companyRepo) CountPostings(_ context.Context, companyID string) (int, error) {
	return len(filter(r.db, r.db.postings, func(p *entity.Posting) bool { return p.CompanyID == companyID })), nil
}

type postingRepo struct{ db *memDB }

func (r postingRepo) Create(_ context.Context, p *entity.Posting) error {
	return put(r.db, r.db.postings, p.ID, p)
}
func (r postingRepo) GetByID(_ context.Context, id string) (*entity.Posting, error) {
	return get(r.db, r.db.postings, id)
}
func (r postingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Posting, error) {
	return r.GetByID(ctx, id)
}
func (r postingRepo) Update(_ context.Context, p *entity.Posting) error {
	return put(r.db, r.db.postings, p.ID, p)
}
func (r postingRepo) Delete(_ context.Context, id string) error { return del(r.db, r.db.postings, id) }
func (r postingRepo) List(_ context.Context, f repository.PostingFilter) ([]*entity.Posting, int, error) {
	list := filter(r.db, r.db.postings, func(p *entity.Posting) bool {
		return (f.Status == "" || p.Status == f.Status) && (!f.AvailableOnly || p.IsAvailable()) &&
			(f.CompanyID == "" || p.CompanyID == f.CompanyID)
	})
	return list, len(list), nil
}

type applicationRepo struct{ db *memDB }

func (r applicationRepo) Create(_ context.Context, a *entity.Application) error {
	return put(r.db, r.db.applications, a.ID, a)
}
func (r applicationRepo) GetByID(_ context.Context, id string) (*entity.Application, error) {
	return get(r.db, r.db.applications, id)
}
func (r applicationRepo) Update(_ context.Context, a *entity.Application) error {
	return put(r.db, r.db.applications, a.ID, a)
}
func (r applicationRepo) Delete(_ context.Context, id string) error {
	return del(r.db, r.db.applications, id)
}
func (r applicationRepo) List(_ context.Context, f repository.ApplicationFilter) ([]*entity.Application, int, error) {
	list := filter(r.db, r.db.applications, func(a *entity.Application) bool {
		return (f.StudentID == "" || a.StudentID == f.StudentID) && (f.PostingID == "" || a.PostingID == f.PostingID)
	})
	return list, len(list), nil
}
func (r applicationRepo) Exists(_ context.Context, studentID, postingID string) (bool, error) {
	list := filter(r.db, r.db.applications, func(a *entity.Application) bool {
		return a.StudentID == studentID && a.PostingID == postingID
	})
	return len(list) > 0, nil
}

type internshipRepo struct{ db *memDB }

func (r internshipRepo) Create(_ context.Context, p *entity.Internship) error {
	return put(r.db, r.db.internships, p.ID, p)
}
func (r internshipRepo) GetByID(_ context.Context, id string) (*entity.Internship, error) {
	return get(r.db, r.db.internships, id)
}
func (r internshipRepo) GetForUpdate(ctx context.Context, id string) (*entity.Internship, error) {
	return r.GetByID(ctx, id)
}
func (r internshipRepo) Update(_ context.Context, p *entity.Internship) error {
	return put(r.db, r.db.internships, p.ID, p)
}
func (r internshipRepo) Delete(_ context.Context, id string) error {
	return del(r.db, r.db.internships, id)
}
func (r internshipRepo) List(_ context.Context, f repository.InternshipFilter) ([]*entity.Internship, int, error) {
	list := filter(r.db, r.db.internships, func(p *entity.Internship) bool {
		return (f.StudentID == "" || p.StudentID == f.StudentID) &&
			(f.AdvisorID == "" || p.HasAdvisor(f.AdvisorID)) &&
			(f.TutorID == "" || p.HasTutor(f.TutorID)) &&
			(f.Status == "" || p.Status == f.Status)
	})
	return list, len(list), nil
}
func (r internshipRepo) CountActiveByAdvisor(_ context.Context, advisorID, excludeID string) (int, error) {
	list := filter(r.db, r.db.internships, func(p *entity.Internship) bool {
		return p.ID != excludeID && p.IsActive() && p.HasAdvisor(advisorID)
	})
	return len(list), nil
}
func (r internshipRepo) GetActiveByStudent(_ context.Context, studentID, excludeID string) (*entity.Internship, error) {
	list := filter(r.db, r.db.internships, func(p *entity.Internship) bool {
		return p.ID != excludeID && p.IsActive() && p.StudentID == studentID
	})
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

type deliverableRepo struct{ db *memDB }

func (r deliverableRepo) Create(_ context.Context, d *entity.Deliverable) error {
	return put(r.db, r.db.deliverables, d.ID, d)
}
func (r deliverableRepo) GetByID(_ context.Context, id string) (*entity.Deliverable, error) {
	return get(r.db, r.db.deliverables, id)
}
func (r deliverableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Deliverable, error) {
	return r.GetByID(ctx, id)
}
func (r deliverableRepo) Update(_ context.Context, d *entity.Deliverable) error {
	return put(r.db, r.db.deliverables, d.ID, d)
}
func (r deliverableRepo) Delete(_ context.Context, id string) error {
	return del(r.db, r.db.deliverables, id)
}
func (r deliverableRepo) List(_ context.Context, f repository.DeliverableFilter) ([]*entity.Deliverable, int, error) {
	list := filter(r.db, r.db.deliverables, func(d *entity.Deliverable) bool {
		return (f.StudentID == "" || d.StudentID == f.StudentID) && (f.InternshipID == "" || d.InternshipID == f.InternshipID)
	})
	return list, len(list), nil
}
func (r deliverableRepo) CountByInternship(_ context.Context, internshipID string) (int, int, error) {
	list := filter(r.db, r.db.deliverables, func(d *entity.Deliverable) bool { return d.InternshipID == internshipID })
	evaluated := 0
	for _, d := range list {
		if d.IsEvaluated() {
			evaluated++
		}
	}
	return len(list), evaluated, nil
}

type meetingRepo struct{ db *memDB }

func (r meetingRepo) Create(ctx context.Context, m *entity.Meeting) error {
	if m.Type == entity.MeetingFinalDefense {
		if d, _ := r.GetDefense(ctx, m.InternshipID); d != nil {
			return domain.Validation(entity.ErrDuplicateDefense)
		}
	}
	return put(r.db, r.db.meetings, m.ID, m)
}
func (r meetingRepo) GetByID(_ context.Context, id string) (*entity.Meeting, error) {
	return get(r.db, r.db.meetings, id)
}
func (r meetingRepo) Update(_ context.Context, m *entity.Meeting) error {
	return put(r.db, r.db.meetings, m.ID, m)
}
func (r meetingRepo) Delete(_ context.Context, id string) error { return del(r.db, r.db.meetings, id) }
func (r meetingRepo) List(_ context.Context, f repository.MeetingFilter) ([]*entity.Meeting, int, error) {
	list := filter(r.db, r.db.meetings, func(m *entity.Meeting) bool {
		return (f.StudentID == "" || m.StudentID == f.StudentID) && (f.AdvisorID == "" || m.AdvisorID == f.AdvisorID) &&
			(f.Status == "" || m.Status == f.Status)
	})
	return list, len(list), nil
}
func (r meetingRepo) GetDefense(_ context.Context, internshipID string) (*entity.Meeting, error) {
	list := filter(r.db, r.db.meetings, func(m *entity.Meeting) bool {
		return m.InternshipID == internshipID && m.Type == entity.MeetingFinalDefense
	})
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
func (r meetingRepo) ListDueForReminder(_ context.Context, from, to time.Time) ([]*entity.Meeting, error) {
	return filter(r.db, r.db.meetings, func(m *entity.Meeting) bool {
		return m.RemindedAt == nil && !m.ScheduledAt.Before(from) && !m.ScheduledAt.After(to)
	}), nil
}

type notificationRepo struct{ db *memDB }

func (r notificationRepo) Create(_ context.Context, n *entity.Notification) error {
	return put(r.db, r.db.notifications, n.ID, n)
}
func (r notificationRepo) CreateMany(ctx context.Context, list []*entity.Notification) error {
	for _, n := range list {
		if err := r.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
func (r notificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	return get(r.db, r.db.notifications, id)
}
func (r notificationRepo) Update(_ context.Context, n *entity.Notification) error {
	return put(r.db, r.db.notifications, n.ID, n)
}
func (r notificationRepo) List(_ context.Context, f repository.NotificationFilter) ([]*entity.Notification, int, error) {
	list := filter(r.db, r.db.notifications, func(n *entity.Notification) bool {
		return (f.RecipientID == "" || n.RecipientID == f.RecipientID) &&
			(f.SenderID == "" || n.SenderID == f.SenderID) &&
			(!f.UnreadOnly || n.IsUnread())
	})
	return list, len(list), nil
}
func (r notificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	_, n, err := r.List(ctx, repository.NotificationFilter{RecipientID: recipientID, UnreadOnly: true})
	return n, err
}

type bulkRepo struct{ db *memDB }

func (r bulkRepo) Create(_ context.Context, b *entity.BulkNotification) error {
	return put(r.db, r.db.bulks, b.ID, b)
}
func (r bulkRepo) GetByID(_ context.Context, id string) (*entity.BulkNotification, error) {
	return get(r.db, r.db.bulks, id)
}
func (r bulkRepo) GetForUpdate(ctx context.Context, id string) (*entity.BulkNotification, error) {
	return r.GetByID(ctx, id)
}
func (r bulkRepo) Update(_ context.Context, b *entity.BulkNotification) error {
	return put(r.db, r.db.bulks, b.ID, b)
}
func (r bulkRepo) List(_ context.Context, senderID string, _, _ int) ([]*entity.BulkNotification, int, error) {
	list := filter(r.db, r.db.bulks, func(b *entity.BulkNotification) bool { return b.SenderID == senderID })
	return list, len(list), nil
}

type surveyRepo struct{ db *memDB }

func (r surveyRepo) Create(_ context.Context, s *entity.Survey) error {
	return put(r.db, r.db.surveys, s.ID, s)
}
func (r surveyRepo) GetByID(_ context.Context, id string) (*entity.Survey, error) {
	return get(r.db, r.db.surveys, id)
}
func (r surveyRepo) Update(_ context.Context, s *entity.Survey) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := clone(s)
	if old, ok := r.db.surveys[s.ID]; ok {
		c.Questions = old.Questions
	}
	r.db.surveys[s.ID] = c
	return nil
}
func (r surveyRepo) ReplaceQuestions(_ context.Context, surveyID string, questions []entity.Question) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.surveys[surveyID].Questions = slices.Clone(questions)
	return nil
}
func (r surveyRepo) Delete(_ context.Context, id string) error { return del(r.db, r.db.surveys, id) }
func (r surveyRepo) List(_ context.Context, f repository.SurveyFilter) ([]*entity.Survey, int, error) {
	list := filter(r.db, r.db.surveys, func(s *entity.Survey) bool {
		return (f.Status == "" || s.Status == f.Status) && (len(f.Audiences) == 0 || slices.Contains(f.Audiences, s.Audience))
	})
	return list, len(list), nil
}
func (r surveyRepo) ListPending(_ context.Context, userID string, audiences []entity.SurveyAudience) ([]*entity.Survey, error) {
	return filter(r.db, r.db.surveys, func(s *entity.Survey) bool {
		return s.Status == entity.SurveyActive && slices.Contains(audiences, s.Audience) && !r.db.receipts[s.ID+"/"+userID]
	}), nil
}

type responseRepo struct{ db *memDB }

func (r responseRepo) Create(_ context.Context, resp *entity.SurveyResponse, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.responses = append(r.db.responses, clone(resp))
	r.db.receipts[resp.SurveyID+"/"+userID] = true
	return nil
}
func (r responseRepo) HasResponded(_ context.Context, surveyID, userID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.receipts[surveyID+"/"+userID], nil
}
func (r responseRepo) CountRespondents(_ context.Context, surveyID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for k := range r.db.receipts {
		if strings.HasPrefix(k, surveyID+"/") {
			n++
		}
	}
	return n, nil
}
func (r responseRepo) ListAnswers(_ context.Context, surveyID string) ([]entity.Answer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []entity.Answer
	for _, resp := range r.db.responses {
		if resp.SurveyID == surveyID {
			out = append(out, resp.Answers...)
		}
	}
	return out, nil
}
func (r responseRepo) CountResponses(_ context.Context, surveyID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, resp := range r.db.responses {
		if resp.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

type documentRepo struct{ db *memDB }

func (r documentRepo) Create(_ context.Context, d *entity.Document) error {
	return put(r.db, r.db.documents, d.ID, d)
}
func (r documentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	return get(r.db, r.db.documents, id)
}
func (r documentRepo) Update(_ context.Context, d *entity.Document) error {
	return put(r.db, r.db.documents, d.ID, d)
}
func (r documentRepo) Delete(_ context.Context, id string) error {
	return del(r.db, r.db.documents, id)
}
func (r documentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	list := filter(r.db, r.db.documents, func(d *entity.Document) bool { return f.OwnerID == "" || d.OwnerID == f.OwnerID })
	return list, len(list), nil
}

type observationRepo struct{ db *memDB }

func (r observationRepo) Create(_ context.Context, o *entity.Observation) error {
	return put(r.db, r.db.observations, o.ID, o)
}
func (r observationRepo) GetByID(_ context.Context, id string) (*entity.Observation, error) {
	return get(r.db, r.db.observations, id)
}
func (r observationRepo) Delete(_ context.Context, id string) error {
	return del(r.db, r.db.observations, id)
}
func (r observationRepo) ListByInternship(_ context.Context, internshipID string) ([]*entity.Observation, error) {
	return filter(r.db, r.db.observations, func(o *entity.Observation) bool { return o.InternshipID == internshipID }), nil
}

// recordingPublisher guarda los trabajos publicados.
type recordingPublisher struct {
	mu   sync.Mutex
	jobs []string
}

func (p *recordingPublisher) Publish(_ context.Context, name string, _ map[string]string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, name)
}

func (p *recordingPublisher) count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, j := range p.jobs {
		if j == name {
			n++
		}
	}
	return n
}

// memStorage almacenamiento de archivos en memoria.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{files: map[string][]byte{}} }

func (s *memStorage) Save(_ context.Context, folder, name string, r io.Reader) (*ports.StoredFile, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(b)
	path := folder + "/" + name
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = b
	return &ports.StoredFile{Path: path, Hash: hex.EncodeToString(sum[:]), Size: int64(len(b))}, nil
}

func (s *memStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}
