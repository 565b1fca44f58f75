package repository

// Registry agrupa los repositorios atados a una misma conexión o transacción.
type Registry struct {
	Users             UserRepository
	Companies         CompanyRepository
	Postings          PostingRepository
	Applications      ApplicationRepository
	Internships       InternshipRepository
	Deliverables      DeliverableRepository
	Meetings          MeetingRepository
	Notifications     NotificationRepository
	BulkNotifications BulkNotificationRepository
	Surveys           SurveyRepository
	SurveyResponses   SurveyResponseRepository
	Documents         DocumentRepository
	Observations      ObservationRepository
}
