// Package jobs define los trabajos en segundo plano: nombres, payloads,
// publicación desde los casos de uso y su ejecución en el worker.
package jobs

// Nombres de trabajos.
const (
	NotifyOnAssignment    = "notify_on_assignment"
	NotifyOnSelection     = "notify_on_selection"
	NotifyMeeting         = "notify_meeting"
	SendNotificationEmail = "send_notification_email"
	MeetingReminders      = "upcoming_meeting_reminders"
)

// Claves de payload.
const (
	KeyInternshipID   = "internship_id"
	KeyApplicationID  = "application_id"
	KeyMeetingID      = "meeting_id"
	KeyNotificationID = "notification_id"
)

// MaxAttempts intentos antes de descartar un trabajo.
const MaxAttempts = 3

// KeyKind distingue variantes de un mismo trabajo (p. ej. recordatorio de reunión).
const (
	KeyKind      = "kind"
	KindReminder = "reminder"
)
