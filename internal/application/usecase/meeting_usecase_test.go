package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func TestMeeting_SustentacionUnicaYCopiaALaPractica(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	pub := &recordingPublisher{}
	uc := usecase.NewMeetingUseCase(w.db.registry(), w.tx(), pub)
	at := time.Now().Add(48 * time.Hour).Truncate(time.Minute)

	m, err := uc.Create(ctx, w.advisor, dto.CreateMeetingRequest{
		InternshipID: p.ID, Type: string(entity.MeetingFinalDefense), Title: "Sustentación final",
		Description: "Presentar resultados", ScheduledAt: at, Location: "Aula 3",
	})
	require.NoError(t, err)
	assert.Equal(t, w.student.UserID, m.StudentID)
	assert.Equal(t, entity.DefaultMeetingDuration, m.DurationMinutes)
	assert.Equal(t, 1, pub.count(jobs.NotifyMeeting))

	stored := w.db.internships[p.ID]
	require.NotNil(t, stored.DefenseDate)
	assert.True(t, stored.DefenseDate.Equal(at))
	assert.Equal(t, "Aula 3", stored.DefensePlace)

	_, err = uc.Create(ctx, w.advisor, dto.CreateMeetingRequest{
		InternshipID: p.ID, Type: string(entity.MeetingFinalDefense), Title: "Otra", ScheduledAt: at,
	})
	assert.EqualError(t, err, entity.ErrDuplicateDefense)

	// Editar la misma sustentación no choca consigo misma.
	title := "Sustentación final (sala B)"
	_, err = uc.Update(ctx, w.advisor, m.ID, dto.UpdateMeetingRequest{Title: &title})
	require.NoError(t, err)
}

func TestMeeting_SoloElDocenteDeLaPractica(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := usecase.NewMeetingUseCase(w.db.registry(), w.tx(), nil)
	req := dto.CreateMeetingRequest{
		InternshipID: p.ID, Type: string(entity.MeetingCheckin), Title: "Seguimiento", ScheduledAt: time.Now().Add(time.Hour),
	}

	_, err := uc.Create(ctx, w.student, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stranger := usecase.Actor{UserID: "adv-9", Role: entity.RoleAdvisor}
	addUser(w.db, stranger.UserID, entity.RoleAdvisor, nil)
	_, err = uc.Create(ctx, stranger, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	m, err := uc.Create(ctx, w.advisor, req)
	require.NoError(t, err)

	_, err = uc.MarkHeld(ctx, w.student, m.ID, dto.MarkHeldRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el estudiante ve la reunión pero no la modifica")
}

func TestMeeting_Transiciones(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := usecase.NewMeetingUseCase(w.db.registry(), w.tx(), nil)
	m, err := uc.Create(ctx, w.advisor, dto.CreateMeetingRequest{
		InternshipID: p.ID, Type: string(entity.MeetingCheckin), Title: "Seguimiento", ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, m.Upcoming)

	m, err = uc.Reschedule(ctx, w.advisor, m.ID, dto.RescheduleMeetingRequest{ScheduledAt: time.Now().Add(72 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, string(entity.MeetingRescheduled), m.Status)
	assert.False(t, m.StudentNotified)

	m, err = uc.Cancel(ctx, w.advisor, m.ID, dto.CancelMeetingRequest{Reason: "Paro"})
	require.NoError(t, err)
	assert.Equal(t, "Cancelada: Paro", m.Notes)

	_, err = uc.MarkHeld(ctx, w.advisor, m.ID, dto.MarkHeldRequest{})
	assert.EqualError(t, err, "Solo se pueden marcar como realizadas reuniones programadas.")
}

func TestMeeting_RecordatoriosUnaVez(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	pub := &recordingPublisher{}
	uc := usecase.NewMeetingUseCase(w.db.registry(), w.tx(), pub)
	now := time.Now()
	for i, at := range []time.Duration{2 * time.Hour, 30 * time.Hour} {
		w.db.meetings[string(rune('a'+i))] = &entity.Meeting{
			ID: string(rune('a' + i)), InternshipID: p.ID, AdvisorID: w.advisor.UserID, StudentID: w.student.UserID,
			Type: entity.MeetingCheckin, Title: "Seguimiento", ScheduledAt: now.Add(at), Status: entity.MeetingScheduled,
		}
	}

	n, err := uc.SendReminders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "solo la reunión dentro de 24 horas")
	assert.NotNil(t, w.db.meetings["a"].RemindedAt)

	n, err = uc.SendReminders(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, pub.count(jobs.NotifyMeeting))
}

func TestMeeting_MarcarNotificada(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	uc := usecase.NewMeetingUseCase(w.db.registry(), w.tx(), nil)
	m, err := uc.Create(ctx, w.advisor, dto.CreateMeetingRequest{
		InternshipID: p.ID, Type: string(entity.MeetingCheckin), Title: "Seguimiento", ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, uc.MarkNotified(ctx, m.ID, time.Now()))
	assert.True(t, w.db.meetings[m.ID].StudentNotified)

	_, err = uc.Notify(ctx, w.advisor, m.ID)
	assert.EqualError(t, err, "El estudiante ya fue notificado de esta reunión.")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMeeting_TutorConBaseCaida(t *testing.T) {
	w := newWorld()
	p := w.activeInternship("pr-1")
	w.db.meetings["reu-1"] = &entity.Meeting{
		ID: "reu-1", InternshipID: p.ID, AdvisorID: w.advisor.UserID, StudentID: w.student.UserID,
		Type: entity.MeetingCheckin, Title: "Seguimiento", ScheduledAt: time.Now().Add(time.Hour),
	}
	repos := w.db.registry()
	repos.Internships = brokenInternships{internshipRepo{w.db}}
	uc := usecase.NewMeetingUseCase(repos, w.tx(), nil)

	_, err := uc.GetByID(ctx, w.tutor, "reu-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "connection reset")
}
