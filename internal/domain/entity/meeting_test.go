package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func defense(id string) *entity.Meeting {
	return &entity.Meeting{
		ID:           id,
		InternshipID: "i1",
		AdvisorID:    "adv1",
		StudentID:    "s1",
		Type:         entity.MeetingFinalDefense,
		Title:        "Sustentación final",
		ScheduledAt:  now.Add(48 * time.Hour),
		Status:       entity.MeetingScheduled,
	}
}

func TestValidateMeeting_UnaSustentacionPorPractica(t *testing.T) {
	first := defense("m1")
	require.NoError(t, entity.ValidateMeeting(first, assignedInternship(), nil))
	assert.Equal(t, entity.DefaultMeetingDuration, first.DurationMinutes)

	second := defense("m2")
	err := entity.ValidateMeeting(second, assignedInternship(), first)
	require.Error(t, err)
	assert.Equal(t, entity.ErrDuplicateDefense, err.Error())

	// Actualizar la misma sustentación no choca consigo misma.
	assert.NoError(t, entity.ValidateMeeting(first, assignedInternship(), first))

	// Una reunión de seguimiento no está limitada.
	checkin := defense("m3")
	checkin.Type = entity.MeetingCheckin
	assert.NoError(t, entity.ValidateMeeting(checkin, assignedInternship(), first))
}

func TestValidateMeeting_DocenteYEstudianteDeLaPractica(t *testing.T) {
	m := defense("m1")
	m.AdvisorID = "otro"
	assert.Error(t, entity.ValidateMeeting(m, assignedInternship(), nil))

	m = defense("m1")
	m.StudentID = "otro"
	assert.Error(t, entity.ValidateMeeting(m, assignedInternship(), nil))
}

func TestMeeting_CicloDeVida(t *testing.T) {
	m := defense("m1")
	require.NoError(t, m.Reschedule(now.Add(72*time.Hour), now))
	assert.Equal(t, entity.MeetingRescheduled, m.Status)

	// Reprogramada no puede marcarse como realizada.
	assert.Error(t, m.MarkHeld("", "", now))

	m = defense("m2")
	require.True(t, m.MarkNotified(now))
	assert.False(t, m.MarkNotified(now))
	require.NoError(t, m.MarkHeld("notas", "acuerdos", now))
	assert.Equal(t, entity.MeetingHeld, m.Status)
	assert.Equal(t, "acuerdos", m.Agreements)

	assert.Error(t, m.Cancel("motivo", now), "una reunión realizada no se cancela")
	assert.Error(t, m.Reschedule(now.Add(time.Hour), now), "una reunión realizada no se reprograma")
}

func TestMeeting_CancelarGuardaMotivo(t *testing.T) {
	m := defense("m1")
	require.NoError(t, m.Cancel("enfermedad", now))
	assert.Equal(t, entity.MeetingCancelled, m.Status)
	assert.Equal(t, "Cancelada: enfermedad", m.Notes)
}

func TestMeeting_ReprogramarLimpiaNotificacion(t *testing.T) {
	m := defense("m1")
	m.MarkNotified(now)
	require.NoError(t, m.Reschedule(now.Add(time.Hour), now))
	assert.False(t, m.StudentNotified)
	assert.Nil(t, m.NotifiedAt)
}

func TestMeeting_EsProxima(t *testing.T) {
	m := defense("m1")
	m.ScheduledAt = now.Add(23 * time.Hour)
	assert.True(t, m.IsUpcoming(now))
	assert.True(t, m.NeedsReminder(now))

	m.ScheduledAt = now.Add(25 * time.Hour)
	assert.False(t, m.IsUpcoming(now))

	m.ScheduledAt = now.Add(time.Hour)
	reminded := now
	m.RemindedAt = &reminded
	assert.False(t, m.NeedsReminder(now))
}
