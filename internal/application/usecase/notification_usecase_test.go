package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func TestNotification_EnviarLeerYConfirmar(t *testing.T) {
	w := newWorld()
	pub := &recordingPublisher{}
	uc := usecase.NewNotificationUseCase(w.db.registry(), w.tx(), pub)

	n, err := uc.Create(ctx, w.coordinator, dto.CreateNotificationRequest{
		RecipientID: w.student.UserID, Type: string(entity.NotificationImportant), Subject: "Convenio",
		Message: "Sube tu convenio firmado", SendEmail: true, RequiresConfirmation: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.NotificationPending), n.Status)

	unread, err := uc.Unread(ctx, w.student)
	require.NoError(t, err)
	assert.Equal(t, 1, unread.Count, "las pendientes cuentan como no leídas")

	_, err = uc.Send(ctx, w.coordinator, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pub.count(jobs.SendNotificationEmail))

	_, err = uc.Send(ctx, w.coordinator, n.ID)
	assert.EqualError(t, err, "Solo se pueden enviar notificaciones pendientes.")

	_, err = uc.Confirm(ctx, w.student, n.ID)
	assert.EqualError(t, err, "La notificación debe estar leída para confirmarla.")

	_, err = uc.MarkRead(ctx, w.coordinator, n.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	n, err = uc.MarkRead(ctx, w.student, n.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.NotificationRead), n.Status)

	n, err = uc.Confirm(ctx, w.student, n.ID)
	require.NoError(t, err)
	assert.NotNil(t, n.ConfirmedAt)

	unread, err = uc.Unread(ctx, w.student)
	require.NoError(t, err)
	assert.Zero(t, unread.Count)
}

func TestNotification_DestinatarioDebeSerEstudiante(t *testing.T) {
	w := newWorld()
	uc := usecase.NewNotificationUseCase(w.db.registry(), w.tx(), nil)

	_, err := uc.Create(ctx, w.coordinator, dto.CreateNotificationRequest{
		RecipientID: w.tutor.UserID, Type: string(entity.NotificationInfo), Subject: "a", Message: "b",
	})
	assert.Equal(t, "recipient_id", domain.FieldOf(err))

	_, err = uc.CreateBulk(ctx, w.coordinator, dto.CreateBulkNotificationRequest{
		RecipientIDs: []string{w.student.UserID, "no-existe"}, Type: string(entity.NotificationInfo), Subject: "a", Message: "b",
	})
	assert.EqualError(t, err, "Algún destinatario no existe.")

	_, err = uc.Create(ctx, w.student, dto.CreateNotificationRequest{RecipientID: w.student.UserID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBulkNotification_EnviarUnaSolaVez(t *testing.T) {
	w := newWorld()
	s2 := w.addStudent("est-2")
	s3 := w.addStudent("est-3")
	pub := &recordingPublisher{}
	uc := usecase.NewNotificationUseCase(w.db.registry(), w.tx(), pub)

	b, err := uc.CreateBulk(ctx, w.coordinator, dto.CreateBulkNotificationRequest{
		RecipientIDs: []string{w.student.UserID, s2.UserID, s3.UserID, s2.UserID},
		Type:         string(entity.NotificationReminder), Subject: "Encuesta", Message: "Responde la encuesta", SendEmail: true,
	})
	require.NoError(t, err)
	assert.False(t, b.Sent)

	b, err = uc.SendBulk(ctx, w.coordinator, b.ID)
	require.NoError(t, err)
	assert.True(t, b.Sent)
	assert.Equal(t, 3, b.TotalRecipients)
	assert.Len(t, w.db.notifications, 3)
	assert.Equal(t, 3, pub.count(jobs.SendNotificationEmail))

	_, err = uc.SendBulk(ctx, w.coordinator, b.ID)
	assert.EqualError(t, err, "Esta notificación masiva ya fue enviada.")
	assert.Len(t, w.db.notifications, 3)

	for _, s := range []usecase.Actor{w.student, s2, s3} {
		unread, err := uc.Unread(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, 1, unread.Count)
	}
}
