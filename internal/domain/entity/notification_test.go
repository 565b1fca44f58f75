package entity_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

func TestNotification_EnviarLeerConfirmar(t *testing.T) {
	n := &entity.Notification{
		RecipientID:          "s1",
		Type:                 entity.NotificationImportant,
		Subject:              "Documentos",
		Message:              "Entrega tu convenio",
		Status:               entity.NotificationPending,
		RequiresConfirmation: true,
	}
	require.NoError(t, n.Validate())

	assert.False(t, n.MarkRead(now), "una pendiente no se marca como leída")
	assert.Error(t, n.Confirm(now), "no se confirma sin haberse leído")

	require.NoError(t, n.Send(now))
	assert.Error(t, n.Send(now), "solo se envían pendientes")

	assert.True(t, n.MarkRead(now))
	assert.Equal(t, entity.NotificationRead, n.Status)
	require.NoError(t, n.Confirm(now))
	assert.NotNil(t, n.ConfirmedAt)
}

func TestNotification_ConfirmarSinRequerirlo(t *testing.T) {
	n := &entity.Notification{Status: entity.NotificationRead}
	assert.Error(t, n.Confirm(now))
}

func TestBulkNotification_FanOut(t *testing.T) {
	b := &entity.BulkNotification{
		ID:           "b1",
		SenderID:     "coord1",
		RecipientIDs: []string{"s1", "s2", "s3", "s2"},
		Type:         entity.NotificationInfo,
		Subject:      "Aviso",
		Message:      "Reunión general",
	}
	require.NoError(t, b.Validate())

	seq := 0
	newID := func() string { seq++; return fmt.Sprintf("n%d", seq) }

	list, err := b.FanOut(newID, now)
	require.NoError(t, err)
	require.Len(t, list, 3, "destinatarios repetidos reciben una sola notificación")
	for _, n := range list {
		assert.Equal(t, entity.NotificationSent, n.Status)
		assert.Equal(t, "Aviso", n.Subject)
		require.NotNil(t, n.BulkID)
		assert.Equal(t, "b1", *n.BulkID)
		assert.NotNil(t, n.SentAt)
	}
	assert.True(t, b.Sent)
	assert.Equal(t, 3, b.TotalRecipients)

	_, err = b.FanOut(newID, now)
	require.Error(t, err)
	assert.Equal(t, "Esta notificación masiva ya fue enviada.", err.Error())
}

func TestBulkNotification_SinDestinatarios(t *testing.T) {
	b := &entity.BulkNotification{Type: entity.NotificationInfo, Subject: "a", Message: "b"}
	assert.Error(t, b.Validate())
}
