package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/pkg/config"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

type captureDialer struct {
	msgs []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.msgs = append(d.msgs, m...)
	return d.err
}

func TestSMTP_ArmaMensaje(t *testing.T) {
	d := &captureDialer{}
	s := NewSMTPWithDialer(d, "practicas@uni.mx")

	err := s.Send(context.Background(), ports.MailMessage{
		To: []string{"ana@uni.mx"}, Subject: "Práctica Asignada", TextBody: "Hola Ana", HTMLBody: "<p>Hola Ana</p>",
	})
	require.NoError(t, err)
	require.Len(t, d.msgs, 1)

	m := d.msgs[0]
	assert.Equal(t, []string{"practicas@uni.mx"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ana@uni.mx"}, m.GetHeader("To"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "text/html"))
}

func TestSMTP_Errores(t *testing.T) {
	s := NewSMTPWithDialer(&captureDialer{}, "x@uni.mx")
	assert.Error(t, s.Send(context.Background(), ports.MailMessage{Subject: "sin destinatario"}))

	s = NewSMTPWithDialer(&captureDialer{err: errors.New("conexión rechazada")}, "x@uni.mx")
	err := s.Send(context.Background(), ports.MailMessage{To: []string{"a@b.mx"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión rechazada")
}

func TestNew_Driver(t *testing.T) {
	m, err := New(config.MailConfig{Driver: "log"}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), ports.MailMessage{To: []string{"a@b.mx"}}))

	_, err = New(config.MailConfig{Driver: "sendgrid"}, logger.Nop())
	assert.Error(t, err)
}
