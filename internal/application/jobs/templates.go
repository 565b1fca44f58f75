package jobs

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

const dateLayout = "02/01/2006 15:04"

func assignmentToStudent(student, advisor *entity.User, company *entity.Company, p *entity.Internship) ports.MailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\nTu práctica ha sido asignada.\n", student.FullName())
	if advisor != nil {
		fmt.Fprintf(&b, "Docente asesor: %s\n", advisor.FullName())
	}
	if company != nil {
		fmt.Fprintf(&b, "Empresa: %s\n", company.Name)
	}
	if p.Area != "" {
		fmt.Fprintf(&b, "Área: %s\n", p.Area)
	}
	return ports.MailMessage{To: []string{student.Email}, Subject: "Práctica Asignada", TextBody: b.String()}
}

func assignmentToAdvisor(advisor, student *entity.User) ports.MailMessage {
	body := fmt.Sprintf("Hola %s,\n\nSe te ha asignado una nueva práctica.\nEstudiante: %s\n",
		advisor.FullName(), student.FullName())
	return ports.MailMessage{To: []string{advisor.Email}, Subject: "Nueva Práctica Asignada", TextBody: body}
}

func assignmentToTutor(tutor, student *entity.User) ports.MailMessage {
	body := fmt.Sprintf("Hola %s,\n\nUn estudiante realizará su práctica contigo.\nEstudiante: %s\n",
		tutor.FullName(), student.FullName())
	return ports.MailMessage{To: []string{tutor.Email}, Subject: "Nuevo Practicante Asignado", TextBody: body}
}

func selectionMail(student *entity.User, posting *entity.Posting) ports.MailMessage {
	body := fmt.Sprintf("Hola %s,\n\nFelicidades, has sido seleccionado para la vacante: %s\n",
		student.FullName(), posting.Title)
	return ports.MailMessage{To: []string{student.Email}, Subject: "Has sido seleccionado", TextBody: body}
}

func meetingMail(student *entity.User, m *entity.Meeting, reminder bool, loc *time.Location) ports.MailMessage {
	subject := "Reunión programada: " + m.Title
	intro := "Se ha programado una reunión"
	switch {
	case reminder:
		subject = "Recordatorio de reunión: " + m.Title
		intro = "Te recordamos tu próxima reunión"
	case m.Status == entity.MeetingRescheduled:
		subject = "Reunión reprogramada: " + m.Title
		intro = "Tu reunión fue reprogramada"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n%s.\n", student.FullName(), intro)
	fmt.Fprintf(&b, "Tipo: %s\nFecha: %s\nDuración: %d minutos\n",
		m.Type, m.ScheduledAt.In(loc).Format(dateLayout), m.DurationMinutes)
	if m.Location != "" {
		fmt.Fprintf(&b, "Lugar: %s\n", m.Location)
	}
	if m.VirtualLink != "" {
		fmt.Fprintf(&b, "Enlace: %s\n", m.VirtualLink)
	}
	if m.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", m.Description)
	}
	return ports.MailMessage{To: []string{student.Email}, Subject: subject, TextBody: b.String()}
}

func notificationMail(recipient *entity.User, n *entity.Notification, publicURL string) ports.MailMessage {
	subject := n.Subject
	if n.Type != entity.NotificationInfo {
		subject = fmt.Sprintf("[%s] %s", n.Type, n.Subject)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n%s\n", recipient.FullName(), n.Message)
	if n.RequiresConfirmation {
		b.WriteString("\nEsta notificación requiere tu confirmación de lectura.\n")
	}
	if publicURL != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimRight(publicURL, "/")+"/notificaciones/"+n.ID)
	}
	return ports.MailMessage{To: []string{recipient.Email}, Subject: subject, TextBody: b.String()}
}
