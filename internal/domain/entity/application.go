package entity

import (
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
)

// ApplicationStatus estado de una postulación.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDIENTE"
	ApplicationSelected ApplicationStatus = "SELECCIONADO"
	ApplicationRejected ApplicationStatus = "RECHAZADO"
)

// Application postulación de un estudiante a una vacante (única por par).
type Application struct {
	ID         string
	StudentID  string
	PostingID  string
	Status     ApplicationStatus
	Motivation string
	SelectedAt *time.Time
	SelectedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Select marca la postulación como seleccionada.
func (a *Application) Select(by string, now time.Time) error {
	if a.Status != ApplicationPending {
		return domain.Validation("Solo se pueden seleccionar postulaciones pendientes.")
	}
	a.Status = ApplicationSelected
	a.SelectedAt = &now
	a.SelectedBy = &by
	a.UpdatedAt = now
	return nil
}

// Reject rechaza la postulación. Devuelve true si estaba seleccionada, en cuyo
// caso el lugar ocupado en la vacante debe liberarse.
func (a *Application) Reject(now time.Time) (wasSelected bool, err error) {
	if a.Status == ApplicationRejected {
		return false, domain.Validation("La postulación ya fue rechazada.")
	}
	wasSelected = a.Status == ApplicationSelected
	a.Status = ApplicationRejected
	a.UpdatedAt = now
	return wasSelected, nil
}

// CanWithdraw el estudiante solo retira postulaciones pendientes.
func (a *Application) CanWithdraw() bool {
	return a.Status == ApplicationPending
}
