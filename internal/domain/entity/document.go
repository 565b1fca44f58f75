package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
)

// Tipos de documento.
const (
	DocumentCV          = "CV"
	DocumentCoverLetter = "CARTA_PRESENTACION"
	DocumentAgreement   = "CONVENIO"
	DocumentCertificate = "CONSTANCIA"
	DocumentReport      = "INFORME"
	DocumentOther       = "OTRO"
)

// Document archivo asociado a un estudiante y opcionalmente a su práctica.
type Document struct {
	ID           string
	OwnerID      string
	InternshipID *string
	Type         string
	Name         string
	FilePath     string
	Hash         string // sha256 hex
	Size         int64
	Valid        bool
	UploadedBy   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate valida tipo, archivo y hash.
func (d *Document) Validate() error {
	switch d.Type {
	case DocumentCV, DocumentCoverLetter, DocumentAgreement, DocumentCertificate, DocumentReport, DocumentOther:
	default:
		return domain.ValidationField("type", "Tipo de documento inválido.")
	}
	if d.OwnerID == "" {
		return domain.ValidationField("owner_id", "El estudiante es requerido.")
	}
	if strings.TrimSpace(d.FilePath) == "" {
		return domain.ValidationField("file", "El archivo es requerido.")
	}
	if len(d.Hash) != 64 {
		return domain.ValidationField("hash", "El hash debe ser SHA-256 (64 caracteres).")
	}
	return nil
}

// Observation nota libre sobre una práctica.
type Observation struct {
	ID           string
	InternshipID string
	AuthorID     string
	Text         string
	CreatedAt    time.Time
}

// Validate texto no vacío.
func (o *Observation) Validate() error {
	if strings.TrimSpace(o.Text) == "" {
		return domain.ValidationField("text", "El texto es requerido.")
	}
	return nil
}
