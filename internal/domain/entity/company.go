package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
)

// Tamaños de empresa.
const (
	CompanySizeMicro  = "MICRO"
	CompanySizeSmall  = "PEQUEÑA"
	CompanySizeMedium = "MEDIANA"
	CompanySizeLarge  = "GRANDE"
)

// Company empresa receptora de practicantes.
type Company struct {
	ID           string
	Name         string
	TaxID        string // RFC
	LegalName    string
	Address      string
	Phone        string
	Email        string
	Website      string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Sector       string
	Size         string
	Active       bool
	Verified     bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate valida los campos obligatorios de la empresa.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.ValidationField("name", "El nombre es requerido.")
	}
	rfc := strings.TrimSpace(c.TaxID)
	if len(rfc) < 12 || len(rfc) > 13 {
		return domain.ValidationField("tax_id", "El RFC debe tener 12 o 13 caracteres.")
	}
	c.TaxID = strings.ToUpper(rfc)
	switch c.Size {
	case "", CompanySizeMicro, CompanySizeSmall, CompanySizeMedium, CompanySizeLarge:
	default:
		return domain.ValidationField("size", "Tamaño de empresa inválido.")
	}
	return nil
}

// Verify marca la empresa como verificada por coordinación.
func (c *Company) Verify(now time.Time) {
	c.Verified = true
	c.UpdatedAt = now
}
