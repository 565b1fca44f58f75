package ports

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Mailer define el puerto de salida para el envío de correo.
// Los adaptadores (SMTP, log) no deben reintentar: el reintento lo decide la cola.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailMessage correo con cuerpo en texto plano y, opcionalmente, HTML.
type MailMessage struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// StoredFile resultado de guardar un archivo.
type StoredFile struct {
	Path string // ruta relativa dentro del almacenamiento
	Hash string // sha256 hex
	Size int64
}

// FileStorage almacenamiento de archivos subidos (disco local u OSS).
type FileStorage interface {
	// Save guarda r bajo folder/AAAA/MM/DD/<uuid>-<name> y calcula el hash mientras copia.
	Save(ctx context.Context, folder, name string, r io.Reader) (*StoredFile, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// Job trabajo en segundo plano. Payload lleva solo identificadores; el worker
// vuelve a cargar las entidades antes de actuar.
type Job struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Payload    map[string]string `json:"payload"`
	Attempts   int               `json:"attempts"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// JobQueue cola de trabajos (Redis o en proceso).
type JobQueue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue bloquea hasta timeout; devuelve (nil, nil) si no hubo trabajo.
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
}

// CertificateData datos impresos en la constancia de práctica.
type CertificateData struct {
	InternshipID string
	StudentName  string
	Enrollment   string
	Major        string
	CompanyName  string
	AdvisorName  string
	TutorName    string
	Area         string
	Project      string
	StartDate    *time.Time
	EndDate      *time.Time
	FinalGrade   *decimal.Decimal
	IssuedAt     time.Time
	VerifyURL    string // contenido del QR
}

// CertificateGenerator genera la constancia de práctica en PDF.
type CertificateGenerator interface {
	Generate(data CertificateData) ([]byte, error)
}
