// Package storage guarda los archivos subidos (entregables y documentos)
// en disco local o en un bucket OSS de Aliyun.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/pkg/config"
)

// ErrInvalidPath ruta fuera del almacenamiento.
var ErrInvalidPath = errors.New("storage: ruta inválida")

// New elige el adaptador según Driver ("local" u "oss").
func New(cfg config.StorageConfig) (ports.FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.LocalRoot)
	case "oss":
		return NewOSS(OSSConfig{
			Endpoint:     cfg.OSSEndpoint,
			AccessKey:    cfg.OSSAccessKey,
			AccessSecret: cfg.OSSAccessSecret,
			Bucket:       cfg.OSSBucket,
		})
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
}

// objectKey arma folder/AAAA/MM/DD/<uuid>-<nombre>.
func objectKey(folder, name string, now time.Time) string {
	return path.Join(
		sanitize(folder),
		now.Format("2006"), now.Format("01"), now.Format("02"),
		uuid.New().String()+"-"+sanitize(name),
	)
}

// sanitize quita acentos y deja solo letras, dígitos, punto, guion y guion bajo.
func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if s, _, err := transform.String(t, name); err == nil {
		name = s
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "archivo"
	}
	return out
}

// cleanKey valida una ruta relativa recibida de la base de datos.
func cleanKey(p string) (string, error) {
	c := path.Clean("/" + p)[1:]
	if c == "" || c != strings.TrimPrefix(p, "/") || strings.Contains(c, "..") {
		return "", ErrInvalidPath
	}
	return c, nil
}

// hashingReader calcula sha256 y tamaño mientras se copia.
type hashingReader struct {
	r    io.Reader
	h    hash.Hash
	size int64
}

func newHashingReader(r io.Reader) *hashingReader {
	return &hashingReader{r: r, h: sha256.New()}
}

func (hr *hashingReader) Read(p []byte) (int, error) {
	n, err := hr.r.Read(p)
	if n > 0 {
		hr.h.Write(p[:n])
		hr.size += int64(n)
	}
	return n, err
}

func (hr *hashingReader) result(key string) *ports.StoredFile {
	return &ports.StoredFile{Path: key, Hash: hex.EncodeToString(hr.h.Sum(nil)), Size: hr.size}
}
