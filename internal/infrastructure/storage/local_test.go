package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_GuardarAbrirBorrar(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }

	content := "informe final de prácticas"
	got, err := s.Save(ctx, "entregables", "Informe Final.pdf", strings.NewReader(content))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.Path, "entregables/2026/03/09/"), got.Path)
	assert.True(t, strings.HasSuffix(got.Path, "-Informe_Final.pdf"), got.Path)
	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), got.Hash)
	assert.Equal(t, int64(len(content)), got.Size)

	rc, err := s.Open(ctx, got.Path)
	require.NoError(t, err)
	raw, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))

	require.NoError(t, s.Delete(ctx, got.Path))
	_, err = os.Stat(filepath.Join(s.root, filepath.FromSlash(got.Path)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Delete(ctx, got.Path), "borrar dos veces no falla")
}

func TestLocal_RutasFueraDeLaRaiz(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../etc/passwd", "a/../../b", ""} {
		_, err := s.Open(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Constancia_Jose_Nunez.pdf", sanitize("Constancia José Núñez.pdf"))
	assert.Equal(t, "passwd", sanitize("../../etc/passwd"))
	assert.Equal(t, "archivo", sanitize("..."))
	assert.Equal(t, "carta.docx", sanitize(`C:\Users\ana\carta.docx`))
}
