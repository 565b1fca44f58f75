package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

// uploadedFile lee el campo "file" de un formulario multipart.
// El llamador cierra el archivo devuelto.
func uploadedFile(c *fiber.Ctx, maxBytes int64) (multipart.File, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", badRequest("VALIDATION", "Datos inválidos.", map[string]string{"file": "Este campo es obligatorio."})
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, "", badRequest("VALIDATION", "Datos inválidos.", map[string]string{
			"file": fmt.Sprintf("El archivo excede el tamaño máximo de %d MB.", maxBytes>>20),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	return f, fh.Filename, nil
}

// sendFile envía el contenido como descarga; fasthttp cierra rc al terminar.
func sendFile(c *fiber.Ctx, rc io.ReadCloser, name string, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(name)
	return c.SendStream(rc)
}
