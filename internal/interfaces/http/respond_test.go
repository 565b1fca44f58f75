package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

func testApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRespondError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ValidationField("end_date", "La fecha de fin debe ser posterior."), 400, "VALIDATION"},
		{domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{domain.ErrInactiveAccount, 403, "INACTIVE_ACCOUNT"},
		{domain.Forbidden("Solo coordinación."), 403, "FORBIDDEN"},
		{domain.NotFound("Práctica no encontrada."), 404, "NOT_FOUND"},
		{domain.ErrEmailAlreadyExists, 409, "DUPLICATE"},
		{domain.Duplicate("Ya te postulaste."), 409, "DUPLICATE"},
		{domain.Conflict("Sin lugares disponibles."), 409, "CONFLICT"},
		{fmt.Errorf("insert: %w", assert.AnError), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code+"_"+tc.err.Error(), func(t *testing.T) {
			app := testApp()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.True(t, body.Error)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRespondError_DetalleDeCampo(t *testing.T) {
	app := testApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, domain.ValidationField("end_date", "La fecha de fin debe ser posterior."))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := decodeError(t, resp)
	assert.Equal(t, "La fecha de fin debe ser posterior.", body.Details["end_date"])
}

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Slots int    `json:"slots" validate:"min=1"`
}

func TestBind_ValidacionPorCampo(t *testing.T) {
	app := testApp()
	app.Post("/", func(c *fiber.Ctx) error {
		var in sampleRequest
		if err := bind(c, &in); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := post(`{"email":"no-es-correo","slots":0}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "Correo electrónico inválido.", body.Details["email"])
	assert.Contains(t, body.Details, "slots")

	resp = post(`{"email":`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)

	resp = post(`{"email":"ana@uni.mx","slots":2}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestUploadedFile_LimiteDeTamano(t *testing.T) {
	app := testApp()
	app.Post("/", func(c *fiber.Ctx) error {
		f, name, err := uploadedFile(c, 8)
		if err != nil {
			return err
		}
		defer f.Close()
		return c.SendString(name)
	})

	upload := func(content string) *http.Response {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if content != "" {
			fw, err := w.CreateFormFile("file", "informe.pdf")
			require.NoError(t, err)
			_, _ = fw.Write([]byte(content))
		}
		require.NoError(t, w.Close())
		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload("1234")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = upload("demasiado grande")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp).Details, "file")

	resp = upload("")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
