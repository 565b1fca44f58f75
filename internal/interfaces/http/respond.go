package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Los detalles usan el nombre JSON (o query/form) del campo.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// errorBody arma el sobre de error común.
func errorBody(code, msg string, details map[string]string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: true, Code: code, Message: msg, Details: details}
}

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(errorBody(code, msg, nil))
}

// respondError traduce errores de dominio a HTTP. Los errores no clasificados
// se registran y responden 500 sin exponer el mensaje.
func respondError(c *fiber.Ctx, err error) error {
	var details map[string]string
	if f := domain.FieldOf(err); f != "" {
		details = map[string]string{f: err.Error()}
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("VALIDATION", err.Error(), details))
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrInactiveAccount):
		return fail(c, fiber.StatusForbidden, "INACTIVE_ACCOUNT", "cuenta inactiva")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(errorBody("DUPLICATE", err.Error(), details))
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error())
	}
	requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}

// requestError error de entrada ya traducido a respuesta; lo pinta ErrorHandler.
type requestError struct {
	status int
	body   dto.ErrorResponse
}

func (e *requestError) Error() string { return e.body.Message }

func badRequest(code, msg string, details map[string]string) error {
	return &requestError{status: fiber.StatusBadRequest, body: errorBody(code, msg, details)}
}

// validationError convierte validator.ValidationErrors en detalles por campo.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return badRequest("VALIDATION", "entrada inválida", nil)
	}
	details := make(map[string]string, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fieldMessage(fe)
	}
	return badRequest("VALIDATION", "Validación fallida", details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "email":
		return "Correo electrónico inválido."
	case "uuid":
		return "Identificador inválido."
	case "min":
		return "Valor por debajo del mínimo (" + fe.Param() + ")."
	case "max":
		return "Valor por encima del máximo (" + fe.Param() + ")."
	case "oneof":
		return "Debe ser uno de: " + fe.Param() + "."
	}
	return "Valor inválido (" + fe.Tag() + ")."
}

// bind decodifica el cuerpo JSON y lo valida.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("INVALID_BODY", "cuerpo inválido", nil)
	}
	if err := validate.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

// bindQuery decodifica los parámetros de consulta y los valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return badRequest("INVALID_QUERY", "parámetros de consulta inválidos", nil)
	}
	if err := validate.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

// ErrorHandler aplica el sobre de error a los errores de Fiber y a los no manejados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var re *requestError
		if errors.As(err, &re) {
			return c.Status(re.status).JSON(re.body)
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusRequestEntityTooLarge:
				code = "PAYLOAD_TOO_LARGE"
			case fiber.StatusTooManyRequests:
				code = "TOO_MANY_REQUESTS"
			}
			return fail(c, fe.Code, code, fe.Message)
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no manejado")
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
	}
}

func ok(c *fiber.Ctx, out any, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func created(c *fiber.Ctx, out any, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func noContent(c *fiber.Ctx, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
