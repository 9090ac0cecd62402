package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/pkg/errors"

	"exusiai.dev/folio-stats/internal/pkg/apierr"
	"exusiai.dev/folio-stats/internal/pkg/flog"
)

func handleCustomError(ctx *fiber.Ctx, e *apierr.Error) error {
	body := fiber.Map{
		"error":   e.Title,
		"message": e.Message,
	}

	if e.Extras != nil {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var e *apierr.Error
	if !errors.As(err, &e) {
		re := *apierr.ErrInternalError
		if fe, ok := err.(*fiber.Error); ok {
			re.StatusCode = fe.Code
			re.ErrorCode = "UNKNOWN_ERROR"
			re.Title = utils.StatusMessage(fe.Code)
			re.Message = fe.Message
		}
		e = &re
	}

	if e.StatusCode < fiber.StatusInternalServerError {
		flog.WarnFrom(ctx).
			Err(err).
			Str("code", e.ErrorCode).
			Int("status", e.StatusCode).
			Msg(e.Message)
		return handleCustomError(ctx, e)
	}

	flog.ErrorFrom(ctx).
		Stack().
		Err(err).
		Str("code", e.ErrorCode).
		Int("status", e.StatusCode).
		Msg("request failed")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(e.StatusCode))
		hub.Scope().SetTag("code", e.ErrorCode)
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, e)
}
