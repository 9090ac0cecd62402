// Package rekuest parses and validates incoming request parameters, reporting failures as
// apierr violations with English messages.
package rekuest

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"exusiai.dev/folio-stats/internal/pkg/apierr"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

var (
	Validate   = newValidator()
	translator ut.Translator
)

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(tagName)
	validate.RegisterValidation("leetcodeusername", leetcodeUsername)
	return validate
}

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(Validate, translator); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	err := Validate.RegisterTranslation("leetcodeusername", translator, func(ut ut.Translator) error {
		return ut.Add("leetcodeusername", "{0} may only contain letters, digits, '_', '.' and '-'", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("leetcodeusername", fe.Field())
		return t
	})
	if err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation for function leetcodeusername")
	}
}

// tagName reports fields by the name the client sent them under.
func tagName(fld reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func leetcodeUsername(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || usernameRegex.MatchString(val)
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Field(),
			Violation: fe.Tag(),
			Message:   fe.Translate(translator),
		})
	}
	return trans
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(errs)
	}
	return nil
}

// ValidQuery parses the query string of ctx into dest and validates it.
// dest shall always be a pointer to a struct.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid query: %s", err)
	}

	if err := validateStruct(dest); err != nil {
		return apierr.NewInvalidViolations(err)
	}

	return nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. dest shall always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(dest); err != nil {
		return apierr.NewInvalidViolations(err)
	}

	return nil
}

func ValidStruct(dest any) error {
	if err := validateStruct(dest); err != nil {
		return apierr.NewInvalidViolations(err)
	}

	return nil
}
