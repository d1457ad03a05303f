package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gangbro/missionboard/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s by its validate tags. Failures come back as one
// INVALID_ARGUMENT error listing every offending field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.CodeInvalidArgument, err.Error(), err)
	}

	msgs := make([]string, 0, len(verrs))

	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		param := e.Param()

		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, field+" must be at least "+param+" characters")
		case "max":
			msgs = append(msgs, field+" must be at most "+param+" characters")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return apperr.Wrap(apperr.CodeInvalidArgument, strings.Join(msgs, ", "), err)
}
