package viewstate

import (
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func initValidator() {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("activity_type", func(fl validator.FieldLevel) bool {
			return models.ActivityType(fl.Field().String()).Known()
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

// check validates v and maps the first failing field to its message in
// messages. Fields without an entry get a generic text.
func check(v any, messages map[string]string) error {
	initValidator()

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	msg, ok := messages[fe.Field()]
	if !ok {
		msg = "Invalid " + strings.ToLower(fe.Field())
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
