package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"staffdesk/internal/core/domain"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var personNamePattern = regexp.MustCompile(`^[\p{L}\s\-\.']+$`)

// messages replaces the library wording with the API's wording.
// {0} is the field name, {1} the rule parameter.
var messages = map[string]string{
	"required":   "The {0} field is required.",
	"min":        "The {0} field must be at least {1} characters.",
	"max":        "The {0} field must not be greater than {1} characters.",
	"email":      "The {0} field must be a valid email address.",
	"gte":        "The {0} field must be at least {1}.",
	"lte":        "The {0} field must not be greater than {1}.",
	"oneof":      "The selected {0} is invalid.",
	"personname": "The {0} may only contain letters, spaces, hyphens, dots, and apostrophes.",
}

// fieldMessages override messages for a single field and rule
var fieldMessages = map[string]string{
	"salary.lte": "The salary must not exceed 9,999,999.99.",
}

// typeMismatchMessages are reported when a field arrives as a JSON type other than string
var typeMismatchMessages = map[string]string{
	"name":     "The name field must be a string.",
	"email":    "The email field must be a valid email address.",
	"position": "The position field must be a string.",
	"status":   "The selected status is invalid.",
}

const (
	msgNotNumeric = "The salary field must be a number."
	msgEmailTaken = "The email has already been taken."
)

// Validator runs struct rules and renders their failures as field messages
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a validator with the English message catalogue
func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	for tag, text := range messages {
		if err := registerMessage(validate, trans, tag, text); err != nil {
			return nil, fmt.Errorf("register %s message: %w", tag, err)
		}
	}

	return &Validator{validate: validate, trans: trans}, nil
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) error {
	return v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// Struct validates s and appends one message per failing field to verr.
// Fields already present in verr are left alone.
func (v *Validator) Struct(s interface{}, verr *domain.ValidationError) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if verr.Has(field) {
			continue
		}
		if custom, ok := fieldMessages[field+"."+fe.Tag()]; ok {
			verr.Add(field, custom)
			continue
		}
		verr.Add(field, fe.Translate(v.trans))
	}
	return nil
}
