// Package form binds and validates the HTML forms used to list venues,
// artists and shows.
//
// Rules live in `validate` struct tags and are enforced by a
// go-playground validator registered on echo.  Failures are turned into a
// field -> message map the templates render next to each input.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a validator with the form-specific tags registered:
// phone, usstate, genre, posint and starttime.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("usstate", func(fl validator.FieldLevel) bool {
		_, ok := stateSet[fl.Field().String()]
		return ok
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		_, ok := genreSet[fl.Field().String()]
		return ok
	})
	_ = v.RegisterValidation("posint", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseUint(strings.TrimSpace(fl.Field().String()), 10, 64)
		return err == nil && n > 0
	})
	_ = v.RegisterValidation("starttime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Validate runs struct-tag validation on i.
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Errors maps a form field name to a human readable problem.
type Errors map[string]string

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// FieldErrors converts a validation failure into per-field messages.  Only
// the first problem of each field is kept.  Errors that are not
// validator.ValidationErrors are reported under the empty key.
func FieldErrors(err error) Errors {
	out := Errors{}
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[""] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if out.Has(field) {
			continue
		}
		out[field] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("choose at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	case "phone":
		return "must look like 123-456-7890"
	case "usstate":
		return "must be a US state code"
	case "genre":
		return "contains an unknown genre"
	case "posint":
		return "must be a positive whole number"
	case "starttime":
		return "must look like 2006-01-02 15:04"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}
