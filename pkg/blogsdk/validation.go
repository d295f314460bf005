package blogsdk

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"required":         "is required",
	"required_without": "is required when %s is empty",
	"email":            "must be a valid email address",
	"min":              "must be at least %s characters",
	"max":              "must be at most %s characters",
	"eqfield":          "must match %s",
	"gt":               "must be greater than %s",
	"oneof":            "must be one of: %s",
}

// Validate checks req against its validate tags and returns a
// *ValidationError listing every failing field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("blogsdk: validate: %w", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[lowerFirst(fe.Field())] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := fieldMessages[fe.Tag()]
	if !ok {
		return "is invalid (" + fe.Tag() + ")"
	}
	if !strings.Contains(msg, "%s") {
		return msg
	}

	param := fe.Param()
	switch fe.Tag() {
	case "eqfield", "required_without":
		param = lowerFirst(param)
	}
	return fmt.Sprintf(msg, param)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
