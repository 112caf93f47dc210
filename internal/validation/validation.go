// Package validation checks request payloads against their `validate` tags and
// reports failures keyed by JSON field path.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/lernwort/backend/internal/models"
)

// Errors is returned when a payload fails validation.
type Errors struct {
	Fields map[string]string
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field builds a single-field validation error.
func Field(name, message string) *Errors {
	return &Errors{Fields: map[string]string{name: message}}
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("emoji", func(fl validator.FieldLevel) bool {
		return ContainsEmoji(fl.Field().String())
	})
	v.RegisterValidation("article", func(fl validator.FieldLevel) bool {
		a := fl.Field().String()
		return a == models.ArticleNone || a == "der" || a == "die" || a == "das"
	})
	v.RegisterValidation("wordtype", func(fl validator.FieldLevel) bool {
		return models.ValidWordTypes[models.WordType(fl.Field().String())]
	})
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsPassword(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates s and returns *Errors on failure.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Errors{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the leading struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain exactly %s items", fe.Param())
		}
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "eq":
		return "must be " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "hexcolor":
		return "must be a hex color like #1A2B3C"
	case "emoji":
		return "must contain an emoji"
	case "article":
		return "must be one of: der die das none"
	case "wordtype":
		return "must be a known word type"
	case "password":
		return "must contain only letters and digits, with at least one of each"
	default:
		return "is invalid"
	}
}

// IsPassword reports whether s is made of ASCII letters and digits with at least one of each.
func IsPassword(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}

// ContainsEmoji reports whether s has at least one pictographic rune.
func ContainsEmoji(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x1F000 && r <= 0x1FAFF,
			r >= 0x2600 && r <= 0x27BF,
			r >= 0x2B00 && r <= 0x2BFF,
			r == 0x00A9, r == 0x00AE, r == 0x203C, r == 0x2049, r == 0x2122,
			r >= 0x2190 && r <= 0x21FF,
			r >= 0x2300 && r <= 0x23FF:
			return true
		case unicode.Is(unicode.So, r) && r > 0x2000:
			return true
		}
	}
	return false
}
