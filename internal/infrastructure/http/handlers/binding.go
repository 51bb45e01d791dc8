package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	domerrors "github.com/mserban/atelier/internal/domain/errors"
)

// validate is shared by all handlers. Field names in error details come
// from the json tag so they match what the client sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := field.Tag.Get("json")
		if name == "" {
			name = field.Tag.Get("form")
		}
		name, _, _ = strings.Cut(name, ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var sliceIndexPattern = regexp.MustCompile(`\[(\d+)\]`)

// fieldPath turns the validator namespace into the dotted client-facing
// path: "registerRequest.Email" becomes "email" and
// "updateProjectForm.PhotosToDelete[1]" becomes "photosToDelete.1".
func fieldPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	return sliceIndexPattern.ReplaceAllString(path, ".$1")
}

// checkStruct validates v and folds all failures into one schema error.
// When a field trips several constraints the last one reported wins.
func checkStruct(v interface{}) *domerrors.ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domerrors.Schema(map[string]string{"body": "Corpul cererii nu este valid"})
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fieldPath(fe)] = messageFor(fe)
	}
	return domerrors.Schema(details)
}

// messageFor renders the Romanian message for one failed constraint.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campul este obligatoriu"
	case "min":
		if fe.Kind() == reflect.String {
			return "Trebuie sa contina cel putin " + fe.Param() + " caractere"
		}
		return "Valoarea minima este " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "Trebuie sa contina cel mult " + fe.Param() + " caractere"
		}
		return "Valoarea maxima este " + fe.Param()
	case "email":
		return "Adresa de email nu este valida"
	case "url":
		return "Adresa URL nu este valida"
	case "oneof":
		return "Trebuie sa fie una dintre valorile: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Valoarea nu este valida"
	}
}
