// FILE: internal/pkg/validation/validator.go
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance. Field names in violations come
// from the json tag, so callers can map them straight to API vocabulary.
var Validate *validator.Validate

func init() {
	Validate = validator.New()
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Violation is the first failed rule of a struct validation: which json
// field broke which tag.
type Violation struct {
	Field string
	Tag   string
}

// Check runs struct validation and returns the first violation, or nil when
// the value passes. Controllers translate violations into the fixed API
// error messages instead of exposing validator wording.
func Check(value interface{}) *Violation {
	err := Validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &Violation{Field: fieldErrs[0].Field(), Tag: fieldErrs[0].Tag()}
	}
	return &Violation{}
}
