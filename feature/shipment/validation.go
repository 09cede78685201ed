package shipment

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"shipment-gateway/core/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report fields by their JSON names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateRequest checks struct tags and returns a ValidationError on failure.
func validateRequest(req any) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid request: "+err.Error(), nil)
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[fieldPath(e)] = formatValidationError(e)
	}
	return apperr.Validation("validation failed", fields)
}

// fieldPath drops the struct name from the namespace: ship_to.name.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must contain at least " + e.Param()
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
