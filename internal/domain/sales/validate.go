package sales

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Compare decimals numerically so gte/gt tags work on money fields.
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
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

// Validate checks a record against the invariants of its type and returns a
// VALIDATION domain error naming the first offending field.
func Validate(e Entity) error {
	err := getValidator().Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return shared.NewValidationError(describe(e.EntityKind(), verrs[0]))
	}
	return shared.NewValidationError(fmt.Sprintf("invalid %s: %v", e.EntityKind(), err))
}

func describe(kind Kind, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s %s is required", kind, fe.Field())
	case "email":
		return fmt.Sprintf("%s %s must be a valid email address", kind, fe.Field())
	case "gte":
		return fmt.Sprintf("%s %s must not be negative", kind, fe.Field())
	case "gt":
		return fmt.Sprintf("%s %s must be positive", kind, fe.Field())
	case "oneof":
		return fmt.Sprintf("%s %s must be one of: %s", kind, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s %s is invalid", kind, fe.Field())
}
