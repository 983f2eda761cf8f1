package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterAlias("ledger_code", "max=64,excludesall=/?#")
		_ = validate.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
			str := fl.Field().String()
			if str == "" {
				return true
			}
			_, err := decimal.NewFromString(str)
			return err == nil
		})
	})
	return validate
}

// violationFormats maps validator tags to message keys. Each key takes the field name,
// then the tag parameter where one applies.
var violationFormats = map[string]string{
	"required":    "Field %s is required.",
	"min":         "Field %s must have at least %s items or characters.",
	"max":         "Field %s must have at most %s items or characters.",
	"len":         "Field %s must be exactly %s characters long.",
	"excludesall": "Field %s contains a character that is not allowed.",
	"decimal":     "Field %s must be a decimal number.",
}

// validateStruct runs the struct tags of payload and converts every failure to a violation.
func validateStruct(payload any) *apperrors.ValidationErrors {
	errs := &apperrors.ValidationErrors{}
	err := getValidator().Struct(payload)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("Input is invalid: %s", err.Error())
		return errs
	}

	for _, fe := range fieldErrs {
		field := fieldName(fe.Namespace())
		format, ok := violationFormats[fe.ActualTag()]
		switch {
		case !ok:
			errs.Add("Field %s failed the %s check.", field, fe.ActualTag())
		case strings.Count(format, "%s") == 2:
			errs.Add(format, field, fe.Param())
		default:
			errs.Add(format, field)
		}
	}
	return errs
}

// fieldName drops the struct name from a validator namespace ("AddAccountInput.Names[0].Name").
func fieldName(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func wrapValidation(op string, errs *apperrors.ValidationErrors) error {
	if errs.Empty() {
		return nil
	}
	return fmt.Errorf("%s: %w", op, errs)
}
