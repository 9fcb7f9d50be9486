package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError describes one failed validation rule on one struct field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on rule '%s'", e.Field, e.Rule)
}

var validate = validator.New()

func init() {
	// uuid_required rejects the zero UUID, which gorm would otherwise
	// persist as an all-zeroes foreign key
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		switch id := fl.Field().Interface().(type) {
		case uuid.UUID:
			return id != uuid.Nil
		case *uuid.UUID:
			return id != nil && *id != uuid.Nil
		}
		return false
	})
}

// ValidateStruct runs the registered rules against data's validate tags.
func ValidateStruct(data interface{}) []*FieldError {
	var fieldErrors []*FieldError
	if err := validate.Struct(data); err != nil {
		for _, ve := range err.(validator.ValidationErrors) {
			fieldErrors = append(fieldErrors, &FieldError{
				Field: ve.StructNamespace(),
				Rule:  ve.Tag(),
				Param: ve.Param(),
			})
		}
	}
	return fieldErrors
}

// Check is ValidateStruct for callers that only need the first failure.
func Check(data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
