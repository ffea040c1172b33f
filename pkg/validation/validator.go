package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is the global validator instance
	Validate *validator.Validate

	// Accepts both SIV ("AB-123-CD") and legacy FNI ("123 ABC 75") plate formats
	plateRegex = regexp.MustCompile(`^[A-Z]{2}-\d{3}-[A-Z]{2}$|^\d{1,4}\s?[A-Z]{2,3}\s?\d{2,3}$`)
)

// Categories recognized by the pricing engine. Kept in sync with the
// multiplier table in internal/pricing.
var knownCategories = map[string]struct{}{
	"city_car":   {},
	"electric":   {},
	"suv":        {},
	"4x4":        {},
	"sports_car": {},
}

func init() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("plate", validatePlate)
	_ = Validate.RegisterValidation("vehicle_year", validateVehicleYear)
	_ = Validate.RegisterValidation("vehicle_category", validateVehicleCategory)
	_ = Validate.RegisterValidation("intervention_kind", validateInterventionKind)
}

// ValidateStruct validates a struct and returns a ValidationError if validation fails
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}

// validatePlate checks the registration plate format
func validatePlate(fl validator.FieldLevel) bool {
	plate := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return plateRegex.MatchString(plate)
}

// validateVehicleYear checks the model year is plausible
func validateVehicleYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1950 && year <= int64(time.Now().Year())+1
}

// validateVehicleCategory checks the category against the pricing table
func validateVehicleCategory(fl validator.FieldLevel) bool {
	category := strings.ToLower(fl.Field().String())
	_, ok := knownCategories[category]
	return ok
}

// validateInterventionKind checks the intervention-type discriminant
func validateInterventionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "maintenance", "repair":
		return true
	}
	return false
}

// ValidationError aggregates field-level validation failures
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// FieldError describes a single failed field
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed on %q", f.Field, f.Tag))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError converts validator errors into a ValidationError
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	ve := &ValidationError{}
	for _, err := range errs {
		ve.Fields = append(ve.Fields, FieldError{
			Field: err.Field(),
			Tag:   err.Tag(),
			Value: fmt.Sprintf("%v", err.Value()),
		})
	}
	return ve
}
