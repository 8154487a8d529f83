package menu

import "strings"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateSnack checks a snack payload before create or update.
func ValidateSnack(name string, price int64) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if price < 0 {
		errs = append(errs, ValidationError{
			Field:   "price",
			Message: "price cannot be negative",
		})
	}

	return errs
}
