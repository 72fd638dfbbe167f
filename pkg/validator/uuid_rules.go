package validator

import (
	"github.com/google/uuid"
)

// ValidUUID validates the hyphenated UUID textual format, case-insensitive.
// Length and hyphen positions are checked before parsing to reject garbage
// cheaply.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 36 {
				return false
			}
			if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
				return false
			}
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid UUID",
		},
	}
}
