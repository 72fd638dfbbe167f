package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail validates that a string parses as an RFC 5322 address without a
// display name.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Error: ValidationError{
			Field:   field,
			Message: "Invalid email format",
		},
	}
}
