// Package validator provides rule-based input validation.
//
// Rules are composed per request and evaluated with Apply, which collects
// every failing rule into a ValidationErrors value carrying field/message
// pairs ready for a 400 response.
//
//	err := validator.Apply(
//		validator.Required("name", in.Name),
//		validator.ValidEmail("email", in.Email),
//		validator.MinLen("password", in.Password, 6, "Password must be at least 6 characters"),
//	)
package validator
