// Package validation validates request input and reports failures as
// INVALID_INPUT application errors carrying per-field details.
//
// # Struct Tag Validation
//
//	type RegisterInput struct {
//	    Username string `json:"username" validate:"required,max=64"`
//	    Password string `json:"password" validate:"required,min=8"`
//	}
//	err := validation.Validate(in)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Min("limit", limit, 0)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
