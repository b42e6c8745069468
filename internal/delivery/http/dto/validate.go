package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct tags of a request body.
func Validate(req interface{}) error {
	return validate.Struct(req)
}
