package services

import (
	"errors"
	"fmt"
	"strings"

	"catering/rules"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validateInput runs the struct's binding tags through gin's validator and
// reports every failed field as one issue.
func validateInput(v any) error {
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return InputError(err)
	}
	return nil
}

// InputError turns a binding or validator error into a ValidationError.
func InputError(err error) error {
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return &rules.ValidationError{Issues: []string{err.Error()}}
	}
	issues := make([]string, len(fes))
	for i, fe := range fes {
		issues[i] = fieldIssue(fe)
	}
	return &rules.ValidationError{Issues: issues}
}

func fieldIssue(fe validator.FieldError) string {
	name := fe.Field()
	if name != "" {
		name = strings.ToLower(name[:1]) + name[1:]
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " is not a valid email"
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	}
	return name + " is invalid"
}
