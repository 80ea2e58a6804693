// Package validate wraps the struct validator so every failing field is
// reported, converted into the shared error taxonomy.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/enshire/job-board/internal/apperr"
)

var v = validator.New()

// Struct validates s against its `validate` tags. On failure it returns
// an *apperr.ValidationError enumerating every failing field.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &apperr.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperr.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "cannot be empty"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
