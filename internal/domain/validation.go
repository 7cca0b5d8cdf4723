package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// validate is shared by every payload type. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// ruleMessages maps "<StructField>.<tag>" to the message returned to clients.
var ruleMessages = map[string]string{
	"Title.notblank":     "Title cannot be empty",
	"Title.max":          "Title must be 200 characters or less",
	"Description.max":    "Description must be 1000 characters or less",
	"Name.notblank":      "Name cannot be empty",
	"Name.max":           "Name must be 100 characters or less",
	"Email.notblank":     "Email cannot be empty",
	"Email.max":          "Email must be 255 characters or less",
	"Email.contains":     "Email must be a valid email address",
	"UserID.required":    "User ID is required",
	"EventType.notblank": "Event type cannot be empty",
	"EventType.max":      "Event type must be 50 characters or less",
	"EventTime.required": "Event time is required",
}

// validateStruct runs the struct's validate tags and converts the first
// violation into a *ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	msg, ok := ruleMessages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return NewValidationError(fe.StructField(), msg)
}
