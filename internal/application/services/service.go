package services

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Clock returns the current time. Services read it once per operation.
type Clock func() time.Time

var validate = validator.New()

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
