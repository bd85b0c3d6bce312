package gateway

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shareit/backend/pkg/utils"
)

type userCreateBody struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
}

type userUpdateBody struct {
	Name  *string `json:"name" binding:"omitempty,notblank"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type itemCreateBody struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type itemUpdateBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type commentBody struct {
	Text string `json:"text" binding:"required,notblank"`
}

type itemRequestBody struct {
	Description string `json:"description" binding:"required,notblank"`
}

type bookingBody struct {
	ItemID *int64           `json:"itemId" binding:"required"`
	Start  *utils.Timestamp `json:"start" binding:"required"`
	End    *utils.Timestamp `json:"end" binding:"required"`
}

var bookingStates = map[string]bool{
	"ALL": true, "CURRENT": true, "PAST": true, "FUTURE": true, "WAITING": true, "REJECTED": true,
}

// RegisterValidators adds the notblank tag to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
