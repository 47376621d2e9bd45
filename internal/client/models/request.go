package models

import (
	"errors"

	"github.com/dmitrijs2005/socialfeed/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type UpdatePostRequest struct {
	Content string `json:"content"`
}

// Validate checks the struct tags of v. A missing required field yields
// common.ErrValidation.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return common.ErrValidation
	}
	return err
}
