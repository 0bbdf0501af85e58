package validate

import (
	"errors"

	"bidboard/internal/sanitize"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (in *RegisterInput) Validate() error {
	in.Email = sanitize.Email(in.Email)
	in.Name = sanitize.PlainText(in.Name)
	if err := run(*in); err != nil {
		// The shared required-message table speaks in project terms; here
		// "name" is the account holder's name.
		var fe *FieldError
		if errors.As(err, &fe) && fe.Field == "name" && in.Name == "" {
			fe.Message = "Name is required"
		}
		return err
	}
	return nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Validate() error {
	in.Email = sanitize.Email(in.Email)
	return run(*in)
}
