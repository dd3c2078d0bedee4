package auth

import (
	"strings"

	errors "github.com/kab1012/budget-tracker/internal"
	"github.com/kab1012/budget-tracker/internal/core/common/validation"
)

type RegisterDTO struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (dto *RegisterDTO) Validate() *errors.AppError {
	dto.Email = strings.TrimSpace(strings.ToLower(dto.Email))
	dto.Username = strings.TrimSpace(dto.Username)

	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().MaxLength(254).Custom(emailFormat("email"))
	v.Field("username", dto.Username).Required().MaxLength(150)
	v.Field("password", dto.Password).Required().Custom(minPasswordLength("password", 8))
	return v.Validate()
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto *LoginDTO) Validate() *errors.AppError {
	dto.Email = strings.TrimSpace(strings.ToLower(dto.Email))

	v := validation.NewValidator()
	v.Field("email", dto.Email).Required()
	v.Field("password", dto.Password).Required()
	return v.Validate()
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto *RefreshTokenDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", dto.RefreshToken).Required()
	return v.Validate()
}

func emailFormat(field string) func(interface{}) *errors.AppError {
	return func(value interface{}) *errors.AppError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		at := strings.Index(s, "@")
		if at <= 0 || at == len(s)-1 || !strings.Contains(s[at:], ".") {
			return errors.NewValidationFieldError(field, "email is not a valid address", errors.ErrCodeValidationFailed)
		}
		return nil
	}
}

func minPasswordLength(field string, min int) func(interface{}) *errors.AppError {
	return func(value interface{}) *errors.AppError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if len(s) < min {
			return errors.NewValidationFieldError(field, "password must be at least 8 characters", errors.ErrCodeValidationFailed)
		}
		return nil
	}
}
