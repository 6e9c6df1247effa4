package handlers

import (
	"net/mail"
	"strings"

	"CASHTRACKR_BACK-END/internal/dto"
	"CASHTRACKR_BACK-END/internal/models"
)

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validateAccountInput(name, email, password string) []dto.FieldError {
	var errs []dto.FieldError
	if len(strings.TrimSpace(name)) < 3 {
		errs = append(errs, dto.FieldError{Field: "name", Message: "Name must be at least 3 characters"})
	}
	if email == "" || !validEmail(email) {
		errs = append(errs, dto.FieldError{Field: "email", Message: "A valid email is required"})
	}
	errs = append(errs, validatePassword(password)...)
	return errs
}

func validatePassword(password string) []dto.FieldError {
	if len(password) < 5 {
		return []dto.FieldError{{Field: "password", Message: "Password must be at least 5 characters"}}
	}
	return nil
}

func validateOneTimeToken(token string) []dto.FieldError {
	if len(token) != models.TokenLength {
		return []dto.FieldError{{Field: "token", Message: "Token must be exactly 6 characters"}}
	}
	return nil
}

func validateAmountInput(name string, amount *float64) []dto.FieldError {
	var errs []dto.FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, dto.FieldError{Field: "name", Message: "Name is required"})
	}
	if amount == nil {
		errs = append(errs, dto.FieldError{Field: "amount", Message: "Amount is required"})
	} else if *amount < 0 {
		errs = append(errs, dto.FieldError{Field: "amount", Message: "Amount must be zero or greater"})
	}
	return errs
}
