package validator

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordRequired = errors.New("password is required")
)

// サインアップの入力を検証
func ValidateRegister(name string, email string, password string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrNameTooShort
	}
	if !isEmailLike(email) {
		return ErrInvalidEmail
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// ログインの入力を検証
func ValidateLogin(email string, password string) error {
	if !isEmailLike(email) {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func isEmailLike(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
