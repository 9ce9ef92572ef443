package authflow

import (
	"net/mail"
	"unicode/utf8"

	"github.com/Chu-rill/hotel-management-client/pkg/models"
)

// Form rules enforced before anything reaches the network layer.
const (
	minPasswordLength = 6
	minUsernameLength = 2
)

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return models.NewValidationError("email", "Please enter a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return models.NewValidationError("password", "Password must be at least 6 characters")
	}
	return nil
}

func validateUsername(username string) error {
	if utf8.RuneCountInString(username) < minUsernameLength {
		return models.NewValidationError("username", "Name must be at least 2 characters")
	}
	return nil
}

func validateOTP(otp string) error {
	if otp == "" {
		return models.NewValidationError("otp", "OTP code is required")
	}
	return nil
}
