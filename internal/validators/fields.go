package validators

import (
	"regexp"
	"strconv"
	"strings"
)

// Field validators return "" when the value is valid, otherwise a message the
// client can surface next to the field. The same rules run in the web forms;
// these are the authoritative copies.

var (
	nameRe    = regexp.MustCompile(`^[a-zA-Z\s]*$`)
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	addressRe = regexp.MustCompile(`^[a-zA-Z0-9\s,.-]*$`)
	degreeRe  = regexp.MustCompile(`^[a-zA-Z\s.]*$`)
)

func ValidateName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Name is required"
	}
	if !nameRe.MatchString(value) {
		return "Name should not contain special characters"
	}
	return ""
}

func ValidateEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !emailRe.MatchString(value) {
		return "Invalid email format"
	}
	return ""
}

func ValidatePassword(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Password is required"
	}
	if len(value) < 8 {
		return "Password must be at least 8 characters"
	}
	if len(value) > 50 {
		return "Password must be less than 50 characters"
	}
	return ""
}

func ValidateAddress(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Address is required"
	}
	if len(value) < 10 {
		return "Address must be at least 10 characters"
	}
	if len(value) > 255 {
		return "Address must be less than 255 characters"
	}
	if !addressRe.MatchString(value) {
		return "Address can only contain letters, numbers, spaces, commas, and periods"
	}
	return ""
}

func ValidateDegree(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Degree is required"
	}
	if !degreeRe.MatchString(value) {
		return "Degree can only contain letters, spaces, and dots"
	}
	return ""
}

func ValidateFees(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Fees is required"
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return "Fees must be a number"
	}
	return ""
}
