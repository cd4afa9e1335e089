package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ValidateXSS checks for common XSS attack patterns
func ValidateXSS(input string) (bool, string) {
	xssPatterns := map[string]string{
		`(?i)(<script.*>)`:       "XSS detected: Script tag found",
		`(?i)(javascript:)`:      "XSS detected: JavaScript protocol found",
		`(?i)(vbscript:)`:        "XSS detected: VBScript protocol found",
		`(?i)(onload=)`:          "XSS detected: onload event handler found",
		`(?i)(onerror=)`:         "XSS detected: onerror event handler found",
		`(?i)(document\.cookie)`: "XSS detected: document.cookie access found",
	}

	for pattern, message := range xssPatterns {
		if matched, _ := regexp.MatchString(pattern, input); matched {
			return false, message
		}
	}
	return true, ""
}

// ValidateEmail checks if the email is valid and safe
func ValidateEmail(email string) (bool, string) {
	if valid, msg := ValidateXSS(email); !valid {
		return false, "Email: " + msg
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format. Please enter a valid email address"
	}
	return true, ""
}

// ValidatePhone accepts international numbers of 7 to 20 characters
func ValidatePhone(phone string) (bool, string) {
	if err := ValidateStringLength(phone, 7, 20); err != nil {
		return false, "Phone " + err.Error()
	}
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return false, "Invalid phone number format"
	}
	return true, ""
}

// ValidateCurrency checks for an upper-case ISO 4217 code
func ValidateCurrency(currency string) error {
	if !currencyRegex.MatchString(currency) {
		return fmt.Errorf("currency must be a 3-letter ISO code")
	}
	return nil
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len([]rune(strings.TrimSpace(str)))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}
