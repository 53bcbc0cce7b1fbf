package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// Symbols a password may (and must, at least once) contain.
const passwordSymbols = "][@$!%*#?&,./^-={}:;\"'<>~`|\\"

// Each validator checks one field and returns a human-readable message,
// or "" when the value is acceptable. Validators never panic and never
// return partial results.

// Required rejects empty or whitespace-only values.
func Required(value, message string) string {
	if strings.TrimSpace(value) == "" {
		return message
	}
	return ""
}

// MinLen rejects values shorter than min characters. Emptiness is the
// job of Required; MinLen only fires on non-empty values.
func MinLen(value string, min int, message string) string {
	if value != "" && len([]rune(value)) < min {
		return message
	}
	return ""
}

// Username requires a non-empty value of at least 3 characters.
func Username(value string) string {
	if msg := Required(value, "Username is required"); msg != "" {
		return msg
	}
	return MinLen(value, 3, "Username must be at least 3 characters")
}

// Bio requires a non-empty value of at least 30 characters. This rule
// applies at registration; profile edits accept free-form text.
func Bio(value string) string {
	if msg := Required(value, "Bio is required"); msg != "" {
		return msg
	}
	return MinLen(value, 30, "Bio must be at least 30 characters")
}

// Password requires at least 8 characters with at least one letter, one
// digit and one symbol from the allowed punctuation set. Only ASCII
// letters and digits count; anything outside those classes and the
// symbol set is rejected.
func Password(value string) string {
	if value == "" {
		return "Password is required"
	}
	if len([]rune(value)) < 8 {
		return "Password must be at least 8 characters"
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range value {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return "Password must contain letters, digits and special characters (@$!%*#?&,./)"
		}
	}
	if !hasLetter || !hasDigit || !hasSymbol {
		return "Password must contain letters, digits and special characters (@$!%*#?&,./)"
	}
	return ""
}

// PasswordConfirmation requires the confirmation to equal the password.
func PasswordConfirmation(password, confirmation string) string {
	if password != confirmation {
		return "Passwords do not match"
	}
	return ""
}

// Gender requires one of the enumerated values.
func Gender(value string, genders []string) string {
	if value == "" {
		return "Please select a gender"
	}
	for _, g := range genders {
		if value == g {
			return ""
		}
	}
	return "Please select a gender"
}

// AvatarURL accepts an empty value; a non-empty one must parse as an
// absolute URL.
func AvatarURL(value string) string {
	if value == "" {
		return ""
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "Invalid avatar URL"
	}
	return ""
}

// IntRange rejects values outside [min, max].
func IntRange(value, min, max int, field string) string {
	if value < min || value > max {
		return fmt.Sprintf("%s must be between %d and %d", field, min, max)
	}
	return ""
}

// OneOf rejects values missing from the allowed list.
func OneOf(value string, allowed []string, message string) string {
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return message
}
