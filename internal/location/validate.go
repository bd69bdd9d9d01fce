package location

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	minInputLen = 2
	maxInputLen = 100
)

// Same denylist the filter-state normalizer applies to free text.
var injectionPattern = regexp.MustCompile(`(?i)(<\s*script|javascript\s*:|\bon\w+\s*=)`)

// InputValidation is the outcome of validating a typed location.
type InputValidation struct {
	IsValid    bool     `json:"isValid"`
	Err        string   `json:"error,omitempty"`
	Normalized Location `json:"normalized"`
}

// ValidateInput checks a free-text location string the way the search box
// does: required, between 2 and 100 characters, and free of script-injection
// markup. Valid input is also parsed through the "City, State" convention.
func ValidateInput(text string) InputValidation {
	text = strings.TrimSpace(text)

	err := validation.Validate(text,
		validation.Required.Error("please enter a location"),
		validation.RuneLength(minInputLen, maxInputLen).Error("location must be between 2 and 100 characters"),
	)
	if err != nil {
		return InputValidation{IsValid: false, Err: err.Error()}
	}

	if injectionPattern.MatchString(text) {
		return InputValidation{IsValid: false, Err: "location contains invalid characters"}
	}

	return InputValidation{
		IsValid:    true,
		Normalized: FromText(text),
	}
}
