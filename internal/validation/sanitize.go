package validation

import (
	"errors"
	"regexp"
	"strings"
)

// ErrDisallowedContent is returned when a free-text field matches a known
// prompt-injection pattern. The input is rejected outright rather than
// partially stripped.
var ErrDisallowedContent = errors.New("input contains disallowed content, please use only food-related terms")

// ErrSuspiciousFormatting is returned when a free-text field contains
// formatting that has no place in food-related input (code fences, markdown
// headings, embedded JSON-like structures).
var ErrSuspiciousFormatting = errors.New("input contains invalid characters, please use only plain text")

// Known prompt injection patterns (case-insensitive matching).
var promptInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above|earlier)\s+(instructions|prompts|rules|directives)`),
	regexp.MustCompile(`(?i)ignore\s+all`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above|earlier|your)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|above|your)\s+(instructions|prompts|rules)`),
	regexp.MustCompile(`(?i)you\s+are\s+now`),
	regexp.MustCompile(`(?i)new\s+instructions`),
	regexp.MustCompile(`(?i)system\s*prompt`),
	regexp.MustCompile(`(?i)override\s+(previous|prior|all|your)`),
	regexp.MustCompile(`(?i)act\s+as\s+(a|an)\s`),
	regexp.MustCompile(`(?i)pretend\s+(you|to\s+be)`),
	regexp.MustCompile(`(?i)do\s+not\s+follow\s+(your|the|any)\s+(rules|instructions)`),
	regexp.MustCompile(`(?i)reveal\s+(your|the|system)\s+(prompt|instructions|rules)`),
	regexp.MustCompile(`(?i)what\s+(are|is)\s+your\s+(instructions|prompt|rules|system)`),
}

// Formatting that shouldn't appear in food-related input.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile("```"),          // code fence injection
	regexp.MustCompile(`###\s`),        // markdown heading injection
	regexp.MustCompile(`\{[^}]{20,}`),  // large JSON-like structures
}

var (
	controlChars   = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	zeroWidthChars = regexp.MustCompile("[\\x{200B}-\\x{200F}\\x{2028}-\\x{202F}\\x{FEFF}]")
	excessiveSpace = regexp.MustCompile(`\s{3,}`)
)

// SanitizeForPrompt cleans a user-provided string before it is interpolated
// into a model prompt. Control and zero-width characters are stripped, runs
// of three or more whitespace characters collapse to two, and the result is
// trimmed. Inputs matching an injection or suspicious-formatting pattern are
// rejected with an error; the text is never repaired.
func SanitizeForPrompt(input string) (string, error) {
	sanitized := controlChars.ReplaceAllString(input, "")
	sanitized = zeroWidthChars.ReplaceAllString(sanitized, "")
	sanitized = excessiveSpace.ReplaceAllString(sanitized, "  ")
	sanitized = strings.TrimSpace(sanitized)

	for _, pattern := range promptInjectionPatterns {
		if pattern.MatchString(sanitized) {
			return "", ErrDisallowedContent
		}
	}

	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(sanitized) {
			return "", ErrSuspiciousFormatting
		}
	}

	return sanitized, nil
}
