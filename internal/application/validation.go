package application

import (
	"fmt"
	"net/url"
	"strings"

	"mapmyfirm/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "locationID" -> "location ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"projectID":   "project ID",
		"projectName": "project name",
		"pageID":      "page ID",
		"hubID":       "hub ID",
		"itemID":      "item ID",
		"locationID":  "location ID",
		"siteURL":     "site URL",
		"manualURL":   "manual URL",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateSiteURL accepts a bare host or an http(s) URL
func ValidateSiteURL(fieldName, raw string) error {
	if err := ValidateRequired(fieldName, raw); err != nil {
		return err
	}
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s: %s", formatFieldName(fieldName), raw),
		}
	}
	return nil
}

// ValidatePracticeArea resolves a key or display name to a category
func ValidatePracticeArea(raw string) (domain.PracticeArea, error) {
	area, ok := domain.ParsePracticeArea(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownArea, raw)
	}
	return area, nil
}
