package application

import (
	"errors"
	"testing"

	"mapmyfirm/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "projectName",
			value:     "Acme Law",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "projectName",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "projectName",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if valErr.Message != "project name is required" {
					t.Errorf("unexpected message %q", valErr.Message)
				}
			}
		})
	}
}

func TestValidateSiteURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"bare host", "example.com", false},
		{"https", "https://example.com/", false},
		{"http with path", "http://example.com/blog", false},
		{"empty", "", true},
		{"ftp scheme", "ftp://example.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSiteURL("siteURL", tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSiteURL(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePracticeArea(t *testing.T) {
	area, err := ValidatePracticeArea("Pedestrian Accident")
	if err != nil || area != domain.PedestrianAccident {
		t.Errorf("expected pedestrian accident, got %q, %v", area, err)
	}

	_, err = ValidatePracticeArea("divorce")
	if !errors.Is(err, ErrUnknownArea) {
		t.Errorf("expected ErrUnknownArea, got %v", err)
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := error(&NotFoundError{Kind: "project", ID: "abc"})
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected NotFoundError to match ErrNotFound")
	}
	if err.Error() != "project abc not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
