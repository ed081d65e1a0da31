package customer

import (
	"context"
	"testing"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

func TestResolve_SelectorValidation(t *testing.T) {
	// The selector checks run before any store access
	service := NewService(nil, logger.New("customer-test"))
	ctx := context.Background()

	tests := []struct {
		name           string
		membershipID   string
		guestFirstName string
	}{
		{"both empty", "", ""},
		{"both whitespace", "  ", "  "},
		{"both supplied", "AB12C", "Alex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Resolve(ctx, tt.membershipID, tt.guestFirstName)
			if !models.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestParseDateOfBirth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantDate bool
	}{
		{"valid date", "1995-06-12", false, true},
		{"empty is allowed", "", false, false},
		{"wrong separator", "12/06/1995", true, false},
		{"out of range", "1995-13-40", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseDateOfBirth(tt.input)
			if tt.wantErr {
				if !models.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantDate != (parsed != nil) {
				t.Errorf("parsed = %v, want date: %v", parsed, tt.wantDate)
			}
		})
	}
}
