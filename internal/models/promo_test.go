package models

import (
	"testing"
	"time"
)

func TestPromoCode_ValidAt(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		active bool
		at     time.Time
		want   bool
	}{
		{"inside window", true, time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC), true},
		{"before window", true, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"after window", true, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"inactive inside window", false, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := &PromoCode{
				Code:            "COFFEE10",
				DiscountPercent: 10,
				ValidFrom:       from,
				ValidUntil:      until,
				Active:          tt.active,
			}
			if got := promo.ValidAt(tt.at); got != tt.want {
				t.Errorf("ValidAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromoCode_Validate(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		promo   PromoCode
		wantErr bool
	}{
		{"valid", PromoCode{Code: "COFFEE10", DiscountPercent: 10, ValidFrom: from, ValidUntil: until}, false},
		{"empty code", PromoCode{Code: " ", DiscountPercent: 10, ValidFrom: from, ValidUntil: until}, true},
		{"zero discount", PromoCode{Code: "FREE0", DiscountPercent: 0, ValidFrom: from, ValidUntil: until}, true},
		{"discount above hundred", PromoCode{Code: "ALL", DiscountPercent: 101, ValidFrom: from, ValidUntil: until}, true},
		{"inverted window", PromoCode{Code: "COFFEE10", DiscountPercent: 10, ValidFrom: until, ValidUntil: from}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.promo.Validate()
			if tt.wantErr && !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
