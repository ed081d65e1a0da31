package models

import (
	"strings"
	"time"
)

// PromoCode is a percentage discount code with a validity window
type PromoCode struct {
	ID              int64     `json:"id,omitempty" db:"id"`
	Code            string    `json:"code" db:"code"`
	DiscountPercent float64   `json:"discount_percent" db:"discount_percent"`
	ValidFrom       time.Time `json:"valid_from" db:"valid_from"`
	ValidUntil      time.Time `json:"valid_until" db:"valid_until"`
	Active          bool      `json:"active" db:"active"`
	CreatedAt       time.Time `json:"created_at,omitempty" db:"created_at"`
}

// ValidAt reports whether the code can be redeemed at the given time
func (p *PromoCode) ValidAt(t time.Time) bool {
	return p.Active && t.After(p.ValidFrom) && t.Before(p.ValidUntil)
}

// Validate checks promo code fields on creation
func (p *PromoCode) Validate() error {
	if strings.TrimSpace(p.Code) == "" {
		return ValidationError{Field: "code", Message: "promo code is required"}
	}
	if p.DiscountPercent <= 0 || p.DiscountPercent > 100 {
		return ValidationError{Field: "discount_percent", Message: "discount percent must be between 0 and 100"}
	}
	if !p.ValidUntil.After(p.ValidFrom) {
		return ValidationError{Field: "valid_until", Message: "valid_until must be after valid_from"}
	}
	return nil
}
