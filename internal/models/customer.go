package models

import (
	"regexp"
	"strings"
	"time"
)

var (
	membershipIDPattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern        = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10}$`)
)

// Customer is either a registered member (membership id required) or a
// walk-in guest (first name only).
type Customer struct {
	ID           int64      `json:"id,omitempty" db:"id"`
	MembershipID *string    `json:"membership_id,omitempty" db:"membership_id"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name,omitempty" db:"last_name"`
	Email        string     `json:"email,omitempty" db:"email"`
	Phone        string     `json:"phone,omitempty" db:"phone"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Member       bool       `json:"is_member" db:"is_member"`
	Active       bool       `json:"active" db:"active"`
	CreatedAt    time.Time  `json:"created_at,omitempty" db:"created_at"`
}

// NewGuest creates an ephemeral guest customer record
func NewGuest(firstName string) *Customer {
	return &Customer{
		FirstName: strings.TrimSpace(firstName),
		Member:    false,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate enforces the member/guest field invariants: members require a
// membership id, last name, date of birth and at least one contact method;
// guests require only a first name.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if !c.Member {
		return nil
	}
	if c.MembershipID == nil || !membershipIDPattern.MatchString(*c.MembershipID) {
		return ValidationError{Field: "membership_id", Message: "membership ID must be exactly 5 uppercase alphanumeric characters"}
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ValidationError{Field: "last_name", Message: "last name is required for members"}
	}
	if c.DateOfBirth == nil {
		return ValidationError{Field: "date_of_birth", Message: "date of birth is required for members"}
	}
	if strings.TrimSpace(c.Email) == "" && strings.TrimSpace(c.Phone) == "" {
		return ValidationError{Field: "contact", Message: "either email or phone is required for members"}
	}
	if c.Email != "" && !emailPattern.MatchString(c.Email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	if c.Phone != "" && !phonePattern.MatchString(c.Phone) {
		return ValidationError{Field: "phone", Message: "invalid phone number format"}
	}
	return nil
}
