package models

import (
	"testing"
	"time"
)

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func validMember() *Customer {
	return &Customer{
		MembershipID: stringPtr("AB12C"),
		FirstName:    "Maria",
		LastName:     "Santos",
		Email:        "maria@example.com",
		DateOfBirth:  timePtr(time.Date(1995, 6, 12, 0, 0, 0, 0, time.UTC)),
		Member:       true,
		Active:       true,
	}
}

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Customer)
		wantField string
	}{
		{
			name:   "valid member",
			mutate: func(c *Customer) {},
		},
		{
			name:      "missing first name",
			mutate:    func(c *Customer) { c.FirstName = "  " },
			wantField: "first_name",
		},
		{
			name:      "membership id too short",
			mutate:    func(c *Customer) { c.MembershipID = stringPtr("AB1") },
			wantField: "membership_id",
		},
		{
			name:      "membership id lowercase",
			mutate:    func(c *Customer) { c.MembershipID = stringPtr("ab12c") },
			wantField: "membership_id",
		},
		{
			name:      "membership id missing",
			mutate:    func(c *Customer) { c.MembershipID = nil },
			wantField: "membership_id",
		},
		{
			name:      "member without last name",
			mutate:    func(c *Customer) { c.LastName = "" },
			wantField: "last_name",
		},
		{
			name:      "member without date of birth",
			mutate:    func(c *Customer) { c.DateOfBirth = nil },
			wantField: "date_of_birth",
		},
		{
			name: "member without any contact",
			mutate: func(c *Customer) {
				c.Email = ""
				c.Phone = ""
			},
			wantField: "contact",
		},
		{
			name: "phone alone satisfies contact",
			mutate: func(c *Customer) {
				c.Email = ""
				c.Phone = "+63 9171234567"
			},
		},
		{
			name:      "malformed email",
			mutate:    func(c *Customer) { c.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name: "malformed phone",
			mutate: func(c *Customer) {
				c.Email = ""
				c.Phone = "12-34"
			},
			wantField: "phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := validMember()
			tt.mutate(customer)

			err := customer.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid customer, got %v", err)
				}
				return
			}
			var vErr ValidationError
			if !IsValidation(err) {
				t.Fatalf("expected validation error on %s, got %v", tt.wantField, err)
			}
			vErr = err.(ValidationError)
			if vErr.Field != tt.wantField {
				t.Errorf("expected error on field %s, got %s", tt.wantField, vErr.Field)
			}
		})
	}
}

func TestCustomer_Validate_Guest(t *testing.T) {
	guest := NewGuest("Alex")
	if err := guest.Validate(); err != nil {
		t.Fatalf("guest with first name should be valid, got %v", err)
	}

	empty := NewGuest("")
	if err := empty.Validate(); !IsValidation(err) {
		t.Fatalf("guest without first name should fail validation, got %v", err)
	}
}
