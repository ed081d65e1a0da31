package customer

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const membershipIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MemberRequest is an incoming member registration or update
type MemberRequest struct {
	MembershipID string `json:"membership_id,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DateOfBirth  string `json:"date_of_birth"`
}

// Service owns customer registration and resolution
type Service struct {
	store  *Store
	logger *logger.Logger
}

// NewService creates the customer service
func NewService(store *Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// Resolve returns the customer for an order: a member looked up by
// membership id, or a freshly persisted guest identified by first name only.
// Exactly one selector must be supplied.
func (s *Service) Resolve(ctx context.Context, membershipID, guestFirstName string) (*models.Customer, error) {
	membershipID = strings.TrimSpace(membershipID)
	guestFirstName = strings.TrimSpace(guestFirstName)

	if membershipID == "" && guestFirstName == "" {
		return nil, models.ValidationError{Field: "customer", Message: "either membership_id or guest_first_name is required"}
	}
	if membershipID != "" && guestFirstName != "" {
		return nil, models.ValidationError{Field: "customer", Message: "supply membership_id or guest_first_name, not both"}
	}

	if membershipID != "" {
		member, err := s.store.GetByMembershipID(ctx, strings.ToUpper(membershipID))
		if err != nil {
			return nil, err
		}
		if !member.Active {
			return nil, models.NotFoundError{Entity: "member", Key: membershipID}
		}
		return member, nil
	}

	guest := models.NewGuest(guestFirstName)
	if err := guest.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// CreateMember registers a member, generating a membership id when none is
// supplied.
func (s *Service) CreateMember(ctx context.Context, req *MemberRequest, requestID string) (*models.Customer, error) {
	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	membershipID := strings.ToUpper(strings.TrimSpace(req.MembershipID))
	if membershipID == "" {
		membershipID, err = s.generateMembershipID(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.store.MembershipIDExists(ctx, membershipID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, models.ValidationError{Field: "membership_id", Message: "membership ID already exists"}
		}
	}

	member := &models.Customer{
		MembershipID: &membershipID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		DateOfBirth:  dateOfBirth,
		Member:       true,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member_created", "Member registered", requestID, map[string]interface{}{
		"membership_id": membershipID,
	})
	return member, nil
}

// GetByMembershipID returns one member
func (s *Service) GetByMembershipID(ctx context.Context, membershipID string) (*models.Customer, error) {
	return s.store.GetByMembershipID(ctx, strings.ToUpper(strings.TrimSpace(membershipID)))
}

// UpdateMember updates a member's details, re-validating member invariants
func (s *Service) UpdateMember(ctx context.Context, membershipID string, req *MemberRequest, requestID string) (*models.Customer, error) {
	member, err := s.GetByMembershipID(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	member.FirstName = strings.TrimSpace(req.FirstName)
	member.LastName = strings.TrimSpace(req.LastName)
	member.Email = strings.TrimSpace(req.Email)
	member.Phone = strings.TrimSpace(req.Phone)
	member.DateOfBirth = dateOfBirth

	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member_updated", "Member updated", requestID, map[string]interface{}{
		"membership_id": *member.MembershipID,
	})
	return member, nil
}

// generateMembershipID draws random 5-character ids until one is unused
func (s *Service) generateMembershipID(ctx context.Context) (string, error) {
	for {
		buf := make([]byte, 5)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate membership ID: %w", err)
		}
		id := make([]byte, 5)
		for i, b := range buf {
			id[i] = membershipIDAlphabet[int(b)%len(membershipIDAlphabet)]
		}

		exists, err := s.store.MembershipIDExists(ctx, string(id))
		if err != nil {
			return "", err
		}
		if !exists {
			return string(id), nil
		}
	}
}

func parseDateOfBirth(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, models.ValidationError{Field: "date_of_birth", Message: "must be in YYYY-MM-DD format"}
	}
	return &t, nil
}
