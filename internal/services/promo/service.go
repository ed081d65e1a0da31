package promo

import (
	"context"
	"strings"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// Service owns promo code management and redemption checks
type Service struct {
	store  *Store
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates the promo service
func NewService(store *Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log, now: time.Now}
}

// Create validates and persists a promo code, uppercasing the code
func (s *Service) Create(ctx context.Context, code *models.PromoCode, requestID string) (*models.PromoCode, error) {
	code.Code = strings.ToUpper(strings.TrimSpace(code.Code))
	code.Active = true

	if err := code.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, code); err != nil {
		return nil, err
	}

	s.logger.Info("promo_created", "Promo code created", requestID, map[string]interface{}{
		"code":             code.Code,
		"discount_percent": code.DiscountPercent,
	})
	return code, nil
}

// Validate returns the promo code when it is active and inside its validity
// window; an expired, inactive or unknown code is a NotFoundError.
func (s *Service) Validate(ctx context.Context, code string) (*models.PromoCode, error) {
	promo, err := s.store.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if !promo.ValidAt(s.now().UTC()) {
		return nil, models.NotFoundError{Entity: "promo code", Key: promo.Code}
	}
	return promo, nil
}

// List returns all promo codes
func (s *Service) List(ctx context.Context) ([]*models.PromoCode, error) {
	return s.store.List(ctx)
}
