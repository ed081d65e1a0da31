package catalog

import (
	"context"
	"strings"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// ItemRequest is an incoming catalog item definition
type ItemRequest struct {
	Code             string                  `json:"code"`
	Name             string                  `json:"name"`
	Type             string                  `json:"type"`
	CategoryCode     string                  `json:"category_code,omitempty"`
	BasePrice        models.Money            `json:"base_price"`
	SizePrices       map[string]models.Money `json:"size_prices,omitempty"`
	DefaultSizes     bool                    `json:"default_sizes,omitempty"`
	CustomizationIDs []int64                 `json:"customization_ids,omitempty"`
	Description      string                  `json:"description,omitempty"`
}

// CustomizationRequest is an incoming customization definition
type CustomizationRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	ApplicableType string          `json:"applicable_type"`
	Options        []OptionRequest `json:"options"`
}

// OptionRequest is one option under a customization definition
type OptionRequest struct {
	Name  string       `json:"name"`
	Price models.Money `json:"price"`
}

// Service owns catalog definition: categories, items and customizations.
// Catalog-definition rules (positive prices, the option cap) are enforced
// here, not at order time.
type Service struct {
	store  *Store
	logger *logger.Logger
}

// NewService creates the catalog service
func NewService(store *Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// CreateItem validates and persists a catalog item. Drink items may request
// the generated default size curve instead of explicit overrides.
func (s *Service) CreateItem(ctx context.Context, req *ItemRequest, requestID string) (*models.Item, error) {
	itemType, err := models.ParseItemType(req.Type)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		Code:             strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:             req.Name,
		Type:             itemType,
		CategoryCode:     req.CategoryCode,
		BasePrice:        req.BasePrice,
		CustomizationIDs: req.CustomizationIDs,
		Description:      req.Description,
		Active:           true,
	}

	if req.DefaultSizes {
		if !item.IsDrink() {
			return nil, models.ValidationError{Field: "default_sizes", Message: "size tiers apply to drink items only"}
		}
		item.SizePrices = models.DefaultSizePrices(req.BasePrice)
	} else if len(req.SizePrices) > 0 {
		item.SizePrices = make(map[models.Size]models.Money, len(req.SizePrices))
		for sizeStr, price := range req.SizePrices {
			size, err := models.ParseSize(sizeStr)
			if err != nil {
				return nil, err
			}
			item.SizePrices[*size] = price
		}
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if item.CategoryCode != "" {
		if _, err := s.store.GetCategory(ctx, item.CategoryCode); err != nil {
			return nil, err
		}
	}
	for _, customizationID := range item.CustomizationIDs {
		if _, err := s.store.GetCustomization(ctx, customizationID); err != nil {
			return nil, err
		}
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item_created", "Catalog item created", requestID, map[string]interface{}{
		"code": item.Code,
		"type": item.Type,
	})
	return item, nil
}

// GetItem returns one catalog item by code
func (s *Service) GetItem(ctx context.Context, code string) (*models.Item, error) {
	return s.store.GetItemByCode(ctx, strings.ToUpper(code))
}

// ListItems returns all catalog items
func (s *Service) ListItems(ctx context.Context) ([]*models.Item, error) {
	return s.store.ListItems(ctx)
}

// DeactivateItem removes an item from sale without deleting its history
func (s *Service) DeactivateItem(ctx context.Context, code, requestID string) error {
	if err := s.store.SetItemActive(ctx, strings.ToUpper(code), false); err != nil {
		return err
	}
	s.logger.Info("item_deactivated", "Catalog item deactivated", requestID, map[string]interface{}{
		"code": strings.ToUpper(code),
	})
	return nil
}

// CreateCategory persists a category after validation
func (s *Service) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.Code = strings.ToUpper(strings.TrimSpace(category.Code))
	if category.Code == "" {
		return nil, models.ValidationError{Field: "code", Message: "category code is required"}
	}
	if category.Name == "" {
		return nil, models.ValidationError{Field: "name", Message: "category name is required"}
	}
	if _, err := models.ParseItemType(string(category.ItemType)); err != nil {
		return nil, err
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all categories
func (s *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCustomization validates and persists a customization with its
// options, enforcing the option cap.
func (s *Service) CreateCustomization(ctx context.Context, req *CustomizationRequest, requestID string) (*models.Customization, error) {
	applicableType, err := models.ParseItemType(req.ApplicableType)
	if err != nil {
		return nil, err
	}

	customization := &models.Customization{
		Name:           req.Name,
		Description:    req.Description,
		ApplicableType: applicableType,
	}
	for _, opt := range req.Options {
		customization.Options = append(customization.Options, models.Option{Name: opt.Name, Price: opt.Price})
	}

	if err := customization.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateCustomization(ctx, customization); err != nil {
		return nil, err
	}

	s.logger.Info("customization_created", "Customization created", requestID, map[string]interface{}{
		"id":           customization.ID,
		"name":         customization.Name,
		"option_count": len(customization.Options),
	})
	return customization, nil
}

// GetCustomization returns one customization with its options
func (s *Service) GetCustomization(ctx context.Context, id int64) (*models.Customization, error) {
	return s.store.GetCustomization(ctx, id)
}

// ListCustomizations returns all customizations
func (s *Service) ListCustomizations(ctx context.Context) ([]*models.Customization, error) {
	return s.store.ListCustomizations(ctx)
}
