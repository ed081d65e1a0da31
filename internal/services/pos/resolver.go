package pos

import (
	"context"
	"fmt"

	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// Resolver answers read-only pricing questions against the catalog
type Resolver struct {
	catalog CatalogStore
}

// NewResolver creates a catalog resolver
func NewResolver(catalog CatalogStore) *Resolver {
	return &Resolver{catalog: catalog}
}

// ResolveItem looks up an item by code, treating an inactive item the same
// as an absent one.
func (r *Resolver) ResolveItem(ctx context.Context, itemCode string) (*models.Item, error) {
	item, err := r.catalog.GetItemByCode(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, models.NotFoundError{Entity: "item", Key: itemCode}
	}
	return item, nil
}

// ResolvePrice returns the unit price for an item at the requested size. A
// nil size or a size without an override falls back to the base price.
func (r *Resolver) ResolvePrice(ctx context.Context, itemCode string, size *models.Size) (models.Money, error) {
	item, err := r.ResolveItem(ctx, itemCode)
	if err != nil {
		return 0, err
	}
	return item.PriceForSize(size), nil
}

// ResolveOption returns the selected option under the given customization.
// An option id that exists but belongs to a different customization is a
// NotFoundError.
func (r *Resolver) ResolveOption(ctx context.Context, customizationID, optionID int64) (models.Option, error) {
	customization, err := r.catalog.GetCustomization(ctx, customizationID)
	if err != nil {
		return models.Option{}, err
	}
	return customization.Option(optionID)
}

// ResolveOptionSurcharge returns just the surcharge for an option selection
func (r *Resolver) ResolveOptionSurcharge(ctx context.Context, customizationID, optionID int64) (models.Money, error) {
	option, err := r.ResolveOption(ctx, customizationID, optionID)
	if err != nil {
		return 0, fmt.Errorf("customization %d: %w", customizationID, err)
	}
	return option.Price, nil
}
