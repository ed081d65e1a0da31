package models

import "fmt"

// Money is an amount in minor currency units (centavos). Totals are exact
// integer sums, so invariants hold at the smallest currency unit.
type Money int64

// ItemType classifies a catalog item
type ItemType string

const (
	TypeDrink       ItemType = "drink"
	TypeFood        ItemType = "food"
	TypeMerchandise ItemType = "merchandise"
)

// ParseItemType validates an item type string
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case TypeDrink, TypeFood, TypeMerchandise:
		return ItemType(s), nil
	default:
		return "", ValidationError{Field: "type", Message: "must be one of: drink, food, merchandise"}
	}
}

// Size is a price tier for drink-like items
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ParseSize validates a size string. An empty string means no size selection.
func ParseSize(s string) (*Size, error) {
	if s == "" {
		return nil, nil
	}
	switch Size(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		size := Size(s)
		return &size, nil
	default:
		return nil, ValidationError{Field: "size", Message: "must be one of: small, medium, large"}
	}
}

// Category groups catalog items
type Category struct {
	Code     string   `json:"code" db:"code"`
	Name     string   `json:"name" db:"name"`
	ItemType ItemType `json:"item_type" db:"item_type"`
}

// Item is a catalog entity. Order lines reference items by code, never embed
// them by value.
type Item struct {
	Code             string         `json:"code" db:"code"`
	Name             string         `json:"name" db:"name"`
	Type             ItemType       `json:"type" db:"type"`
	CategoryCode     string         `json:"category_code,omitempty" db:"category_code"`
	BasePrice        Money          `json:"base_price" db:"base_price"`
	SizePrices       map[Size]Money `json:"size_prices,omitempty"`
	CustomizationIDs []int64        `json:"customization_ids,omitempty"`
	Description      string         `json:"description,omitempty" db:"description"`
	Active           bool           `json:"active" db:"active"`
}

// PriceForSize returns the price for the requested size. A nil size or a size
// with no override falls back to the base price, never an error.
func (i *Item) PriceForSize(size *Size) Money {
	if size == nil {
		return i.BasePrice
	}
	if price, ok := i.SizePrices[*size]; ok {
		return price
	}
	return i.BasePrice
}

// IsDrink reports whether the item carries size tiers
func (i *Item) IsDrink() bool {
	return i.Type == TypeDrink
}

// DefaultSizePrices derives the standard drink size curve from a base price:
// small 80% of base, medium the base itself, large 120% of base plus 2000
// minor units. Used by catalog seeding; order-time pricing only ever reads
// the stored overrides.
func DefaultSizePrices(base Money) map[Size]Money {
	return map[Size]Money{
		SizeSmall:  base * 80 / 100,
		SizeMedium: base,
		SizeLarge:  base*120/100 + 2000,
	}
}

// Validate checks item fields at catalog-definition time
func (i *Item) Validate() error {
	if i.Code == "" {
		return ValidationError{Field: "code", Message: "item code is required"}
	}
	if len(i.Code) > 15 {
		return ValidationError{Field: "code", Message: "item code must not exceed 15 characters"}
	}
	if i.Name == "" {
		return ValidationError{Field: "name", Message: "item name is required"}
	}
	if _, err := ParseItemType(string(i.Type)); err != nil {
		return err
	}
	if i.BasePrice <= 0 {
		return ValidationError{Field: "base_price", Message: "base price must be positive"}
	}
	if len(i.SizePrices) > 0 && !i.IsDrink() {
		return ValidationError{Field: "size_prices", Message: "size tiers apply to drink items only"}
	}
	for size, price := range i.SizePrices {
		if price <= 0 {
			return ValidationError{
				Field:   fmt.Sprintf("size_prices.%s", size),
				Message: "size price must be positive",
			}
		}
	}
	return nil
}

// MaxCustomizationOptions caps the options under one customization, enforced
// on catalog writes rather than at order time.
const MaxCustomizationOptions = 5

// Option is one selectable choice within a customization
type Option struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Price Money  `json:"price" db:"price"`
}

// Customization is a named axis of optional modification offered on
// applicable items.
type Customization struct {
	ID             int64    `json:"id" db:"id"`
	Name           string   `json:"name" db:"name"`
	Description    string   `json:"description,omitempty" db:"description"`
	ApplicableType ItemType `json:"applicable_type" db:"applicable_type"`
	Options        []Option `json:"options"`
}

// Option returns the option with the given id, or a NotFoundError when the
// option does not belong to this customization.
func (c *Customization) Option(optionID int64) (Option, error) {
	for _, opt := range c.Options {
		if opt.ID == optionID {
			return opt, nil
		}
	}
	return Option{}, NotFoundError{Entity: "customization option", Key: fmt.Sprintf("%d", optionID)}
}

// Validate checks customization fields at catalog-definition time
func (c *Customization) Validate() error {
	if c.Name == "" {
		return ValidationError{Field: "name", Message: "customization name is required"}
	}
	if c.ApplicableType != TypeDrink && c.ApplicableType != TypeFood {
		return ValidationError{Field: "applicable_type", Message: "must be drink or food"}
	}
	if len(c.Options) == 0 {
		return ValidationError{Field: "options", Message: "at least one option is required"}
	}
	if len(c.Options) > MaxCustomizationOptions {
		return ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("a customization cannot have more than %d options", MaxCustomizationOptions),
		}
	}
	for i, opt := range c.Options {
		if opt.Name == "" {
			return ValidationError{Field: fmt.Sprintf("options[%d].name", i), Message: "option name is required"}
		}
		if opt.Price < 0 {
			return ValidationError{Field: fmt.Sprintf("options[%d].price", i), Message: "option price cannot be negative"}
		}
	}
	return nil
}
