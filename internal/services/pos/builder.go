package pos

import (
	"context"
	"fmt"

	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// LineBuilder turns one requested line into a priced order line. It is a
// pure function over catalog state: any unknown item, customization or
// option fails the whole line with nothing partially applied.
type LineBuilder struct {
	resolver *Resolver
}

// NewLineBuilder creates a line builder over the given resolver
func NewLineBuilder(resolver *Resolver) *LineBuilder {
	return &LineBuilder{resolver: resolver}
}

// BuildLine prices one requested line: base-or-size unit price plus the sum
// of every selected option surcharge.
func (b *LineBuilder) BuildLine(ctx context.Context, req LineRequest) (*models.OrderLine, error) {
	if req.Quantity <= 0 {
		return nil, models.ValidationError{Field: "quantity", Message: "quantity must be greater than 0"}
	}
	if req.ItemCode == "" {
		return nil, models.ValidationError{Field: "item_code", Message: "item code is required"}
	}

	size, err := models.ParseSize(req.Size)
	if err != nil {
		return nil, err
	}

	item, err := b.resolver.ResolveItem(ctx, req.ItemCode)
	if err != nil {
		return nil, err
	}

	unitPrice := item.PriceForSize(size)

	customizations := make([]models.LineCustomization, 0, len(req.Customizations))
	for i, selection := range req.Customizations {
		if len(selection.OptionIDs) == 0 {
			return nil, models.ValidationError{
				Field:   fmt.Sprintf("customizations[%d].option_ids", i),
				Message: "selected options cannot be empty",
			}
		}

		selected := make([]models.SelectedOption, 0, len(selection.OptionIDs))
		for _, optionID := range selection.OptionIDs {
			option, err := b.resolver.ResolveOption(ctx, selection.CustomizationID, optionID)
			if err != nil {
				return nil, err
			}
			unitPrice += option.Price
			selected = append(selected, models.SelectedOption{
				OptionID: option.ID,
				Name:     option.Name,
				Price:    option.Price,
			})
		}

		customizations = append(customizations, models.LineCustomization{
			CustomizationID: selection.CustomizationID,
			Options:         selected,
		})
	}

	return &models.OrderLine{
		ItemCode:       item.Code,
		ItemName:       item.Name,
		Quantity:       req.Quantity,
		Size:           size,
		Customizations: customizations,
		Notes:          req.Notes,
		UnitPrice:      unitPrice,
	}, nil
}
