package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_PriceForSize(t *testing.T) {
	item := &Item{
		Code:      "LATTE",
		Name:      "Cafe Latte",
		Type:      TypeDrink,
		BasePrice: 120,
		SizePrices: map[Size]Money{
			SizeMedium: 120,
			SizeLarge:  160,
		},
	}

	tests := []struct {
		name string
		size *Size
		want Money
	}{
		{"nil size uses base price", nil, 120},
		{"medium override", sizePtr(SizeMedium), 120},
		{"large override", sizePtr(SizeLarge), 160},
		{"missing override falls back to base", sizePtr(SizeSmall), 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, item.PriceForSize(tt.size))
		})
	}
}

func TestItem_PriceForSize_NoOverrides(t *testing.T) {
	item := &Item{Code: "CROISSANT", Type: TypeFood, BasePrice: 95}

	assert.Equal(t, Money(95), item.PriceForSize(nil))
	assert.Equal(t, Money(95), item.PriceForSize(sizePtr(SizeLarge)))
}

func TestDefaultSizePrices(t *testing.T) {
	prices := DefaultSizePrices(15000)

	assert.Equal(t, Money(12000), prices[SizeSmall])
	assert.Equal(t, Money(15000), prices[SizeMedium])
	assert.Equal(t, Money(20000), prices[SizeLarge])
}

func TestItem_Validate(t *testing.T) {
	valid := func() *Item {
		return &Item{Code: "LATTE", Name: "Cafe Latte", Type: TypeDrink, BasePrice: 120}
	}

	t.Run("valid item", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing code", func(t *testing.T) {
		item := valid()
		item.Code = ""
		assert.True(t, IsValidation(item.Validate()))
	})

	t.Run("non-positive base price", func(t *testing.T) {
		item := valid()
		item.BasePrice = 0
		assert.True(t, IsValidation(item.Validate()))
	})

	t.Run("size overrides on non-drink", func(t *testing.T) {
		item := valid()
		item.Type = TypeFood
		item.SizePrices = map[Size]Money{SizeLarge: 160}
		assert.True(t, IsValidation(item.Validate()))
	})

	t.Run("non-positive size override", func(t *testing.T) {
		item := valid()
		item.SizePrices = map[Size]Money{SizeLarge: -10}
		assert.True(t, IsValidation(item.Validate()))
	})
}

func TestCustomization_Validate(t *testing.T) {
	valid := func() *Customization {
		return &Customization{
			Name:           "Milk",
			ApplicableType: TypeDrink,
			Options: []Option{
				{Name: "Whole Milk", Price: 0},
				{Name: "Oat Milk", Price: 25},
			},
		}
	}

	t.Run("valid customization", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("option cap enforced", func(t *testing.T) {
		c := valid()
		for i := 0; i < MaxCustomizationOptions; i++ {
			c.Options = append(c.Options, Option{Name: "Extra", Price: 10})
		}
		assert.True(t, IsValidation(c.Validate()))
	})

	t.Run("exactly at the cap", func(t *testing.T) {
		c := valid()
		c.Options = make([]Option, MaxCustomizationOptions)
		for i := range c.Options {
			c.Options[i] = Option{Name: "Option", Price: 10}
		}
		assert.NoError(t, c.Validate())
	})

	t.Run("negative option price", func(t *testing.T) {
		c := valid()
		c.Options[1].Price = -5
		assert.True(t, IsValidation(c.Validate()))
	})

	t.Run("merchandise not customizable", func(t *testing.T) {
		c := valid()
		c.ApplicableType = TypeMerchandise
		assert.True(t, IsValidation(c.Validate()))
	})
}

func TestCustomization_Option(t *testing.T) {
	c := &Customization{
		ID:             1,
		Name:           "Milk",
		ApplicableType: TypeDrink,
		Options: []Option{
			{ID: 10, Name: "Whole Milk", Price: 0},
			{ID: 11, Name: "Oat Milk", Price: 25},
		},
	}

	opt, err := c.Option(11)
	require.NoError(t, err)
	assert.Equal(t, "Oat Milk", opt.Name)
	assert.Equal(t, Money(25), opt.Price)

	_, err = c.Option(99)
	assert.True(t, IsNotFound(err))
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize("large")
	require.NoError(t, err)
	require.NotNil(t, size)
	assert.Equal(t, SizeLarge, *size)

	size, err = ParseSize("")
	require.NoError(t, err)
	assert.Nil(t, size)

	_, err = ParseSize("venti")
	assert.True(t, IsValidation(err))
}
