package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *Order {
	customer := NewGuest("Alex")
	return NewOrder("POS_20260115_001", customer, "pos-terminal", PaymentCash)
}

func sizePtr(s Size) *Size {
	return &s
}

func TestOrder_TotalInvariant(t *testing.T) {
	order := testOrder()

	lineA := &OrderLine{ItemCode: "LATTE", ItemName: "Cafe Latte", Quantity: 2, Size: sizePtr(SizeLarge), UnitPrice: 160}
	lineB := &OrderLine{ItemCode: "MUFFIN", ItemName: "Blueberry Muffin", Quantity: 1, UnitPrice: 110}

	require.NoError(t, order.AddLine(lineA))
	assert.Equal(t, Money(320), order.Total)

	require.NoError(t, order.AddLine(lineB))
	assert.Equal(t, Money(430), order.Total)

	require.NoError(t, order.RemoveLine(lineA))
	assert.Equal(t, Money(110), order.Total)

	require.NoError(t, order.RemoveLine(lineB))
	assert.Equal(t, Money(0), order.Total)
	assert.Empty(t, order.Lines)
}

func TestOrder_MergeEquivalentLines(t *testing.T) {
	order := testOrder()

	first := &OrderLine{ItemCode: "LATTE", Quantity: 1, Size: sizePtr(SizeMedium), UnitPrice: 120}
	second := &OrderLine{ItemCode: "LATTE", Quantity: 2, Size: sizePtr(SizeMedium), UnitPrice: 120}

	require.NoError(t, order.AddLine(first))
	require.NoError(t, order.AddLine(second))

	require.Len(t, order.Lines, 1)
	assert.Equal(t, 3, order.Lines[0].Quantity)
	assert.Equal(t, Money(360), order.Total)
}

func TestOrder_MergeIgnoresOptionOrder(t *testing.T) {
	order := testOrder()

	first := &OrderLine{
		ItemCode: "LATTE", Quantity: 1, UnitPrice: 160,
		Customizations: []LineCustomization{{
			CustomizationID: 1,
			Options: []SelectedOption{
				{OptionID: 10, Name: "Oat Milk", Price: 25},
				{OptionID: 11, Name: "Vanilla", Price: 15},
			},
		}},
	}
	second := &OrderLine{
		ItemCode: "LATTE", Quantity: 1, UnitPrice: 160,
		Customizations: []LineCustomization{{
			CustomizationID: 1,
			Options: []SelectedOption{
				{OptionID: 11, Name: "Vanilla", Price: 15},
				{OptionID: 10, Name: "Oat Milk", Price: 25},
			},
		}},
	}

	require.NoError(t, order.AddLine(first))
	require.NoError(t, order.AddLine(second))

	require.Len(t, order.Lines, 1)
	assert.Equal(t, 2, order.Lines[0].Quantity)
}

func TestOrder_DistinctLinesNotMerged(t *testing.T) {
	tests := []struct {
		name  string
		first *OrderLine
		other *OrderLine
	}{
		{
			name:  "different item",
			first: &OrderLine{ItemCode: "LATTE", Quantity: 1, UnitPrice: 120},
			other: &OrderLine{ItemCode: "MOCHA", Quantity: 1, UnitPrice: 165},
		},
		{
			name:  "different size",
			first: &OrderLine{ItemCode: "LATTE", Quantity: 1, Size: sizePtr(SizeMedium), UnitPrice: 120},
			other: &OrderLine{ItemCode: "LATTE", Quantity: 1, Size: sizePtr(SizeLarge), UnitPrice: 160},
		},
		{
			name:  "sized vs unsized",
			first: &OrderLine{ItemCode: "LATTE", Quantity: 1, Size: sizePtr(SizeMedium), UnitPrice: 120},
			other: &OrderLine{ItemCode: "LATTE", Quantity: 1, UnitPrice: 120},
		},
		{
			name:  "different options",
			first: &OrderLine{ItemCode: "LATTE", Quantity: 1, UnitPrice: 145, Customizations: []LineCustomization{{CustomizationID: 1, Options: []SelectedOption{{OptionID: 10, Price: 25}}}}},
			other: &OrderLine{ItemCode: "LATTE", Quantity: 1, UnitPrice: 135, Customizations: []LineCustomization{{CustomizationID: 1, Options: []SelectedOption{{OptionID: 11, Price: 15}}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testOrder()
			require.NoError(t, order.AddLine(tt.first))
			require.NoError(t, order.AddLine(tt.other))
			assert.Len(t, order.Lines, 2)
		})
	}
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("pending completes once", func(t *testing.T) {
		order := testOrder()
		require.NoError(t, order.Complete())
		assert.Equal(t, StatusCompleted, order.Status)

		err := order.Complete()
		assert.True(t, IsInvalidState(err))
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		order := testOrder()
		require.NoError(t, order.Complete())

		err := order.Cancel()
		assert.True(t, IsInvalidState(err))
		assert.Equal(t, StatusCompleted, order.Status)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		order := testOrder()
		require.NoError(t, order.Cancel())

		assert.True(t, IsInvalidState(order.Complete()))
		assert.Equal(t, StatusCancelled, order.Status)
	})

	t.Run("terminal order rejects mutation", func(t *testing.T) {
		order := testOrder()
		line := &OrderLine{ItemCode: "LATTE", Quantity: 1, UnitPrice: 120}
		require.NoError(t, order.AddLine(line))
		require.NoError(t, order.Complete())

		assert.True(t, IsInvalidState(order.AddLine(&OrderLine{ItemCode: "MOCHA", Quantity: 1, UnitPrice: 165})))
		assert.True(t, IsInvalidState(order.RemoveLine(line)))
		assert.Len(t, order.Lines, 1)
	})
}

func TestOrder_RemoveUnknownLine(t *testing.T) {
	order := testOrder()
	require.NoError(t, order.AddLine(&OrderLine{ItemCode: "LATTE", Quantity: 1, UnitPrice: 120}))

	err := order.RemoveLine(&OrderLine{ItemCode: "LATTE", Quantity: 1, UnitPrice: 120})
	assert.True(t, IsNotFound(err))
}

func TestGenerateOrderNumber(t *testing.T) {
	date := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "POS_20260115_001", GenerateOrderNumber(date, 1))
	assert.Equal(t, "POS_20260115_042", GenerateOrderNumber(date, 42))
	assert.Equal(t, "POS_20260115_999", GenerateOrderNumber(date, 999))
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"cash", false},
		{"card", false},
		{"gcash", false},
		{"maya", false},
		{"bitcoin", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParsePaymentMethod(tt.input)
			if tt.wantErr {
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
