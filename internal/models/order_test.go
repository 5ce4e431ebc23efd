// internal/models/order_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderStartsPendingAndEmpty(t *testing.T) {
	o := NewOrder(1, 42)

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Empty(t, o.Items)
	assert.Equal(t, 42, o.ClientID)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestAddLineItemRejectsInvalidSnapshots(t *testing.T) {
	o := NewOrder(1, 42)

	err := o.AddLineItem(LineItem{})
	require.ErrorIs(t, err, ErrInvalidItem)
	assert.Empty(t, o.Items)

	err = o.AddLineItem(LineItem{ProductID: 1, Kind: ProductKindPhysical, Quantity: 2})
	require.NoError(t, err)
	assert.Len(t, o.Items, 1)
}

func TestRemoveLineItemAt(t *testing.T) {
	o := NewOrder(1, 42)
	require.NoError(t, o.AddLineItem(LineItem{ProductID: 1, Kind: ProductKindPhysical, Quantity: 2}))
	require.NoError(t, o.AddLineItem(LineItem{ProductID: 2, Kind: ProductKindDigital, Quantity: 1}))

	_, err := o.RemoveLineItemAt(2)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = o.RemoveLineItemAt(-1)
	require.ErrorIs(t, err, ErrOutOfRange)

	removed, err := o.RemoveLineItemAt(0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed.ProductID)
	assert.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].ProductID)
}

func TestOrderTotalAddsShippingPerLineItem(t *testing.T) {
	o := NewOrder(1, 42)
	// two physical lines, each with its own shipping, plus a digital line
	require.NoError(t, o.AddLineItem(LineItem{
		ProductID: 1, Kind: ProductKindPhysical, Quantity: 3,
		Price: decimal.NewFromInt(10), Height: 2, Width: 5, Depth: 1, // shipping 5
	}))
	require.NoError(t, o.AddLineItem(LineItem{
		ProductID: 2, Kind: ProductKindPhysical, Quantity: 1,
		Price: decimal.NewFromInt(4), Height: 1, Width: 2, Depth: 1, // shipping 1
	}))
	require.NoError(t, o.AddLineItem(LineItem{
		ProductID: 3, Kind: ProductKindDigital, Quantity: 1, Price: decimal.NewFromInt(7),
	}))

	// 10*3+5 + 4*1+1 + 7 = 47
	assert.Equal(t, "47.00", o.Total().StringFixed(2))
}

func TestSetStatusValidatesValueOnly(t *testing.T) {
	o := NewOrder(1, 42)

	require.ErrorIs(t, o.SetStatus("processado"), ErrInvalidStatus)
	assert.Equal(t, OrderStatusPending, o.Status)

	require.NoError(t, o.SetStatus(OrderStatusAwaitingDelivery))
	assert.Equal(t, OrderStatusAwaitingDelivery, o.Status)
}

func TestOrderRecordSerializesMinimalRefs(t *testing.T) {
	o := NewOrder(3, 42)
	require.NoError(t, o.AddLineItem(LineItem{ProductID: 1, Kind: ProductKindPhysical, Quantity: 4}))
	require.NoError(t, o.AddLineItem(LineItem{ProductID: 2, Kind: ProductKindDigital, Quantity: 1}))

	row, err := o.Record()
	require.NoError(t, err)

	assert.Equal(t, "3", row["id"])
	assert.Equal(t, "42", row["cliente_id"])
	assert.Equal(t, "pendente", row["status"])

	var refs []LineItemRef
	require.NoError(t, json.Unmarshal([]byte(row["produtos"]), &refs))
	assert.Equal(t, []LineItemRef{{ProductID: 1, Quantity: 4}, {ProductID: 2}}, refs)
}
