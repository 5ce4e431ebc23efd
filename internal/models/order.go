// internal/models/order.go
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a line-item collection with a status lifecycle. The order book
// owns it: a pending order is editable, once checked out its items are
// frozen and only the status may advance. The entity itself validates
// values, not transition ordering.
type Order struct {
	ID        int
	ClientID  int
	CreatedAt time.Time
	Status    OrderStatus
	Items     []LineItem
}

func NewOrder(id, clientID int) *Order {
	return &Order{
		ID:        id,
		ClientID:  clientID,
		CreatedAt: time.Now(),
		Status:    OrderStatusPending,
	}
}

func (o *Order) AddLineItem(item LineItem) error {
	if !item.Valid() {
		return fmt.Errorf("%w: not a product snapshot", ErrInvalidItem)
	}
	o.Items = append(o.Items, item)
	return nil
}

// RemoveLineItemAt removes and returns the item at index so the caller can
// release the reserved stock.
func (o *Order) RemoveLineItemAt(index int) (LineItem, error) {
	if index < 0 || index >= len(o.Items) {
		return LineItem{}, fmt.Errorf("%w: item %d of %d", ErrOutOfRange, index, len(o.Items))
	}
	item := o.Items[index]
	o.Items = append(o.Items[:index], o.Items[index+1:]...)
	return item, nil
}

// Total sums line subtotals. Physical shipping cost is added once per line
// item, not once per order.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// SetStatus validates the value only; transition ordering is enforced by the
// order book.
func (o *Order) SetStatus(next OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	o.Status = next
	return nil
}

// Record serializes the order into the pedidos table row shape. Line items
// collapse to id+quantity references; the snapshots are rebuilt from the
// catalog on load.
func (o *Order) Record() (map[string]string, error) {
	refs := make([]LineItemRef, 0, len(o.Items))
	for _, item := range o.Items {
		refs = append(refs, item.Ref())
	}
	encoded, err := json.Marshal(refs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode line item refs: %w", err)
	}
	return map[string]string{
		"id":         strconv.Itoa(o.ID),
		"cliente_id": strconv.Itoa(o.ClientID),
		"data":       o.CreatedAt.Format(time.RFC3339),
		"status":     string(o.Status),
		"produtos":   string(encoded),
	}, nil
}
