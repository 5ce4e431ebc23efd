// internal/services/order_service.go
package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/storage"
)

const pedidosTable = "pedidos"

var pedidosColumns = []string{"id", "cliente_id", "data", "status", "produtos"}

// OrderBook owns every finalized order and is the only component allowed to
// advance an order's status after checkout. Drafts live outside the book
// until checkout; an empty draft is discarded there, never persisted.
type OrderBook struct {
	db      *storage.DB
	catalog *CatalogStore
	mtx     sync.Mutex
	orders  []*models.Order
}

// OrderSearchParams scope a listing. Nil fields match everything.
type OrderSearchParams struct {
	ClientID *int
	Status   *models.OrderStatus
}

// DeliveryNote is what fulfillment surfaces per line item: the stored
// download link for digital goods, a shipping notice for physical ones.
type DeliveryNote struct {
	ItemName     string
	Kind         models.ProductKind
	Quantity     int
	DownloadLink string
}

func NewOrderBook(db *storage.DB, catalog *CatalogStore) (*OrderBook, error) {
	b := &OrderBook{db: db, catalog: catalog}
	if err := b.load(); err != nil {
		return nil, err
	}
	return b, nil
}

// load rebuilds the book from the pedidos table. Line items are persisted
// as id+quantity references only and are rematerialized against the current
// catalog; the rebuild never touches stock, since the original sale already
// decremented it.
func (b *OrderBook) load() error {
	table, err := b.db.Load(pedidosTable)
	if err != nil {
		return fmt.Errorf("failed to load order book: %w", err)
	}

	for _, row := range table.Rows {
		order, err := b.orderFromRow(row)
		if err != nil {
			return fmt.Errorf("failed to load order book: %w", err)
		}
		b.orders = append(b.orders, order)
	}
	sort.Slice(b.orders, func(i, j int) bool { return b.orders[i].ID < b.orders[j].ID })

	logrus.WithField("orders", len(b.orders)).Info("Order book loaded")
	return nil
}

func (b *OrderBook) orderFromRow(row map[string]string) (*models.Order, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return nil, fmt.Errorf("%w: pedidos row has non-numeric id %q", models.ErrBadData, row["id"])
	}
	clientID, err := strconv.Atoi(row["cliente_id"])
	if err != nil {
		return nil, fmt.Errorf("%w: order %d has non-numeric client id %q", models.ErrBadData, id, row["cliente_id"])
	}
	createdAt, err := time.Parse(time.RFC3339, row["data"])
	if err != nil {
		return nil, fmt.Errorf("%w: order %d has malformed timestamp %q", models.ErrBadData, id, row["data"])
	}
	status := models.OrderStatus(row["status"])
	if !status.Valid() {
		return nil, fmt.Errorf("%w: order %d has unknown status %q", models.ErrBadData, id, row["status"])
	}

	var refs []models.LineItemRef
	if err := json.Unmarshal([]byte(row["produtos"]), &refs); err != nil {
		return nil, fmt.Errorf("%w: order %d has malformed produtos column: %v", models.ErrBadData, id, err)
	}

	order := &models.Order{
		ID:        id,
		ClientID:  clientID,
		CreatedAt: createdAt,
		Status:    status,
	}
	for _, ref := range refs {
		item, err := b.catalog.Rematerialize(ref)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", id, err)
		}
		order.Items = append(order.Items, item)
	}
	return order, nil
}

// CreateDraft hands out a new pending order. The draft is not in the book
// and not persisted until a non-empty checkout.
func (b *OrderBook) CreateDraft(clientID int) *models.Order {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	order := models.NewOrder(b.nextIDLocked(), clientID)
	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"client_id": clientID,
	}).Debug("Draft order created")
	return order
}

// AddItem reserves catalog stock and appends the snapshot to the draft, then
// persists the catalog so the stock decrement reaches disk.
func (b *OrderBook) AddItem(order *models.Order, productID, quantity int) (models.LineItem, error) {
	if order.Status != models.OrderStatusPending {
		return models.LineItem{}, fmt.Errorf("%w: order %d is %s, only pending orders are editable", models.ErrInvalidState, order.ID, order.Status)
	}

	item, err := b.catalog.Reserve(productID, quantity)
	if err != nil {
		return models.LineItem{}, err
	}
	if err := order.AddLineItem(item); err != nil {
		// Keep the reserve/release pairing exact even on the failure path.
		b.catalog.Release(item)
		return models.LineItem{}, err
	}
	if err := b.catalog.Persist(); err != nil {
		return models.LineItem{}, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"product_id": productID,
		"quantity":   item.Quantity,
	}).Info("Item added to order")
	return item, nil
}

// RemoveItem takes the line item out of the draft and restores exactly the
// reserved quantity to the catalog.
func (b *OrderBook) RemoveItem(order *models.Order, index int) (models.LineItem, error) {
	if order.Status != models.OrderStatusPending {
		return models.LineItem{}, fmt.Errorf("%w: order %d is %s, only pending orders are editable", models.ErrInvalidState, order.ID, order.Status)
	}

	item, err := order.RemoveLineItemAt(index)
	if err != nil {
		return models.LineItem{}, err
	}
	b.catalog.Release(item)
	if err := b.catalog.Persist(); err != nil {
		return models.LineItem{}, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	}).Info("Item removed from order")
	return item, nil
}

// CancelDraft abandons a draft, releasing every reserved line item back to
// the catalog. The draft never touches the book or the pedidos table.
func (b *OrderBook) CancelDraft(order *models.Order) error {
	if order.Status != models.OrderStatusPending {
		return fmt.Errorf("%w: order %d is %s, only pending orders can be cancelled", models.ErrInvalidState, order.ID, order.Status)
	}
	for _, item := range order.Items {
		b.catalog.Release(item)
	}
	order.Items = nil
	if err := b.catalog.Persist(); err != nil {
		return err
	}
	logrus.WithField("order_id", order.ID).Info("Draft order cancelled")
	return nil
}

// Checkout finalizes a draft. An empty draft is discarded, not treated as
// an error; the returned bool reports whether the order was placed. A
// placed order enters the book as aguardando entrega and the whole pedidos
// table is rewritten.
func (b *OrderBook) Checkout(order *models.Order) (bool, error) {
	if order.Status != models.OrderStatusPending {
		return false, fmt.Errorf("%w: order %d is %s, only pending orders can be checked out", models.ErrInvalidState, order.ID, order.Status)
	}
	if len(order.Items) == 0 {
		logrus.WithField("order_id", order.ID).Info("Empty draft discarded at checkout")
		return false, nil
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if err := order.SetStatus(models.OrderStatusAwaitingDelivery); err != nil {
		return false, err
	}
	b.orders = append(b.orders, order)
	if err := b.persistLocked(); err != nil {
		// Undo the append so a retry sees the draft unchanged.
		b.orders = b.orders[:len(b.orders)-1]
		order.Status = models.OrderStatusPending
		return false, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"client_id": order.ClientID,
		"items":     len(order.Items),
		"total":     order.Total().StringFixed(2),
	}).Info("Order checked out")
	return true, nil
}

// List returns orders matching the params in ascending id order.
func (b *OrderBook) List(params OrderSearchParams) []*models.Order {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	var matched []*models.Order
	for _, order := range b.orders {
		if params.ClientID != nil && order.ClientID != *params.ClientID {
			continue
		}
		if params.Status != nil && order.Status != *params.Status {
			continue
		}
		matched = append(matched, order)
	}
	return matched
}

// ListPending serves both the admin fulfillment view (clientID nil) and the
// client's own pending orders: same filter, different scoping.
func (b *OrderBook) ListPending(clientID *int) []*models.Order {
	status := models.OrderStatusAwaitingDelivery
	return b.List(OrderSearchParams{ClientID: clientID, Status: &status})
}

// ListByClient is the client history view, all statuses.
func (b *OrderBook) ListByClient(clientID int) []*models.Order {
	return b.List(OrderSearchParams{ClientID: &clientID})
}

func (b *OrderBook) Find(orderID int) (*models.Order, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.findLocked(orderID)
}

func (b *OrderBook) findLocked(orderID int) (*models.Order, error) {
	for _, order := range b.orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return nil, fmt.Errorf("%w: order %d", models.ErrNotFound, orderID)
}

// Fulfill advances an awaiting order to entregue and surfaces the delivery
// notes. Digital links were fixed at reserve time; they are reported, never
// regenerated. Fulfilling a pending or already delivered order is rejected
// with the state unchanged.
func (b *OrderBook) Fulfill(orderID int) (*models.Order, []DeliveryNote, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	order, err := b.findLocked(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != models.OrderStatusAwaitingDelivery {
		return nil, nil, fmt.Errorf("%w: order %d is %s, expected %s", models.ErrInvalidState, orderID, order.Status, models.OrderStatusAwaitingDelivery)
	}

	if err := order.SetStatus(models.OrderStatusDelivered); err != nil {
		return nil, nil, err
	}
	if err := b.persistLocked(); err != nil {
		order.Status = models.OrderStatusAwaitingDelivery
		return nil, nil, err
	}

	notes := make([]DeliveryNote, 0, len(order.Items))
	for _, item := range order.Items {
		notes = append(notes, DeliveryNote{
			ItemName:     item.Name,
			Kind:         item.Kind,
			Quantity:     item.Quantity,
			DownloadLink: item.DownloadLink,
		})
	}

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"items":    len(notes),
	}).Info("Order fulfilled")
	return order, notes, nil
}

func (b *OrderBook) persistLocked() error {
	table := storage.NewTable(pedidosColumns...)
	for _, order := range b.orders {
		row, err := order.Record()
		if err != nil {
			return fmt.Errorf("failed to persist order book: %w", err)
		}
		table.Append(row)
	}
	if err := b.db.Save(pedidosTable, table); err != nil {
		return fmt.Errorf("failed to persist order book: %w", err)
	}
	return nil
}

// nextIDLocked scans existing ids rather than counting rows, so gaps or
// out-of-order loads can never produce a collision.
func (b *OrderBook) nextIDLocked() int {
	max := 0
	for _, order := range b.orders {
		if order.ID > max {
			max = order.ID
		}
	}
	return max + 1
}
