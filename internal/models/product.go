// internal/models/product.go
package models

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// shippingVolumeFactor converts a physical product's volume into its
// shipping cost. Overridable from configuration at startup.
var shippingVolumeFactor = decimal.NewFromFloat(0.5)

func SetShippingVolumeFactor(factor float64) {
	shippingVolumeFactor = decimal.NewFromFloat(factor)
}

// ProductBase carries the fields shared by the two product variants.
type ProductBase struct {
	ID    int
	Name  string
	Price decimal.Decimal
}

// Product is the catalog entry. Exactly two variants exist: physical goods
// with stock and dimensions, and digital goods with a download link.
type Product interface {
	Base() *ProductBase
	Kind() ProductKind
	ShippingCost() decimal.Decimal
	// RealizeSale moves the requested quantity out of the catalog and returns
	// an immutable snapshot of the product carrying exactly that quantity.
	RealizeSale(quantity int) (LineItem, error)
	// Snapshot copies the product's sale-relevant attributes into a line
	// item without touching stock. RealizeSale builds its result through
	// this; order reload uses it directly so that rebuilding historical
	// line items stays stock-neutral.
	Snapshot(quantity int) LineItem
	// Record serializes the product into the produtos table row shape.
	Record() map[string]string
}

// PhysicalProduct is a stocked good with shipping dimensions in centimeters.
type PhysicalProduct struct {
	ProductBase
	Stock  int
	Height float64
	Width  float64
	Depth  float64
}

func (p *PhysicalProduct) Base() *ProductBase { return &p.ProductBase }

func (p *PhysicalProduct) Kind() ProductKind { return ProductKindPhysical }

func (p *PhysicalProduct) Volume() float64 {
	return p.Height * p.Width * p.Depth
}

func (p *PhysicalProduct) ShippingCost() decimal.Decimal {
	return decimal.NewFromFloat(p.Volume()).Mul(shippingVolumeFactor)
}

// RealizeSale checks stock before mutating anything: an insufficient request
// leaves the catalog quantity untouched.
func (p *PhysicalProduct) RealizeSale(quantity int) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrValidation, quantity)
	}
	if quantity > p.Stock {
		return LineItem{}, fmt.Errorf("%w: requested %d, available %d of %q", ErrInsufficientStock, quantity, p.Stock, p.Name)
	}
	p.Stock -= quantity
	return p.Snapshot(quantity), nil
}

// Restock returns previously reserved units to the catalog. Inverse of
// RealizeSale; exactly one call per realized sale is the caller's discipline.
func (p *PhysicalProduct) Restock(quantity int) {
	p.Stock += quantity
}

func (p *PhysicalProduct) Snapshot(quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Kind:      ProductKindPhysical,
		Quantity:  quantity,
		Height:    p.Height,
		Width:     p.Width,
		Depth:     p.Depth,
	}
}

func (p *PhysicalProduct) Record() map[string]string {
	return map[string]string{
		"id":            strconv.Itoa(p.ID),
		"nome":          p.Name,
		"preco":         p.Price.String(),
		"tipo":          string(ProductKindPhysical),
		"quantidade":    strconv.Itoa(p.Stock),
		"altura":        strconv.FormatFloat(p.Height, 'f', -1, 64),
		"largura":       strconv.FormatFloat(p.Width, 'f', -1, 64),
		"profundidade":  strconv.FormatFloat(p.Depth, 'f', -1, 64),
		"link_download": "",
	}
}

// DigitalProduct has no stock concept and ships for free.
type DigitalProduct struct {
	ProductBase
	DownloadLink string
}

func (d *DigitalProduct) Base() *ProductBase { return &d.ProductBase }

func (d *DigitalProduct) Kind() ProductKind { return ProductKindDigital }

func (d *DigitalProduct) ShippingCost() decimal.Decimal { return decimal.Zero }

// RealizeSale always succeeds: digital goods have no stock ceiling and a
// fixed conceptual quantity of one. The stored link is frozen into the
// snapshot at this point.
func (d *DigitalProduct) RealizeSale(quantity int) (LineItem, error) {
	return d.Snapshot(quantity), nil
}

// Snapshot ignores the requested quantity; a digital sale is always one
// license of the stored link.
func (d *DigitalProduct) Snapshot(int) LineItem {
	return LineItem{
		ProductID:    d.ID,
		Name:         d.Name,
		Price:        d.Price,
		Kind:         ProductKindDigital,
		Quantity:     1,
		DownloadLink: d.DownloadLink,
	}
}

func (d *DigitalProduct) Record() map[string]string {
	return map[string]string{
		"id":            strconv.Itoa(d.ID),
		"nome":          d.Name,
		"preco":         d.Price.String(),
		"tipo":          string(ProductKindDigital),
		"quantidade":    "",
		"altura":        "",
		"largura":       "",
		"profundidade":  "",
		"link_download": d.DownloadLink,
	}
}

// LineItem is an immutable copy of a product's sale-relevant attributes plus
// the quantity sold, embedded in an order. It is keyed back to the catalog
// product by ProductID only, so later catalog edits never rewrite history.
type LineItem struct {
	ProductID    int
	Name         string
	Price        decimal.Decimal
	Kind         ProductKind
	Quantity     int
	Height       float64
	Width        float64
	Depth        float64
	DownloadLink string
}

func (li LineItem) Valid() bool {
	if li.ProductID <= 0 || !li.Kind.Valid() {
		return false
	}
	if li.Kind == ProductKindPhysical && li.Quantity <= 0 {
		return false
	}
	return true
}

func (li LineItem) Volume() float64 {
	return li.Height * li.Width * li.Depth
}

// ShippingCost of the snapshot's single line: volume-based for physical
// goods, zero for digital. Quantity does not enter the formula.
func (li LineItem) ShippingCost() decimal.Decimal {
	if li.Kind != ProductKindPhysical {
		return decimal.Zero
	}
	return decimal.NewFromFloat(li.Volume()).Mul(shippingVolumeFactor)
}

// Subtotal is price*quantity plus shipping for physical items, the bare
// price for digital items.
func (li LineItem) Subtotal() decimal.Decimal {
	if li.Kind == ProductKindPhysical {
		return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity))).Add(li.ShippingCost())
	}
	return li.Price
}

// LineItemRef is the minimal serialized form of a line item inside the
// pedidos table: product id plus quantity. Snapshots are rebuilt from the
// catalog on load.
type LineItemRef struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantidade,omitempty"`
}

func (li LineItem) Ref() LineItemRef {
	ref := LineItemRef{ProductID: li.ProductID}
	if li.Kind == ProductKindPhysical {
		ref.Quantity = li.Quantity
	}
	return ref
}
