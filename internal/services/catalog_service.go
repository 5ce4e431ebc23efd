// internal/services/catalog_service.go
package services

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/storage"
	"github.com/gfranca/mercado/internal/utils"
)

const produtosTable = "produtos"

var produtosColumns = []string{"id", "nome", "preco", "tipo", "quantidade", "altura", "largura", "profundidade", "link_download"}

// CatalogStore owns the product catalog and is the single source of truth
// for stock. Reserve and Release mutate memory only; the enclosing cart
// operation persists through Persist, and Register/Edit persist themselves.
type CatalogStore struct {
	db       *storage.DB
	mtx      sync.Mutex
	products map[int]models.Product
}

type RegisterProductRequest struct {
	Kind  models.ProductKind `validate:"required"`
	Name  string             `validate:"required"`
	Price float64            `validate:"gte=0"`
	// Physical variant
	Stock  int
	Height float64
	Width  float64
	Depth  float64
	// Digital variant; generated when left empty
	DownloadLink string
}

// EditProductPatch applies field-level updates. Nil fields are left alone;
// set fields are re-validated with the registration rules.
type EditProductPatch struct {
	Name         *string
	Price        *float64
	Stock        *int
	Height       *float64
	Width        *float64
	Depth        *float64
	DownloadLink *string
}

func NewCatalogStore(db *storage.DB) (*CatalogStore, error) {
	s := &CatalogStore{
		db:       db,
		products: make(map[int]models.Product),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load builds the catalog from persisted rows. An unrecognized tipo
// discriminant fails the whole load rather than dropping the row.
func (s *CatalogStore) load() error {
	table, err := s.db.Load(produtosTable)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	for _, row := range table.Rows {
		product, err := productFromRow(row)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		s.products[product.Base().ID] = product
	}

	logrus.WithField("products", len(s.products)).Info("Catalog loaded")
	return nil
}

func productFromRow(row map[string]string) (models.Product, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return nil, fmt.Errorf("%w: produtos row has non-numeric id %q", models.ErrBadData, row["id"])
	}
	price, err := decimal.NewFromString(row["preco"])
	if err != nil {
		return nil, fmt.Errorf("%w: product %d has malformed price %q", models.ErrBadData, id, row["preco"])
	}
	base := models.ProductBase{ID: id, Name: row["nome"], Price: price}

	switch models.ProductKind(row["tipo"]) {
	case models.ProductKindPhysical:
		stock, err := strconv.Atoi(row["quantidade"])
		if err != nil {
			return nil, fmt.Errorf("%w: product %d has malformed quantity %q", models.ErrBadData, id, row["quantidade"])
		}
		height, errH := strconv.ParseFloat(row["altura"], 64)
		width, errW := strconv.ParseFloat(row["largura"], 64)
		depth, errD := strconv.ParseFloat(row["profundidade"], 64)
		if errH != nil || errW != nil || errD != nil {
			return nil, fmt.Errorf("%w: product %d has malformed dimensions", models.ErrBadData, id)
		}
		return &models.PhysicalProduct{
			ProductBase: base,
			Stock:       stock,
			Height:      height,
			Width:       width,
			Depth:       depth,
		}, nil
	case models.ProductKindDigital:
		return &models.DigitalProduct{
			ProductBase:  base,
			DownloadLink: row["link_download"],
		}, nil
	default:
		return nil, fmt.Errorf("%w: product %d has unknown tipo %q", models.ErrBadData, id, row["tipo"])
	}
}

// Register validates the draft, assigns the next id and persists the whole
// catalog. Ids are max(existing)+1 and never reused.
func (s *CatalogStore) Register(req *RegisterProductRequest) (int, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := s.nextIDLocked()
	base := models.ProductBase{ID: id, Name: req.Name, Price: decimal.NewFromFloat(req.Price)}

	var product models.Product
	switch req.Kind {
	case models.ProductKindPhysical:
		if req.Stock < 0 {
			return 0, fmt.Errorf("%w: stock quantity cannot be negative", models.ErrValidation)
		}
		if req.Height <= 0 || req.Width <= 0 || req.Depth <= 0 {
			return 0, fmt.Errorf("%w: dimensions must be positive", models.ErrValidation)
		}
		product = &models.PhysicalProduct{
			ProductBase: base,
			Stock:       req.Stock,
			Height:      req.Height,
			Width:       req.Width,
			Depth:       req.Depth,
		}
	case models.ProductKindDigital:
		link := req.DownloadLink
		if link == "" {
			generated, err := utils.GenerateDownloadLink()
			if err != nil {
				return 0, fmt.Errorf("failed to generate download link: %w", err)
			}
			link = generated
		}
		product = &models.DigitalProduct{ProductBase: base, DownloadLink: link}
	default:
		return 0, fmt.Errorf("%w: unknown product kind %q", models.ErrValidation, req.Kind)
	}

	s.products[id] = product
	if err := s.persistLocked(); err != nil {
		delete(s.products, id)
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"name":       req.Name,
		"kind":       req.Kind,
	}).Info("Product registered")
	return id, nil
}

// Edit re-validates every mutated field with the registration rules and
// persists on success.
func (s *CatalogStore) Edit(id int, patch *EditProductPatch) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	product, ok := s.products[id]
	if !ok {
		return fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}

	if patch.Name != nil && *patch.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", models.ErrValidation)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", models.ErrValidation)
	}

	base := product.Base()
	switch p := product.(type) {
	case *models.PhysicalProduct:
		if patch.Stock != nil && *patch.Stock < 0 {
			return fmt.Errorf("%w: stock quantity cannot be negative", models.ErrValidation)
		}
		if (patch.Height != nil && *patch.Height <= 0) ||
			(patch.Width != nil && *patch.Width <= 0) ||
			(patch.Depth != nil && *patch.Depth <= 0) {
			return fmt.Errorf("%w: dimensions must be positive", models.ErrValidation)
		}
		if patch.DownloadLink != nil {
			return fmt.Errorf("%w: physical products have no download link", models.ErrValidation)
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.Height != nil {
			p.Height = *patch.Height
		}
		if patch.Width != nil {
			p.Width = *patch.Width
		}
		if patch.Depth != nil {
			p.Depth = *patch.Depth
		}
	case *models.DigitalProduct:
		if patch.Stock != nil || patch.Height != nil || patch.Width != nil || patch.Depth != nil {
			return fmt.Errorf("%w: digital products have no stock or dimensions", models.ErrValidation)
		}
		if patch.DownloadLink != nil {
			if *patch.DownloadLink == "" {
				return fmt.Errorf("%w: download link cannot be empty", models.ErrValidation)
			}
			p.DownloadLink = *patch.DownloadLink
		}
	}
	if patch.Name != nil {
		base.Name = *patch.Name
	}
	if patch.Price != nil {
		base.Price = decimal.NewFromFloat(*patch.Price)
	}

	if err := s.persistLocked(); err != nil {
		return err
	}

	logrus.WithField("product_id", id).Info("Product edited")
	return nil
}

// Reserve moves quantity units out of the catalog into a line item
// snapshot. Physical stock is checked before anything mutates; digital
// products always succeed with a fixed quantity of one.
func (s *CatalogStore) Reserve(id, quantity int) (models.LineItem, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	product, ok := s.products[id]
	if !ok {
		return models.LineItem{}, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}

	item, err := product.RealizeSale(quantity)
	if err != nil {
		return models.LineItem{}, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"quantity":   item.Quantity,
	}).Debug("Stock reserved")
	return item, nil
}

// Release returns a line item's units to the catalog. No-op for digital
// items. Exactly one release per reserve is the caller's discipline; a
// double release is not detected here.
func (s *CatalogStore) Release(item models.LineItem) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if item.Kind != models.ProductKindPhysical {
		return
	}
	if product, ok := s.products[item.ProductID].(*models.PhysicalProduct); ok {
		product.Restock(item.Quantity)
		logrus.WithFields(logrus.Fields{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		}).Debug("Stock released")
	}
}

// Rematerialize rebuilds the line item snapshot behind a persisted id plus
// quantity reference. The sale already decremented stock when it originally
// happened, so the rebuild borrows Reserve's snapshot path without the
// decrement, keeping reload stock-neutral.
func (s *CatalogStore) Rematerialize(ref models.LineItemRef) (models.LineItem, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	product, ok := s.products[ref.ProductID]
	if !ok {
		return models.LineItem{}, fmt.Errorf("%w: order references unknown product %d", models.ErrBadData, ref.ProductID)
	}
	return product.Snapshot(ref.Quantity), nil
}

func (s *CatalogStore) Get(id int) (models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	return product, nil
}

// List returns the catalog in ascending id order.
func (s *CatalogStore) List() []models.Product {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Base().ID < products[j].Base().ID
	})
	return products
}

// Persist rewrites the whole produtos table from memory. Cart edits call
// this after their reserve/release so stock changes reach disk.
func (s *CatalogStore) Persist() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.persistLocked()
}

func (s *CatalogStore) persistLocked() error {
	table := storage.NewTable(produtosColumns...)
	ids := make([]int, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		table.Append(s.products[id].Record())
	}
	if err := s.db.Save(produtosTable, table); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	return nil
}

func (s *CatalogStore) nextIDLocked() int {
	max := 0
	for id := range s.products {
		if id > max {
			max = id
		}
	}
	return max + 1
}
