package service

import (
	"errors"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/internal/ws"
	"go-stocktrack/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the only authorized path for changing a product's quantity.
// Every change pairs a product update with exactly one stock history entry,
// committed atomically. Nothing else in the codebase writes Product.Quantity.
type StockService interface {
	// ApplyStockChange runs one quantity change as its own transaction,
	// retrying transparently on store-level conflicts.
	ApplyStockChange(productID uuid.UUID, delta int, action model.StockAction, actorID *uuid.UUID, note string) (*model.Product, *model.StockHistory, error)

	// Apply performs the same change inside a caller-owned transaction so
	// the sale service can compose it with its own writes. Callers of Apply
	// are responsible for calling NotifyChange once their transaction commits.
	Apply(tx *gorm.DB, productID uuid.UUID, delta int, action model.StockAction, actorID *uuid.UUID, note string) (*model.Product, *model.StockHistory, error)

	// NotifyChange broadcasts a committed quantity change to websocket clients.
	NotifyChange(product *model.Product, entry *model.StockHistory)
}

type stockService struct {
	productRepo repository.ProductRepository
	historyRepo repository.StockHistoryRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewStockService(pRepo repository.ProductRepository, hRepo repository.StockHistoryRepository, db *gorm.DB, hub *ws.Hub) StockService {
	return &stockService{
		productRepo: pRepo,
		historyRepo: hRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *stockService) ApplyStockChange(productID uuid.UUID, delta int, action model.StockAction, actorID *uuid.UUID, note string) (*model.Product, *model.StockHistory, error) {
	if !action.Valid() {
		return nil, nil, ErrInvalidAction
	}

	var (
		product *model.Product
		entry   *model.StockHistory
	)
	err := runInTx(s.db, func(tx *gorm.DB) error {
		var err error
		product, entry, err = s.Apply(tx, productID, delta, action, actorID, note)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.NotifyChange(product, entry)
	return product, entry, nil
}

func (s *stockService) Apply(tx *gorm.DB, productID uuid.UUID, delta int, action model.StockAction, actorID *uuid.UUID, note string) (*model.Product, *model.StockHistory, error) {
	// 1. Read current quantity under a row lock
	product, err := s.productRepo.FindByIDForUpdate(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}

	// 2. Reject before any write lands
	previousQuantity := product.Quantity
	newQuantity := previousQuantity + delta
	if newQuantity < 0 {
		return nil, nil, ErrInsufficientStock
	}

	// 3. Write the product
	if err := s.productRepo.UpdateQuantity(tx, product.ID, newQuantity); err != nil {
		return nil, nil, err
	}
	product.Quantity = newQuantity

	// 4. Append the paired audit entry in the same transaction
	entry := &model.StockHistory{
		ProductID:        product.ID,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		Action:           action,
		ChangedByID:      actorID,
		Note:             note,
	}
	if err := validator.Check(entry); err != nil {
		return nil, nil, err
	}
	if err := s.historyRepo.Insert(tx, entry); err != nil {
		return nil, nil, err
	}

	return product, entry, nil
}

// NotifyChange notifies websocket clients after commit. The event carries a
// low-stock flag so dashboards can alert without polling.
func (s *stockService) NotifyChange(product *model.Product, entry *model.StockHistory) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Publish(ws.StockEvent{
		Type:             "stock_update",
		Action:           string(entry.Action),
		ProductID:        product.ID,
		SKU:              product.SKU,
		Name:             product.Name,
		PreviousQuantity: entry.PreviousQuantity,
		NewQuantity:      entry.NewQuantity,
		LowStock:         product.IsLowStock(),
	})
}
