package service

import (
	"errors"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryService is the read/admin surface over the audit ledger. Writing
// entries is not exposed here: inserts happen only inside the stock service.
type HistoryService interface {
	GetAll(limit, offset int) ([]model.StockHistory, error)
	GetByID(id uuid.UUID) (*model.StockHistory, error)
	GetByProduct(productID uuid.UUID) ([]model.StockHistory, error)
	GetByUser(userID uuid.UUID) ([]model.StockHistory, error)
	Search(q string) ([]model.StockHistory, error)
	// Delete removes an erroneous entry. It does not re-verify the product's
	// quantity against the remaining ledger; this is a documented gap.
	Delete(id uuid.UUID) error
}

type historyService struct {
	historyRepo repository.StockHistoryRepository
}

func NewHistoryService(hRepo repository.StockHistoryRepository) HistoryService {
	return &historyService{historyRepo: hRepo}
}

func (s *historyService) GetAll(limit, offset int) ([]model.StockHistory, error) {
	return s.historyRepo.FindAll(limit, offset)
}

func (s *historyService) GetByID(id uuid.UUID) (*model.StockHistory, error) {
	entry, err := s.historyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *historyService) GetByProduct(productID uuid.UUID) ([]model.StockHistory, error) {
	return s.historyRepo.FindByProduct(productID)
}

func (s *historyService) GetByUser(userID uuid.UUID) ([]model.StockHistory, error) {
	return s.historyRepo.FindByUser(userID)
}

func (s *historyService) Search(q string) ([]model.StockHistory, error) {
	return s.historyRepo.SearchByNote(q)
}

func (s *historyService) Delete(id uuid.UUID) error {
	if err := s.historyRepo.DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHistoryNotFound
		}
		return err
	}
	return nil
}
