package service

import (
	"errors"
	"fmt"

	"ppe-inventory-ws/internal/model"
	"ppe-inventory-ws/internal/repository"
	"ppe-inventory-ws/internal/ws"
	"ppe-inventory-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService owns catalog maintenance (create/edit/delete items).
// Quantities are deliberately out of its reach after creation — only the
// workflow engine mutates stock.
type InventoryService interface {
	CreateItem(req *model.InventoryItem, actor string) error
	UpdateItem(id uuid.UUID, req *model.InventoryItem, actor string) (*model.InventoryItem, error)
	DeleteItem(id uuid.UUID, actor string) error
	GetAllItems() ([]model.InventoryItem, error)
}

type inventoryService struct {
	itemRepo repository.InventoryRepository
	db       *gorm.DB
	wsHub    *ws.Hub
}

func NewInventoryService(itemRepo repository.InventoryRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		itemRepo: itemRepo,
		db:       db,
		wsHub:    hub,
	}
}

func (s *inventoryService) CreateItem(req *model.InventoryItem, actor string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if req.TotalQuantity < 0 {
		return errors.New("initial quantity cannot be negative")
	}

	// Business key must be unique across the catalog.
	existing, _ := s.itemRepo.FindByCode(req.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return errors.New("item code already exists")
	}

	req.CreatedBy = actor
	req.UpdatedBy = actor

	if err := s.itemRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.Publish("item_created", map[string]interface{}{
		"item": map[string]interface{}{
			"id":             req.ID,
			"code":           req.Code,
			"name":           req.Name,
			"total_quantity": req.TotalQuantity,
		},
		"message": fmt.Sprintf("Item '%s' added to the catalog", req.Name),
	})

	return nil
}

// UpdateItem edits catalog fields under a row lock. TotalQuantity is never
// copied from the payload: stock moves only through workflow transactions.
func (s *inventoryService) UpdateItem(id uuid.UUID, req *model.InventoryItem, actor string) (*model.InventoryItem, error) {
	var updated *model.InventoryItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.InventoryItem
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			return ErrItemNotFound
		}

		existing.Code = req.Code
		existing.Name = req.Name
		existing.Unit = req.Unit
		existing.Category = req.Category
		existing.ImageURL = req.ImageURL
		existing.Details = req.Details
		existing.UpdatedBy = actor

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish("item_updated", map[string]interface{}{
		"item": map[string]interface{}{
			"id":   updated.ID,
			"code": updated.Code,
			"name": updated.Name,
		},
	})

	return updated, nil
}

func (s *inventoryService) DeleteItem(id uuid.UUID, actor string) error {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return ErrItemNotFound
	}

	if err := s.itemRepo.Delete(id, actor); err != nil {
		return err
	}

	go s.wsHub.Publish("item_deleted", map[string]interface{}{
		"item_code": item.Code,
	})

	return nil
}

func (s *inventoryService) GetAllItems() ([]model.InventoryItem, error) {
	return s.itemRepo.FindAll()
}
