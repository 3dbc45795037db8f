package repository

import (
	"ppe-inventory-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *model.InventoryItem) error
	FindAll() ([]model.InventoryItem, error)
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindByCode(code string) (*model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	Delete(id uuid.UUID, deletedBy string) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) FindAll() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Order("code ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) FindByCode(code string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) Update(item *model.InventoryItem) error {
	return r.db.Save(item).Error
}

func (r *inventoryRepo) Delete(id uuid.UUID, deletedBy string) error {
	// Record who removed the item before the soft delete lands.
	if err := r.db.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.InventoryItem{}, "id = ?", id).Error
}

// UpdateQuantity accepts the caller's *gorm.DB (tx) so the write joins the
// workflow transaction that locked the row.
func (r *inventoryRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return tx.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_quantity": newQuantity,
			"updated_by":     updatedBy,
		}).Error
}
