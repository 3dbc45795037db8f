package repository

import (
	"ppe-inventory-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(tx *gorm.DB, request *model.DispenseRequest) error
	FindAll() ([]model.DispenseRequest, error)
	FindByID(id uuid.UUID) (*model.DispenseRequest, error)
	FindByCode(code string) (*model.DispenseRequest, error)
	FindByStatus(status model.RequestStatus) ([]model.DispenseRequest, error)
	Transition(tx *gorm.DB, id uuid.UUID, status model.RequestStatus, patch map[string]interface{}) error
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db}
}

func (r *requestRepo) Create(tx *gorm.DB, request *model.DispenseRequest) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(request).Error
}

func (r *requestRepo) FindAll() ([]model.DispenseRequest, error) {
	var requests []model.DispenseRequest
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *requestRepo) FindByID(id uuid.UUID) (*model.DispenseRequest, error) {
	var request model.DispenseRequest
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindByCode(code string) (*model.DispenseRequest, error) {
	var request model.DispenseRequest
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&request, "request_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindByStatus(status model.RequestStatus) ([]model.DispenseRequest, error) {
	var requests []model.DispenseRequest
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("status = ?", status).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// Transition updates status plus auxiliary fields in one write. It never
// touches the request lines, code or requester identity; callers own the
// state-machine check before calling.
func (r *requestRepo) Transition(tx *gorm.DB, id uuid.UUID, status model.RequestStatus, patch map[string]interface{}) error {
	if tx == nil {
		tx = r.db
	}
	updates := map[string]interface{}{"status": status}
	for k, v := range patch {
		updates[k] = v
	}
	return tx.Model(&model.DispenseRequest{}).Where("id = ?", id).Updates(updates).Error
}
