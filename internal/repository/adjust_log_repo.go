package repository

import (
	"ppe-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type AdjustLogRepository interface {
	Create(tx *gorm.DB, log *model.AdjustLog) error
	FindAll() ([]model.AdjustLog, error)
}

type adjustLogRepo struct {
	db *gorm.DB
}

func NewAdjustLogRepo(db *gorm.DB) AdjustLogRepository {
	return &adjustLogRepo{db}
}

// Create appends an adjustment log; joins the caller's transaction when given
// so the log commits together with the stock writes it describes.
func (r *adjustLogRepo) Create(tx *gorm.DB, log *model.AdjustLog) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(log).Error
}

func (r *adjustLogRepo) FindAll() ([]model.AdjustLog, error) {
	var logs []model.AdjustLog
	err := r.db.Order("created_at DESC").Find(&logs).Error
	return logs, err
}
