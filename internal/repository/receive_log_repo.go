package repository

import (
	"ppe-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type ReceiveLogRepository interface {
	Create(tx *gorm.DB, log *model.ReceiveLog) error
	FindAll() ([]model.ReceiveLog, error)
}

type receiveLogRepo struct {
	db *gorm.DB
}

func NewReceiveLogRepo(db *gorm.DB) ReceiveLogRepository {
	return &receiveLogRepo{db}
}

// Create appends a stock-in log; joins the caller's transaction when given.
func (r *receiveLogRepo) Create(tx *gorm.DB, log *model.ReceiveLog) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(log).Error
}

func (r *receiveLogRepo) FindAll() ([]model.ReceiveLog, error) {
	var logs []model.ReceiveLog
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at DESC").Find(&logs).Error
	return logs, err
}
