package repository

import (
	"ppe-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(dept *model.Department) error
	FindAll() ([]model.Department, error)
	FindByName(name string) (*model.Department, error)
	DeleteByName(name string, deletedBy string) error
}

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db}
}

func (r *departmentRepo) Create(dept *model.Department) error {
	return r.db.Create(dept).Error
}

func (r *departmentRepo) FindAll() ([]model.Department, error) {
	var depts []model.Department
	err := r.db.Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) FindByName(name string) (*model.Department, error) {
	var dept model.Department
	err := r.db.First(&dept, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) DeleteByName(name string, deletedBy string) error {
	if err := r.db.Model(&model.Department{}).
		Where("name = ?", name).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Department{}, "name = ?", name).Error
}
