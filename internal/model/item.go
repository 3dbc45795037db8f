package model

type InventoryItem struct {
	BaseModel
	Code          string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit          string `gorm:"type:varchar(20)" json:"unit"`
	Category      string `gorm:"type:varchar(50)" json:"category"`
	TotalQuantity int    `gorm:"default:0" json:"total_quantity"`
	ImageURL      string `gorm:"type:text" json:"image_url"`
	Details       string `gorm:"type:text" json:"details"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
