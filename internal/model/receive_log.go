package model

import "github.com/google/uuid"

// ReceiveLine is one received item on a stock-in. Append-only, like its parent.
type ReceiveLine struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ReceiveID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position  int       `gorm:"not null" json:"position"`
	ItemCode  string    `gorm:"type:varchar(50);not null" json:"item_code" validate:"required"`
	ItemName  string    `gorm:"type:varchar(255)" json:"item_name"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}

// ReceiveLog records a stock-in event. Never updated or deleted after creation.
type ReceiveLog struct {
	BaseModel
	ReceiveCode  string        `gorm:"type:varchar(50);not null" json:"receive_code"`
	ReceiveDate  string        `gorm:"type:varchar(10)" json:"receive_date"` // YYYY-MM-DD
	ReceiverName string        `gorm:"type:varchar(255)" json:"receiver_name" validate:"required"`
	Lines        []ReceiveLine `gorm:"foreignKey:ReceiveID" json:"items" validate:"required,min=1,dive"`
	ItemsString  string        `gorm:"type:text" json:"items_string"`
}

func (ReceiveLog) TableName() string {
	return "receive_logs"
}

// ReceiveLinesSummary renders receive lines the same way LinesSummary does.
func ReceiveLinesSummary(lines []ReceiveLine) string {
	req := make([]RequestLine, len(lines))
	for i, l := range lines {
		req[i] = RequestLine{ItemCode: l.ItemCode, ItemName: l.ItemName, Quantity: l.Quantity}
	}
	return LinesSummary(req)
}
