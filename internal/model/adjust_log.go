package model

type AdjustKind string

const (
	AdjustKindManual    AdjustKind = "ADJUST"
	AdjustKindStockTake AdjustKind = "STOCK_TAKE"
)

type AdjustMode string

const (
	AdjustModeSet AdjustMode = "set" // absolute quantity
	AdjustModeAdd AdjustMode = "add" // relative delta
)

// AdjustLog records a manual stock correction or a stock-take run.
// Append-only; one row per manual adjust, one summary row per stock take.
type AdjustLog struct {
	BaseModel
	Kind           AdjustKind `gorm:"type:varchar(20);not null" json:"kind"`
	ItemCode       string     `gorm:"type:varchar(50)" json:"item_code,omitempty"`
	Mode           AdjustMode `gorm:"type:varchar(10)" json:"mode,omitempty"`
	QuantityChange int        `json:"quantity_change"`
	NewQuantity    int        `json:"new_quantity"`
	LineCount      int        `json:"line_count"` // stock take only
	Reason         string     `gorm:"type:text" json:"reason"`
	AdminEmail     string     `gorm:"type:varchar(255)" json:"admin_email"`
}

func (AdjustLog) TableName() string {
	return "adjust_logs"
}
