package expense

import (
	"time"

	"droneops/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is one workshop purchase or cost entry.
type Expense struct {
	common.BaseModel
	Date        time.Time       `json:"date" gorm:"not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Description string          `json:"description" gorm:"size:255;not null"`
	ReceiptKey  string          `json:"-" gorm:"size:255"`
	HasReceipt  bool            `json:"has_receipt" gorm:"-"`
	CreatedByID *uuid.UUID      `json:"created_by_id,omitempty" gorm:"type:uuid"`
	Notes       string          `json:"notes" gorm:"type:text"`
}

func (Expense) TableName() string {
	return "expenses"
}
